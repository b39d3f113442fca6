package imageproc

import (
	"bytes"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// decoded holds the pixel dimensions sniffed from an image payload without
// decoding the full pixel grid.
type decoded struct {
	width  int
	height int
}

// decodePayload reads just the image header to recover dimensions. A nil or
// empty payload (URL-only image) is not a failure. Only a non-empty payload
// that fails to parse as any registered format is reported as a decode
// failure.
func decodePayload(data []byte) (*decoded, bool) {
	if len(data) == 0 {
		return nil, true
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, false
	}
	return &decoded{width: cfg.Width, height: cfg.Height}, true
}

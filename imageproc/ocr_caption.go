package imageproc

import (
	"context"
	"strings"
	"sync"

	"github.com/iyulab/fileflux/ocr"
)

// ocrCaptionLimit bounds how much recognized text becomes a caption; OCR
// output from a diagram or screenshot can run to paragraphs, and a caption
// is meant to summarize, not transcribe.
const ocrCaptionLimit = 200

// OCRCaptioner derives a caption from an image's recognized text rather
// than from a vision model. It is the offline fallback when no API-backed
// Captioner is configured: useful for screenshots and scanned figures whose
// embedded text is the caption.
//
// gosseract's Client is not safe for concurrent use, so calls are
// serialized.
type OCRCaptioner struct {
	mu     sync.Mutex
	client *ocr.Client
}

func NewOCRCaptioner() (*OCRCaptioner, error) {
	client, err := ocr.New()
	if err != nil {
		return nil, err
	}
	return &OCRCaptioner{client: client}, nil
}

func (c *OCRCaptioner) Close() error {
	return c.client.Close()
}

// Caption ignores mimeType: gosseract sniffs the image format itself.
func (c *OCRCaptioner) Caption(_ context.Context, data []byte, _ string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	text, err := c.client.RecognizeImage(data)
	if err != nil {
		return "", err
	}
	text = strings.Join(strings.Fields(text), " ")
	if len(text) > ocrCaptionLimit {
		text = text[:ocrCaptionLimit] + "..."
	}
	return text, nil
}

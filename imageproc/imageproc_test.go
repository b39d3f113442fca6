package imageproc

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/iyulab/fileflux/content"
)

// onePixelPNG is a valid 1x1 transparent PNG, used to exercise the real
// decode path without shipping a binary fixture file.
var onePixelPNG = mustDecodeBase64("iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNk+A8AAQUBAScY42YAAAAASUVORK5CYII=")

func mustDecodeBase64(s string) []byte {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

func TestDecodePayloadSniffsPNGDimensions(t *testing.T) {
	d, ok := decodePayload(onePixelPNG)
	if !ok {
		t.Fatal("expected decode to succeed on a valid PNG")
	}
	if d.width != 1 || d.height != 1 {
		t.Fatalf("expected 1x1, got %dx%d", d.width, d.height)
	}
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	_, ok := decodePayload([]byte("not an image"))
	if ok {
		t.Fatal("expected decode failure on garbage bytes")
	}
}

func TestDecodePayloadAllowsEmptyPayload(t *testing.T) {
	d, ok := decodePayload(nil)
	if !ok || d != nil {
		t.Fatal("expected a nil payload to be treated as not-a-failure with no dimensions")
	}
}

func TestProcessSkipsImagesBelowMinimumSize(t *testing.T) {
	raw := &content.RawContent{
		Images: []content.Image{{ID: "a", Data: onePixelPNG}},
	}
	text := "see ![img](embedded:a) above"

	out, result, err := Process(context.Background(), text, raw, Options{MinImageSize: 5000, MinImageDimension: 100}, nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if result.Extracted != 0 || result.Skipped != 1 {
		t.Fatalf("expected the tiny image to be skipped, got %+v", result)
	}
	if out != text {
		t.Fatalf("expected text unchanged when the image is skipped, got %q", out)
	}
}

func TestProcessWritesAndReplacesPlaceholder(t *testing.T) {
	dir := t.TempDir()
	raw := &content.RawContent{
		Images: []content.Image{{ID: "a", Data: onePixelPNG}},
	}
	text := "see ![img](embedded:a) above"

	out, result, err := Process(context.Background(), text, raw, Options{OutputDir: dir}, nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if result.Extracted != 1 {
		t.Fatalf("expected 1 extracted image, got %+v", result)
	}
	if out == text {
		t.Fatal("expected the embedded placeholder to be rewritten")
	}
	if len(raw.Images) != 1 || raw.Images[0].URL == "" {
		t.Fatalf("expected the kept image to carry a URL, got %+v", raw.Images)
	}

	if _, err := os.Stat(filepath.Join(dir, filepath.Base(raw.Images[0].URL))); err != nil {
		t.Fatalf("expected the image file to be written to disk: %v", err)
	}
}

func TestProcessStripsBase64PlaceholdersWhenNoImagesKept(t *testing.T) {
	raw := &content.RawContent{}
	text := "before ![x](data:image/png;base64,AAAA) after"

	out, _, err := Process(context.Background(), text, raw, Options{}, nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if out == text {
		t.Fatal("expected the inline base64 data URI to be stripped")
	}
}

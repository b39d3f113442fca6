// Package imageproc filters, writes, and optionally captions the images a
// reader extracted, then replaces their in-body placeholders with a
// relative file reference.
package imageproc

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/iyulab/fileflux/content"
	"github.com/iyulab/fileflux/format"
)

// Options mirrors the CLI's --min-image-size/--min-image-dimension flags
// plus the output images directory and whether vision captioning runs.
type Options struct {
	MinImageSize      int // bytes
	MinImageDimension int // pixels, each side
	MaxImageSize      int64
	OutputDir         string // directory images/img_NNN.<ext> are written under
	Caption           bool
}

func DefaultOptions(outputDir string) Options {
	return Options{
		MinImageSize:      5000,
		MinImageDimension: 100,
		OutputDir:         outputDir,
	}
}

// Captioner is the narrow vision-model collaborator: given image bytes and
// its sniffed MIME type, return a short caption.
type Captioner interface {
	Caption(ctx context.Context, data []byte, mimeType string) (string, error)
}

// Result summarizes one Process call for the extract-stage statistics JSON.
type Result struct {
	Found     int
	Extracted int
	Skipped   int
}

// Process filters raw.Images in place, writes surviving images under
// opts.OutputDir, optionally captions them, and rewrites their placeholders
// in text. Returns the (possibly rewritten) text and a Result.
func Process(ctx context.Context, text string, raw *content.RawContent, opts Options, captioner Captioner) (string, Result, error) {
	result := Result{Found: len(raw.Images)}
	if !opts.Caption {
		captioner = nil
	}

	kept := raw.Images[:0]
	seq := 0
	for _, img := range raw.Images {
		decoded, ok := decodePayload(img.Data)
		if img.Data != nil && !ok {
			raw.Warn("imageproc: failed to decode image %s, keeping placeholder", img.ID)
			result.Skipped++
			continue
		}

		width, height := img.Width, img.Height
		if decoded != nil {
			width, height = decoded.width, decoded.height
		}

		mimeType := img.MIMEType
		if mimeType == "" {
			mimeType = format.ImageMagic(img.Data)
		}

		if !passesFilters(img.Data, width, height, mimeType, opts) {
			result.Skipped++
			continue
		}

		seq++
		ext := extensionFor(mimeType)
		name := fmt.Sprintf("img_%03d%s", seq, ext)
		img.Width, img.Height, img.MIMEType = width, height, mimeType

		if captioner != nil {
			if caption, err := captioner.Caption(ctx, img.Data, mimeType); err == nil {
				img.AIDescription = caption
			}
		}

		if opts.OutputDir != "" && len(img.Data) > 0 {
			if err := writeImageFile(opts.OutputDir, name, img.Data); err != nil {
				raw.Warn("imageproc: failed to write %s: %v", name, err)
				result.Skipped++
				continue
			}
		}

		text = replacePlaceholder(text, img, name)
		img.URL = filepath.Join("images", name)
		kept = append(kept, img)
		result.Extracted++
	}
	raw.Images = kept

	if !opts.Caption && len(raw.Images) == 0 {
		text = stripBase64Placeholders(text)
	}
	return text, result, nil
}

func writeImageFile(outputDir, name string, data []byte) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outputDir, name), data, 0o644)
}

func passesFilters(data []byte, width, height int, mimeType string, opts Options) bool {
	if len(data) > 0 && len(data) < opts.MinImageSize {
		return false
	}
	if opts.MaxImageSize > 0 && int64(len(data)) > opts.MaxImageSize {
		return false
	}
	if width > 0 && width < opts.MinImageDimension {
		return false
	}
	if height > 0 && height < opts.MinImageDimension {
		return false
	}
	return mimeType != ""
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/bmp":
		return ".bmp"
	case "image/tiff":
		return ".tiff"
	default:
		return ".bin"
	}
}

var base64DataURI = regexp.MustCompile(`!\[[^\]]*\]\(data:image/[^;]+;base64,[^)]*\)`)

// replacePlaceholder swaps an embedded:<id> placeholder or a base64
// data-URI for img with a caption-bearing relative file reference.
func replacePlaceholder(text string, img content.Image, filename string) string {
	caption := img.Caption
	if caption == "" {
		caption = img.AIDescription
	}
	replacement := fmt.Sprintf("![%s](images/%s)", caption, filename)

	if img.ID != "" {
		re := regexp.MustCompile(fmt.Sprintf(`!\[[^\]]*\]\(embedded:%s\)`, regexp.QuoteMeta(img.ID)))
		if re.MatchString(text) {
			return re.ReplaceAllString(text, replacement)
		}
	}
	if loc := base64DataURI.FindStringIndex(text); loc != nil {
		return text[:loc[0]] + replacement + text[loc[1]:]
	}
	return text
}

func stripBase64Placeholders(text string) string {
	return base64DataURI.ReplaceAllString(text, "")
}

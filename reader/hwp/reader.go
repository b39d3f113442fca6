// Package hwp implements the FileFlux reader.Reader contract for HWP and
// HWPX documents by delegating to an external decoder: parsing the binary
// HWP layout and the HWPX OOXML-like schema is left to that decoder, so this
// reader only does staging, post-processing, resource enumeration, and
// structural-hint inference around whatever markdown/resources a
// caller-supplied Decoder produces.
package hwp

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/iyulab/fileflux/content"
	"github.com/iyulab/fileflux/internal/ferr"
	"github.com/iyulab/fileflux/reader"
)

// DocumentHandle is the uniform surface an external HWP/HWPX decoder must
// expose: parse(path|bytes) -> DocumentHandle.
type DocumentHandle interface {
	Title() string
	Author() string
	SectionCount() int
	Markdown() (string, error)
	ListResourceIDs() []string
	GetResourceData(id string) ([]byte, error)
}

// Decoder parses raw HWP/HWPX bytes into a DocumentHandle. FileFlux ships no
// default implementation; callers plug in whatever native decoder they have
// (CGO binding, subprocess, remote service) via Reader.Decoder.
type Decoder interface {
	Parse(path string, data []byte) (DocumentHandle, error)
}

// Reader implements reader.Reader for ".hwp"/".hwpx" files, given a Decoder.
type Reader struct {
	Decoder Decoder
}

// New returns an HWP/HWPX reader delegating to decoder. Extract/ReadStructure
// fail with ferr.KindUnsupportedFormat if decoder is nil.
func New(decoder Decoder) *Reader {
	return &Reader{Decoder: decoder}
}

func (r *Reader) ID() string { return "hwp" }

func (r *Reader) CanRead(extension string) bool {
	return extension == ".hwp" || extension == ".hwpx"
}

func (r *Reader) ReadStructure(ctx context.Context, path string, data []byte) (reader.ReadResult, error) {
	handle, err := r.parse(path, data)
	if err != nil {
		return reader.ReadResult{}, err
	}
	return reader.ReadResult{PageCount: handle.SectionCount(), Title: handle.Title()}, nil
}

func (r *Reader) Extract(ctx context.Context, path string, data []byte, opts reader.ExtractOptions) (*content.RawContent, error) {
	handle, err := r.parse(path, data)
	if err != nil {
		return nil, err
	}

	md, err := handle.Markdown()
	if err != nil {
		return nil, ferr.New(ferr.KindDocumentProcessing, path, "extract", err)
	}
	md = stripNUL(md)

	raw := content.NewRawContent(r.ID())
	raw.Text = md
	raw.Hints["pageCount"] = handle.SectionCount()
	if handle.Title() != "" {
		raw.Hints["title"] = handle.Title()
	}

	appendInferredBlocks(raw, md)

	if opts.ExtractImages {
		for i, id := range handle.ListResourceIDs() {
			data, err := handle.GetResourceData(id)
			if err != nil || len(data) == 0 {
				continue
			}
			if opts.MaxImageSize > 0 && int64(len(data)) > opts.MaxImageSize {
				continue
			}
			raw.Images = append(raw.Images, content.Image{
				ID:       fmt.Sprintf("res-%d", i),
				Data:     data,
				MIMEType: mimeFromSuffix(id),
			})
		}
	}

	return raw, nil
}

func (r *Reader) parse(path string, data []byte) (DocumentHandle, error) {
	if r.Decoder == nil {
		return nil, ferr.Unsupported(filepath.Ext(path))
	}
	handle, err := r.Decoder.Parse(path, data)
	if err != nil {
		return nil, ferr.New(ferr.KindDocumentProcessing, path, "extract", err)
	}
	return handle, nil
}

func stripNUL(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}

var (
	headingPattern = regexp.MustCompile(`(?m)^(#{1,6})\s+(.*)$`)
	listPattern    = regexp.MustCompile(`(?m)^\s*(?:[*\-+]|\d+\.)\s+(.*)$`)
	tablePattern   = regexp.MustCompile(`(?m)^\s*\|.*\|\s*$`)
)

// appendInferredBlocks runs structural-hint regexes (heading, list,
// table-pipe) over the decoder's markdown output.
func appendInferredBlocks(raw *content.RawContent, md string) {
	order := 0
	for _, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimRight(line, " \t")
		if trimmed == "" {
			continue
		}
		switch {
		case headingPattern.MatchString(trimmed):
			m := headingPattern.FindStringSubmatch(trimmed)
			raw.Blocks = append(raw.Blocks, content.TextBlock{
				Content:      strings.TrimSpace(m[2]),
				Page:         1,
				Order:        order,
				Type:         content.BlockHeading,
				HeadingLevel: len(m[1]),
			})
		case tablePattern.MatchString(trimmed):
			raw.Hints["hasTableLines"] = true
			continue
		case listPattern.MatchString(trimmed):
			m := listPattern.FindStringSubmatch(trimmed)
			raw.Blocks = append(raw.Blocks, content.TextBlock{
				Content: strings.TrimSpace(m[1]),
				Page:    1,
				Order:   order,
				Type:    content.BlockListItem,
			})
		default:
			raw.Blocks = append(raw.Blocks, content.TextBlock{
				Content: trimmed,
				Page:    1,
				Order:   order,
				Type:    content.BlockParagraph,
			})
		}
		order++
	}
}

func mimeFromSuffix(id string) string {
	switch strings.ToLower(filepath.Ext(id)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".bmp":
		return "image/bmp"
	default:
		return "application/octet-stream"
	}
}

// Package pipeline orchestrates the reader → image → parse → refine →
// chunk → enrich stages into one per-document run, and fans that run out
// across many documents with bounded concurrency.
package pipeline

import (
	"github.com/iyulab/fileflux/reader"
	"github.com/iyulab/fileflux/reader/html"
	"github.com/iyulab/fileflux/reader/hwp"
	"github.com/iyulab/fileflux/reader/markdown"
	"github.com/iyulab/fileflux/reader/office"
	"github.com/iyulab/fileflux/reader/pdf"
)

// DefaultRegistry wires every reader FileFlux ships against a fresh
// Registry. hwpDecoder is optional: FileFlux carries no native HWP decoder
// of its own, so the HWP/HWPX reader is only registered when a caller
// supplies one.
func DefaultRegistry(hwpDecoder hwp.Decoder) *reader.Registry {
	reg := reader.NewRegistry()
	reg.Register(pdf.New())
	reg.Register(office.NewDocx())
	reg.Register(office.NewPptx())
	reg.Register(office.NewXlsx())
	reg.Register(html.New())
	reg.Register(markdown.New())
	if hwpDecoder != nil {
		reg.Register(hwp.New(hwpDecoder))
	}
	return reg
}

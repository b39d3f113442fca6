// Package html implements the FileFlux reader.Reader contract for HTML
// documents by wrapping htmldoc, whose Document() method already returns a
// model.Document with navigation/boilerplate stripped.
package html

import (
	"bytes"
	"context"

	"github.com/iyulab/fileflux/content"
	"github.com/iyulab/fileflux/htmldoc"
	"github.com/iyulab/fileflux/internal/ferr"
	"github.com/iyulab/fileflux/model"
	"github.com/iyulab/fileflux/reader"
)

// Reader implements reader.Reader for ".html"/".htm" files.
type Reader struct{}

func New() *Reader { return &Reader{} }

func (r *Reader) ID() string { return "html" }

func (r *Reader) CanRead(extension string) bool {
	return extension == ".html" || extension == ".htm"
}

func (r *Reader) ReadStructure(ctx context.Context, path string, data []byte) (reader.ReadResult, error) {
	rd, err := htmldoc.OpenReader(bytes.NewReader(data))
	if err != nil {
		return reader.ReadResult{}, ferr.New(ferr.KindDocumentProcessing, path, "read-structure", err)
	}
	defer rd.Close()

	return reader.ReadResult{PageCount: 1, Title: rd.Metadata().Title}, nil
}

func (r *Reader) Extract(ctx context.Context, path string, data []byte, opts reader.ExtractOptions) (*content.RawContent, error) {
	rd, err := htmldoc.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, ferr.New(ferr.KindDocumentProcessing, path, "extract", err)
	}
	defer rd.Close()

	modelDoc, err := rd.Document()
	if err != nil {
		return nil, ferr.New(ferr.KindDocumentProcessing, path, "extract", err)
	}

	raw := content.NewRawContent(r.ID())
	order := 0
	for _, page := range modelDoc.Pages {
		order = appendElements(raw, page, order, opts)
	}
	raw.Text = modelDoc.ExtractText()
	raw.Hints["pageCount"] = 1
	return raw, nil
}

// appendElements mirrors reader/office's flattening of a model.Page into
// RawContent blocks/tables/images; duplicated rather than shared across
// packages to keep each reader's conversion rules independently adjustable
// per format.
func appendElements(raw *content.RawContent, page *model.Page, order int, opts reader.ExtractOptions) int {
	for _, elem := range page.ElementsInReadingOrder() {
		switch e := elem.(type) {
		case *model.Heading:
			raw.Blocks = append(raw.Blocks, content.TextBlock{
				Content:      e.Text,
				Page:         page.Number,
				Order:        order,
				Type:         content.BlockHeading,
				HeadingLevel: e.Level,
				BBox:         boxPtr(e.BBox, opts),
			})
			order++

		case *model.Paragraph:
			raw.Blocks = append(raw.Blocks, content.TextBlock{
				Content: e.Text,
				Page:    page.Number,
				Order:   order,
				Type:    content.BlockParagraph,
				BBox:    boxPtr(e.BBox, opts),
			})
			order++

		case *model.List:
			for _, item := range e.Items {
				raw.Blocks = append(raw.Blocks, content.TextBlock{
					Content: item.Text,
					Page:    page.Number,
					Order:   order,
					Type:    content.BlockListItem,
					Ordered: e.Ordered,
					BBox:    boxPtr(item.BBox, opts),
				})
				order++
			}

		case *model.Table:
			raw.Tables = append(raw.Tables, tableFrom(e, page.Number))
		}
	}
	return order
}

func boxPtr(b model.BBox, opts reader.ExtractOptions) *model.BBox {
	if !opts.PreserveCoordinates {
		return nil
	}
	bb := b
	return &bb
}

func tableFrom(t *model.Table, page int) content.Table {
	cells := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		cells[i] = make([]string, len(row))
		for j, cell := range row {
			cells[i][j] = cell.Text
		}
	}
	confidence := t.Confidence
	if confidence == 0 {
		confidence = 1.0
	}
	bb := t.BBox
	return content.Table{
		Cells:           cells,
		HasHeader:       len(cells) > 0,
		Confidence:      confidence,
		DetectionMethod: content.DetectionNative,
		Page:            page,
		BBox:            &bb,
	}
}

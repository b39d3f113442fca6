// Package office implements the FileFlux reader.Reader contract for the
// Office Open XML formats: DOCX, XLSX, PPTX. Each wraps a decoder that
// already produces a model.Document, so the flattening into
// content.RawContent follows the same element-conversion rules as the PDF
// reader's.
package office

import (
	"context"
	"fmt"

	"github.com/iyulab/fileflux/content"
	"github.com/iyulab/fileflux/docx"
	"github.com/iyulab/fileflux/internal/ferr"
	"github.com/iyulab/fileflux/internal/iox"
	"github.com/iyulab/fileflux/model"
	"github.com/iyulab/fileflux/reader"
)

// DocxReader implements reader.Reader for ".docx" files.
type DocxReader struct{}

func NewDocx() *DocxReader { return &DocxReader{} }

func (r *DocxReader) ID() string { return "docx" }

func (r *DocxReader) CanRead(extension string) bool { return extension == ".docx" }

func (r *DocxReader) ReadStructure(ctx context.Context, path string, data []byte) (reader.ReadResult, error) {
	doc, cleanup, err := openDocx(data)
	if err != nil {
		return reader.ReadResult{}, ferr.New(ferr.KindIO, path, "read-structure", err)
	}
	defer cleanup()

	return reader.ReadResult{PageCount: 1, Title: doc.Metadata().Title}, nil
}

func (r *DocxReader) Extract(ctx context.Context, path string, data []byte, opts reader.ExtractOptions) (*content.RawContent, error) {
	rd, cleanup, err := openDocx(data)
	if err != nil {
		return nil, ferr.New(ferr.KindIO, path, "extract", err)
	}
	defer cleanup()

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

func openDocx(data []byte) (*docx.Reader, func(), error) {
	path, cleanup, err := iox.SpillToTemp(data, "fileflux-docx-*.docx")
	if err != nil {
		return nil, func() {}, err
	}
	rd, err := docx.Open(path)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	return rd, func() {
		rd.Close()
		cleanup()
	}, nil
}

// appendElements flattens a model.Page (already in reading/document order)
// into raw.Blocks/raw.Tables, shared by every office reader.
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

		case *model.Image:
			if !opts.ExtractImages {
				continue
			}
			raw.Images = append(raw.Images, content.Image{
				ID:       fmt.Sprintf("p%d-img%d", page.Number, len(raw.Images)),
				Data:     e.Data,
				Position: fmt.Sprintf("block-%d", len(raw.Blocks)),
			})
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
		confidence = 1.0 // native office tables carry explicit grid structure
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

package office

import (
	"context"

	"github.com/iyulab/fileflux/content"
	"github.com/iyulab/fileflux/internal/ferr"
	"github.com/iyulab/fileflux/internal/iox"
	"github.com/iyulab/fileflux/reader"
	"github.com/iyulab/fileflux/xlsx"
)

// XlsxReader implements reader.Reader for ".xlsx" files. Each worksheet
// becomes one RawContent page.
type XlsxReader struct{}

func NewXlsx() *XlsxReader { return &XlsxReader{} }

func (r *XlsxReader) ID() string { return "xlsx" }

func (r *XlsxReader) CanRead(extension string) bool { return extension == ".xlsx" }

func (r *XlsxReader) ReadStructure(ctx context.Context, path string, data []byte) (reader.ReadResult, error) {
	rd, cleanup, err := openXlsx(data)
	if err != nil {
		return reader.ReadResult{}, ferr.New(ferr.KindIO, path, "read-structure", err)
	}
	defer cleanup()

	return reader.ReadResult{PageCount: rd.SheetCount()}, nil
}

func (r *XlsxReader) Extract(ctx context.Context, path string, data []byte, opts reader.ExtractOptions) (*content.RawContent, error) {
	rd, cleanup, err := openXlsx(data)
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
	raw.Hints["pageCount"] = rd.SheetCount()
	return raw, nil
}

func openXlsx(data []byte) (*xlsx.Reader, func(), error) {
	path, cleanup, err := iox.SpillToTemp(data, "fileflux-xlsx-*.xlsx")
	if err != nil {
		return nil, func() {}, err
	}
	rd, err := xlsx.Open(path)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	return rd, func() {
		rd.Close()
		cleanup()
	}, nil
}

package office

import (
	"context"

	"github.com/iyulab/fileflux/content"
	"github.com/iyulab/fileflux/internal/ferr"
	"github.com/iyulab/fileflux/internal/iox"
	"github.com/iyulab/fileflux/pptx"
	"github.com/iyulab/fileflux/reader"
)

// PptxReader implements reader.Reader for ".pptx" files. Each slide becomes
// one RawContent page.
type PptxReader struct{}

func NewPptx() *PptxReader { return &PptxReader{} }

func (r *PptxReader) ID() string { return "pptx" }

func (r *PptxReader) CanRead(extension string) bool { return extension == ".pptx" }

func (r *PptxReader) ReadStructure(ctx context.Context, path string, data []byte) (reader.ReadResult, error) {
	rd, cleanup, err := openPptx(data)
	if err != nil {
		return reader.ReadResult{}, ferr.New(ferr.KindIO, path, "read-structure", err)
	}
	defer cleanup()

	return reader.ReadResult{PageCount: rd.SlideCount()}, nil
}

func (r *PptxReader) Extract(ctx context.Context, path string, data []byte, opts reader.ExtractOptions) (*content.RawContent, error) {
	rd, cleanup, err := openPptx(data)
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
	raw.Hints["pageCount"] = rd.SlideCount()
	return raw, nil
}

func openPptx(data []byte) (*pptx.Reader, func(), error) {
	path, cleanup, err := iox.SpillToTemp(data, "fileflux-pptx-*.pptx")
	if err != nil {
		return nil, func() {}, err
	}
	rd, err := pptx.Open(path)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	return rd, func() {
		rd.Close()
		cleanup()
	}, nil
}

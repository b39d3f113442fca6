// Package pdf implements the FileFlux reader.Reader contract for PDF
// documents: word extraction, layout analysis (headings, paragraphs,
// lists), table detection, image extraction, and outline/bookmark
// flattening.
package pdf

import (
	"context"
	"fmt"
	"os"

	"github.com/iyulab/fileflux/content"
	"github.com/iyulab/fileflux/core"
	"github.com/iyulab/fileflux/internal/ferr"
	"github.com/iyulab/fileflux/layout"
	"github.com/iyulab/fileflux/model"
	"github.com/iyulab/fileflux/pages"
	"github.com/iyulab/fileflux/pdfio"
	"github.com/iyulab/fileflux/reader"
	"github.com/iyulab/fileflux/tables"
)

// Reader implements reader.Reader for ".pdf" files.
type Reader struct {
	MinHeadingSimilarity float64
}

// New returns a PDF reader with default heading-match tolerance.
func New() *Reader {
	return &Reader{MinHeadingSimilarity: 0.85}
}

func (r *Reader) ID() string { return "pdf" }

func (r *Reader) CanRead(extension string) bool { return extension == ".pdf" }

// ReadStructure opens the document just far enough to report page count and
// a title/outline, without running layout analysis.
func (r *Reader) ReadStructure(ctx context.Context, path string, data []byte) (reader.ReadResult, error) {
	pr, cleanup, err := openBytes(data)
	if err != nil {
		return reader.ReadResult{}, ferr.New(ferr.KindIO, path, "read-structure", err)
	}
	defer cleanup()

	count, err := pr.PageCount()
	if err != nil {
		return reader.ReadResult{}, ferr.New(ferr.KindDocumentProcessing, path, "read-structure", err)
	}

	title := titleFromInfo(pr)
	outline := outlineFromCatalog(pr)

	return reader.ReadResult{PageCount: count, Title: title, Outline: outline}, nil
}

// Extract runs the full word-extraction -> layout-analysis -> table-detection
// pipeline over every requested page and flattens the result into RawContent.
func (r *Reader) Extract(ctx context.Context, path string, data []byte, opts reader.ExtractOptions) (*content.RawContent, error) {
	pr, cleanup, err := openBytes(data)
	if err != nil {
		return nil, ferr.New(ferr.KindIO, path, "extract", err)
	}
	defer cleanup()

	pageCount, err := pr.PageCount()
	if err != nil {
		return nil, ferr.New(ferr.KindDocumentProcessing, path, "extract", err)
	}

	start, end := pageRange(opts, pageCount)

	doc := model.NewDocument()
	doc.Metadata = metadataFrom(pr)

	analyzer := layout.NewAnalyzer()
	detector := tables.NewGeometricDetector()

	raw := content.NewRawContent(r.ID())
	order := 0
	var pageTexts []string

	for i := start; i <= end; i++ {
		if err := ctx.Err(); err != nil {
			return nil, ferr.Cancelled("pdf.extract", err)
		}

		pdfPage, err := pr.GetPage(i - 1)
		if err != nil {
			raw.Warn("page %d: failed to load page tree node: %v", i, err)
			continue
		}

		width, height := pageDimensions(pdfPage)
		fragments, err := pr.ExtractTextFragments(pdfPage)
		if err != nil {
			raw.Warn("page %d: text extraction failed: %v", i, err)
			continue
		}

		mp := model.NewPage(width, height)
		mp.Number = i

		if len(fragments) > 0 {
			result := analyzer.Analyze(fragments, width, height)
			mp.Layout = layoutFromResult(result)
			for _, le := range result.Elements {
				mp.AddElement(le.ToModelElement())
			}
		}

		if opts.ExtractTables {
			if pageTables, err := detector.Detect(mp); err == nil {
				for _, t := range pageTables {
					mp.AddElement(t)
				}
			}
		}

		doc.AddPage(mp)
		order = appendPageBlocks(raw, mp, order, opts)
		pageTexts = append(pageTexts, mp.ExtractText())

		if opts.ExtractImages {
			if err := appendPageImages(raw, pr, pdfPage, i, opts); err != nil {
				raw.Warn("page %d: image extraction failed: %v", i, err)
			}
		}
	}

	raw.Hints["pageCount"] = pageCount
	raw.Hints["tableOfContents"] = doc.TableOfContents()
	raw.Text = joinPagesAcrossBreaks(pageTexts)

	return raw, nil
}

func pageRange(opts reader.ExtractOptions, pageCount int) (start, end int) {
	start = 1
	end = pageCount
	if opts.PageStart > 0 {
		start = opts.PageStart
	}
	if opts.PageEnd > 0 && opts.PageEnd < end {
		end = opts.PageEnd
	}
	if start > end {
		start, end = end, start
	}
	return start, end
}

// openBytes adapts pdfio.NewReader, which requires an *os.File, to the
// byte-slice input the reader.Reader contract uses: the bytes are spilled to
// a temp file for the lifetime of the read and removed on cleanup.
func openBytes(data []byte) (*pdfio.Reader, func(), error) {
	f, err := os.CreateTemp("", "fileflux-pdf-*.pdf")
	if err != nil {
		return nil, func() {}, err
	}
	path := f.Name()
	cleanup := func() {
		f.Close()
		os.Remove(path)
	}

	if _, err := f.Write(data); err != nil {
		cleanup()
		return nil, nil, err
	}
	if _, err := f.Seek(0, 0); err != nil {
		cleanup()
		return nil, nil, err
	}

	pr, err := pdfio.NewReader(f)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return pr, cleanup, nil
}

func pageDimensions(p *pages.Page) (float64, float64) {
	w, err := p.Width()
	if err != nil || w <= 0 {
		w = 612.0 // US Letter default
	}
	h, err := p.Height()
	if err != nil || h <= 0 {
		h = 792.0
	}
	return w, h
}

func metadataFrom(pr *pdfio.Reader) model.Metadata {
	md := model.Metadata{Custom: make(map[string]string)}
	info, err := pr.GetInfo()
	if err != nil || info == nil {
		return md
	}
	if v, ok := info.GetString("Title"); ok {
		md.Title = string(v)
	}
	if v, ok := info.GetString("Author"); ok {
		md.Author = string(v)
	}
	if v, ok := info.GetString("Subject"); ok {
		md.Subject = string(v)
	}
	if v, ok := info.GetString("Creator"); ok {
		md.Creator = string(v)
	}
	if v, ok := info.GetString("Producer"); ok {
		md.Producer = string(v)
	}
	return md
}

func titleFromInfo(pr *pdfio.Reader) string {
	info, err := pr.GetInfo()
	if err != nil || info == nil {
		return ""
	}
	if v, ok := info.GetString("Title"); ok {
		return string(v)
	}
	return ""
}

func layoutFromResult(result *layout.AnalysisResult) *model.PageLayout {
	pl := &model.PageLayout{
		Stats: model.LayoutStats{
			FragmentCount: result.Stats.FragmentCount,
			LineCount:     result.Stats.LineCount,
			BlockCount:    result.Stats.BlockCount,
		},
	}
	if result.Headings != nil {
		for _, h := range result.Headings.Headings {
			pl.Headings = append(pl.Headings, model.HeadingInfo{
				Level:      int(h.Level),
				Text:       h.Text,
				BBox:       h.BBox,
				FontSize:   h.FontSize,
				Confidence: h.Confidence,
			})
		}
	}
	return pl
}

func appendPageBlocks(raw *content.RawContent, page *model.Page, order int, opts reader.ExtractOptions) int {
	for _, elem := range page.ElementsInReadingOrder() {
		switch e := elem.(type) {
		case *model.Heading:
			raw.Blocks = append(raw.Blocks, content.TextBlock{
				Content:      e.Text,
				Page:         page.Number,
				Order:        order,
				Type:         content.BlockHeading,
				HeadingLevel: e.Level,
				Style:        styleFrom(e.Style, e.FontSize, e.FontName),
				BBox:         bboxPtr(e.BBox, opts),
			})
			order++

		case *model.Paragraph:
			raw.Blocks = append(raw.Blocks, content.TextBlock{
				Content: e.Text,
				Page:    page.Number,
				Order:   order,
				Type:    content.BlockParagraph,
				Style:   styleFrom(e.Style, e.FontSize, e.FontName),
				BBox:    bboxPtr(e.BBox, opts),
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
					BBox:    bboxPtr(item.BBox, opts),
				})
				order++
			}

		case *model.Table:
			raw.Tables = append(raw.Tables, tableFrom(e, page.Number))
		}
	}
	return order
}

func styleFrom(s model.TextStyle, fontSize float64, fontName string) *content.Style {
	return &content.Style{
		FontName: fontName,
		FontSize: fontSize,
		Bold:     s.Bold,
		Italic:   s.Italic,
	}
}

func bboxPtr(b model.BBox, opts reader.ExtractOptions) *model.BBox {
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
	method := content.DetectionHeuristic
	if t.HasGrid {
		method = content.DetectionNative
	}
	bb := t.BBox
	return content.Table{
		Cells:           cells,
		HasHeader:       len(cells) > 0,
		Confidence:      t.Confidence,
		DetectionMethod: method,
		Page:            page,
		BBox:            &bb,
		NeedsLLMAssist:  t.Confidence < 0.5,
	}
}

func appendPageImages(raw *content.RawContent, pr *pdfio.Reader, pdfPage *pages.Page, pageNum int, opts reader.ExtractOptions) error {
	images, err := pr.ExtractPageImages(pdfPage)
	if err != nil {
		return err
	}
	for idx, img := range images {
		data, err := img.ToPNG()
		if err != nil || len(data) == 0 {
			continue
		}
		if opts.MaxImageSize > 0 && int64(len(data)) > opts.MaxImageSize {
			continue
		}
		raw.Images = append(raw.Images, content.Image{
			ID:       fmt.Sprintf("p%d-img%d", pageNum, idx),
			Data:     data,
			MIMEType: "image/png",
			Position: fmt.Sprintf("block-%d", len(raw.Blocks)),
			Width:    img.Width,
			Height:   img.Height,
		})
	}
	return nil
}

// outlineFromCatalog walks the document catalog's /Outlines tree, returning a
// flattened bookmark list (title + nesting level). Page numbers are left at 0
// since PDF destinations reference page objects, not indices; downstream
// heading-level promotion matches by title text instead.
func outlineFromCatalog(pr *pdfio.Reader) []reader.OutlineEntry {
	catalog, err := pr.GetCatalog()
	if err != nil || catalog == nil {
		return nil
	}
	outlinesDict, ok := resolveDict(pr, catalog.Get("Outlines"))
	if !ok {
		return nil
	}
	first := outlinesDict.Get("First")
	if first == nil {
		return nil
	}
	var entries []reader.OutlineEntry
	walkOutline(pr, first, 1, &entries, 0)
	return entries
}

func walkOutline(pr *pdfio.Reader, nodeObj core.Object, level int, entries *[]reader.OutlineEntry, depth int) {
	if nodeObj == nil || depth > 64 {
		return
	}
	dict, ok := resolveDict(pr, nodeObj)
	if !ok {
		return
	}
	if title, ok := dict.GetString("Title"); ok && string(title) != "" {
		*entries = append(*entries, reader.OutlineEntry{Title: string(title), Level: level})
	}
	if first := dict.Get("First"); first != nil {
		walkOutline(pr, first, level+1, entries, depth+1)
	}
	if next := dict.Get("Next"); next != nil {
		walkOutline(pr, next, level, entries, depth+1)
	}
}

func resolveDict(pr *pdfio.Reader, obj core.Object) (core.Dict, bool) {
	if obj == nil {
		return nil, false
	}
	resolved, err := pr.Resolve(obj)
	if err != nil {
		return nil, false
	}
	d, ok := resolved.(core.Dict)
	return d, ok
}

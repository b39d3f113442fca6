// Package markdown implements the FileFlux reader.Reader contract for
// Markdown documents: YAML front matter via adrg/frontmatter, body structure
// via goldmark's AST (headings, paragraphs, lists, fenced code blocks, block
// quotes, GFM tables).
package markdown

import (
	"bytes"
	"context"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/extension"
	gmtext "github.com/yuin/goldmark/text"

	"github.com/iyulab/fileflux/content"
	"github.com/iyulab/fileflux/internal/ferr"
	"github.com/iyulab/fileflux/reader"
)

// Reader implements reader.Reader for ".md"/".markdown" files.
type Reader struct{}

func New() *Reader { return &Reader{} }

func (r *Reader) ID() string { return "markdown" }

func (r *Reader) CanRead(ext string) bool {
	return ext == ".md" || ext == ".markdown"
}

// frontMatter is the subset of YAML front-matter keys FileFlux recognizes;
// anything else is ignored rather than rejected.
type frontMatterMeta struct {
	Title   string   `yaml:"title"`
	Author  string   `yaml:"author"`
	Tags    []string `yaml:"tags"`
	Summary string   `yaml:"summary"`
}

func (r *Reader) ReadStructure(ctx context.Context, path string, data []byte) (reader.ReadResult, error) {
	var meta frontMatterMeta
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		body = data // front matter is optional; fall back to raw body
	}

	outline := headingsOnly(body)
	return reader.ReadResult{PageCount: 1, Title: meta.Title, Outline: outline}, nil
}

func (r *Reader) Extract(ctx context.Context, path string, data []byte, opts reader.ExtractOptions) (*content.RawContent, error) {
	var meta frontMatterMeta
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		body = data
	}

	raw := content.NewRawContent(r.ID())
	if meta.Title != "" {
		raw.Hints["title"] = meta.Title
	}
	if meta.Author != "" {
		raw.Hints["author"] = meta.Author
	}
	if len(meta.Tags) > 0 {
		raw.Hints["tags"] = meta.Tags
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	reader_ := gmtext.NewReader(body)
	doc := md.Parser().Parse(reader_)

	order := 0
	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			text := renderInline(node, body)
			raw.Blocks = append(raw.Blocks, content.TextBlock{
				Content:      text,
				Page:         1,
				Order:        order,
				Type:         content.BlockHeading,
				HeadingLevel: node.Level,
			})
			order++
			return ast.WalkSkipChildren, nil

		case *ast.FencedCodeBlock:
			raw.Blocks = append(raw.Blocks, content.TextBlock{
				Content: codeBlockText(node, body),
				Page:    1,
				Order:   order,
				Type:    content.BlockCodeBlock,
			})
			order++
			return ast.WalkSkipChildren, nil

		case *ast.CodeBlock:
			raw.Blocks = append(raw.Blocks, content.TextBlock{
				Content: codeBlockLinesText(node, body),
				Page:    1,
				Order:   order,
				Type:    content.BlockCodeBlock,
			})
			order++
			return ast.WalkSkipChildren, nil

		case *ast.Blockquote:
			raw.Blocks = append(raw.Blocks, content.TextBlock{
				Content: renderInline(node, body),
				Page:    1,
				Order:   order,
				Type:    content.BlockQuote,
			})
			order++
			return ast.WalkSkipChildren, nil

		case *ast.List:
			order = appendList(raw, node, body, order, node.IsOrdered())
			return ast.WalkSkipChildren, nil

		case *ast.Paragraph:
			if _, insideList := n.Parent().(*ast.ListItem); insideList {
				return ast.WalkContinue, nil
			}
			text := renderInline(node, body)
			if strings.TrimSpace(text) == "" {
				return ast.WalkContinue, nil
			}
			raw.Blocks = append(raw.Blocks, content.TextBlock{
				Content: text,
				Page:    1,
				Order:   order,
				Type:    content.BlockParagraph,
			})
			order++
			return ast.WalkSkipChildren, nil

		case *east.Table:
			raw.Tables = append(raw.Tables, tableFromNode(node, body))
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, ferr.New(ferr.KindDocumentProcessing, path, "extract", err)
	}

	var sb strings.Builder
	for i, b := range raw.Blocks {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(b.Content)
	}
	raw.Text = sb.String()
	raw.Hints["pageCount"] = 1

	return raw, nil
}

func appendList(raw *content.RawContent, list *ast.List, source []byte, order int, ordered bool) int {
	for child := list.FirstChild(); child != nil; child = child.NextSibling() {
		item, ok := child.(*ast.ListItem)
		if !ok {
			continue
		}
		raw.Blocks = append(raw.Blocks, content.TextBlock{
			Content: strings.TrimSpace(renderInline(item, source)),
			Page:    1,
			Order:   order,
			Type:    content.BlockListItem,
			Ordered: ordered,
		})
		order++
	}
	return order
}

func renderInline(n ast.Node, source []byte) string {
	var sb strings.Builder
	var walk func(ast.Node)
	walk = func(node ast.Node) {
		switch v := node.(type) {
		case *ast.Text:
			sb.Write(v.Segment.Value(source))
			if v.SoftLineBreak() || v.HardLineBreak() {
				sb.WriteString(" ")
			}
		case *ast.String:
			sb.Write(v.Value)
		default:
			for c := node.FirstChild(); c != nil; c = c.NextSibling() {
				walk(c)
			}
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

func codeBlockText(n *ast.FencedCodeBlock, source []byte) string {
	var sb strings.Builder
	for i := 0; i < n.Lines().Len(); i++ {
		line := n.Lines().At(i)
		sb.Write(line.Value(source))
	}
	return sb.String()
}

func codeBlockLinesText(n *ast.CodeBlock, source []byte) string {
	var sb strings.Builder
	for i := 0; i < n.Lines().Len(); i++ {
		line := n.Lines().At(i)
		sb.Write(line.Value(source))
	}
	return sb.String()
}

func tableFromNode(t *east.Table, source []byte) content.Table {
	var cells [][]string
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		var rowCells []string
		switch r := row.(type) {
		case *east.TableHeader:
			for cell := r.FirstChild(); cell != nil; cell = cell.NextSibling() {
				rowCells = append(rowCells, renderInline(cell, source))
			}
		case *east.TableRow:
			for cell := r.FirstChild(); cell != nil; cell = cell.NextSibling() {
				rowCells = append(rowCells, renderInline(cell, source))
			}
		}
		if rowCells != nil {
			cells = append(cells, rowCells)
		}
	}
	return content.Table{
		Cells:           cells,
		HasHeader:       len(cells) > 0,
		Confidence:      1.0,
		DetectionMethod: content.DetectionNative,
		Page:            1,
	}
}

// headingsOnly is a cheap structure-only pass used by ReadStructure, parsing
// just enough to report the document's heading outline without building
// RawContent.
func headingsOnly(body []byte) []reader.OutlineEntry {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	reader_ := gmtext.NewReader(body)
	doc := md.Parser().Parse(reader_)

	var entries []reader.OutlineEntry
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			entries = append(entries, reader.OutlineEntry{
				Title: renderInline(h, body),
				Level: h.Level,
			})
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return entries
}

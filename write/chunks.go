package write

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iyulab/fileflux/content"
)

// chunkJSON mirrors the stable Chunk JSON schema: id, index, content, props,
// and the two optional span fields.
type chunkJSON struct {
	ID         string         `json:"id"`
	Index      int            `json:"index"`
	Content    string         `json:"content"`
	Props      map[string]any `json:"props,omitempty"`
	SourceSpan *spanJSON      `json:"sourceSpan,omitempty"`
	PageRange  *spanJSON      `json:"pageRange,omitempty"`
}

type spanJSON struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func toChunkJSON(c content.Chunk) chunkJSON {
	out := chunkJSON{ID: c.ID, Index: c.Index, Content: c.Content, Props: c.Props}
	if c.SourceSpan != nil {
		out.SourceSpan = &spanJSON{Start: c.SourceSpan.Start, End: c.SourceSpan.End}
	}
	if c.PageRange != nil {
		out.PageRange = &spanJSON{Start: c.PageRange.Start, End: c.PageRange.End}
	}
	return out
}

// Chunks writes chunks to dir in the given format, under a writer-chosen
// filename, and returns the path(s) written.
func Chunks(dir string, chunks []content.Chunk, format Format) ([]string, error) {
	switch format {
	case FormatJSON:
		return writeChunksJSON(dir, chunks)
	case FormatJSONL:
		return writeChunksJSONL(dir, chunks)
	case FormatCSV:
		return writeChunksDelimited(dir, chunks, ',', "chunks.csv")
	case FormatTSV:
		return writeChunksDelimited(dir, chunks, '\t', "chunks.tsv")
	case FormatMarkdown, "":
		return writeChunksMarkdown(dir, chunks)
	default:
		return nil, fmt.Errorf("write: unknown chunk format %q", format)
	}
}

func writeChunksJSON(dir string, chunks []content.Chunk) ([]string, error) {
	out := make([]chunkJSON, len(chunks))
	for i, c := range chunks {
		out[i] = toChunkJSON(c)
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, err
	}
	path, err := writeFile(dir, "chunks.json", data)
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

func writeChunksJSONL(dir string, chunks []content.Chunk) ([]string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, c := range chunks {
		if err := enc.Encode(toChunkJSON(c)); err != nil {
			return nil, err
		}
	}
	path, err := writeFile(dir, "chunks.jsonl", buf.Bytes())
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

func writeChunksMarkdown(dir string, chunks []content.Chunk) ([]string, error) {
	var buf bytes.Buffer
	for _, c := range chunks {
		fmt.Fprintf(&buf, "## Chunk %d\n\n%s\n\n", c.Index, c.Content)
		if summary, ok := c.Props["enrichedSummary"].(string); ok && summary != "" {
			fmt.Fprintf(&buf, "> %s\n\n", summary)
		}
	}
	path, err := writeFile(dir, "chunks.md", buf.Bytes())
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

func writeChunksDelimited(dir string, chunks []content.Chunk, comma rune, name string) ([]string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = comma

	if err := w.Write([]string{"id", "index", "content", "summary", "keywords"}); err != nil {
		return nil, err
	}
	for _, c := range chunks {
		summary, _ := c.Props["enrichedSummary"].(string)
		keywords, _ := c.Props["enrichedKeywords"].([]string)
		row := []string{
			c.ID,
			fmt.Sprintf("%d", c.Index),
			c.Content,
			summary,
			strings.Join(keywords, ";"),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	path, err := writeFile(dir, name, buf.Bytes())
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

package refine

import (
	"strings"

	"github.com/iyulab/fileflux/content"
)

// reinjectTables replaces each table's plain-text fallback in text with a
// markdown table built from Cells (first row becomes the header, followed
// by a "| --- |..." separator row). Tables flagged NeedsLLMAssist keep
// their plain-text fallback instead.
func reinjectTables(text string, tables []content.Table) string {
	for _, t := range tables {
		if t.NeedsLLMAssist || len(t.Cells) == 0 {
			continue
		}
		if t.PlainText == "" || !strings.Contains(text, t.PlainText) {
			continue
		}
		text = strings.Replace(text, t.PlainText, renderMarkdownTable(t.Cells), 1)
	}
	return text
}

func renderMarkdownTable(cells [][]string) string {
	if len(cells) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("| " + strings.Join(cells[0], " | ") + " |\n")

	sep := make([]string, len(cells[0]))
	for i := range sep {
		sep[i] = "---"
	}
	b.WriteString("| " + strings.Join(sep, " | ") + " |")

	for _, row := range cells[1:] {
		b.WriteString("\n| " + strings.Join(row, " | ") + " |")
	}
	return b.String()
}

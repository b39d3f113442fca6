// Package refine turns ParsedContent into RefinedContent: whitespace
// cleanup, header/footer and page-number stripping, hyphenation and
// mid-sentence line-break repair, heading restructuring, and markdown table
// reinjection, applied in that fixed order, followed by a quality score.
package refine

import (
	"strings"

	"github.com/iyulab/fileflux/content"
)

// Options mirrors the refining knobs a caller can toggle; all default true
// except TextRefinementPreset, which is empty (no LLM-assisted rewrite).
type Options struct {
	CleanWhitespace      bool
	RemoveHeadersFooters bool
	RemovePageNumbers    bool
	RestructureHeadings  bool
	ConvertToMarkdown    bool
	TextRefinementPreset string
}

// DefaultOptions enables every structural cleanup operation.
func DefaultOptions() Options {
	return Options{
		CleanWhitespace:      true,
		RemoveHeadersFooters: true,
		RemovePageNumbers:    true,
		RestructureHeadings:  true,
		ConvertToMarkdown:    true,
	}
}

// Refine applies the fixed operation pipeline to parsed.Text and returns a
// RefinedContent with a populated quality record.
func Refine(parsed content.ParsedContent, opts Options) content.RefinedContent {
	originalLen := len([]rune(parsed.Text))
	text := parsed.Text

	if opts.CleanWhitespace {
		text = collapseWhitespace(text)
	}
	if opts.RemoveHeadersFooters && parsed.Raw != nil {
		text = removeRepeatedLines(text, parsed.Raw.Blocks)
	}
	if opts.RemovePageNumbers {
		text = removePageNumberLines(text)
	}
	text = repairHyphenation(text)
	text = removeMidSentenceBreaks(text)

	var ladder []int
	if opts.RestructureHeadings && parsed.Raw != nil {
		text, ladder = restructureHeadings(text, parsed.Raw.Blocks)
	}
	if opts.ConvertToMarkdown && parsed.Raw != nil {
		text = reinjectTables(text, parsed.Raw.Tables)
	}
	text = strings.TrimSpace(text)

	return content.RefinedContent{
		Text:      text,
		Metadata:  parsed.Metadata,
		Structure: parsed.Structure,
		Parsing:   parsed.Parsing,
		Quality:   score(ladder, text, originalLen),
		Raw:       parsed.Raw,
	}
}

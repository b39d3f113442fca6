// Package parse normalizes a reader's RawContent into ParsedContent: plain
// text, document metadata (word/page counts, detected language), and an
// ordered section outline built from heading blocks.
package parse

import (
	"strings"
	"time"
	"unicode"

	"github.com/iyulab/fileflux/content"
	"github.com/iyulab/fileflux/detect"
)

// Options controls how RawContent is normalized.
type Options struct {
	// ReaderUsed names the reader.Reader.ID() that produced raw, recorded in
	// ParsingInfo for the CLI summary panel.
	ReaderUsed string
}

// Parse converts raw into ParsedContent, attributing ReadDuration/
// ParseDuration to readStart/the call's own wall-clock time.
func Parse(raw *content.RawContent, source content.SourceFile, readStart time.Time, opts Options) content.ParsedContent {
	parseStart := time.Now()

	text := raw.Text
	if text == "" {
		text = textFromBlocks(raw.Blocks)
	}

	sections := buildSections(raw.Blocks)
	pageCount := maxPage(raw.Blocks)

	return content.ParsedContent{
		Text: text,
		Metadata: content.ContentMetadata{
			FileName:         source.Name,
			WordCount:        wordCount(text),
			PageCount:        pageCount,
			DetectedLanguage: detectLanguage(text),
		},
		Structure: sections,
		Parsing: content.ParsingInfo{
			ReaderUsed:    opts.ReaderUsed,
			ReadDuration:  parseStart.Sub(readStart),
			ParseDuration: time.Since(parseStart),
		},
		Raw: raw,
	}
}

// textFromBlocks joins block content with blank lines, used when a reader
// left RawContent.Text empty and only populated Blocks.
func textFromBlocks(blocks []content.TextBlock) string {
	var b strings.Builder
	for i, blk := range blocks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(blk.Content)
	}
	return b.String()
}

// buildSections walks Blocks in order, tracking a heading-level stack so
// each DocumentSection carries its full HeadingPath.
func buildSections(blocks []content.TextBlock) []content.DocumentSection {
	var sections []content.DocumentSection
	var stack []string

	for _, blk := range blocks {
		if blk.Type != content.BlockHeading {
			continue
		}
		level := blk.HeadingLevel
		if level < 1 {
			level = 1
		}
		if level > len(stack) {
			for len(stack) < level-1 {
				stack = append(stack, "")
			}
			stack = append(stack, blk.Content)
		} else {
			stack = stack[:level-1]
			stack = append(stack, blk.Content)
		}

		path := make([]string, len(stack))
		copy(path, stack)
		sections = append(sections, content.DocumentSection{
			HeadingPath: path,
			StartOrder:  blk.Order,
			Level:       level,
		})
	}
	return sections
}

func maxPage(blocks []content.TextBlock) int {
	max := 0
	for _, blk := range blocks {
		if blk.Page > max {
			max = blk.Page
		}
	}
	return max
}

func wordCount(text string) int {
	return len(strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	}))
}

// detectLanguage is a best-effort guess: a CJK-dominant sample is tagged by
// its dominant script, otherwise "en" is assumed. FileFlux has no dedicated
// language-ID dependency in its stack, so this stays a coarse heuristic
// rather than a model-backed classifier.
func detectLanguage(text string) string {
	sample := detect.Sample(text, detect.AutoSampleBytes)
	if sample == "" {
		return ""
	}
	ratio := detect.CJKRatio(sample)
	if ratio < 0.1 {
		return "en"
	}
	return dominantCJKLanguage(sample)
}

func dominantCJKLanguage(sample string) string {
	var hangul, hiraKata, han int
	for _, r := range sample {
		switch {
		case r >= 0xAC00 && r <= 0xD7A3:
			hangul++
		case (r >= 0x3040 && r <= 0x30FF):
			hiraKata++
		case r >= 0x4E00 && r <= 0x9FFF:
			han++
		}
	}
	switch {
	case hangul >= hiraKata && hangul >= han:
		return "ko"
	case hiraKata >= han:
		return "ja"
	default:
		return "zh"
	}
}

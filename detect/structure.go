package detect

import (
	"regexp"
	"strings"

	"github.com/iyulab/fileflux/content"
)

var (
	headingLineRe     = regexp.MustCompile(`(?m)^#{1,6}\s+\S`)
	numberedSectionRe = regexp.MustCompile(`(?m)^(?:\d+(?:[.-]\d+)*\.|\(\d+\)|[①-⑩])\s+`)
)

// StructureProfile summarizes the shape of a document's leading sample, used
// to pick a chunking strategy when the caller asked for Auto.
type StructureProfile struct {
	HeadingCount       int
	NumberedSectionHits int
	MeanParagraphLen   int
	CJKRatio           float64
}

// ProfileText samples up to AutoSampleBytes of text and measures the signals
// the Auto strategy selector needs.
func ProfileText(text string) StructureProfile {
	sample := Sample(text, AutoSampleBytes)

	paragraphs := strings.Split(sample, "\n\n")
	var total, count int
	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		total += len(p)
		count++
	}
	meanLen := 0
	if count > 0 {
		meanLen = total / count
	}

	return StructureProfile{
		HeadingCount:        len(headingLineRe.FindAllString(sample, -1)),
		NumberedSectionHits: len(numberedSectionRe.FindAllString(sample, -1)),
		MeanParagraphLen:    meanLen,
		CJKRatio:            CJKRatio(Sample(text, CJKSampleBytes)),
	}
}

// SelectStrategy implements the Auto strategy decision tree: 3+ headings
// triggers Hierarchical; failing that, 5+ numbered-section markers or a mean
// paragraph length over 300 chars triggers Paragraph; otherwise Sentence.
func (p StructureProfile) SelectStrategy() content.ChunkStrategy {
	switch {
	case p.HeadingCount >= 3:
		return content.StrategyHierarchical
	case p.NumberedSectionHits >= 5 || p.MeanParagraphLen > 300:
		return content.StrategyParagraph
	default:
		return content.StrategySentence
	}
}

// HasHeadings and HasNumberedSections report the "present" thresholds (2 and
// 3 matches respectively). Nothing in the chunk package calls them; the
// Hierarchical splitter attaches heading paths unconditionally.
func (p StructureProfile) HasHeadings() bool        { return p.HeadingCount >= 2 }
func (p StructureProfile) HasNumberedSections() bool { return p.NumberedSectionHits >= 3 }

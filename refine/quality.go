package refine

import (
	"strings"

	"github.com/iyulab/fileflux/content"
)

// score computes the four-axis QualityRecord: structureScore from the
// heading-level ladder restructureHeadings produced, consistencyScore from
// residual mid-sentence breaks in the final text, retentionScore from the
// length ratio against the pre-refine text, and overall as their mean.
func score(ladder []int, refinedText string, originalLen int) content.QualityRecord {
	structureScore := headingLadderScore(ladder)
	consistencyScore := lineConsistencyScore(refinedText)
	retentionScore := retentionRatio(refinedText, originalLen)

	overall := (structureScore + consistencyScore + retentionScore) / 3.0
	return content.QualityRecord{
		StructureScore:   structureScore,
		ConsistencyScore: consistencyScore,
		RetentionScore:   retentionScore,
		Overall:          overall,
	}
}

// headingLadderScore is the fraction of headings whose level doesn't jump
// more than one step past the deepest level seen so far.
func headingLadderScore(ladder []int) float64 {
	if len(ladder) == 0 {
		return 1.0
	}
	valid := 0
	maxSeen := 0
	for _, level := range ladder {
		if level <= maxSeen+1 {
			valid++
		}
		if level > maxSeen {
			maxSeen = level
		}
	}
	return float64(valid) / float64(len(ladder))
}

// lineConsistencyScore is the fraction of consecutive non-blank line pairs
// that do NOT still look like a mid-sentence break, after refining.
func lineConsistencyScore(text string) float64 {
	lines := strings.Split(text, "\n")
	total, bad := 0, 0
	for i := 0; i < len(lines)-1; i++ {
		cur := strings.TrimRight(lines[i], " \t")
		next := strings.TrimLeft(lines[i+1], " \t")
		if cur == "" || next == "" {
			continue
		}
		total++
		if isMidSentenceBreak(cur, next) {
			bad++
		}
	}
	if total == 0 {
		return 1.0
	}
	return float64(total-bad) / float64(total)
}

func retentionRatio(refinedText string, originalLen int) float64 {
	if originalLen == 0 {
		return 1.0
	}
	ratio := float64(len([]rune(refinedText))) / float64(originalLen)
	if ratio > 1.0 {
		return 1.0
	}
	if ratio < 0 {
		return 0
	}
	return ratio
}

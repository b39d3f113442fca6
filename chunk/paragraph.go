package chunk

import (
	"regexp"
	"strings"
)

var paragraphBreak = regexp.MustCompile(`\r\n\r\n|\n\n`)

func splitParagraphs(text string) []string {
	parts := paragraphBreak.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// paragraphStrategy packs whole paragraphs, falling back to per-sentence
// units for any paragraph that alone exceeds effMax. When
// preserveListCoherence is set, a paragraph ending in ":" is glued to the
// list paragraph that immediately follows it so an intro sentence never
// separates from its items.
func paragraphStrategy(text string, effMax, effOverlap int, density float64, preserveListCoherence bool) []packedUnit {
	paragraphs := splitParagraphs(text)
	if preserveListCoherence {
		paragraphs = glueListIntros(paragraphs)
	}

	var units []unit
	for _, p := range paragraphs {
		if t := unitTokens(p, density); t <= effMax {
			units = append(units, unit{text: p, tokens: t})
			continue
		}
		units = append(units, toUnits(splitSentences(p), density)...)
	}
	return packGreedy(units, effMax, effOverlap, "\n\n")
}

var listItemLine = regexp.MustCompile(`(?m)^\s*([*\-+•]|\d+[.)])\s`)

// glueListIntros merges a paragraph ending in ":" with the following
// paragraph when that next paragraph looks like a list, so they pack as one
// unit rather than splitting across chunks.
func glueListIntros(paragraphs []string) []string {
	var out []string
	for i := 0; i < len(paragraphs); i++ {
		p := paragraphs[i]
		if strings.HasSuffix(strings.TrimSpace(p), ":") && i+1 < len(paragraphs) && listItemLine.MatchString(paragraphs[i+1]) {
			out = append(out, p+"\n\n"+paragraphs[i+1])
			i++
			continue
		}
		out = append(out, p)
	}
	return out
}

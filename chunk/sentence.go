package chunk

import (
	"strings"
	"unicode"
)

const sentenceTerminators = ".!?。！？"

// splitSentences splits text on sentence terminators, refusing to split
// when the terminator is immediately followed (after whitespace) by a digit
// or a lowercase letter — guards against splitting "3.14" or an abbreviation
// followed by a lowercase continuation.
func splitSentences(text string) []string {
	runes := []rune(text)
	var sentences []string
	start := 0

	i := 0
	for i < len(runes) {
		if !strings.ContainsRune(sentenceTerminators, runes[i]) {
			i++
			continue
		}

		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		if j < len(runes) {
			next := runes[j]
			if unicode.IsDigit(next) || unicode.IsLower(next) {
				i++
				continue
			}
		}

		if s := strings.TrimSpace(string(runes[start:i+1])); s != "" {
			sentences = append(sentences, s)
		}
		start = j
		i = j
	}

	if start < len(runes) {
		if s := strings.TrimSpace(string(runes[start:])); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func sentenceStrategy(text string, effMax, effOverlap int, density float64) []packedUnit {
	units := toUnits(splitSentences(text), density)
	return packGreedy(units, effMax, effOverlap, " ")
}

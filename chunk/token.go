package chunk

import "strings"

// tokenStrategy splits on whitespace and emits fixed-size windows with
// fixed overlap, counting each whitespace-delimited token as one
// token-equivalent unit directly rather than going through the CJK density
// estimate (this strategy's definition of "token" is literally the split
// unit).
func tokenStrategy(text string, effMax, effOverlap int) []packedUnit {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if effMax < 1 {
		effMax = 1
	}

	var out []packedUnit
	start := 0
	for start < len(words) {
		end := start + effMax
		if end > len(words) {
			end = len(words)
		}
		out = append(out, packedUnit{text: strings.Join(words[start:end], " ")})
		if end == len(words) {
			break
		}
		next := end - effOverlap
		if next <= start {
			next = start + 1
		}
		start = next
	}
	return out
}

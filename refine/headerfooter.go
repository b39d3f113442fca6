package refine

import (
	"strings"

	"github.com/iyulab/fileflux/content"
)

// minRepeatPages is the minimum number of distinct pages a candidate
// header/footer line must repeat on before it's treated as boilerplate
// rather than content that happens to recur.
const minRepeatPages = 3

// removeRepeatedLines drops lines that repeat as the first or last block on
// at least minRepeatPages distinct pages — the reader-supplied page ranges
// the Refiner needs to tell a repeated running header from ordinary text.
func removeRepeatedLines(text string, blocks []content.TextBlock) string {
	candidates := boilerplateCandidates(blocks)
	if len(candidates) == 0 {
		return text
	}

	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		if candidates[strings.TrimSpace(line)] {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// boilerplateCandidates returns the set of trimmed line texts that appear as
// the first or last block on minRepeatPages+ distinct pages.
func boilerplateCandidates(blocks []content.TextBlock) map[string]bool {
	firstOnPage := map[int]string{}
	lastOnPage := map[int]string{}
	for _, b := range blocks {
		if b.Page == 0 {
			continue
		}
		if _, ok := firstOnPage[b.Page]; !ok {
			firstOnPage[b.Page] = strings.TrimSpace(b.Content)
		}
		lastOnPage[b.Page] = strings.TrimSpace(b.Content)
	}

	counts := map[string]map[int]bool{}
	tally := func(m map[int]string) {
		for page, text := range m {
			if text == "" {
				continue
			}
			if counts[text] == nil {
				counts[text] = map[int]bool{}
			}
			counts[text][page] = true
		}
	}
	tally(firstOnPage)
	tally(lastOnPage)

	result := map[string]bool{}
	for text, pages := range counts {
		if len(pages) >= minRepeatPages {
			result[text] = true
		}
	}
	return result
}

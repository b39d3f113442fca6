package refine

import "regexp"

// hyphenatedLineBreak matches a word split across a line break by a
// trailing hyphen: "word-\nword" collapses to "wordword".
var hyphenatedLineBreak = regexp.MustCompile(`(\p{L})-\n(\p{L})`)

func repairHyphenation(text string) string {
	return hyphenatedLineBreak.ReplaceAllString(text, "$1$2")
}

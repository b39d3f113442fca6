package refine

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const sentenceTerminators = ".!?。！？"

var bulletOrNumberPrefix = regexp.MustCompile(`^([*\-+•]|\d+[.)])\s`)

// removeMidSentenceBreaks joins a line onto the next when the break falls
// mid-sentence: the current line doesn't end with a sentence terminator and
// the next doesn't start with an uppercase letter, a digit, or a bullet
// marker.
func removeMidSentenceBreaks(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		if i == len(lines)-1 {
			out = append(out, lines[i])
			break
		}

		cur := strings.TrimRight(lines[i], " \t")
		next := strings.TrimLeft(lines[i+1], " \t")
		if cur == "" || next == "" {
			out = append(out, lines[i])
			continue
		}

		if isMidSentenceBreak(cur, next) {
			out = append(out, cur+" "+next)
			i++ // next has been consumed into the merge
			continue
		}
		out = append(out, lines[i])
	}
	return strings.Join(out, "\n")
}

func isMidSentenceBreak(cur, next string) bool {
	lastRune, _ := utf8.DecodeLastRuneInString(cur)
	if strings.ContainsRune(sentenceTerminators, lastRune) {
		return false
	}

	firstRune, _ := utf8.DecodeRuneInString(next)
	if unicode.IsUpper(firstRune) || unicode.IsDigit(firstRune) {
		return false
	}
	if bulletOrNumberPrefix.MatchString(next) {
		return false
	}
	return true
}

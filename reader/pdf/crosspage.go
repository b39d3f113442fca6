package pdf

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// sentenceTerminators mirrors the refiner's own mid-sentence-break set; page
// boundaries are gone by the time refine/linebreak.go runs, so a PDF with a
// sentence split across two pages has to be repaired here, before Extract
// returns.
const sentenceTerminators = ".!?。！？"

// continuationPunct is the leading punctuation that signals a page starts
// mid-clause rather than mid-sentence (a closing bracket, a dash continuing
// a compound word, a list separator) in addition to a lowercase first letter.
const continuationPunct = ",;:)]-–—"

// joinPagesAcrossBreaks concatenates each page's extracted text, merging
// adjacent pages with a single space when the boundary falls mid-sentence
// and inserting a blank line otherwise.
func joinPagesAcrossBreaks(pages []string) string {
	var sb strings.Builder
	for i, p := range pages {
		if i == 0 {
			sb.WriteString(p)
			continue
		}
		prev := pages[i-1]
		if pageEndsIncompletely(prev) && pageStartsIncompletely(p) {
			merged := strings.TrimRight(sb.String(), " \t\n")
			sb.Reset()
			sb.WriteString(merged)
			sb.WriteString(" ")
			sb.WriteString(strings.TrimLeft(p, " \t\n"))
			continue
		}
		sb.WriteString("\n\n")
		sb.WriteString(p)
	}
	return sb.String()
}

// pageEndsIncompletely reports whether a page's last non-space character is
// not a sentence terminator.
func pageEndsIncompletely(s string) bool {
	s = strings.TrimRight(s, " \t\n")
	if s == "" {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	return !strings.ContainsRune(sentenceTerminators, r)
}

// pageStartsIncompletely reports whether a page's first non-space character
// is lowercase or a continuation punctuation mark.
func pageStartsIncompletely(s string) bool {
	s = strings.TrimLeft(s, " \t\n")
	if s == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsLower(r) || strings.ContainsRune(continuationPunct, r)
}

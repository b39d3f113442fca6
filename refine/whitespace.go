package refine

import (
	"regexp"
	"strings"
)

var runsOfSpacesOrTabs = regexp.MustCompile(`[ \t]+`)

// collapseWhitespace collapses runs of spaces/tabs to one space, trims each
// line, and caps runs of 2+ blank lines at a single blank line.
func collapseWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = runsOfSpacesOrTabs.ReplaceAllString(line, " ")
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")

	blankRun := regexp.MustCompile(`\n{3,}`)
	return blankRun.ReplaceAllString(text, "\n\n")
}

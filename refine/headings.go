package refine

import (
	"strings"

	"github.com/iyulab/fileflux/content"
)

// restructureHeadings rewrites each heading block's line in text to
// "#"-prefixed markdown at its detected level, scanning forward through the
// text so repeated heading text (e.g. "Overview" on several pages) matches
// the blocks in document order rather than always the first occurrence.
// It returns the rewritten text and the sequence of heading levels applied,
// for the structure quality score.
func restructureHeadings(text string, blocks []content.TextBlock) (string, []int) {
	lines := strings.Split(text, "\n")
	var ladder []int
	cursor := 0

	for _, b := range blocks {
		if b.Type != content.BlockHeading {
			continue
		}
		target := strings.TrimSpace(b.Content)
		if target == "" {
			continue
		}
		level := b.HeadingLevel
		if level < 1 {
			level = 1
		} else if level > 6 {
			level = 6
		}

		for i := cursor; i < len(lines); i++ {
			if strings.TrimSpace(lines[i]) != target {
				continue
			}
			if strings.HasPrefix(strings.TrimSpace(lines[i]), "#") {
				break
			}
			lines[i] = strings.Repeat("#", level) + " " + target
			cursor = i + 1
			ladder = append(ladder, level)
			break
		}
	}
	return strings.Join(lines, "\n"), ladder
}

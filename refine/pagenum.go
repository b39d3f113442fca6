package refine

import (
	"strings"

	"github.com/iyulab/fileflux/detect"
)

// removePageNumberLines drops lines that are nothing but a running page
// number, using the same pattern set the PDF reader applies during
// extraction (detect.IsPageNumberLine).
func removePageNumberLines(text string) string {
	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		if detect.IsPageNumberLine(strings.TrimSpace(line)) {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

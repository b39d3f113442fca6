package reader

import (
	"strings"
	"unicode/utf8"

	"github.com/iyulab/fileflux/content"
)

// PostProcess applies the common post-processing every reader must perform
// before returning RawContent: strip NUL bytes, ensure UTF-8 validity,
// normalize line endings.
func PostProcess(raw *content.RawContent) {
	raw.Text = normalizeText(raw.Text)
	for i := range raw.Blocks {
		raw.Blocks[i].Content = normalizeText(raw.Blocks[i].Content)
	}
}

func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "�")
	}
	return s
}

package chunk

import (
	"regexp"
	"strings"
)

var headingMarker = regexp.MustCompile(`(?m)^(#{1,6})\s+(.*)$`)

type section struct {
	headingPath string
	body        string
}

// hierarchicalStrategy treats heading markers as hard boundaries, then
// recursively applies the Paragraph strategy within each section, stamping
// every resulting chunk with its ancestor-heading path.
func hierarchicalStrategy(text string, effMax, effOverlap int, density float64, preserveListCoherence bool) []packedUnit {
	var out []packedUnit
	for _, sec := range splitHierarchicalSections(text) {
		sub := paragraphStrategy(sec.body, effMax, effOverlap, density, preserveListCoherence)
		for i := range sub {
			sub[i].headingPath = sec.headingPath
		}
		out = append(out, sub...)
	}
	return out
}

// splitHierarchicalSections walks heading markers in document order,
// tracking a level stack so each section carries its full ancestor path
// ("Intro > Details"). Content preceding the first heading becomes a
// pathless preamble section.
func splitHierarchicalSections(text string) []section {
	matches := headingMarker.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return []section{{body: text}}
	}

	var sections []section
	if matches[0][0] > 0 {
		if pre := strings.TrimSpace(text[:matches[0][0]]); pre != "" {
			sections = append(sections, section{body: pre})
		}
	}

	var stack []string
	for i, m := range matches {
		level := m[3] - m[2] // length of the "#"* run
		title := strings.TrimSpace(text[m[4]:m[5]])

		if level > len(stack) {
			for len(stack) < level-1 {
				stack = append(stack, "")
			}
			stack = append(stack, title)
		} else {
			stack = stack[:level-1]
			stack = append(stack, title)
		}

		bodyEnd := len(text)
		if i+1 < len(matches) {
			bodyEnd = matches[i+1][0]
		}
		sections = append(sections, section{
			headingPath: strings.Join(stack, " > "),
			body:        strings.TrimSpace(text[m[0]:bodyEnd]),
		})
	}
	return sections
}

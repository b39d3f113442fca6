package enrich

import (
	"context"
	"strings"

	"github.com/iyulab/fileflux/internal/ferr"
)

// splitThreshold is the default character threshold (T) the adaptive
// splitter falls back to when a chunk overflows the model's context.
const splitThreshold = 1600

// minSegmentLen discards any split segment shorter than this — too small
// to be worth a separate enrichment call.
const minSegmentLen = 50

var redundantLeadPhrases = []string{
	"This text", "This section", "The text", "The document",
}

// Enrich runs e against content, falling back to adaptive splitting when
// the direct call reports TokenLengthExceeded. It never returns an error:
// a chunk that can't be enriched at all comes back with ok=false so the
// caller can record the failure in the chunk's props instead of aborting
// the pipeline.
func Enrich(ctx context.Context, e Enricher, content, docContext string) (result Result, ok bool) {
	direct, err := e.Enrich(ctx, content, docContext)
	if err == nil {
		return direct, true
	}
	if !ferr.IsTokenLengthExceeded(err) {
		return Result{}, false
	}

	segments := splitOversized(content, splitThreshold)
	var summaries []string
	keywordSeen := map[string]bool{}
	var keywords []string

	for _, seg := range segments {
		r, err := e.Enrich(ctx, seg, docContext)
		if err != nil {
			continue
		}
		if s := strings.TrimSpace(r.Summary); s != "" {
			summaries = append(summaries, s)
		}
		for _, kw := range r.Keywords {
			if len(keywords) >= 10 {
				break
			}
			key := strings.ToLower(strings.TrimSpace(kw))
			if key == "" || keywordSeen[key] {
				continue
			}
			keywordSeen[key] = true
			keywords = append(keywords, kw)
		}
	}

	if len(summaries) == 0 && len(keywords) == 0 {
		return Result{}, false
	}
	return Result{Summary: mergeSummaries(summaries), Keywords: keywords}, true
}

// splitOversized splits content first by paragraph, then by sentence for
// any paragraph still over threshold, then truncates any single sentence
// still over threshold to threshold-50 runes plus an ellipsis. Segments
// under minSegmentLen are dropped.
func splitOversized(content string, threshold int) []string {
	var segments []string
	for _, para := range strings.Split(content, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if len([]rune(para)) <= threshold {
			segments = append(segments, para)
			continue
		}
		for _, sent := range splitSentencesForEnrich(para) {
			if r := []rune(sent); len(r) > threshold {
				sent = string(r[:threshold-50]) + "…"
			}
			segments = append(segments, sent)
		}
	}

	out := segments[:0]
	for _, s := range segments {
		if len([]rune(s)) >= minSegmentLen {
			out = append(out, s)
		}
	}
	return out
}

// splitSentencesForEnrich is a minimal terminator split — the adaptive
// splitter only needs segment boundaries, not the chunker's digit/lowercase
// guard against false-positive splits.
func splitSentencesForEnrich(text string) []string {
	var out []string
	start := 0
	for i, r := range text {
		switch r {
		case '.', '!', '?', '。', '！', '？':
			if s := strings.TrimSpace(text[start : i+len(string(r))]); s != "" {
				out = append(out, s)
			}
			start = i + len(string(r))
		}
	}
	if rest := strings.TrimSpace(text[start:]); rest != "" {
		out = append(out, rest)
	}
	return out
}

// mergeSummaries concatenates segment summaries with spaces, stripping a
// redundant leading phrase from every summary after the first, then caps
// the result at 1000 characters, the last three being "..." when cut.
func mergeSummaries(summaries []string) string {
	if len(summaries) == 0 {
		return ""
	}
	parts := make([]string, len(summaries))
	parts[0] = summaries[0]
	for i := 1; i < len(summaries); i++ {
		parts[i] = stripLeadPhrase(summaries[i])
	}
	merged := strings.Join(parts, " ")

	if r := []rune(merged); len(r) > 1000 {
		merged = string(r[:997]) + "..."
	}
	return merged
}

func stripLeadPhrase(s string) string {
	for _, phrase := range redundantLeadPhrases {
		if strings.HasPrefix(s, phrase) {
			return strings.TrimSpace(strings.TrimPrefix(s, phrase))
		}
	}
	return s
}

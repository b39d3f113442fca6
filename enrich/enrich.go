// Package enrich adds per-chunk summaries and keywords on top of a narrow
// Enricher collaborator, handling context-overflow by adaptively splitting
// oversized chunks and merging the per-segment results back together.
package enrich

import "context"

// Result is what one enrichment call returns; either field may be empty.
type Result struct {
	Summary  string
	Keywords []string
}

// Enricher is the external collaborator every enrichment backend
// implements: one call, one chunk of text, an optional document-level
// context string, one Result or an error. Implementations report
// context-length overflow as an ordinary error whose message
// internal/ferr.IsTokenLengthExceeded recognizes — this package never
// depends on a backend-specific error type.
type Enricher interface {
	Enrich(ctx context.Context, text string, docContext string) (Result, error)
}

// WarmUp issues a one-shot dummy call against e, swallowing any error —
// local models pay their cold-start cost once, at pipeline start, instead
// of on the first real chunk.
func WarmUp(ctx context.Context, e Enricher) {
	_, _ = e.Enrich(ctx, "warm-up", "")
}

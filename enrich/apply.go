package enrich

import (
	"strings"

	"github.com/iyulab/fileflux/content"
)

// Stable chunk.Props keys written back by the enrichment stage.
const (
	PropSummary          = "enrichedSummary"
	PropKeywords         = "enrichedKeywords"
	PropTopics           = "enrichedTopics"
	PropDocumentKeywords = "documentKeywords"
	PropHierarchyPath    = "hierarchyPath"
	PropFailed           = "enrichmentFailed"
)

// ApplyToChunk writes an Enrich result into c.Props under the stable keys,
// or records the failure rather than raising when ok is false. A
// Hierarchical chunk's headingPath (set by the chunk package) is copied
// forward as hierarchyPath, the name the enrichment sidecar JSON uses.
func ApplyToChunk(c *content.Chunk, r Result, ok bool) {
	if path, present := c.Props["headingPath"]; present {
		c.Props[PropHierarchyPath] = path
	}

	if !ok {
		c.Props[PropFailed] = true
		return
	}
	if r.Summary != "" {
		c.Props[PropSummary] = r.Summary
	}
	if len(r.Keywords) > 0 {
		c.Props[PropKeywords] = r.Keywords
	}
}

// DocumentIndex aggregates per-chunk enrichment into the document-level
// summary/keywords the sidecar index.json carries.
type DocumentIndex struct {
	Summary  string
	Keywords []string
}

// Aggregate unions keyword props across chunks (capped at 10) and
// synthesizes a document summary by merging the first three chunk
// summaries found.
func Aggregate(chunks []content.Chunk) DocumentIndex {
	var summaries []string
	seen := map[string]bool{}
	var keywords []string

	for _, c := range chunks {
		if s, ok := c.Props[PropSummary].(string); ok && s != "" {
			summaries = append(summaries, s)
		}
		kws, _ := c.Props[PropKeywords].([]string)
		for _, kw := range kws {
			if len(keywords) >= 10 {
				break
			}
			key := strings.ToLower(kw)
			if seen[key] {
				continue
			}
			seen[key] = true
			keywords = append(keywords, kw)
		}
	}

	limit := len(summaries)
	if limit > 3 {
		limit = 3
	}
	return DocumentIndex{
		Summary:  mergeSummaries(summaries[:limit]),
		Keywords: keywords,
	}
}

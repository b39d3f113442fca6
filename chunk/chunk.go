// Package chunk splits RefinedContent into size-bounded Chunks using one of
// six strategies (Auto dispatches to Hierarchical/Paragraph/Sentence based
// on the detect package's structure profile), applying the model-context
// clamp and CJK size adjustment before segmentation.
package chunk

import (
	"strings"

	"github.com/google/uuid"

	"github.com/iyulab/fileflux/content"
	"github.com/iyulab/fileflux/detect"
)

// ModelLimits carries the enrichment model's declared capacity, used for
// the model-context clamp. MaxEnrichmentTokens == 0 means no local-model
// limit is known and effectiveMax is left at opts.MaxSize.
type ModelLimits struct {
	MaxEnrichmentTokens int
}

// Run splits refined.Text into Chunks per opts, resolving Auto to a
// concrete strategy first.
func Run(refined content.RefinedContent, opts content.ChunkingOptions, limits ModelLimits) ([]content.Chunk, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	text := refined.Text
	profile := detect.ProfileText(text)

	strategy := opts.Strategy
	if strategy == "" || strategy == content.StrategyAuto {
		strategy = profile.SelectStrategy()
	}

	effMax, effOverlap := effectiveSize(opts, limits, profile.CJKRatio)
	density := detect.TokenDensity(profile.CJKRatio)

	var packed []packedUnit
	switch strategy {
	case content.StrategyParagraph:
		packed = paragraphStrategy(text, effMax, effOverlap, density, opts.PreserveListCoherence)
	case content.StrategyToken:
		packed = tokenStrategy(text, effMax, effOverlap)
	case content.StrategySemantic:
		packed = semanticStrategy(text, effMax, density)
	case content.StrategyHierarchical:
		packed = hierarchicalStrategy(text, effMax, effOverlap, density, opts.PreserveListCoherence)
	default:
		packed = sentenceStrategy(text, effMax, effOverlap, density)
	}

	return toChunks(packed, text), nil
}

// effectiveSize applies the model-context clamp then the CJK size
// adjustment, in that order, to opts.MaxSize/OverlapSize.
func effectiveSize(opts content.ChunkingOptions, limits ModelLimits, cjkRatio float64) (effMax, effOverlap int) {
	effMax = opts.MaxSize
	effOverlap = opts.OverlapSize

	if limits.MaxEnrichmentTokens > 0 && limits.MaxEnrichmentTokens < effMax {
		effMax = limits.MaxEnrichmentTokens
	}
	effOverlap = clampOverlap(effOverlap, effMax)

	if mult := detect.SizeMultiplier(cjkRatio); mult != 1.0 {
		scaled := int(float64(effMax) * mult)
		if scaled < 50 {
			scaled = 50
		}
		effMax = scaled
		effOverlap = clampOverlap(effOverlap, effMax)
	}
	return effMax, effOverlap
}

func clampOverlap(overlap, max int) int {
	if limit := max / 4; overlap > limit {
		return limit
	}
	return overlap
}

// toChunks converts packedUnit results into content.Chunk, locating each
// chunk's SourceSpan by scanning forward through the original text (a
// chunk's content always appears, possibly with whitespace normalized, in
// its source order).
func toChunks(packed []packedUnit, sourceText string) []content.Chunk {
	chunks := make([]content.Chunk, 0, len(packed))
	cursor := 0

	for i, p := range packed {
		c := content.NewChunk(uuid.NewString(), i, strings.TrimSpace(p.text))
		if c.Content == "" {
			continue
		}
		if p.sizeExceeded {
			c.Props["sizeExceeded"] = true
		}
		if p.headingPath != "" {
			c.Props["headingPath"] = p.headingPath
		}

		if idx := strings.Index(sourceText[cursor:], firstLine(c.Content)); idx >= 0 {
			start := cursor + idx
			c.SourceSpan = &content.SourceSpan{Start: start, End: start + len(c.Content)}
			cursor = start
		}
		chunks = append(chunks, c)
	}

	// re-index after dropping any empty chunks above
	for i := range chunks {
		chunks[i].Index = i
	}
	return chunks
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	if len(s) > 80 {
		return s[:80]
	}
	return s
}

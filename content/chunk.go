package content

// SourceSpan locates a chunk's content within its RefinedContent by
// character offset.
type SourceSpan struct {
	Start int
	End   int
}

// PageRange is the optional page span a chunk was drawn from. It is
// propagated only when the upstream RefinedContent carries per-block page
// numbers.
type PageRange struct {
	Start int
	End   int
}

// Chunk is a size-bounded, semantically coherent slice of RefinedContent
// text plus enrichment/provenance metadata.
//
// Invariant: len(Content) is within effectiveMaxSize in token-equivalent
// units, except when a single indivisible unit exceeds the limit — then the
// chunk is emitted whole with Props["sizeExceeded"] = true.
type Chunk struct {
	ID         string
	Index      int
	Content    string
	Props      map[string]any
	SourceSpan *SourceSpan
	PageRange  *PageRange
}

// NewChunk returns a Chunk with an initialized Props map so callers never
// need a nil check before writing a property.
func NewChunk(id string, index int, text string) Chunk {
	return Chunk{
		ID:      id,
		Index:   index,
		Content: text,
		Props:   make(map[string]any),
	}
}

// ChunkStrategy names one of the six segmentation strategies.
type ChunkStrategy string

const (
	StrategyAuto         ChunkStrategy = "Auto"
	StrategySentence     ChunkStrategy = "Sentence"
	StrategyParagraph    ChunkStrategy = "Paragraph"
	StrategyToken        ChunkStrategy = "Token"
	StrategySemantic     ChunkStrategy = "Semantic"
	StrategyHierarchical ChunkStrategy = "Hierarchical"
)

// ChunkingOptions configures a chunking run. Invariant: 0 <= OverlapSize < MaxSize.
type ChunkingOptions struct {
	Strategy    ChunkStrategy
	MaxSize     int // tokens
	OverlapSize int // tokens

	// PreserveListCoherence keeps a list's introductory sentence attached to
	// its items.
	PreserveListCoherence bool
}

// Validate enforces the ChunkingOptions invariant.
func (o ChunkingOptions) Validate() error {
	if o.OverlapSize < 0 || o.OverlapSize >= o.MaxSize {
		return errInvalidOverlap
	}
	return nil
}

var errInvalidOverlap = chunkOptionsError("overlap must satisfy 0 <= overlap < maxSize")

type chunkOptionsError string

func (e chunkOptionsError) Error() string { return string(e) }

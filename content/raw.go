package content

import (
	"fmt"

	"github.com/iyulab/fileflux/model"
)

// BBox re-exports the teacher's geometry type so every reader shares one
// bounding-box representation from extraction through chunking.
type BBox = model.BBox

// BlockType classifies a TextBlock's semantic role.
type BlockType int

const (
	BlockParagraph BlockType = iota
	BlockHeading
	BlockListItem
	BlockCodeBlock
	BlockQuote
)

func (t BlockType) String() string {
	switch t {
	case BlockHeading:
		return "Heading"
	case BlockListItem:
		return "ListItem"
	case BlockCodeBlock:
		return "CodeBlock"
	case BlockQuote:
		return "Quote"
	default:
		return "Paragraph"
	}
}

// Style carries font metrics a reader observed for a block, used by the PDF
// reader's font-based heading inference.
type Style struct {
	FontName string
	FontSize float64
	Bold     bool
	Italic   bool
}

// TextBlock is one paragraph/heading/list-item/code-block/quote of reader
// output. Order reflects reading order after layout analysis; blocks never
// overlap in text.
type TextBlock struct {
	Content      string
	Page         int // 1-indexed; 0 when the format has no page concept
	Order        int // monotonic index within the document
	Type         BlockType
	HeadingLevel int // 1-6, only meaningful when Type == BlockHeading
	Ordered      bool
	Style        *Style
	BBox         *BBox
}

// TableDetectionMethod records which algorithm produced a Table.
type TableDetectionMethod int

const (
	DetectionAlignmentPattern TableDetectionMethod = iota
	DetectionHeuristic
	DetectionNative
)

func (m TableDetectionMethod) String() string {
	switch m {
	case DetectionHeuristic:
		return "Heuristic"
	case DetectionNative:
		return "Native"
	default:
		return "AlignmentPattern"
	}
}

// Table is a 2-D array of cell strings. Invariant: all rows have equal
// column count (short rows are padded with empty strings).
type Table struct {
	Cells           [][]string
	HasHeader       bool
	Confidence      float64
	DetectionMethod TableDetectionMethod
	Page            int
	PlainText       string // fallback rendering
	BBox            *BBox
	NeedsLLMAssist  bool // confidence below threshold
}

// Pad right-pads every row in Cells to the widest row's column count.
func (t *Table) Pad() {
	width := 0
	for _, row := range t.Cells {
		if len(row) > width {
			width = len(row)
		}
	}
	for i, row := range t.Cells {
		for len(row) < width {
			row = append(row, "")
		}
		t.Cells[i] = row
	}
}

// Image is an embedded or referenced picture discovered by a reader.
type Image struct {
	ID            string
	Caption       string
	Data          []byte // nil when only an external URL is known
	URL           string
	MIMEType      string
	Position      string // insertion-point marker in the body text
	Width         int
	Height        int
	Properties    map[string]string
	AIDescription string // populated by the image processor's vision captioner
}

// RawContent is the uniform output of every reader: text plus the blocks,
// tables, and images it recognized, alongside reader-specific hints and any
// non-fatal warnings encountered during extraction.
type RawContent struct {
	Text     string
	Blocks   []TextBlock
	Tables   []Table
	Images   []Image
	Hints    map[string]any
	Warnings []string
	Reader   string
}

// NewRawContent returns a RawContent with an initialized Hints map, produced
// by the reader identified by readerID.
func NewRawContent(readerID string) *RawContent {
	return &RawContent{
		Hints:  make(map[string]any),
		Reader: readerID,
	}
}

// Warn appends a warning instead of failing — readers use this for
// per-page/sheet errors that don't abort the whole extraction.
func (r *RawContent) Warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

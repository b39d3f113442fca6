package content

import "time"

// DocumentSection is an ordered section identified by its heading path,
// used to render ParsedContent.Structure.
type DocumentSection struct {
	HeadingPath []string
	StartOrder  int // TextBlock.Order of the section's first block
	Level       int
}

// ParsingInfo records which reader produced ParsedContent and how long each
// phase took, surfaced in the CLI summary panel.
type ParsingInfo struct {
	ReaderUsed    string
	ReadDuration  time.Duration
	ParseDuration time.Duration
}

// ContentMetadata carries the document-level facts a consumer needs before
// reading the body.
type ContentMetadata struct {
	FileName         string
	WordCount        int
	PageCount        int
	DetectedLanguage string
}

// ParsedContent is RawContent after normalization: plain text, structural
// sections, and file/word/page metadata.
type ParsedContent struct {
	Text      string
	Metadata  ContentMetadata
	Structure []DocumentSection
	Parsing   ParsingInfo

	// Raw is retained so the Refiner can reconstruct markdown tables from
	// Table.Cells — all markdown rendering lives in the Refiner, not the
	// Reader.
	Raw *RawContent
}

// QualityRecord scores a RefinedContent body on four axes, each in [0,1].
type QualityRecord struct {
	StructureScore   float64
	ConsistencyScore float64
	RetentionScore   float64
	Overall          float64
}

// RefinedContent is ParsedContent after cleanup, carrying a QualityRecord.
type RefinedContent struct {
	Text      string
	Metadata  ContentMetadata
	Structure []DocumentSection
	Parsing   ParsingInfo
	Quality   QualityRecord

	Raw *RawContent
}

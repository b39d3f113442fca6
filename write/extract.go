package write

import (
	"encoding/json"

	"github.com/iyulab/fileflux/imageproc"
)

// ExtractStats is the extract/extracted.json payload: size reduction and
// image-filtering counts from one reader pass.
type ExtractStats struct {
	RawSize       int64            `json:"rawSize"`
	ExtractedSize int              `json:"extractedSize"`
	ReductionPct  float64          `json:"reductionPercent"`
	Images        imageproc.Result `json:"images"`
	Warnings      []string         `json:"warnings,omitempty"`
}

func NewExtractStats(rawSize int64, extractedText string, images imageproc.Result, warnings []string) ExtractStats {
	extractedSize := len(extractedText)
	stats := ExtractStats{
		RawSize:       rawSize,
		ExtractedSize: extractedSize,
		Images:        images,
		Warnings:      warnings,
	}
	if rawSize > 0 {
		stats.ReductionPct = 100 * (1 - float64(extractedSize)/float64(rawSize))
	}
	return stats
}

// Extract writes extract/extracted.md and extract/extracted.json under dir.
func Extract(dir, text string, stats ExtractStats) error {
	if _, err := writeFile(dir, "extracted.md", []byte(text)); err != nil {
		return err
	}
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return err
	}
	_, err = writeFile(dir, "extracted.json", data)
	return err
}

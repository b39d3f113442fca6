package write

import (
	"encoding/json"
	"math"
	"time"

	"github.com/iyulab/fileflux/content"
)

// RefineStats is the refine/refined.json payload.
type RefineStats struct {
	Stage        string    `json:"stage"`
	Timestamp    time.Time `json:"timestamp"`
	ReductionPct float64   `json:"reductionPercent"`
	SectionCount int       `json:"sectionCount"`
	Quality      quality   `json:"quality"`
}

type quality struct {
	StructureScore   float64 `json:"structureScore"`
	ConsistencyScore float64 `json:"consistencyScore"`
	RetentionScore   float64 `json:"retentionScore"`
	Overall          float64 `json:"overall"`
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}

func NewRefineStats(parsedSize int, refined content.RefinedContent, now time.Time) RefineStats {
	reduction := 0.0
	if parsedSize > 0 {
		reduction = 100 * (1 - float64(len(refined.Text))/float64(parsedSize))
	}
	return RefineStats{
		Stage:        "refine",
		Timestamp:    now,
		ReductionPct: round3(reduction),
		SectionCount: len(refined.Structure),
		Quality: quality{
			StructureScore:   round3(refined.Quality.StructureScore),
			ConsistencyScore: round3(refined.Quality.ConsistencyScore),
			RetentionScore:   round3(refined.Quality.RetentionScore),
			Overall:          round3(refined.Quality.Overall),
		},
	}
}

// Refine writes refine/refined.md and refine/refined.json under dir.
func Refine(dir string, refined content.RefinedContent, stats RefineStats) error {
	if _, err := writeFile(dir, "refined.md", []byte(refined.Text)); err != nil {
		return err
	}
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return err
	}
	_, err = writeFile(dir, "refined.json", data)
	return err
}

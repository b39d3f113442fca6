package write

import (
	"encoding/json"
	"fmt"

	"github.com/iyulab/fileflux/content"
	"github.com/iyulab/fileflux/enrich"
)

// enrichIndex is the enrich/index.json payload: run-level counters plus the
// document-level analysis enrich.Aggregate synthesized.
type enrichIndex struct {
	ChunkCount   int      `json:"chunkCount"`
	SuccessCount int      `json:"successCount"`
	FailedCount  int      `json:"failedCount"`
	Summary      string   `json:"summary"`
	Keywords     []string `json:"keywords"`
}

// Enrich writes one enrich/NNN.json per chunk and an enrich/index.json
// aggregating the document-level summary and keyword union.
func Enrich(dir string, chunks []content.Chunk) error {
	success, failed := 0, 0
	for i, c := range chunks {
		name := fmt.Sprintf("%03d.json", i)
		data, err := json.MarshalIndent(toChunkJSON(c), "", "  ")
		if err != nil {
			return err
		}
		if _, err := writeFile(dir, name, data); err != nil {
			return err
		}
		if _, ok := c.Props[enrich.PropFailed]; ok {
			failed++
		} else {
			success++
		}
	}

	agg := enrich.Aggregate(chunks)
	index := enrichIndex{
		ChunkCount:   len(chunks),
		SuccessCount: success,
		FailedCount:  failed,
		Summary:      agg.Summary,
		Keywords:     agg.Keywords,
	}
	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return err
	}
	_, err = writeFile(dir, "index.json", data)
	return err
}

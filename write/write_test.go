package write

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iyulab/fileflux/content"
	"github.com/iyulab/fileflux/enrich"
	"github.com/iyulab/fileflux/imageproc"
)

func sampleChunks() []content.Chunk {
	a := content.NewChunk("a", 0, "first chunk")
	a.Props[enrich.PropSummary] = "a summary"
	a.Props[enrich.PropKeywords] = []string{"x", "y"}
	b := content.NewChunk("b", 1, "second chunk")
	b.Props[enrich.PropFailed] = true
	return []content.Chunk{a, b}
}

func TestChunksJSONRoundTrips(t *testing.T) {
	dir := t.TempDir()
	paths, err := Chunks(dir, sampleChunks(), FormatJSON)
	if err != nil {
		t.Fatalf("Chunks: %v", err)
	}
	data, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var out []chunkJSON
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(out) != 2 || out[0].ID != "a" || out[1].Index != 1 {
		t.Fatalf("unexpected round trip: %+v", out)
	}
}

func TestChunksJSONLOneObjectPerLine(t *testing.T) {
	dir := t.TempDir()
	paths, err := Chunks(dir, sampleChunks(), FormatJSONL)
	if err != nil {
		t.Fatalf("Chunks: %v", err)
	}
	data, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := splitNonEmptyLines(string(data))
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), data)
	}
}

func splitNonEmptyLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			if line := s[start:i]; line != "" {
				out = append(out, line)
			}
			start = i + 1
		}
	}
	return out
}

func TestChunksCSVHasHeaderAndRows(t *testing.T) {
	dir := t.TempDir()
	paths, err := Chunks(dir, sampleChunks(), FormatCSV)
	if err != nil {
		t.Fatalf("Chunks: %v", err)
	}
	data, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := splitNonEmptyLines(string(data))
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(lines))
	}
}

func TestExtractWritesMarkdownAndStats(t *testing.T) {
	dir := t.TempDir()
	stats := NewExtractStats(100, "hello world", imageproc.Result{Found: 2, Extracted: 1, Skipped: 1}, nil)
	if err := Extract(dir, "hello world", stats); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "extracted.md")); err != nil {
		t.Fatal("expected extracted.md to exist")
	}
	if _, err := os.Stat(filepath.Join(dir, "extracted.json")); err != nil {
		t.Fatal("expected extracted.json to exist")
	}
}

func TestRefineStatsRoundsQualityToThreeDecimals(t *testing.T) {
	refined := content.RefinedContent{
		Text:      "abc",
		Structure: []content.DocumentSection{{}},
		Quality:   content.QualityRecord{Overall: 0.123456},
	}
	stats := NewRefineStats(10, refined, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if stats.Quality.Overall != 0.123 {
		t.Fatalf("expected 0.123, got %v", stats.Quality.Overall)
	}
	if stats.SectionCount != 1 {
		t.Fatalf("expected 1 section, got %d", stats.SectionCount)
	}
}

func TestEnrichWritesPerChunkAndIndex(t *testing.T) {
	dir := t.TempDir()
	if err := Enrich(dir, sampleChunks()); err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "000.json")); err != nil {
		t.Fatal("expected 000.json to exist")
	}
	if _, err := os.Stat(filepath.Join(dir, "001.json")); err != nil {
		t.Fatal("expected 001.json to exist")
	}
	data, err := os.ReadFile(filepath.Join(dir, "index.json"))
	if err != nil {
		t.Fatalf("ReadFile index.json: %v", err)
	}
	var idx enrichIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if idx.ChunkCount != 2 || idx.SuccessCount != 1 || idx.FailedCount != 1 {
		t.Fatalf("unexpected index: %+v", idx)
	}
}

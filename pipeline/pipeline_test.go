package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/iyulab/fileflux/content"
)

const sampleMarkdown = `# Title

This is the first paragraph. It has two sentences.

This is the second paragraph, with a bit more text to make it interesting.
`

func TestRunProducesChunksForMarkdown(t *testing.T) {
	reg := DefaultRegistry(nil)
	source := content.NewSourceFile("doc.md", int64(len(sampleMarkdown)), time.Now(), time.Now())

	result, err := Run(context.Background(), reg, "doc.md", []byte(sampleMarkdown), source, DefaultOptions())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Chunks) == 0 {
		t.Fatal("expected at least one chunk")
	}
	for i, c := range result.Chunks {
		if c.Index != i {
			t.Fatalf("expected chunk index %d, got %d", i, c.Index)
		}
		if c.Content == "" {
			t.Fatal("expected non-empty chunk content")
		}
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	reg := DefaultRegistry(nil)
	source := content.NewSourceFile("doc.md", int64(len(sampleMarkdown)), time.Now(), time.Now())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, reg, "doc.md", []byte(sampleMarkdown), source, DefaultOptions())
	if err == nil {
		t.Fatal("expected a cancellation error")
	}
}

func TestRunAllProcessesEveryDocumentIndependently(t *testing.T) {
	reg := DefaultRegistry(nil)
	docs := []Document{
		{Path: "a.md", Data: []byte(sampleMarkdown), Source: content.NewSourceFile("a.md", int64(len(sampleMarkdown)), time.Now(), time.Now())},
		{Path: "b.unsupported", Data: []byte("whatever"), Source: content.NewSourceFile("b.unsupported", 8, time.Now(), time.Now())},
		{Path: "c.md", Data: []byte(sampleMarkdown), Source: content.NewSourceFile("c.md", int64(len(sampleMarkdown)), time.Now(), time.Now())},
	}

	results := RunAll(context.Background(), reg, docs, DefaultOptions(), 2)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[1].Err == nil {
		t.Fatal("expected the unsupported-format document to fail")
	}
	if results[0].Err != nil || len(results[0].Chunks) == 0 {
		t.Fatalf("expected a.md to succeed with chunks, got err=%v chunks=%d", results[0].Err, len(results[0].Chunks))
	}
	if results[2].Err != nil || len(results[2].Chunks) == 0 {
		t.Fatalf("expected c.md to succeed with chunks, got err=%v chunks=%d", results[2].Err, len(results[2].Chunks))
	}
}

// Package fileflux converts heterogeneous source documents (PDF, DOCX,
// XLSX, PPTX, HWP/HWPX, HTML, Markdown) into size-bounded, enriched text
// chunks suitable for retrieval-augmented-generation indexing.
//
// A Pipeline wires together every stage — extraction, image processing,
// parsing, refinement, chunking, and enrichment — behind the options
// constructors in this package (WithEnricher, WithCache, WithChunkOptions,
// ...). Process runs one document through all of it; ProcessAll fans a
// batch out with bounded per-document parallelism.
package fileflux

import (
	"context"
	"os"

	"github.com/iyulab/fileflux/content"
	"github.com/iyulab/fileflux/pipeline"
	"github.com/iyulab/fileflux/reader"
	"github.com/iyulab/fileflux/reader/hwp"
)

// Pipeline is a configured, reusable entry point: build one with New and
// reuse it across many documents.
type Pipeline struct {
	registry    *reader.Registry
	hwpDecoder  hwp.Decoder
	opts        pipeline.Options
	maxParallel int
}

// New builds a Pipeline with FileFlux's default options, applying opts in
// order.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{opts: pipeline.DefaultOptions()}
	for _, opt := range opts {
		opt(p)
	}
	p.registry = pipeline.DefaultRegistry(p.hwpDecoder)
	return p
}

// Document wraps one document's pipeline.Result with the fluent accessors
// callers most often reach for.
type Document struct {
	pipeline.Result
	Path string
}

// Text returns the refined body text, or the parsed text when refinement
// was skipped.
func (d *Document) Text() string {
	if d.Refined.Text != "" {
		return d.Refined.Text
	}
	return d.Parsed.Text
}

// Chunks returns the document's chunk list.
func (d *Document) Chunks() []content.Chunk { return d.Result.Chunks }

// Open reads path from disk and runs it through p. The source file's size
// and modification time feed the cache key, so callers that want cache
// hits across runs should pass the same path rather than an in-memory copy.
func (p *Pipeline) Open(ctx context.Context, path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	source := content.NewSourceFile(path, info.Size(), info.ModTime(), info.ModTime())
	return p.Process(ctx, path, data, source)
}

// Process runs data (the bytes of path) through every configured stage.
func (p *Pipeline) Process(ctx context.Context, path string, data []byte, source content.SourceFile) (*Document, error) {
	result, err := pipeline.Run(ctx, p.registry, path, data, source, p.opts)
	if err != nil {
		return nil, err
	}
	return &Document{Result: result, Path: path}, nil
}

// ProcessAll runs every path in paths concurrently (bounded by
// WithMaxParallel) and returns one BatchResult per input, in input order.
// Every file is read up front: one that cannot be read or stat'd fails the
// whole call before any document runs. After that, a single document's
// failure does not prevent the others from completing; check each
// BatchResult's Err.
func (p *Pipeline) ProcessAll(ctx context.Context, paths []string) ([]BatchResult, error) {
	docs := make([]pipeline.Document, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, pipeline.Document{
			Path:   path,
			Data:   data,
			Source: content.NewSourceFile(path, info.Size(), info.ModTime(), info.ModTime()),
		})
	}

	raw := pipeline.RunAll(ctx, p.registry, docs, p.opts, p.maxParallel)
	out := make([]BatchResult, len(raw))
	for i, r := range raw {
		out[i] = BatchResult{
			Document: &Document{Result: r.Result, Path: r.Path},
			Err:      r.Err,
		}
	}
	return out, nil
}

// BatchResult pairs one ProcessAll input with its outcome.
type BatchResult struct {
	Document *Document
	Err      error
}

// Extract is a single-shot convenience wrapper: build a throwaway Pipeline
// from opts and run path through it. Equivalent to New(opts...).Open(ctx,
// path), for callers who don't need a reusable Pipeline across many files.
func Extract(ctx context.Context, path string, opts ...Option) (*Document, error) {
	return New(opts...).Open(ctx, path)
}

package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/iyulab/fileflux/content"
	"github.com/iyulab/fileflux/reader"
)

// Document is one file queued for a batch Run.
type Document struct {
	Path   string
	Data   []byte
	Source content.SourceFile
}

// BatchResult pairs a Document's outcome with its index in the original
// request, since parallel documents complete in no guaranteed order.
type BatchResult struct {
	Index int
	Path  string
	Result
	Err error
}

// RunAll processes docs concurrently, up to maxParallel at a time (0 or less
// means no limit: every document runs at once). One document's failure does
// not cancel its siblings; each result is returned, successful or not, in
// docs order.
func RunAll(ctx context.Context, reg *reader.Registry, docs []Document, opts Options, maxParallel int) []BatchResult {
	results := make([]BatchResult, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	if maxParallel > 0 {
		g.SetLimit(maxParallel)
	}

	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			res, err := Run(gctx, reg, doc.Path, doc.Data, doc.Source, opts)
			results[i] = BatchResult{Index: i, Path: doc.Path, Result: res, Err: err}
			return nil // a single document's error must not cancel siblings
		})
	}
	_ = g.Wait()
	return results
}

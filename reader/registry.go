// Package reader defines the Reader contract every format-specific reader
// implements, plus the Registry that dispatches by file extension.
package reader

import (
	"context"
	"strings"
	"sync"

	"github.com/iyulab/fileflux/content"
	"github.com/iyulab/fileflux/internal/ferr"
)

// ExtractOptions configures how much a reader does beyond bare text: table
// detection, image extraction, coordinate preservation, and page-range
// limiting.
type ExtractOptions struct {
	ExtractTables       bool
	ExtractImages       bool
	DetectBlockTypes    bool
	PreserveCoordinates bool
	MaxImageSize        int64 // bytes; 0 means unbounded
	PageStart           int   // 1-indexed, inclusive; 0 means from the first page
	PageEnd             int   // 1-indexed, inclusive; 0 means through the last page
}

// DefaultExtractOptions returns the options FileFlux uses unless a caller
// overrides them: full structure detection, images capped at 20 MiB.
func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{
		ExtractTables:    true,
		ExtractImages:    true,
		DetectBlockTypes: true,
		MaxImageSize:     20 * 1024 * 1024,
	}
}

// ReadResult is the cheap "peek" a caller gets from ReadStructure: metadata
// and a page list, no body content.
type ReadResult struct {
	PageCount int
	Title     string
	Outline   []OutlineEntry
}

// OutlineEntry is a flattened bookmark/outline entry (title, page, level).
type OutlineEntry struct {
	Title string
	Page  int
	Level int
}

// Reader is the capability interface every format-specific reader
// implements. New readers register themselves without any registry call
// site changing.
type Reader interface {
	// CanRead reports whether this reader handles the given lowercased
	// extension (including the leading dot, e.g. ".pdf").
	CanRead(extension string) bool

	// ReadStructure returns cheap metadata without extracting body content.
	ReadStructure(ctx context.Context, path string, data []byte) (ReadResult, error)

	// Extract converts bytes into RawContent.
	Extract(ctx context.Context, path string, data []byte, opts ExtractOptions) (*content.RawContent, error)

	// ID names this reader for RawContent.Reader and log fields.
	ID() string
}

// Registry dispatches by extension to a registered Reader.
type Registry struct {
	mu      sync.RWMutex
	readers []Reader
}

// NewRegistry returns an empty registry. Callers wire in the readers they
// need (see the pipeline package for FileFlux's default wiring).
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds r to the registry. Later registrations take priority when
// more than one reader claims the same extension.
func (g *Registry) Register(r Reader) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.readers = append(g.readers, r)
}

// For returns the reader that claims extension, trying the most recently
// registered reader first.
func (g *Registry) For(extension string) (Reader, error) {
	extension = strings.ToLower(extension)
	g.mu.RLock()
	defer g.mu.RUnlock()
	for i := len(g.readers) - 1; i >= 0; i-- {
		if g.readers[i].CanRead(extension) {
			return g.readers[i], nil
		}
	}
	return nil, ferr.Unsupported(extension)
}

// Extract is a convenience that looks up the reader for path's extension and
// calls Extract on it, applying the common post-processing every reader
// result goes through.
func (g *Registry) Extract(ctx context.Context, path string, data []byte, opts ExtractOptions) (*content.RawContent, error) {
	ext := extensionOf(path)
	r, err := g.For(ext)
	if err != nil {
		return nil, err
	}
	raw, err := r.Extract(ctx, path, data, opts)
	if err != nil {
		return nil, ferr.New(ferr.KindDocumentProcessing, path, "read", err)
	}
	PostProcess(raw)
	return raw, nil
}

func extensionOf(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return strings.ToLower(path[i:])
	}
	return ""
}

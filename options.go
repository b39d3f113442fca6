package fileflux

import (
	"github.com/iyulab/fileflux/cache"
	"github.com/iyulab/fileflux/content"
	"github.com/iyulab/fileflux/enrich"
	"github.com/iyulab/fileflux/imageproc"
	"github.com/iyulab/fileflux/reader/hwp"
	"github.com/iyulab/fileflux/refine"
)

// Option configures a Pipeline at construction time.
type Option func(*Pipeline)

// WithHWPDecoder registers the HWP/HWPX reader against decoder. Without
// this option, .hwp/.hwpx inputs fail with an unsupported-format error.
func WithHWPDecoder(decoder hwp.Decoder) Option {
	return func(p *Pipeline) { p.hwpDecoder = decoder }
}

// WithEnricher wires a summary/keyword backend. Without one, chunks carry
// no enrichment props.
func WithEnricher(e enrich.Enricher) Option {
	return func(p *Pipeline) { p.opts.Enricher = e }
}

// WithCaptioner wires a vision-captioning backend and turns captioning on.
func WithCaptioner(c imageproc.Captioner) Option {
	return func(p *Pipeline) {
		p.opts.Captioner = c
		p.opts.Image.Caption = true
	}
}

// WithCache wires a cache.Store so repeated runs against the same file and
// chunking options skip straight to the cached chunk list.
func WithCache(store cache.Store) Option {
	return func(p *Pipeline) { p.opts.Cache = store }
}

// WithChunkOptions overrides the default Auto/1000/100 chunking options.
func WithChunkOptions(o content.ChunkingOptions) Option {
	return func(p *Pipeline) { p.opts.Chunk = o }
}

// WithRefineOptions overrides the default (every cleanup operation on)
// refine options.
func WithRefineOptions(o refine.Options) Option {
	return func(p *Pipeline) { p.opts.Refine = o }
}

// WithImageOptions overrides the default image filter thresholds and
// output directory.
func WithImageOptions(o imageproc.Options) Option {
	return func(p *Pipeline) {
		caption := p.opts.Image.Caption
		p.opts.Image = o
		p.opts.Image.Caption = caption || o.Caption
	}
}

// WithDocContext sets the document-level summary string passed to the
// enrichment backend alongside each chunk.
func WithDocContext(docContext string) Option {
	return func(p *Pipeline) { p.opts.DocContext = docContext }
}

// WithoutRefine skips the refine stage; chunks are built from the parsed
// (normalized but not cleaned-up) text.
func WithoutRefine() Option {
	return func(p *Pipeline) { p.opts.SkipRefine = true }
}

// WithoutEnrich skips enrichment even when an Enricher is configured.
func WithoutEnrich() Option {
	return func(p *Pipeline) { p.opts.SkipEnrich = true }
}

// WithMaxParallel bounds how many documents ProcessAll runs concurrently.
// 0 (the default) lets every document run at once.
func WithMaxParallel(n int) Option {
	return func(p *Pipeline) { p.maxParallel = n }
}

package pipeline

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/iyulab/fileflux/cache"
	"github.com/iyulab/fileflux/chunk"
	"github.com/iyulab/fileflux/content"
	"github.com/iyulab/fileflux/enrich"
	"github.com/iyulab/fileflux/imageproc"
	"github.com/iyulab/fileflux/internal/ferr"
	"github.com/iyulab/fileflux/internal/obs"
	"github.com/iyulab/fileflux/parse"
	"github.com/iyulab/fileflux/reader"
	"github.com/iyulab/fileflux/refine"
)

// Options configures one document's run through every stage. Zero values
// pick FileFlux's defaults except where noted.
type Options struct {
	Extract reader.ExtractOptions
	Refine  refine.Options
	Chunk   content.ChunkingOptions
	Limits  chunk.ModelLimits
	Image   imageproc.Options

	Captioner  imageproc.Captioner // nil disables captioning regardless of opts.Image.Caption
	Enricher   enrich.Enricher     // nil disables enrichment entirely
	DocContext string

	Cache cache.Store // nil disables caching

	SkipRefine bool // emit Chunks from ParsedContent.Text directly
	SkipEnrich bool
}

// DefaultOptions matches the CLI's --format=... default invocation: every
// stage on, Auto strategy, no caption/enrichment backend wired (the caller
// supplies those once an API key is available).
func DefaultOptions() Options {
	return Options{
		Extract: reader.DefaultExtractOptions(),
		Refine:  refine.DefaultOptions(),
		Chunk:   content.ChunkingOptions{Strategy: content.StrategyAuto, MaxSize: 1000, OverlapSize: 100},
		Image:   imageproc.DefaultOptions(""),
	}
}

// Result is everything one document's run produced, stage by stage, so a
// caller (CLI command or facade) can write out whichever stages it needs.
type Result struct {
	Raw      *content.RawContent
	Parsed   content.ParsedContent
	Refined  content.RefinedContent
	Chunks   []content.Chunk
	Images   imageproc.Result
	CacheHit bool
}

// Run drives source through extract, (optional) image processing, parse,
// refine, chunk, and enrich, honoring ctx cancellation at each stage
// boundary. A cache hit short-circuits straight to the cached Chunks.
func Run(ctx context.Context, reg *reader.Registry, path string, data []byte, source content.SourceFile, opts Options) (Result, error) {
	log := obs.Stage(ctx, "pipeline")

	if opts.Cache != nil && opts.Chunk.Strategy != "" {
		key := cache.Key(path, source.Modified, source.Size, opts.Chunk.Strategy, opts.Chunk.MaxSize, opts.Chunk.OverlapSize)
		if cached, hit := opts.Cache.Get(key); hit {
			var chunks []content.Chunk
			if err := json.Unmarshal(cached, &chunks); err == nil {
				log.Debug().Str("path", path).Msg("cache hit")
				return Result{Chunks: chunks, CacheHit: true}, nil
			}
		}
	}

	if err := checkCancelled(ctx, "extract"); err != nil {
		return Result{}, err
	}
	readStart := time.Now()
	raw, err := reg.Extract(ctx, path, data, opts.Extract)
	if err != nil {
		return Result{}, err
	}

	var imgResult imageproc.Result
	if opts.Extract.ExtractImages {
		imgOpts := opts.Image
		text, res, err := imageproc.Process(ctx, raw.Text, raw, imgOpts, opts.Captioner)
		if err != nil {
			return Result{}, ferr.New(ferr.KindDocumentProcessing, path, "imageproc", err)
		}
		raw.Text = text
		imgResult = res
	}

	if err := checkCancelled(ctx, "parse"); err != nil {
		return Result{}, err
	}
	readerID := ""
	if r, rerr := reg.For(extensionOf(path)); rerr == nil {
		readerID = r.ID()
	}
	parsed := parse.Parse(raw, source, readStart, parse.Options{ReaderUsed: readerID})

	if err := checkCancelled(ctx, "refine"); err != nil {
		return Result{}, err
	}
	var refined content.RefinedContent
	if opts.SkipRefine {
		refined = content.RefinedContent{
			Text: parsed.Text, Metadata: parsed.Metadata,
			Structure: parsed.Structure, Parsing: parsed.Parsing, Raw: parsed.Raw,
		}
	} else {
		refined = refine.Refine(parsed, opts.Refine)
	}

	if err := checkCancelled(ctx, "chunk"); err != nil {
		return Result{}, err
	}
	chunks, err := chunk.Run(refined, opts.Chunk, opts.Limits)
	if err != nil {
		return Result{}, ferr.New(ferr.KindDocumentProcessing, path, "chunk", err)
	}

	if !opts.SkipEnrich && opts.Enricher != nil {
		if err := enrichChunks(ctx, chunks, opts.Enricher, opts.DocContext); err != nil {
			return Result{}, err
		}
	}

	if opts.Cache != nil && opts.Chunk.Strategy != "" {
		if data, err := json.Marshal(chunks); err == nil {
			key := cache.Key(path, source.Modified, source.Size, opts.Chunk.Strategy, opts.Chunk.MaxSize, opts.Chunk.OverlapSize)
			opts.Cache.Set(key, data)
		}
	}

	return Result{
		Raw: raw, Parsed: parsed, Refined: refined, Chunks: chunks,
		Images: imgResult,
	}, nil
}

// enrichChunks enriches every chunk in place, checking cancellation at
// chunk granularity. A per-chunk failure is recorded on the chunk, not
// surfaced: enrichment is best-effort.
func enrichChunks(ctx context.Context, chunks []content.Chunk, e enrich.Enricher, docContext string) error {
	for i := range chunks {
		if err := checkCancelled(ctx, "enrich"); err != nil {
			return err
		}
		result, ok := enrich.Enrich(ctx, e, chunks[i].Content, docContext)
		enrich.ApplyToChunk(&chunks[i], result, ok)
	}
	return nil
}

func checkCancelled(ctx context.Context, stage string) error {
	select {
	case <-ctx.Done():
		return ferr.Cancelled(stage, ctx.Err())
	default:
		return nil
	}
}

func extensionOf(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return strings.ToLower(path[i:])
	}
	return ""
}

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/iyulab/fileflux/pipeline"
	"github.com/iyulab/fileflux/write"
)

// ProcessCmd runs the full pipeline, including enrichment, and writes every
// stage's output under the configured output directory.
type ProcessCmd struct {
	File string `arg:"" type:"existingfile" help:"Document to process."`
}

func (c *ProcessCmd) Run(g *Globals, ctx context.Context) error {
	source, data, err := loadSource(c.File)
	if err != nil {
		return err
	}

	reg := pipeline.DefaultRegistry(nil)
	opts := g.pipelineOptions()
	if !g.NoEnrich {
		enricher, warning := resolveEnricher(g.NoAI)
		opts.Enricher = enricher
		if warning != "" && !g.Quiet {
			fmt.Fprintln(os.Stderr, "fileflux: warning:", warning)
		}
	} else {
		opts.SkipEnrich = true
	}

	result, err := pipeline.Run(ctx, reg, c.File, data, source, opts)
	if err != nil {
		return err
	}

	extractStats := write.NewExtractStats(source.Size, result.Raw.Text, result.Images, result.Raw.Warnings)
	if err := write.Extract(filepath.Join(g.Output, "extract"), result.Raw.Text, extractStats); err != nil {
		return err
	}

	if !opts.SkipRefine {
		refineStats := write.NewRefineStats(len([]rune(result.Parsed.Text)), result.Refined, time.Now())
		if err := write.Refine(filepath.Join(g.Output, "refine"), result.Refined, refineStats); err != nil {
			return err
		}
	}

	if _, err := write.Chunks(filepath.Join(g.Output, "chunks"), result.Chunks, write.Format(g.Format)); err != nil {
		return err
	}

	if !opts.SkipEnrich && opts.Enricher != nil {
		if err := write.Enrich(filepath.Join(g.Output, "enrich"), result.Chunks); err != nil {
			return err
		}
	}

	return nil
}

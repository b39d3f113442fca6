package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/iyulab/fileflux/content"
	"github.com/iyulab/fileflux/pipeline"
	"github.com/iyulab/fileflux/write"
)

// ChunkCmd runs extract through chunk, skipping enrichment.
type ChunkCmd struct {
	File string `arg:"" type:"existingfile" help:"Document to chunk."`
}

func (c *ChunkCmd) Run(g *Globals, ctx context.Context) error {
	source, data, err := loadSource(c.File)
	if err != nil {
		return err
	}

	reg := pipeline.DefaultRegistry(nil)
	opts := g.pipelineOptions()
	opts.SkipEnrich = true

	result, err := pipeline.Run(ctx, reg, c.File, data, source, opts)
	if err != nil {
		return err
	}

	dir := filepath.Join(g.Output, "chunks")
	_, err = write.Chunks(dir, result.Chunks, write.Format(g.Format))
	return err
}

// loadSource reads path and builds the content.SourceFile the pipeline needs
// for its cache key and parsed metadata.
func loadSource(path string) (content.SourceFile, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return content.SourceFile{}, nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return content.SourceFile{}, nil, err
	}
	source := content.NewSourceFile(filepath.Base(path), info.Size(), info.ModTime(), info.ModTime())
	return source, data, nil
}

// pipelineOptions builds the full pipeline.Options shared by ChunkCmd and
// ProcessCmd, wiring the image/chunk knobs from Globals.
func (g *Globals) pipelineOptions() pipeline.Options {
	opts := pipeline.DefaultOptions()
	opts.Extract.ExtractImages = !g.NoExtractImages
	opts.Image = g.imageOptions(filepath.Join(g.Output, "images"))
	opts.Chunk = g.chunkingOptions()
	if g.NoRefine {
		opts.SkipRefine = true
	}
	opts.Captioner = resolveCaptioner(g.NoAI)
	return opts
}

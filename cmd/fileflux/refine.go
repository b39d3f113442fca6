package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/iyulab/fileflux/content"
	"github.com/iyulab/fileflux/imageproc"
	"github.com/iyulab/fileflux/parse"
	"github.com/iyulab/fileflux/pipeline"
	refinepkg "github.com/iyulab/fileflux/refine"
	"github.com/iyulab/fileflux/write"
)

// RefineCmd runs the reader, image-processing, parse, and refine stages.
type RefineCmd struct {
	File string `arg:"" type:"existingfile" help:"Document to refine."`
}

func (c *RefineCmd) Run(g *Globals, ctx context.Context) error {
	readStart := time.Now()
	data, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}
	info, err := os.Stat(c.File)
	if err != nil {
		return err
	}

	reg := pipeline.DefaultRegistry(nil)
	extractOpts := extractOptions(g)
	raw, err := reg.Extract(ctx, c.File, data, extractOpts)
	if err != nil {
		return err
	}

	text := raw.Text
	if extractOpts.ExtractImages {
		imgDir := filepath.Join(g.Output, "images")
		text, _, err = imageproc.Process(ctx, text, raw, g.imageOptions(imgDir), resolveCaptioner(g.NoAI))
		if err != nil {
			return err
		}
	}
	raw.Text = text

	source := content.NewSourceFile(filepath.Base(c.File), info.Size(), info.ModTime(), info.ModTime())
	parsed := parse.Parse(raw, source, readStart, parse.Options{ReaderUsed: raw.Reader})

	refineOpts := refinepkg.DefaultOptions()
	if g.NoRefine {
		refineOpts = refinepkg.Options{}
	}
	refined := refinepkg.Refine(parsed, refineOpts)

	dir := filepath.Join(g.Output, "refine")
	stats := write.NewRefineStats(len([]rune(parsed.Text)), refined, time.Now())
	return write.Refine(dir, refined, stats)
}

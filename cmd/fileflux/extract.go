package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/iyulab/fileflux/imageproc"
	"github.com/iyulab/fileflux/pipeline"
	"github.com/iyulab/fileflux/reader"
	"github.com/iyulab/fileflux/write"
)

// ExtractCmd runs only the reader + image-processing stages.
type ExtractCmd struct {
	File string `arg:"" type:"existingfile" help:"Document to extract."`
}

func (c *ExtractCmd) Run(g *Globals, ctx context.Context) error {
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

	dir := filepath.Join(g.Output, "extract")
	text := raw.Text
	var imgResult imageproc.Result
	if extractOpts.ExtractImages {
		imgDir := filepath.Join(g.Output, "images")
		text, imgResult, err = imageproc.Process(ctx, text, raw, g.imageOptions(imgDir), resolveCaptioner(g.NoAI))
		if err != nil {
			return err
		}
	}

	stats := write.NewExtractStats(info.Size(), text, imgResult, raw.Warnings)
	return write.Extract(dir, text, stats)
}

// extractOptions builds the reader.ExtractOptions every subcommand shares,
// derived from the Globals image flags.
func extractOptions(g *Globals) reader.ExtractOptions {
	opts := reader.DefaultExtractOptions()
	opts.ExtractImages = !g.NoExtractImages
	return opts
}

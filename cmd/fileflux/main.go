// Command fileflux runs the extract/refine/chunk/process pipeline stages
// from the command line, writing each stage's output under the configured
// output directory.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	kongyaml "github.com/alecthomas/kong-yaml"

	"github.com/iyulab/fileflux/internal/obs"
)

// CLI is the root command set. Config loads layered defaults from a YAML
// file (flags still win over it); Globals are the flags every subcommand
// shares.
type CLI struct {
	Globals

	Config kong.ConfigFlag `help:"Load default flag values from this YAML file."`

	Extract ExtractCmd `cmd:"" help:"Extract raw text, tables, and images from a document."`
	Refine  RefineCmd  `cmd:"" help:"Extract and clean up a document's text."`
	Chunk   ChunkCmd   `cmd:"" help:"Extract, refine, and split a document into chunks."`
	Process ProcessCmd `cmd:"" help:"Run the full pipeline, including enrichment."`
}

func main() {
	var cli CLI
	parser := kong.Must(&cli,
		kong.Name("fileflux"),
		kong.Description("Convert documents into RAG-ready chunks."),
		kong.Configuration(kongyaml.Loader),
		kong.UsageOnError(),
	)

	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	logger := obs.NewPipelineLogger(os.Stderr, cli.Verbose, cli.Quiet)
	runCtx := obs.WithLogger(context.Background(), logger)

	if err := kctx.Run(&cli.Globals, runCtx); err != nil {
		fmt.Fprintln(os.Stderr, "fileflux:", err)
		os.Exit(1)
	}
}

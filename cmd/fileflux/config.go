package main

import (
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go/v2"

	"github.com/iyulab/fileflux/content"
	"github.com/iyulab/fileflux/enrich"
	"github.com/iyulab/fileflux/imageproc"
)

// Globals are the flags shared across every subcommand: output location,
// export format, verbosity, image filtering, and chunking knobs. Kong
// embeds this into CLI so every *Cmd.Run receives it via dependency
// injection.
type Globals struct {
	Output  string `short:"o" default:"." help:"Output directory."`
	Format  string `short:"f" enum:"md,json,jsonl,csv,tsv" default:"md" help:"Chunk export format."`
	Quiet   bool   `short:"q" help:"Suppress all but warnings and errors."`
	Verbose bool   `short:"v" help:"Enable debug logging."`

	NoExtractImages   bool `help:"Disable image extraction."`
	MinImageSize      int  `default:"5000" help:"Minimum image byte size to keep."`
	MinImageDimension int  `default:"100" help:"Minimum image width/height in pixels to keep."`

	Strategy string `short:"s" enum:"Auto,Sentence,Paragraph,Token,Semantic,Hierarchical" default:"Auto" help:"Chunking strategy."`
	MaxSize  int    `short:"m" default:"1000" help:"Maximum chunk size in tokens."`
	Overlap  int    `short:"l" default:"100" help:"Chunk overlap in tokens."`

	NoRefine bool `help:"Skip the refine stage."`
	NoEnrich bool `help:"Skip the enrich stage."`
	NoAI     bool `help:"Disable AI-backed enrichment and captioning even if an API key is set."`
}

func (g *Globals) chunkingOptions() content.ChunkingOptions {
	return content.ChunkingOptions{
		Strategy:              content.ChunkStrategy(g.Strategy),
		MaxSize:               g.MaxSize,
		OverlapSize:           g.Overlap,
		PreserveListCoherence: true,
	}
}

func (g *Globals) imageOptions(outputDir string) imageproc.Options {
	opts := imageproc.DefaultOptions(outputDir)
	opts.MinImageSize = g.MinImageSize
	opts.MinImageDimension = g.MinImageDimension
	return opts
}

// resolveEnricher inspects the AI provider environment variables per §6:
// presence of any enables AI features; absence (or --no-ai) disables AI
// with a warning rather than a failure.
func resolveEnricher(noAI bool) (enrich.Enricher, string) {
	if noAI {
		return nil, ""
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return enrich.NewAnthropicEnricher(key, anthropic.ModelClaude3_5SonnetLatest), "anthropic"
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return enrich.NewOpenAIEnricher(key, openai.ChatModelGPT4o), "openai"
	}
	if os.Getenv("GOOGLE_API_KEY") != "" {
		return nil, "google_api_key set but no Gemini adapter is wired; enrichment disabled"
	}
	return nil, "no AI provider API key found; enrichment disabled"
}

// resolveCaptioner mirrors resolveEnricher for vision captioning: only
// Anthropic's multimodal API is wired as a Captioner.
func resolveCaptioner(noAI bool) imageproc.Captioner {
	if noAI {
		return nil
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return imageproc.NewVisionCaptioner(key, anthropic.ModelClaude3_5SonnetLatest)
	}
	return nil
}

// Package obs carries a structured logger through the pipeline's context,
// mirroring the way wyvernzora-chunky threads a logger through pkg/context.
package obs

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
)

type ctxKey struct{}

// NewPipelineLogger builds the process-wide logger used by every pipeline
// stage. Verbose enables Debug-level output; quiet suppresses everything
// below Warn.
func NewPipelineLogger(w io.Writer, verbose, quiet bool) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := zerolog.InfoLevel
	switch {
	case quiet:
		level = zerolog.WarnLevel
	case verbose:
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// WithLogger attaches a logger to ctx.
func WithLogger(ctx context.Context, l zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// LoggerFrom returns the logger attached to ctx, or a disabled logger if
// none was attached.
func LoggerFrom(ctx context.Context) zerolog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(zerolog.Logger); ok {
		return l
	}
	return zerolog.Nop()
}

// Stage returns a child logger tagged with the current pipeline stage name.
func Stage(ctx context.Context, stage string) zerolog.Logger {
	return LoggerFrom(ctx).With().Str("stage", stage).Logger()
}

// Package ferr defines the error kinds surfaced by FileFlux's pipeline
// stages, and the message-sniffing helper enrichment adapters use to detect
// model context-length overflow.
package ferr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a pipeline failure.
type Kind int

const (
	KindUnsupportedFormat Kind = iota
	KindFileNotFound
	KindIO
	KindDocumentProcessing
	KindTokenLengthExceeded
	KindCancelled
)

func (k Kind) String() string {
	switch k {
	case KindUnsupportedFormat:
		return "unsupported_format"
	case KindFileNotFound:
		return "file_not_found"
	case KindIO:
		return "io_error"
	case KindDocumentProcessing:
		return "document_processing_error"
	case KindTokenLengthExceeded:
		return "token_length_exceeded"
	case KindCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Error is FileFlux's pipeline-level error type. It always carries the kind
// and, where relevant, the file path and stage at which the failure
// occurred.
type Error struct {
	Kind  Kind
	Path  string
	Stage string
	Err   error
}

func (e *Error) Error() string {
	if e.Path != "" && e.Stage != "" {
		return fmt.Sprintf("%s: %v (stage=%s, file=%s)", e.Kind, e.Err, e.Stage, e.Path)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v (file=%s)", e.Kind, e.Err, e.Path)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a *Error with the same Kind, so callers can
// write errors.Is(err, ferr.New(ferr.KindUnsupportedFormat, "", "", nil)).
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Kind == e.Kind
	}
	return false
}

// New constructs an *Error.
func New(kind Kind, path, stage string, err error) *Error {
	return &Error{Kind: kind, Path: path, Stage: stage, Err: err}
}

// Unsupported builds a KindUnsupportedFormat error for the given extension.
func Unsupported(ext string) *Error {
	return New(KindUnsupportedFormat, "", "", fmt.Errorf("no reader registered for extension %q", ext))
}

// Cancelled builds a KindCancelled error, wrapping ctx.Err().
func Cancelled(stage string, cause error) *Error {
	return New(KindCancelled, "", stage, cause)
}

// tokenOverflowSubstrings are the case-insensitive markers an enrichment
// model's error text uses to report context-length overflow; these models
// are external collaborators and report overflow only through error text,
// never a typed error.
var tokenOverflowSubstrings = []string{
	"exceeds max length",
	"input_ids",
	"token",
	"context length",
	"maximum context",
}

// IsTokenLengthExceeded reports whether err represents an enrichment model's
// context-length overflow, either because it already carries
// KindTokenLengthExceeded or because its message matches one of the known
// overflow substrings.
func IsTokenLengthExceeded(err error) bool {
	if err == nil {
		return false
	}
	var e *Error
	if errors.As(err, &e) && e.Kind == KindTokenLengthExceeded {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, substr := range tokenOverflowSubstrings {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

package ferr

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessageFormatting(t *testing.T) {
	base := errors.New("boom")

	full := New(KindIO, "doc.pdf", "extract", base)
	if got, want := full.Error(), "io_error: boom (stage=extract, file=doc.pdf)"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}

	pathOnly := New(KindIO, "doc.pdf", "", base)
	if got, want := pathOnly.Error(), "io_error: boom (file=doc.pdf)"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}

	bare := New(KindIO, "", "", base)
	if got, want := bare.Error(), "io_error: boom"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestErrorUnwrap(t *testing.T) {
	base := errors.New("root cause")
	e := New(KindDocumentProcessing, "x", "parse", base)
	if !errors.Is(e, base) {
		t.Fatal("errors.Is did not unwrap to the underlying error")
	}
}

func TestErrorIsMatchesByKind(t *testing.T) {
	e1 := New(KindTokenLengthExceeded, "a", "chunk", errors.New("one"))
	e2 := New(KindTokenLengthExceeded, "b", "enrich", errors.New("two"))
	e3 := New(KindIO, "c", "read", errors.New("three"))

	if !errors.Is(e1, e2) {
		t.Fatal("errors of the same Kind should match via Is")
	}
	if errors.Is(e1, e3) {
		t.Fatal("errors of different Kind should not match via Is")
	}
}

func TestUnsupportedBuildsUnsupportedFormatKind(t *testing.T) {
	e := Unsupported(".xyz")
	if e.Kind != KindUnsupportedFormat {
		t.Fatalf("Kind = %v, want KindUnsupportedFormat", e.Kind)
	}
}

func TestCancelledBuildsCancelledKind(t *testing.T) {
	cause := errors.New("context canceled")
	e := Cancelled("chunk", cause)
	if e.Kind != KindCancelled {
		t.Fatalf("Kind = %v, want KindCancelled", e.Kind)
	}
	if e.Stage != "chunk" {
		t.Fatalf("Stage = %q, want %q", e.Stage, "chunk")
	}
}

func TestIsTokenLengthExceededDetectsTypedError(t *testing.T) {
	e := New(KindTokenLengthExceeded, "", "enrich", errors.New("whatever"))
	if !IsTokenLengthExceeded(e) {
		t.Fatal("expected typed KindTokenLengthExceeded to be detected")
	}
}

func TestIsTokenLengthExceededDetectsMessageSubstrings(t *testing.T) {
	tests := []string{
		"Error: input exceeds max length of 8192",
		"input_ids length 9000 exceeds limit",
		"too many tokens for this model",
		"maximum context length is 4096",
	}
	for _, msg := range tests {
		if !IsTokenLengthExceeded(fmt.Errorf("%s", msg)) {
			t.Errorf("IsTokenLengthExceeded(%q) = false, want true", msg)
		}
	}
}

func TestIsTokenLengthExceededFalseForUnrelatedError(t *testing.T) {
	if IsTokenLengthExceeded(errors.New("connection refused")) {
		t.Fatal("unrelated error incorrectly classified as token overflow")
	}
	if IsTokenLengthExceeded(nil) {
		t.Fatal("nil error incorrectly classified as token overflow")
	}
}

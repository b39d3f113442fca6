package iox

import (
	"os"
	"testing"
)

func TestSpillToTempWritesDataAndCleansUp(t *testing.T) {
	data := []byte("hello temp file")
	path, cleanup, err := SpillToTemp(data, "fileflux-*.bin")
	if err != nil {
		t.Fatalf("SpillToTemp error: %v", err)
	}
	defer cleanup()

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%q) error: %v", path, err)
	}
	if string(got) != string(data) {
		t.Fatalf("file contents = %q, want %q", got, data)
	}

	cleanup()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be removed after cleanup, stat err = %v", err)
	}
}

func TestSpillToTempPatternIsHonored(t *testing.T) {
	path, cleanup, err := SpillToTemp([]byte("x"), "fileflux-suffix-*.tmp")
	if err != nil {
		t.Fatalf("SpillToTemp error: %v", err)
	}
	defer cleanup()

	if len(path) == 0 {
		t.Fatal("expected a non-empty path")
	}
}

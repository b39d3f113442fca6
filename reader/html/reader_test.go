package html

import (
	"context"
	"strings"
	"testing"

	"github.com/iyulab/fileflux/reader"
)

const sampleHTML = `<!DOCTYPE html>
<html>
<head><title>Sample Page</title></head>
<body>
<h1>Main Heading</h1>
<p>An introductory paragraph.</p>
<ul><li>first</li><li>second</li></ul>
</body>
</html>`

func TestCanRead(t *testing.T) {
	r := New()
	if !r.CanRead(".html") || !r.CanRead(".htm") {
		t.Fatal("expected .html and .htm to be supported")
	}
	if r.CanRead(".md") {
		t.Fatal(".md should not be supported")
	}
}

func TestReadStructureReturnsTitle(t *testing.T) {
	r := New()
	res, err := r.ReadStructure(context.Background(), "page.html", []byte(sampleHTML))
	if err != nil {
		t.Fatalf("ReadStructure error: %v", err)
	}
	if res.Title != "Sample Page" {
		t.Fatalf("Title = %q, want %q", res.Title, "Sample Page")
	}
}

func TestExtractProducesBlocksAndText(t *testing.T) {
	r := New()
	raw, err := r.Extract(context.Background(), "page.html", []byte(sampleHTML), reader.DefaultExtractOptions())
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if !strings.Contains(raw.Text, "Main Heading") {
		t.Fatalf("Text = %q, want it to contain the heading", raw.Text)
	}
	if !strings.Contains(raw.Text, "introductory paragraph") {
		t.Fatalf("Text = %q, want it to contain the paragraph", raw.Text)
	}
	if len(raw.Blocks) == 0 {
		t.Fatal("expected at least one block")
	}
}

// Package content defines the normalized intermediate representations that
// flow through the FileFlux pipeline: SourceFile, RawContent, ParsedContent,
// RefinedContent and Chunk.
package content

import (
	"strings"
	"time"
)

// SourceFile identifies the document being processed and its filesystem
// metadata, independent of which reader ultimately handles it.
type SourceFile struct {
	Name      string
	Extension string
	Size      int64
	Created   time.Time
	Modified  time.Time
}

// NewSourceFile derives Extension from name and returns a populated SourceFile.
func NewSourceFile(name string, size int64, created, modified time.Time) SourceFile {
	ext := ""
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		ext = strings.ToLower(name[i:])
	}
	return SourceFile{Name: name, Extension: ext, Size: size, Created: created, Modified: modified}
}

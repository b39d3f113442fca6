// Package iox holds small filesystem helpers shared by readers that wrap a
// decoder built around *os.File or a filename rather than a byte slice
// (docx.Open, xlsx.Open, pptx.Open, pdfio.NewReader all take a path).
package iox

import (
	"os"
)

// SpillToTemp writes data to a new temp file matching pattern and returns its
// path plus a cleanup func that removes it. The caller must call cleanup.
func SpillToTemp(data []byte, pattern string) (path string, cleanup func(), err error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", func() {}, err
	}
	path = f.Name()
	cleanup = func() { os.Remove(path) }

	if _, err := f.Write(data); err != nil {
		f.Close()
		cleanup()
		return "", func() {}, err
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", func() {}, err
	}
	return path, cleanup, nil
}

// Package format provides file format detection for FileFlux's reader
// registry: extension lookup plus magic-number sniffing for the ZIP-based
// office formats, extended for FileFlux's supported set: PDF, DOCX, XLSX,
// PPTX, HWP, HWPX, HTML, Markdown.
package format

import (
	"archive/zip"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a document format FileFlux can read.
type Format int

const (
	Unknown Format = iota
	PDF
	DOCX
	XLSX
	PPTX
	HWP
	HWPX
	HTML
	Markdown
)

func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case DOCX:
		return "DOCX"
	case XLSX:
		return "XLSX"
	case PPTX:
		return "PPTX"
	case HWP:
		return "HWP"
	case HWPX:
		return "HWPX"
	case HTML:
		return "HTML"
	case Markdown:
		return "Markdown"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PDF:
		return ".pdf"
	case DOCX:
		return ".docx"
	case XLSX:
		return ".xlsx"
	case PPTX:
		return ".pptx"
	case HWP:
		return ".hwp"
	case HWPX:
		return ".hwpx"
	case HTML:
		return ".html"
	case Markdown:
		return ".md"
	default:
		return ""
	}
}

// Detect determines format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return PDF
	case ".docx":
		return DOCX
	case ".xlsx":
		return XLSX
	case ".pptx":
		return PPTX
	case ".hwp":
		return HWP
	case ".hwpx":
		return HWPX
	case ".html", ".htm":
		return HTML
	case ".md", ".markdown":
		return Markdown
	default:
		return Unknown
	}
}

// DetectFromMagic checks file magic bytes to determine format without
// needing random access (used when only a byte slice is available).
func DetectFromMagic(data []byte) Format {
	if len(data) < 4 {
		return Unknown
	}

	if data[0] == '%' && data[1] == 'P' && data[2] == 'D' && data[3] == 'F' {
		return PDF
	}

	// ZIP magic (DOCX/XLSX/PPTX/HWPX are ZIP archives): PK\x03\x04.
	// Disambiguating among them requires inspecting the archive's entry
	// names, which needs an io.ReaderAt — see DetectFromReader.
	if data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04 {
		return Unknown
	}

	if detectHTMLMagic(data) {
		return HTML
	}

	return Unknown
}

func detectHTMLMagic(data []byte) bool {
	start := 0
	for start < len(data) && (data[start] == ' ' || data[start] == '\t' || data[start] == '\n' || data[start] == '\r') {
		start++
	}
	if start >= len(data) {
		return false
	}
	data = data[start:]

	upper := strings.ToUpper(string(data))
	if strings.HasPrefix(upper, "<!DOCTYPE HTML") {
		return true
	}
	if strings.HasPrefix(upper, "<HTML") {
		return true
	}
	if strings.HasPrefix(upper, "<?XML") && strings.Contains(upper[:min(500, len(upper))], "<HTML") {
		return true
	}
	return false
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// DetectFromReader inspects ZIP-archive content to distinguish DOCX, XLSX,
// PPTX and HWPX, which all share the PK\x03\x04 magic.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 512)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if len(magic) >= 4 && magic[0] == '%' && magic[1] == 'P' && magic[2] == 'D' && magic[3] == 'F' {
		return PDF, nil
	}

	if len(magic) >= 4 && magic[0] == 0x50 && magic[1] == 0x4B && magic[2] == 0x03 && magic[3] == 0x04 {
		return detectZIPFormat(r, size)
	}

	if detectHTMLMagic(magic) {
		return HTML, nil
	}

	return Unknown, nil
}

func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	for _, f := range zr.File {
		if f.Name == "mimetype" {
			if rc, err := f.Open(); err == nil {
				head := make([]byte, len("application/hwp+zip"))
				n, _ := io.ReadFull(rc, head)
				rc.Close()
				if string(head[:n]) == "application/hwp+zip" {
					return HWPX, nil
				}
			}
			continue
		}
		if strings.HasPrefix(f.Name, "Contents/") || f.Name == "version.xml" {
			return HWPX, nil
		}
	}

	for _, f := range zr.File {
		switch {
		case f.Name == "[Content_Types].xml":
			continue
		case strings.HasPrefix(f.Name, "word/"):
			return DOCX, nil
		case strings.HasPrefix(f.Name, "xl/"):
			return XLSX, nil
		case strings.HasPrefix(f.Name, "ppt/"):
			return PPTX, nil
		}
	}

	return Unknown, nil
}

// ImageMagic sniffs a raster image's MIME type from its leading magic bytes:
// PNG, JPEG, GIF, BMP, TIFF.
func ImageMagic(data []byte) string {
	switch {
	case len(data) >= 8 && data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47:
		return "image/png"
	case len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
		return "image/jpeg"
	case len(data) >= 4 && string(data[:3]) == "GIF":
		return "image/gif"
	case len(data) >= 2 && data[0] == 0x42 && data[1] == 0x4D:
		return "image/bmp"
	case len(data) >= 4 && ((data[0] == 0x49 && data[1] == 0x49 && data[2] == 0x2A && data[3] == 0x00) ||
		(data[0] == 0x4D && data[1] == 0x4D && data[2] == 0x00 && data[3] == 0x2A)):
		return "image/tiff"
	default:
		return ""
	}
}

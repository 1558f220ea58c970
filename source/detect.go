package source

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/textlayer/corpus"
)

// ErrUnknownFormat indicates a document whose format could not be
// determined.
var ErrUnknownFormat = errors.New("source: unknown document format")

// Format represents a supported document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// JSON indicates a structured-text JSON document.
	JSON
	// HOCR indicates an hOCR document.
	HOCR
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case JSON:
		return "JSON"
	case HOCR:
		return "hOCR"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case JSON:
		return ".json"
	case HOCR:
		return ".hocr"
	default:
		return ""
	}
}

// Detect determines document format from filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return JSON
	case ".hocr", ".html", ".htm":
		return HOCR
	default:
		return Unknown
	}
}

// DetectFromMagic determines document format from content. JSON documents
// open with an object or array; hOCR documents open with markup.
func DetectFromMagic(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return Unknown
	}
	switch trimmed[0] {
	case '{', '[':
		return JSON
	case '<':
		return HOCR
	default:
		return Unknown
	}
}

// PageSizer is implemented by sources that know their page dimensions.
type PageSizer interface {
	PageSize(pageNumber int) (width, height float64, ok bool)
}

// New builds a fragment source from raw document bytes, detecting the
// format from the content.
func New(data []byte) (corpus.FragmentSource, error) {
	switch DetectFromMagic(data) {
	case JSON:
		return NewJSONSource(bytes.NewReader(data))
	case HOCR:
		return NewHOCRSource(bytes.NewReader(data))
	default:
		return nil, ErrUnknownFormat
	}
}

// Open reads a document file and returns a fragment source for it.
// Content detection runs first, with the file extension as a fallback.
func Open(path string) (corpus.FragmentSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	format := DetectFromMagic(data)
	if format == Unknown {
		format = Detect(path)
	}

	switch format {
	case JSON:
		return NewJSONSource(bytes.NewReader(data))
	case HOCR:
		return NewHOCRSource(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, filepath.Base(path))
	}
}

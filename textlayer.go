// Package textlayer provides a fluent API for indexing, searching, and
// selecting text in paginated documents rendered from positioned fragments.
//
// Basic usage:
//
//	s, err := textlayer.Open("scan.hocr")
//	if err != nil {
//	    // handle error
//	}
//	defer s.Close()
//	if err := s.Load(context.Background()); err != nil {
//	    // handle error
//	}
//	matches := s.Query("income tax").FindAll()
//
// With options:
//
//	matches := s.Query("Smith").
//	    MatchCase(true).
//	    WholeWord(true).
//	    OnPage(3).
//	    FindAll()
//
// Interactive hosts attach a platform adapter and an input event source;
// pointer and key events then drive caret placement, word selection, and
// live highlight reconstruction:
//
//	s.Attach(events, host)
//	s.OnSelectionRects(func(rects map[int][]model.Rect) {
//	    // repaint highlights
//	})
//
// For advanced use cases, the lower-level search, selection, caret, and
// corpus packages are also available.
package textlayer

import (
	"fmt"

	"github.com/tsawler/textlayer/corpus"
	"github.com/tsawler/textlayer/source"
)

// Open opens a document file, detects its format, and returns a Session
// bound to it. The document's identity is derived from its absolute path,
// so cached text survives process restarts. The returned Session must be
// closed when done.
//
// Example:
//
//	s, err := textlayer.Open("report.json", textlayer.WithCacheConfig(cfg))
func Open(path string, opts ...Option) (*Session, error) {
	src, err := source.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	base := []Option{
		WithSourcePath(path),
		WithDocumentID(corpus.DocumentID(path)),
	}
	return NewSession(src, append(base, opts...)...), nil
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	s := textlayer.Must(textlayer.Open("scan.hocr"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

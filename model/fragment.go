package model

import "unicode/utf8"

// TextFragment is an atomic run of text as emitted by the page content
// source, with its own bounding rectangle. Start and End are character
// offsets into the owning page's FullText, forming the half-open range
// [Start, End). Fragments are ordered by reading order; their offset ranges
// may be gapped (a separator character between fragments) but never overlap.
type TextFragment struct {
	Text  string
	Start int // Character offset of the first rune in FullText
	End   int // Character offset one past the last rune
	Rect  Rect
}

// Length returns the fragment's text length in characters
func (f TextFragment) Length() int {
	return utf8.RuneCountInString(f.Text)
}

// IsEmpty returns true if the fragment carries no text
func (f TextFragment) IsEmpty() bool {
	return f.Text == ""
}

// Overlaps checks if the fragment's offset range intersects [start, end)
func (f TextFragment) Overlaps(start, end int) bool {
	return f.Start < end && f.End > start
}

// ContainsOffset checks if a character offset falls inside the fragment
func (f TextFragment) ContainsOffset(offset int) bool {
	return offset >= f.Start && offset < f.End
}

// FragmentInput is a fragment as delivered by a content source, before
// offset assignment: text plus its bounding rectangle at reference scale.
type FragmentInput struct {
	Text string
	Rect Rect
}

package model

import (
	"sort"
	"sync"
)

// PageTextCorpus holds one page's flat text content together with the
// ordered fragments that produced it. FullText is the concatenation of
// fragment texts separated by single spaces; every fragment's offset range
// indexes validly into FullText. A corpus is built once per page on first
// extraction and is immutable thereafter.
type PageTextCorpus struct {
	PageNumber int    // 1-indexed page number
	FullText   string // Flat page text, fragment texts joined by single spaces
	Fragments  []TextFragment
}

// FragmentsOverlapping returns the fragments whose offset range intersects
// [start, end), in reading order. Fragment counts per page are small (tens
// to low hundreds), so this is a linear scan.
func (c *PageTextCorpus) FragmentsOverlapping(start, end int) []TextFragment {
	var out []TextFragment
	for _, f := range c.Fragments {
		if f.Overlaps(start, end) {
			out = append(out, f)
		}
	}
	return out
}

// FragmentAt returns the fragment at the given index in reading order
func (c *PageTextCorpus) FragmentAt(index int) (TextFragment, bool) {
	if index < 0 || index >= len(c.Fragments) {
		return TextFragment{}, false
	}
	return c.Fragments[index], true
}

// FragmentCount returns the number of fragments on the page
func (c *PageTextCorpus) FragmentCount() int {
	return len(c.Fragments)
}

// TextIn returns the substring of FullText covering the character offset
// range [start, end), clamped to the text bounds.
func (c *PageTextCorpus) TextIn(start, end int) string {
	runes := []rune(c.FullText)
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	if start >= end {
		return ""
	}
	return string(runes[start:end])
}

// AverageCharWidth returns the mean horizontal extent of one character cell
// across all non-empty fragments on the page. Used as the yardstick for
// gap-based heuristics; zero when the page has no measurable text.
func (c *PageTextCorpus) AverageCharWidth() float64 {
	var width float64
	var cells int
	for _, f := range c.Fragments {
		n := f.Length()
		if n == 0 || f.Rect.Width <= 0 {
			continue
		}
		width += f.Rect.Width
		cells += n
	}
	if cells == 0 {
		return 0
	}
	return width / float64(cells)
}

// LineHeight returns the median fragment height on the page, a proxy for the
// visual line height. Zero when the page has no sized fragments.
func (c *PageTextCorpus) LineHeight() float64 {
	heights := make([]float64, 0, len(c.Fragments))
	for _, f := range c.Fragments {
		if f.Rect.Height > 0 {
			heights = append(heights, f.Rect.Height)
		}
	}
	if len(heights) == 0 {
		return 0
	}
	sort.Float64s(heights)
	return heights[len(heights)/2]
}

// DocumentTextIndex maps page numbers to their corpora. It is owned by a
// document session and built incrementally as pages are extracted. Reads and
// writes may come from acquisition workers, so access is guarded.
type DocumentTextIndex struct {
	mu    sync.RWMutex
	pages map[int]*PageTextCorpus
}

// NewDocumentTextIndex creates an empty index
func NewDocumentTextIndex() *DocumentTextIndex {
	return &DocumentTextIndex{
		pages: make(map[int]*PageTextCorpus),
	}
}

// SetPage stores a page's corpus, replacing any previous entry
func (d *DocumentTextIndex) SetPage(corpus *PageTextCorpus) {
	if corpus == nil {
		return
	}
	d.mu.Lock()
	d.pages[corpus.PageNumber] = corpus
	d.mu.Unlock()
}

// Page returns the corpus for a page number, or nil if not yet indexed
func (d *DocumentTextIndex) Page(number int) *PageTextCorpus {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.pages[number]
}

// HasPage checks if a page has been indexed
func (d *DocumentTextIndex) HasPage(number int) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.pages[number]
	return ok
}

// PageNumbers returns the indexed page numbers in ascending order
func (d *DocumentTextIndex) PageNumbers() []int {
	d.mu.RLock()
	numbers := make([]int, 0, len(d.pages))
	for n := range d.pages {
		numbers = append(numbers, n)
	}
	d.mu.RUnlock()
	sort.Ints(numbers)
	return numbers
}

// Len returns the number of indexed pages
func (d *DocumentTextIndex) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.pages)
}

// Complete checks that every page 1..total is present. A partially
// populated index is never treated as authoritative.
func (d *DocumentTextIndex) Complete(total int) bool {
	if total <= 0 {
		return false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	for n := 1; n <= total; n++ {
		if _, ok := d.pages[n]; !ok {
			return false
		}
	}
	return true
}

// Clear removes all indexed pages
func (d *DocumentTextIndex) Clear() {
	d.mu.Lock()
	d.pages = make(map[int]*PageTextCorpus)
	d.mu.Unlock()
}

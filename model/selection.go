package model

// SelectionEndpoint identifies one end of a selection or caret: a page, a
// fragment on that page, and a character offset within the fragment's text.
// Raw platform node handles never appear here; the platform adapter resolves
// them to endpoints at the boundary.
type SelectionEndpoint struct {
	PageNumber    int // 1-indexed page number
	FragmentIndex int // Index into the page's fragment list, reading order
	CharOffset    int // Character offset within the fragment's text
}

// Compare orders two endpoints in document order. Returns -1 if e precedes
// other, 1 if it follows, 0 if equal.
func (e SelectionEndpoint) Compare(other SelectionEndpoint) int {
	switch {
	case e.PageNumber != other.PageNumber:
		if e.PageNumber < other.PageNumber {
			return -1
		}
		return 1
	case e.FragmentIndex != other.FragmentIndex:
		if e.FragmentIndex < other.FragmentIndex {
			return -1
		}
		return 1
	case e.CharOffset != other.CharOffset:
		if e.CharOffset < other.CharOffset {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// Before checks if the endpoint precedes another in document order
func (e SelectionEndpoint) Before(other SelectionEndpoint) bool {
	return e.Compare(other) < 0
}

// SelectionRange is an anchor/focus pair. The focus may precede the anchor
// (backwards selection); callers materializing a range use Ordered so
// document order is recomputed, never assumed.
type SelectionRange struct {
	Anchor SelectionEndpoint
	Focus  SelectionEndpoint
}

// Ordered returns the range's endpoints in document order
func (r SelectionRange) Ordered() (start, end SelectionEndpoint) {
	if r.Focus.Before(r.Anchor) {
		return r.Focus, r.Anchor
	}
	return r.Anchor, r.Focus
}

// IsCollapsed checks if anchor and focus coincide
func (r SelectionRange) IsCollapsed() bool {
	return r.Anchor.Compare(r.Focus) == 0
}

// Pages returns the inclusive page number span covered by the range
func (r SelectionRange) Pages() (first, last int) {
	start, end := r.Ordered()
	return start.PageNumber, end.PageNumber
}

// Match is one search result: the matched character offset span within a
// page's FullText, the original matched text, and the merged line
// rectangles highlighting it.
type Match struct {
	PageNumber int
	Start      int // Character offset into FullText, inclusive
	End        int // Character offset into FullText, exclusive
	Text       string
	Rects      []Rect
}

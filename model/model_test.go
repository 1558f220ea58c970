package model

import (
	"math"
	"testing"
)

// ============================================================================
// Point Tests
// ============================================================================

func TestPointDistance(t *testing.T) {
	tests := []struct {
		name     string
		p1, p2   Point
		expected float64
	}{
		{"same point", Point{0, 0}, Point{0, 0}, 0},
		{"horizontal", Point{0, 0}, Point{3, 0}, 3},
		{"vertical", Point{0, 0}, Point{0, 4}, 4},
		{"diagonal 3-4-5", Point{0, 0}, Point{3, 4}, 5},
		{"negative coords", Point{-1, -1}, Point{2, 3}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.p1.Distance(tt.p2)
			if math.Abs(result-tt.expected) > 0.0001 {
				t.Errorf("Distance() = %v, want %v", result, tt.expected)
			}
		})
	}
}

// ============================================================================
// Rect Tests
// ============================================================================

func TestNewRect(t *testing.T) {
	r := NewRect(10, 20, 100, 50)
	if r.X != 10 || r.Y != 20 || r.Width != 100 || r.Height != 50 {
		t.Errorf("NewRect() = %+v, want {10, 20, 100, 50}", r)
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(10, 20, 100, 50)

	if r.Left() != 10 {
		t.Errorf("Left() = %v, want 10", r.Left())
	}
	if r.Right() != 110 {
		t.Errorf("Right() = %v, want 110", r.Right())
	}
	if r.Top() != 20 {
		t.Errorf("Top() = %v, want 20", r.Top())
	}
	if r.Bottom() != 70 {
		t.Errorf("Bottom() = %v, want 70", r.Bottom())
	}
}

func TestRectCenter(t *testing.T) {
	r := NewRect(0, 0, 100, 50)
	center := r.Center()

	if center.X != 50 || center.Y != 25 {
		t.Errorf("Center() = %+v, want {50, 25}", center)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(0, 0, 100, 100)

	tests := []struct {
		name     string
		point    Point
		expected bool
	}{
		{"inside", Point{50, 50}, true},
		{"on left edge", Point{0, 50}, true},
		{"on right edge", Point{100, 50}, true},
		{"outside left", Point{-1, 50}, false},
		{"outside right", Point{101, 50}, false},
		{"outside top", Point{50, -1}, false},
		{"outside bottom", Point{50, 101}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := r.Contains(tt.point)
			if result != tt.expected {
				t.Errorf("Contains(%+v) = %v, want %v", tt.point, result, tt.expected)
			}
		})
	}
}

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping", Rect{0, 0, 50, 50}, Rect{25, 25, 50, 50}, true},
		{"touching edges", Rect{0, 0, 50, 50}, Rect{50, 0, 50, 50}, true},
		{"disjoint horizontal", Rect{0, 0, 50, 50}, Rect{60, 0, 50, 50}, false},
		{"disjoint vertical", Rect{0, 0, 50, 50}, Rect{0, 60, 50, 50}, false},
		{"contained", Rect{0, 0, 100, 100}, Rect{25, 25, 50, 50}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.expected {
				t.Errorf("Intersects() = %v, want %v", got, tt.expected)
			}
			if got := tt.b.Intersects(tt.a); got != tt.expected {
				t.Errorf("Intersects() reversed = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRectUnion(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(20, 5, 10, 10)

	got := a.Union(b)
	want := Rect{0, 0, 30, 15}
	if got != want {
		t.Errorf("Union() = %+v, want %+v", got, want)
	}
}

func TestRectIntersection(t *testing.T) {
	a := NewRect(0, 0, 50, 50)
	b := NewRect(25, 25, 50, 50)

	got := a.Intersection(b)
	want := Rect{25, 25, 25, 25}
	if got != want {
		t.Errorf("Intersection() = %+v, want %+v", got, want)
	}

	disjoint := NewRect(100, 100, 10, 10)
	if got := a.Intersection(disjoint); got != (Rect{}) {
		t.Errorf("Intersection() of disjoint rects = %+v, want zero rect", got)
	}
}

func TestRectTranslatedScaled(t *testing.T) {
	r := NewRect(10, 20, 30, 40)

	moved := r.Translated(-5, 5)
	if moved != (Rect{5, 25, 30, 40}) {
		t.Errorf("Translated() = %+v, want {5, 25, 30, 40}", moved)
	}

	scaled := r.Scaled(0.5)
	if scaled != (Rect{5, 10, 15, 20}) {
		t.Errorf("Scaled() = %+v, want {5, 10, 15, 20}", scaled)
	}
}

func TestRectValidity(t *testing.T) {
	tests := []struct {
		name    string
		rect    Rect
		valid   bool
		isEmpty bool
	}{
		{"normal", Rect{0, 0, 10, 10}, true, false},
		{"zero width", Rect{0, 0, 0, 10}, false, true},
		{"zero height", Rect{0, 0, 10, 0}, false, true},
		{"negative width", Rect{0, 0, -1, 10}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rect.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
			if got := tt.rect.IsEmpty(); got != tt.isEmpty {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.isEmpty)
			}
		})
	}
}

// ============================================================================
// TextFragment Tests
// ============================================================================

func TestFragmentLength(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"ascii", "Hello", 5},
		{"empty", "", 0},
		{"multibyte", "café", 4},
		{"cjk", "日本語", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := TextFragment{Text: tt.text}
			if got := f.Length(); got != tt.want {
				t.Errorf("Length() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFragmentOverlaps(t *testing.T) {
	f := TextFragment{Text: "hello", Start: 10, End: 15}

	tests := []struct {
		name       string
		start, end int
		want       bool
	}{
		{"fully inside", 11, 14, true},
		{"covers fragment", 5, 20, true},
		{"left overlap", 8, 12, true},
		{"right overlap", 14, 18, true},
		{"before", 0, 10, false},
		{"after", 15, 20, false},
		{"empty range", 12, 12, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Overlaps(tt.start, tt.end); got != tt.want {
				t.Errorf("Overlaps(%d, %d) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

// ============================================================================
// PageTextCorpus Tests
// ============================================================================

func testCorpus() *PageTextCorpus {
	return &PageTextCorpus{
		PageNumber: 1,
		FullText:   "Hello world",
		Fragments: []TextFragment{
			{Text: "Hello", Start: 0, End: 5, Rect: Rect{0, 0, 50, 12}},
			{Text: "world", Start: 6, End: 11, Rect: Rect{60, 0, 50, 12}},
		},
	}
}

func TestFragmentsOverlapping(t *testing.T) {
	corpus := testCorpus()

	tests := []struct {
		name       string
		start, end int
		wantCount  int
	}{
		{"first only", 0, 5, 1},
		{"second only", 7, 10, 1},
		{"spanning both", 3, 8, 2},
		{"separator only", 5, 6, 0},
		{"beyond text", 20, 30, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := corpus.FragmentsOverlapping(tt.start, tt.end)
			if len(got) != tt.wantCount {
				t.Errorf("FragmentsOverlapping(%d, %d) returned %d fragments, want %d",
					tt.start, tt.end, len(got), tt.wantCount)
			}
		})
	}
}

func TestTextIn(t *testing.T) {
	corpus := testCorpus()

	tests := []struct {
		name       string
		start, end int
		want       string
	}{
		{"across separator", 3, 8, "lo wo"},
		{"full text", 0, 11, "Hello world"},
		{"clamped end", 6, 99, "world"},
		{"clamped start", -3, 5, "Hello"},
		{"inverted", 8, 3, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := corpus.TextIn(tt.start, tt.end); got != tt.want {
				t.Errorf("TextIn(%d, %d) = %q, want %q", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestAverageCharWidth(t *testing.T) {
	corpus := testCorpus()

	// 100 units of width over 10 characters
	want := 10.0
	if got := corpus.AverageCharWidth(); math.Abs(got-want) > 0.0001 {
		t.Errorf("AverageCharWidth() = %v, want %v", got, want)
	}

	empty := &PageTextCorpus{PageNumber: 2}
	if got := empty.AverageCharWidth(); got != 0 {
		t.Errorf("AverageCharWidth() on empty page = %v, want 0", got)
	}
}

// ============================================================================
// DocumentTextIndex Tests
// ============================================================================

func TestDocumentTextIndex(t *testing.T) {
	index := NewDocumentTextIndex()

	if index.HasPage(1) {
		t.Error("empty index should not report page 1")
	}

	index.SetPage(&PageTextCorpus{PageNumber: 2, FullText: "two"})
	index.SetPage(&PageTextCorpus{PageNumber: 1, FullText: "one"})

	if index.Len() != 2 {
		t.Errorf("Len() = %d, want 2", index.Len())
	}
	if got := index.Page(1); got == nil || got.FullText != "one" {
		t.Errorf("Page(1) = %+v, want corpus with text %q", got, "one")
	}

	numbers := index.PageNumbers()
	if len(numbers) != 2 || numbers[0] != 1 || numbers[1] != 2 {
		t.Errorf("PageNumbers() = %v, want [1 2]", numbers)
	}
}

func TestDocumentTextIndexComplete(t *testing.T) {
	index := NewDocumentTextIndex()
	index.SetPage(&PageTextCorpus{PageNumber: 1})
	index.SetPage(&PageTextCorpus{PageNumber: 3})

	if index.Complete(3) {
		t.Error("index missing page 2 should not be complete for total 3")
	}

	index.SetPage(&PageTextCorpus{PageNumber: 2})
	if !index.Complete(3) {
		t.Error("index with pages 1-3 should be complete for total 3")
	}
	if index.Complete(0) {
		t.Error("Complete(0) should be false")
	}
}

// ============================================================================
// Selection Tests
// ============================================================================

func TestEndpointCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b SelectionEndpoint
		want int
	}{
		{"equal", SelectionEndpoint{1, 0, 0}, SelectionEndpoint{1, 0, 0}, 0},
		{"earlier page", SelectionEndpoint{1, 5, 5}, SelectionEndpoint{2, 0, 0}, -1},
		{"earlier fragment", SelectionEndpoint{1, 1, 5}, SelectionEndpoint{1, 2, 0}, -1},
		{"earlier offset", SelectionEndpoint{1, 1, 2}, SelectionEndpoint{1, 1, 3}, -1},
		{"later offset", SelectionEndpoint{1, 1, 4}, SelectionEndpoint{1, 1, 3}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Compare(tt.b); got != tt.want {
				t.Errorf("Compare() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSelectionRangeOrdered(t *testing.T) {
	forward := SelectionRange{
		Anchor: SelectionEndpoint{1, 0, 2},
		Focus:  SelectionEndpoint{1, 3, 1},
	}
	start, end := forward.Ordered()
	if start != forward.Anchor || end != forward.Focus {
		t.Errorf("Ordered() on forward range reordered endpoints")
	}

	backward := SelectionRange{Anchor: forward.Focus, Focus: forward.Anchor}
	start, end = backward.Ordered()
	if start != forward.Anchor || end != forward.Focus {
		t.Errorf("Ordered() on backward range = (%+v, %+v), want document order", start, end)
	}

	if !(SelectionRange{Anchor: start, Focus: start}).IsCollapsed() {
		t.Error("IsCollapsed() = false for coincident endpoints")
	}
}

package selection

import (
	"testing"

	"github.com/tsawler/textlayer/model"
	"github.com/tsawler/textlayer/platform"
)

// fakeAdapter is a minimal platform host for reconstruction tests.
type fakeAdapter struct {
	regions   map[int]platform.PageRegion
	selection *model.SelectionRange
	rects     []model.Rect
}

func (a *fakeAdapter) PageRegion(pageNumber int) (platform.PageRegion, bool) {
	region, ok := a.regions[pageNumber]
	return region, ok
}

func (a *fakeAdapter) SelectionRects() []model.Rect { return a.rects }

func (a *fakeAdapter) CurrentSelection() (model.SelectionRange, bool) {
	if a.selection == nil {
		return model.SelectionRange{}, false
	}
	return *a.selection, true
}

func (a *fakeAdapter) SetSelection(r model.SelectionRange) { a.selection = &r }

func (a *fakeAdapter) ClearSelection() { a.selection = nil }

func (a *fakeAdapter) MarkEditable(pageNumber, fragmentIndex int, editable bool) {}

// recordingScheduler captures requests so tests control when frames fire.
type recordingScheduler struct {
	pending  func()
	requests int
}

func (s *recordingScheduler) Request(fn func()) {
	s.pending = fn
	s.requests++
}

func (s *recordingScheduler) Cancel() { s.pending = nil }

func (s *recordingScheduler) fire() {
	if s.pending != nil {
		fn := s.pending
		s.pending = nil
		fn()
	}
}

func pageSelection(page int) *model.SelectionRange {
	return &model.SelectionRange{
		Anchor: model.SelectionEndpoint{PageNumber: page},
		Focus:  model.SelectionEndpoint{PageNumber: page, FragmentIndex: 1, CharOffset: 3},
	}
}

func TestReconstructTranslatesMergesAndUnzooms(t *testing.T) {
	adapter := &fakeAdapter{
		regions: map[int]platform.PageRegion{
			1: {Rect: model.Rect{X: 100, Y: 100, Width: 400, Height: 600}, Zoom: 2},
		},
		selection: pageSelection(1),
		rects: []model.Rect{
			{X: 110, Y: 110, Width: 40, Height: 12},
			{X: 148, Y: 110, Width: 30, Height: 12},
			// Outside the page region entirely.
			{X: 600, Y: 110, Width: 40, Height: 12},
		},
	}

	recon := NewReconstructor(adapter)
	result := recon.Reconstruct(*adapter.selection, adapter.rects)

	rects, ok := result[1]
	if !ok {
		t.Fatal("expected rectangles for page 1")
	}
	if len(rects) != 1 {
		t.Fatalf("expected one merged line rect, got %d", len(rects))
	}

	// The two in-page rects translate to (10,10 40x12) and (48,10 30x12),
	// merge into (10,10 68x12), then halve under zoom 2.
	want := model.Rect{X: 5, Y: 5, Width: 34, Height: 6}
	if rects[0] != want {
		t.Errorf("expected %+v, got %+v", want, rects[0])
	}
}

func TestReconstructSpansPages(t *testing.T) {
	adapter := &fakeAdapter{
		regions: map[int]platform.PageRegion{
			1: {Rect: model.Rect{X: 0, Y: 0, Width: 400, Height: 600}, Zoom: 1},
			2: {Rect: model.Rect{X: 420, Y: 0, Width: 400, Height: 600}, Zoom: 1},
		},
		selection: &model.SelectionRange{
			Anchor: model.SelectionEndpoint{PageNumber: 1},
			Focus:  model.SelectionEndpoint{PageNumber: 2},
		},
		rects: []model.Rect{
			{X: 10, Y: 580, Width: 100, Height: 12},
			{X: 430, Y: 10, Width: 100, Height: 12},
		},
	}

	recon := NewReconstructor(adapter)
	result := recon.Reconstruct(*adapter.selection, adapter.rects)

	if len(result) != 2 {
		t.Fatalf("expected rectangles on two pages, got %d", len(result))
	}
	if got := result[2][0]; got.X != 10 || got.Y != 10 {
		t.Errorf("expected page 2 rect translated to its origin, got %+v", got)
	}
}

func TestRecomputeWithoutSelection(t *testing.T) {
	adapter := &fakeAdapter{regions: map[int]platform.PageRegion{}}
	recon := NewReconstructor(adapter)

	var published map[int][]model.Rect
	recon.SetUpdateFunc(func(r map[int][]model.Rect) { published = r })
	recon.Recompute()

	if published == nil {
		t.Fatal("expected an update even without a selection")
	}
	if len(published) != 0 {
		t.Errorf("expected an empty result, got %v", published)
	}
}

func TestRecomputeKeepsResultDuringDrag(t *testing.T) {
	adapter := &fakeAdapter{
		regions: map[int]platform.PageRegion{
			1: {Rect: model.Rect{X: 0, Y: 0, Width: 400, Height: 600}, Zoom: 1},
		},
		selection: pageSelection(1),
		rects:     []model.Rect{{X: 10, Y: 10, Width: 100, Height: 12}},
	}

	recon := NewReconstructor(adapter)
	recon.SetScheduler(&recordingScheduler{})
	recon.Recompute()

	if len(recon.Rects()[1]) != 1 {
		t.Fatal("expected an initial result")
	}

	// Mid-drag the platform transiently reports no rectangles; the
	// previous result stays on screen.
	recon.BeginDrag()
	adapter.rects = nil
	recon.Recompute()

	if len(recon.Rects()[1]) != 1 {
		t.Error("expected the previous result to survive a transient empty report")
	}

	// The selection itself may also vanish for a frame mid-drag; that is
	// just as transient and must not clear the highlight either.
	adapter.ClearSelection()
	recon.Recompute()

	if len(recon.Rects()[1]) != 1 {
		t.Error("expected the previous result to survive a transient no-selection report")
	}

	// Releasing the drag recomputes unconditionally.
	recon.EndDrag()

	if len(recon.Rects()) != 0 {
		t.Errorf("expected an empty result after drag release, got %v", recon.Rects())
	}
}

func TestReconstructClipsToPageRegion(t *testing.T) {
	adapter := &fakeAdapter{
		regions: map[int]platform.PageRegion{
			1: {Rect: model.Rect{X: 100, Y: 100, Width: 400, Height: 600}, Zoom: 1},
		},
		selection: pageSelection(1),
		rects: []model.Rect{
			// Straddles the left page edge by 20 units.
			{X: 80, Y: 110, Width: 60, Height: 12},
		},
	}

	recon := NewReconstructor(adapter)
	result := recon.Reconstruct(*adapter.selection, adapter.rects)

	rects := result[1]
	if len(rects) != 1 {
		t.Fatalf("expected one rect, got %d", len(rects))
	}

	// Only the in-page portion survives: clipped to X 100 width 40, then
	// translated to the page origin.
	want := model.Rect{X: 0, Y: 10, Width: 40, Height: 12}
	if rects[0] != want {
		t.Errorf("expected %+v, got %+v", want, rects[0])
	}
}

func TestInvalidateCoalesces(t *testing.T) {
	adapter := &fakeAdapter{
		regions:   map[int]platform.PageRegion{},
		selection: pageSelection(1),
	}

	recon := NewReconstructor(adapter)
	sched := &recordingScheduler{}
	recon.SetScheduler(sched)

	updates := 0
	recon.SetUpdateFunc(func(map[int][]model.Rect) { updates++ })

	recon.Invalidate()
	recon.Invalidate()
	recon.Invalidate()
	sched.fire()

	if updates != 1 {
		t.Errorf("expected one update for a burst of invalidations, got %d", updates)
	}
	if sched.requests != 3 {
		t.Errorf("expected three scheduler requests, got %d", sched.requests)
	}
}

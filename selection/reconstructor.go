package selection

import (
	"sync"

	"github.com/tsawler/textlayer/layout"
	"github.com/tsawler/textlayer/model"
	"github.com/tsawler/textlayer/platform"
)

// ReconstructorConfig holds configuration for selection reconstruction
type ReconstructorConfig struct {
	// Merge controls line merging of the raw platform rectangles. The
	// tolerance applies in the coordinate space the rectangles arrive in,
	// before any zoom correction.
	Merge layout.MergeConfig
}

// DefaultReconstructorConfig returns sensible default configuration
func DefaultReconstructorConfig() ReconstructorConfig {
	return ReconstructorConfig{
		Merge: layout.DefaultMergeConfig(),
	}
}

// Reconstructor turns the platform's raw selection rectangles into clean
// per-page line rectangles in page coordinates. Recomputation is coalesced
// so a burst of selection-changed events costs one pass per frame.
type Reconstructor struct {
	adapter platform.Adapter
	merger  *layout.LineMerger
	sched   Scheduler

	mu       sync.Mutex
	update   func(map[int][]model.Rect)
	last     map[int][]model.Rect
	dragging bool
}

// NewReconstructor creates a reconstructor with default configuration
func NewReconstructor(adapter platform.Adapter) *Reconstructor {
	return NewReconstructorWithConfig(adapter, DefaultReconstructorConfig())
}

// NewReconstructorWithConfig creates a reconstructor with custom configuration
func NewReconstructorWithConfig(adapter platform.Adapter, config ReconstructorConfig) *Reconstructor {
	return &Reconstructor{
		adapter: adapter,
		merger:  layout.NewLineMergerWithConfig(config.Merge),
		sched:   NewTimerScheduler(DefaultFrameInterval),
		last:    make(map[int][]model.Rect),
	}
}

// SetScheduler replaces the frame scheduler. Useful for hosts that drive
// their own frame clock.
func (r *Reconstructor) SetScheduler(s Scheduler) {
	if s != nil {
		r.sched = s
	}
}

// SetUpdateFunc registers the callback receiving each reconstruction
// result. The callback runs on the scheduler's goroutine.
func (r *Reconstructor) SetUpdateFunc(fn func(map[int][]model.Rect)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.update = fn
}

// Invalidate schedules a recomputation for the next frame. Calls made
// before the frame fires collapse into one pass.
func (r *Reconstructor) Invalidate() {
	r.sched.Request(r.Recompute)
}

// BeginDrag marks a pointer drag in progress. While dragging, a platform
// report of zero selection rectangles keeps the previous result instead of
// flashing the highlight away.
func (r *Reconstructor) BeginDrag() {
	r.mu.Lock()
	r.dragging = true
	r.mu.Unlock()
}

// EndDrag clears the drag state and recomputes immediately. The final
// recomputation after a drag is never skipped.
func (r *Reconstructor) EndDrag() {
	r.mu.Lock()
	r.dragging = false
	r.mu.Unlock()

	r.sched.Cancel()
	r.Recompute()
}

// Rects returns the most recent reconstruction result.
func (r *Reconstructor) Rects() map[int][]model.Rect {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[int][]model.Rect, len(r.last))
	for page, rects := range r.last {
		out[page] = append([]model.Rect(nil), rects...)
	}
	return out
}

// Recompute rebuilds the per-page rectangles from the platform's current
// selection and publishes the result. Hosts with their own frame loop may
// call it directly; Invalidate is the coalesced path.
func (r *Reconstructor) Recompute() {
	r.mu.Lock()
	dragging := r.dragging
	r.mu.Unlock()

	sel, ok := r.adapter.CurrentSelection()
	if !ok {
		if dragging {
			// Transient no-selection report mid-drag; keep what is on
			// screen. EndDrag runs the authoritative recompute.
			return
		}
		r.publish(map[int][]model.Rect{})
		return
	}

	raw := r.adapter.SelectionRects()
	if dragging && len(raw) == 0 {
		// Transient empty report mid-drag; keep what is on screen.
		return
	}

	r.publish(r.Reconstruct(sel, raw))
}

// Reconstruct computes clean page-local line rectangles for a selection
// from raw viewport rectangles. For each page in the selection's range the
// raw rectangles are clipped against the page region, translated to page
// origin, merged into lines, and only then divided by the page zoom.
// Merging before the zoom division keeps the tolerance in the space the
// rectangles arrived in.
func (r *Reconstructor) Reconstruct(sel model.SelectionRange, raw []model.Rect) map[int][]model.Rect {
	out := make(map[int][]model.Rect)
	first, last := sel.Pages()

	for page := first; page <= last; page++ {
		region, ok := r.adapter.PageRegion(page)
		if !ok {
			continue
		}

		var local []model.Rect
		for _, rect := range raw {
			clipped := rect.Intersection(region.Rect)
			if !clipped.IsValid() {
				continue
			}
			local = append(local, clipped.Translated(-region.Rect.X, -region.Rect.Y))
		}
		if len(local) == 0 {
			continue
		}

		merged := r.merger.MergeIntoLines(local)

		zoom := region.Zoom
		if zoom <= 0 {
			zoom = 1
		}
		if zoom != 1 {
			for i := range merged {
				merged[i] = merged[i].Scaled(1 / zoom)
			}
		}
		out[page] = merged
	}
	return out
}

func (r *Reconstructor) publish(result map[int][]model.Rect) {
	r.mu.Lock()
	r.last = result
	fn := r.update
	r.mu.Unlock()

	if fn != nil {
		fn(result)
	}
}

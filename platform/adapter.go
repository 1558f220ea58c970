package platform

import "github.com/tsawler/textlayer/model"

// PageRegion describes a page's on-screen geometry: its bounding region in
// viewport coordinates and the zoom factor currently applied to it.
// Dividing viewport extents by Zoom reaches reference scale.
type PageRegion struct {
	Rect model.Rect
	Zoom float64
}

// Adapter supplies the geometry and selection primitives the engine needs
// from a live host. It is the only layer that touches raw platform
// handles; positions and rectangles cross in engine types only.
type Adapter interface {
	// PageRegion returns the on-screen region for a page. ok is false
	// when the page is not currently mounted in the viewport.
	PageRegion(pageNumber int) (PageRegion, bool)

	// SelectionRects returns the platform's client rectangles for the
	// active selection, one per visual line segment, in viewport
	// coordinates. An empty slice means no visible selection geometry.
	SelectionRects() []model.Rect

	// CurrentSelection resolves the platform's active selection into
	// engine endpoints. ok is false when nothing is selected.
	CurrentSelection() (model.SelectionRange, bool)

	// SetSelection programmatically sets the platform selection. Caret
	// shift-navigation publishes its ranges through this.
	SetSelection(r model.SelectionRange)

	// ClearSelection removes any platform selection
	ClearSelection()

	// MarkEditable toggles the decorative editable marking on a fragment
	MarkEditable(pageNumber, fragmentIndex int, editable bool)
}

// PointResolver is implemented by adapters whose platform offers a native
// point-to-text-position primitive. When absent (or when resolution
// misses), the engine falls back to geometric resolution over fragment
// rectangles.
type PointResolver interface {
	ResolvePoint(pageNumber int, p model.Point) (fragmentIndex, charOffset int, ok bool)
}

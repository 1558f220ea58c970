// Package selection reconstructs highlight geometry for live text
// selections and resolves pointer positions into text positions.
//
// # Reconstruction
//
// The [Reconstructor] turns the platform's active selection into per-page
// line rectangles at reference scale:
//
//	recon := selection.NewReconstructor(adapter)
//	recon.SetUpdateFunc(func(rects map[int][]model.Rect) { ... })
//	recon.Invalidate() // coalesced recompute on the next frame
//
// Raw client rectangles arrive in viewport coordinates; they are assigned
// to pages by bounding-box overlap, translated to page-local coordinates,
// merged into line rectangles in that same space, and only then divided by
// the page's zoom factor. Recomputation triggered through [Reconstructor.Invalidate]
// is coalesced to one run per frame; while a pointer drag is in progress,
// a recompute observing zero client rectangles keeps the previous result
// rather than flickering the highlight away.
//
// # Point Resolution
//
// [ResolvePoint] maps a page-local point to a fragment and character
// offset, first by direct hit testing, then by nearest-fragment search
// with vertical distance weighted heavier than horizontal. A miss beyond
// the search radius reports ok false and the caller treats the gesture as
// a no-op.
//
// # Word Selection
//
// [WordAt] expands a resolved position to the word around it. When the
// expansion reaches a fragment boundary it continues into the neighboring
// fragment only if that fragment sits on the same visual line, the
// horizontal gap between them is small, and the boundary character is a
// word character. This stitches words that page sources split across
// fragments back into one logical word.
package selection

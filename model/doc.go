// Package model provides the shared data structures for page text content.
//
// This package defines the types that every other layer of the engine
// consumes and produces: fragments, per-page corpora, selection endpoints,
// and the geometric primitives used for highlight rectangles. All offsets in
// this package are character (rune) offsets, never byte offsets.
//
// # Corpus Structure
//
// A [PageTextCorpus] holds one page's flat text together with the ordered
// [TextFragment] list that produced it:
//
//	corpus := index.Page(3)
//	frags := corpus.FragmentsOverlapping(10, 25)
//
// The [DocumentTextIndex] maps page numbers to corpora and is owned by a
// document session. Corpora are immutable once built.
//
// # Geometry
//
// Geometric primitives support highlight and hit-testing calculations:
//
//   - [Rect] - axis-aligned rectangle with intersection, union, and overlap
//     calculations, in page-local units with a top-left origin
//   - [Point] - 2D point with distance calculation
//
// # Selection
//
// A [SelectionEndpoint] identifies one end of a selection or caret by page,
// fragment index, and character offset. A [SelectionRange] is an ordered
// anchor/focus pair; document order is recomputed, not assumed, so backwards
// selections behave identically to forward ones.
package model

// Package render draws page corpora into images for debugging and
// inspection.
//
// [Page] produces a schematic view of a page: every fragment as an
// outlined box with its text in a small bitmap font, and any supplied
// rectangles, typically search matches or a reconstructed selection,
// filled as translucent highlights. The output is meant for eyeballing
// layout and highlight geometry, not for faithful document rendering.
package render

// Package caret implements keyboard caret navigation over page text.
//
// A [Navigator] is bound to one page. Clicking a fragment activates the
// caret; arrow keys then walk the page's characters, jumping to the
// neighboring fragment at a boundary and picking the best-aligned fragment
// above or below for vertical movement:
//
//	nav := caret.NewNavigator(corpus, adapter)
//	nav.Activate(fragmentIndex, charOffset, false)
//	consumed := nav.HandleKey(ev)
//
// Holding Shift establishes an anchor at the caret's previous position and
// each further movement publishes the anchor-to-caret range to the
// platform host as a selection. Escape, a click outside any fragment, or
// focus loss deactivates the caret and reverts the fragment's editable
// marking. Printable keys are consumed without effect while the caret is
// active; the page text is never mutated.
package caret

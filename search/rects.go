package search

import (
	"github.com/mattn/go-runewidth"

	"github.com/tsawler/textlayer/model"
)

// SpanRects resolves an original-offset span into merged highlight
// rectangles: full rects for fragments inside the span, proportional slices
// for fragments it only partially covers, degenerate rects dropped. Search
// uses it for match highlights; callers may use it directly for any
// character span, such as a selected word.
func (e *Engine) SpanRects(corpus *model.PageTextCorpus, start, end int) []model.Rect {
	var rects []model.Rect
	for _, frag := range corpus.FragmentsOverlapping(start, end) {
		r, ok := fragmentSpanRect(frag, start, end)
		if !ok {
			continue
		}
		if r.Width < e.config.MinRectSize || r.Height < e.config.MinRectSize {
			continue
		}
		rects = append(rects, r)
	}
	return e.merger.MergeIntoLines(rects)
}

// fragmentSpanRect returns the portion of a fragment's rectangle covering
// the character span [start, end). A fully covered fragment returns its
// rectangle unchanged. A partially covered fragment returns a horizontal
// slice proportional to the covered display cells over the fragment's
// total display cells. Per-glyph metrics are never available here, so the
// slice is a fixed-width approximation.
func fragmentSpanRect(frag model.TextFragment, start, end int) (model.Rect, bool) {
	if !frag.Overlaps(start, end) {
		return model.Rect{}, false
	}
	if start <= frag.Start && end >= frag.End {
		return frag.Rect, true
	}

	spanStart := start
	if spanStart < frag.Start {
		spanStart = frag.Start
	}
	spanEnd := end
	if spanEnd > frag.End {
		spanEnd = frag.End
	}

	runes := []rune(frag.Text)
	total := 0
	prefix := 0
	covered := 0
	for i, r := range runes {
		w := runewidth.RuneWidth(r)
		total += w
		offset := frag.Start + i
		if offset < spanStart {
			prefix += w
		} else if offset < spanEnd {
			covered += w
		}
	}
	if total == 0 {
		return frag.Rect, true
	}

	cell := frag.Rect.Width / float64(total)
	return model.Rect{
		X:      frag.Rect.X + cell*float64(prefix),
		Y:      frag.Rect.Y,
		Width:  cell * float64(covered),
		Height: frag.Rect.Height,
	}, true
}

package selection

import (
	"math"

	"github.com/mattn/go-runewidth"

	"github.com/tsawler/textlayer/model"
)

// PointConfig holds configuration for pointer-to-text resolution
type PointConfig struct {
	// VerticalWeight scales vertical distance relative to horizontal when
	// searching for the nearest fragment (default: 1.5)
	VerticalWeight float64

	// RadiusLines bounds the nearest-fragment search to this many line
	// heights around the point; beyond it resolution fails (default: 3)
	RadiusLines float64
}

// DefaultPointConfig returns sensible default configuration
func DefaultPointConfig() PointConfig {
	return PointConfig{
		VerticalWeight: 1.5,
		RadiusLines:    3.0,
	}
}

// ResolvePoint maps a page-local point to a fragment index and character
// offset using the default configuration. ok is false when the point hits
// no fragment and no fragment lies within the search radius.
func ResolvePoint(corpus *model.PageTextCorpus, p model.Point) (fragmentIndex, charOffset int, ok bool) {
	return ResolvePointWithConfig(corpus, p, DefaultPointConfig())
}

// ResolvePointWithConfig resolves a point with custom configuration. Direct
// hit testing runs first; a point inside a fragment's rectangle resolves to
// the character boundary nearest the point's X position. When every
// fragment misses, the nearest non-empty fragment within the radius wins,
// with vertical distance weighted heavier than horizontal so a click between
// two lines prefers the line it is visually on.
func ResolvePointWithConfig(corpus *model.PageTextCorpus, p model.Point, config PointConfig) (fragmentIndex, charOffset int, ok bool) {
	if corpus == nil || len(corpus.Fragments) == 0 {
		return 0, 0, false
	}

	for i, frag := range corpus.Fragments {
		if frag.IsEmpty() {
			continue
		}
		if frag.Rect.Contains(p) {
			return i, offsetForX(frag, p.X), true
		}
	}

	// No direct hit: nearest fragment within the radius.
	lineHeight := corpus.LineHeight()
	if lineHeight <= 0 {
		return 0, 0, false
	}
	radius := config.RadiusLines * lineHeight

	best := -1
	bestDist := math.MaxFloat64
	for i, frag := range corpus.Fragments {
		if frag.IsEmpty() {
			continue
		}
		d := weightedDistance(frag.Rect, p, config.VerticalWeight)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	if best < 0 || bestDist > radius {
		return 0, 0, false
	}

	return best, offsetForX(corpus.Fragments[best], p.X), true
}

// weightedDistance measures the distance from a point to the nearest edge
// of a rectangle, with the vertical component scaled by weight. A point
// inside the rectangle has distance zero.
func weightedDistance(r model.Rect, p model.Point, weight float64) float64 {
	var dx, dy float64
	switch {
	case p.X < r.Left():
		dx = r.Left() - p.X
	case p.X > r.Right():
		dx = p.X - r.Right()
	}
	switch {
	case p.Y < r.Top():
		dy = r.Top() - p.Y
	case p.Y > r.Bottom():
		dy = p.Y - r.Bottom()
	}
	dy *= weight
	return math.Sqrt(dx*dx + dy*dy)
}

// offsetForX maps an X coordinate to the nearest character boundary within
// a fragment. Character widths are display cells over the fragment's
// rectangle, the same fixed-width approximation used for highlight slicing;
// a click past a character's midpoint lands after it.
func offsetForX(frag model.TextFragment, x float64) int {
	runes := []rune(frag.Text)
	if len(runes) == 0 {
		return 0
	}
	if x <= frag.Rect.Left() {
		return 0
	}
	if x >= frag.Rect.Right() {
		return len(runes)
	}

	total := 0
	for _, r := range runes {
		total += runewidth.RuneWidth(r)
	}
	if total == 0 {
		return 0
	}
	cell := frag.Rect.Width / float64(total)

	left := frag.Rect.Left()
	for i, r := range runes {
		w := cell * float64(runewidth.RuneWidth(r))
		if x < left+w/2 {
			return i
		}
		left += w
		if x < left {
			return i + 1
		}
	}
	return len(runes)
}

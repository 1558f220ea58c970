package layout

import (
	"sort"

	"github.com/tsawler/textlayer/model"
)

// MergeConfig holds configuration for line merging
type MergeConfig struct {
	// YTolerance is the vertical distance below which two rectangles are
	// treated as part of the same visual line (default: 3)
	YTolerance float64
}

// DefaultMergeConfig returns sensible default configuration
func DefaultMergeConfig() MergeConfig {
	return MergeConfig{
		YTolerance: 3.0,
	}
}

// LineMerger merges axis-aligned fragment rectangles into one bounding
// rectangle per visual line
type LineMerger struct {
	config MergeConfig
}

// NewLineMerger creates a new line merger with default configuration
func NewLineMerger() *LineMerger {
	return &LineMerger{
		config: DefaultMergeConfig(),
	}
}

// NewLineMergerWithConfig creates a line merger with custom configuration
func NewLineMergerWithConfig(config MergeConfig) *LineMerger {
	return &LineMerger{
		config: config,
	}
}

// Config returns the merger's configuration
func (m *LineMerger) Config() MergeConfig {
	return m.config
}

// MergeIntoLines merges rectangles into per-line bounding rectangles.
// Rectangles whose Y positions fall within the tolerance are grouped into a
// run; the tolerance is applied against the last rectangle added to the run,
// so lines drift with their content rather than with the run's first member.
// Each run emits one rectangle spanning min X to max right edge, topped at
// the run's minimum Y with the run's maximum height. Output length never
// exceeds input length, and merging an already-merged set is a fixed point.
func (m *LineMerger) MergeIntoLines(rects []model.Rect) []model.Rect {
	if len(rects) == 0 {
		return nil
	}
	if len(rects) == 1 {
		return []model.Rect{rects[0]}
	}

	tol := m.config.YTolerance

	// Step 1: Sort by (y, x), treating Y values within tolerance as equal
	sorted := make([]model.Rect, len(rects))
	copy(sorted, rects)
	sort.SliceStable(sorted, func(i, j int) bool {
		if absFloat64(sorted[i].Y-sorted[j].Y) < tol {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})

	// Step 2: Walk the sorted rects, chaining runs on the last-added Y
	var lines []model.Rect
	current := sorted[0]
	currentRight := sorted[0].Right()
	lastY := sorted[0].Y

	for _, r := range sorted[1:] {
		if absFloat64(r.Y-lastY) < tol {
			// Same line: widen the run
			if r.X < current.X {
				current.X = r.X
			}
			if r.Right() > currentRight {
				currentRight = r.Right()
			}
			if r.Y < current.Y {
				current.Y = r.Y
			}
			if r.Height > current.Height {
				current.Height = r.Height
			}
			lastY = r.Y
			continue
		}

		// New line
		current.Width = currentRight - current.X
		lines = append(lines, current)
		current = r
		currentRight = r.Right()
		lastY = r.Y
	}

	// Don't forget the last run
	current.Width = currentRight - current.X
	lines = append(lines, current)

	return lines
}

// absFloat64 returns the absolute value of a float64
func absFloat64(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

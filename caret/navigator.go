package caret

import (
	"math"

	"github.com/tsawler/textlayer/model"
	"github.com/tsawler/textlayer/platform"
)

// Config holds configuration for caret navigation
type Config struct {
	// VerticalTolerance lets vertical movement accept fragments whose
	// edges slightly overlap the current line (default: 5)
	VerticalTolerance float64

	// VerticalWeight scales vertical distance against horizontal offset
	// when scoring candidate fragments for up/down movement (default: 10)
	VerticalWeight float64
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		VerticalTolerance: 5.0,
		VerticalWeight:    10.0,
	}
}

// Navigator drives a keyboard caret over one page's fragments. A click on a
// fragment activates it; arrow keys then move the caret through the page's
// text, jumping fragment boundaries, and Shift extends a selection from an
// anchor. The navigator owns no rendering; it reports caret state and
// publishes selection ranges to the platform host.
type Navigator struct {
	corpus *model.PageTextCorpus
	host   platform.Adapter
	config Config

	active   bool
	position model.SelectionEndpoint
	anchor   *model.SelectionEndpoint
}

// NewNavigator creates a navigator for one page with default configuration.
// host may be nil for headless use; selection publishing is then skipped.
func NewNavigator(corpus *model.PageTextCorpus, host platform.Adapter) *Navigator {
	return NewNavigatorWithConfig(corpus, host, DefaultConfig())
}

// NewNavigatorWithConfig creates a navigator with custom configuration
func NewNavigatorWithConfig(corpus *model.PageTextCorpus, host platform.Adapter, config Config) *Navigator {
	return &Navigator{
		corpus: corpus,
		host:   host,
		config: config,
	}
}

// Active reports whether the caret is currently placed
func (n *Navigator) Active() bool {
	return n.active
}

// Position returns the caret position while active
func (n *Navigator) Position() (model.SelectionEndpoint, bool) {
	if !n.active {
		return model.SelectionEndpoint{}, false
	}
	return n.position, true
}

// Anchor returns the selection anchor while one is established
func (n *Navigator) Anchor() (model.SelectionEndpoint, bool) {
	if !n.active || n.anchor == nil {
		return model.SelectionEndpoint{}, false
	}
	return *n.anchor, true
}

// Selection returns the anchor-to-caret range while an anchor is
// established
func (n *Navigator) Selection() (model.SelectionRange, bool) {
	if !n.active || n.anchor == nil {
		return model.SelectionRange{}, false
	}
	return model.SelectionRange{Anchor: *n.anchor, Focus: n.position}, true
}

// Activate places the caret in a fragment at the given character offset.
// Fragments with empty text cannot take the caret. With extend set the
// existing anchor survives, or the previous caret position becomes one, and
// the anchor-to-click range is published as a selection.
func (n *Navigator) Activate(fragmentIndex, charOffset int, extend bool) bool {
	if n.corpus == nil || fragmentIndex < 0 || fragmentIndex >= len(n.corpus.Fragments) {
		return false
	}
	frag := n.corpus.Fragments[fragmentIndex]
	if frag.IsEmpty() {
		return false
	}

	if charOffset < 0 {
		charOffset = 0
	}
	if max := frag.Length(); charOffset > max {
		charOffset = max
	}

	if extend && n.active && n.anchor == nil {
		prev := n.position
		n.anchor = &prev
	}
	if !extend {
		n.anchor = nil
	}

	n.moveTo(model.SelectionEndpoint{
		PageNumber:    n.corpus.PageNumber,
		FragmentIndex: fragmentIndex,
		CharOffset:    charOffset,
	})
	return true
}

// Deactivate releases the caret, clears any anchor, and reverts the active
// fragment's editable marking.
func (n *Navigator) Deactivate() {
	if !n.active {
		return
	}
	n.markEditable(n.position.FragmentIndex, false)
	n.active = false
	n.anchor = nil
	if n.host != nil {
		n.host.ClearSelection()
	}
}

// HandleKey processes one key event and reports whether it was consumed.
// Inactive navigators consume nothing. While active, arrows, Home, End and
// Escape move or release the caret; plain printable keys are swallowed so
// the page text stays read-only, but control chords pass through to the
// host.
func (n *Navigator) HandleKey(ev platform.KeyEvent) bool {
	if !n.active {
		return false
	}

	switch ev.Key {
	case platform.KeyArrowLeft:
		n.step(ev.Shift(), n.leftOf(n.position))
	case platform.KeyArrowRight:
		n.step(ev.Shift(), n.rightOf(n.position))
	case platform.KeyArrowUp:
		n.step(ev.Shift(), n.verticalOf(n.position, -1))
	case platform.KeyArrowDown:
		n.step(ev.Shift(), n.verticalOf(n.position, 1))
	case platform.KeyHome:
		p := n.position
		p.CharOffset = 0
		n.step(ev.Shift(), p)
	case platform.KeyEnd:
		p := n.position
		p.CharOffset = n.corpus.Fragments[p.FragmentIndex].Length()
		n.step(ev.Shift(), p)
	case platform.KeyEscape:
		n.Deactivate()
	case platform.KeyRune:
		if ev.Modifiers.Has(platform.ModCtrl) {
			return false
		}
	default:
		return false
	}
	return true
}

// step moves the caret to a target position, managing the anchor for
// extension and publishing the resulting state.
func (n *Navigator) step(extend bool, to model.SelectionEndpoint) {
	if extend {
		if n.anchor == nil {
			prev := n.position
			n.anchor = &prev
		}
	} else {
		n.anchor = nil
	}
	n.moveTo(to)
}

func (n *Navigator) moveTo(to model.SelectionEndpoint) {
	if !n.active {
		n.active = true
		n.position = to
		n.markEditable(to.FragmentIndex, true)
	} else if to.FragmentIndex != n.position.FragmentIndex {
		n.markEditable(n.position.FragmentIndex, false)
		n.position = to
		n.markEditable(to.FragmentIndex, true)
	} else {
		n.position = to
	}
	n.publish()
}

// leftOf returns the position one step left, jumping to the end of the
// previous non-empty fragment at offset zero. At the page start the
// position is unchanged.
func (n *Navigator) leftOf(p model.SelectionEndpoint) model.SelectionEndpoint {
	if p.CharOffset > 0 {
		p.CharOffset--
		return p
	}
	idx := p.FragmentIndex - 1
	for idx >= 0 && n.corpus.Fragments[idx].IsEmpty() {
		idx--
	}
	if idx < 0 {
		return p
	}
	p.FragmentIndex = idx
	p.CharOffset = n.corpus.Fragments[idx].Length()
	return p
}

// rightOf returns the position one step right, jumping to the start of the
// next non-empty fragment past the current one's end. At the page end the
// position is unchanged.
func (n *Navigator) rightOf(p model.SelectionEndpoint) model.SelectionEndpoint {
	if p.CharOffset < n.corpus.Fragments[p.FragmentIndex].Length() {
		p.CharOffset++
		return p
	}
	idx := p.FragmentIndex + 1
	for idx < len(n.corpus.Fragments) && n.corpus.Fragments[idx].IsEmpty() {
		idx++
	}
	if idx >= len(n.corpus.Fragments) {
		return p
	}
	p.FragmentIndex = idx
	p.CharOffset = 0
	return p
}

// verticalOf returns the position in the best-scoring fragment above
// (dir < 0) or below (dir > 0) the current one, keeping the character
// offset clamped to the target's length. With no candidate the position is
// unchanged.
func (n *Navigator) verticalOf(p model.SelectionEndpoint, dir int) model.SelectionEndpoint {
	cur := n.corpus.Fragments[p.FragmentIndex].Rect

	best := -1
	bestScore := math.MaxFloat64
	for i, frag := range n.corpus.Fragments {
		if i == p.FragmentIndex || frag.IsEmpty() {
			continue
		}

		var vertical float64
		if dir > 0 {
			if frag.Rect.Top() <= cur.Bottom()-n.config.VerticalTolerance {
				continue
			}
			vertical = frag.Rect.Top() - cur.Bottom()
		} else {
			if frag.Rect.Bottom() >= cur.Top()+n.config.VerticalTolerance {
				continue
			}
			vertical = cur.Top() - frag.Rect.Bottom()
		}
		if vertical < 0 {
			vertical = 0
		}

		score := vertical*n.config.VerticalWeight + absFloat64(frag.Rect.Center().X-cur.Center().X)
		if score < bestScore {
			best = i
			bestScore = score
		}
	}
	if best < 0 {
		return p
	}

	p.FragmentIndex = best
	if max := n.corpus.Fragments[best].Length(); p.CharOffset > max {
		p.CharOffset = max
	}
	return p
}

func (n *Navigator) publish() {
	if n.host == nil {
		return
	}
	if n.anchor != nil {
		n.host.SetSelection(model.SelectionRange{Anchor: *n.anchor, Focus: n.position})
	} else {
		n.host.ClearSelection()
	}
}

func (n *Navigator) markEditable(fragmentIndex int, editable bool) {
	if n.host != nil {
		n.host.MarkEditable(n.corpus.PageNumber, fragmentIndex, editable)
	}
}

func absFloat64(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

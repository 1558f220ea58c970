// Package tcellevent adapts tcell terminal events to platform input
// events, letting a terminal UI drive search, selection and caret
// handling the same way an embedding application would.
package tcellevent

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/tsawler/textlayer/model"
	"github.com/tsawler/textlayer/platform"
)

// doubleClickWindow is the longest gap between two clicks on the same cell
// still treated as a double click.
const doubleClickWindow = 500 * time.Millisecond

// Locator maps terminal cell coordinates to a page number and page-local
// point. ok is false for cells outside every page.
type Locator func(x, y int) (pageNumber int, p model.Point, ok bool)

// Source translates tcell events and delivers them to the subscribed
// handler. The owning application keeps its own event loop and feeds
// every event through ProcessEvent.
type Source struct {
	locator Locator
	handler platform.Handler

	buttonDown    bool
	lastClickAt   time.Time
	lastClickCell [2]int
	lastCell      [2]int
}

var _ platform.InputEventSource = (*Source)(nil)

// NewSource creates an event source using locator to place pointer events
// on pages.
func NewSource(locator Locator) *Source {
	return &Source{locator: locator}
}

// Subscribe registers the handler for translated events, replacing any
// previous one
func (s *Source) Subscribe(h platform.Handler) {
	s.handler = h
}

// ProcessEvent translates one tcell event and dispatches it. It reports
// whether any handler consumed the event; unconsumed events stay with the
// caller for application-level shortcuts.
func (s *Source) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return s.processKey(ev)
	case *tcell.EventMouse:
		s.processMouse(ev)
		return true
	case *tcell.EventFocus:
		if !ev.Focused && s.handler != nil {
			s.handler.HandleFocusLost()
		}
		return true
	}
	return false
}

func (s *Source) processKey(ev *tcell.EventKey) bool {
	key := platform.KeyEvent{Modifiers: translateModifiers(ev.Modifiers())}

	switch ev.Key() {
	case tcell.KeyLeft:
		key.Key = platform.KeyArrowLeft
	case tcell.KeyRight:
		key.Key = platform.KeyArrowRight
	case tcell.KeyUp:
		key.Key = platform.KeyArrowUp
	case tcell.KeyDown:
		key.Key = platform.KeyArrowDown
	case tcell.KeyHome:
		key.Key = platform.KeyHome
	case tcell.KeyEnd:
		key.Key = platform.KeyEnd
	case tcell.KeyEscape:
		key.Key = platform.KeyEscape
	case tcell.KeyRune:
		key.Key = platform.KeyRune
		key.Rune = ev.Rune()
	default:
		return false
	}

	if s.handler == nil {
		return false
	}
	return s.handler.HandleKey(key)
}

func (s *Source) processMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	pressed := ev.Buttons()&tcell.Button1 != 0

	switch {
	case pressed && !s.buttonDown:
		s.buttonDown = true
		s.lastCell = [2]int{x, y}
		s.dispatchPointer(platform.PointerDown, x, y, s.clickCount(x, y), ev.Modifiers())
	case pressed && s.buttonDown:
		if cell := [2]int{x, y}; cell != s.lastCell {
			s.lastCell = cell
			s.dispatchPointer(platform.PointerMove, x, y, 0, ev.Modifiers())
		}
	case !pressed && s.buttonDown:
		s.buttonDown = false
		s.dispatchPointer(platform.PointerUp, x, y, 0, ev.Modifiers())
	}
}

// clickCount detects double clicks: a second press on the same cell within
// the click window.
func (s *Source) clickCount(x, y int) int {
	now := time.Now()
	cell := [2]int{x, y}

	count := 1
	if cell == s.lastClickCell && now.Sub(s.lastClickAt) <= doubleClickWindow {
		count = 2
	}
	s.lastClickAt = now
	s.lastClickCell = cell
	return count
}

func (s *Source) dispatchPointer(phase platform.PointerPhase, x, y, clickCount int, mods tcell.ModMask) {
	pageNumber, point := 0, model.Point{}
	if s.locator != nil {
		if page, p, ok := s.locator(x, y); ok {
			pageNumber, point = page, p
		}
	}

	if s.handler == nil {
		return
	}
	s.handler.HandlePointer(platform.PointerEvent{
		Phase:      phase,
		PageNumber: pageNumber,
		Point:      point,
		ClickCount: clickCount,
		Modifiers:  translateModifiers(mods),
	})
}

func translateModifiers(mods tcell.ModMask) platform.Modifiers {
	var out platform.Modifiers
	if mods&tcell.ModShift != 0 {
		out |= platform.ModShift
	}
	if mods&tcell.ModCtrl != 0 {
		out |= platform.ModCtrl
	}
	if mods&tcell.ModAlt != 0 {
		out |= platform.ModAlt
	}
	return out
}

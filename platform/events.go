package platform

import "github.com/tsawler/textlayer/model"

// Key identifies a navigation key the engine reacts to
type Key int

const (
	KeyNone Key = iota
	KeyArrowLeft
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeyHome
	KeyEnd
	KeyEscape
	// KeyRune is printable character input; the rune rides in KeyEvent.Rune
	KeyRune
)

// String returns a string representation of the key
func (k Key) String() string {
	switch k {
	case KeyArrowLeft:
		return "ArrowLeft"
	case KeyArrowRight:
		return "ArrowRight"
	case KeyArrowUp:
		return "ArrowUp"
	case KeyArrowDown:
		return "ArrowDown"
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	case KeyEscape:
		return "Escape"
	case KeyRune:
		return "Rune"
	default:
		return "None"
	}
}

// Modifiers is a bitmask of modifier keys held during an event
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
)

// Has checks if a modifier is present
func (m Modifiers) Has(mod Modifiers) bool {
	return m&mod != 0
}

// KeyEvent is one key press
type KeyEvent struct {
	Key       Key
	Rune      rune // set when Key is KeyRune
	Modifiers Modifiers
}

// Shift checks if the Shift modifier was held
func (e KeyEvent) Shift() bool {
	return e.Modifiers.Has(ModShift)
}

// PointerPhase distinguishes the stages of a pointer gesture
type PointerPhase int

const (
	PointerDown PointerPhase = iota
	PointerMove
	PointerUp
)

// PointerEvent is one pointer interaction, located on a page. The event
// source resolves raw device coordinates to a page number and a page-local
// point at reference scale before delivery.
type PointerEvent struct {
	Phase      PointerPhase
	PageNumber int // page under the pointer, 0 when unknown
	Point      model.Point
	ClickCount int // 1 for single click, 2 for double
	Modifiers  Modifiers
}

// Handler consumes engine-bound input events. The engine's session
// implements this interface; every reaction runs synchronously within the
// delivering call.
type Handler interface {
	// HandleKey reacts to a key press. The return value reports whether
	// the engine consumed the event; hosts should stop further platform
	// processing for consumed events.
	HandleKey(ev KeyEvent) bool

	// HandlePointer reacts to a pointer event
	HandlePointer(ev PointerEvent)

	// HandleSelectionChanged reacts to the platform's notification that
	// the active selection changed
	HandleSelectionChanged()

	// HandleFocusLost reacts to the text layer losing focus
	HandleFocusLost()
}

// InputEventSource delivers platform input to a subscribed handler. A
// source has at most one subscriber; subscribing again replaces the
// previous handler.
type InputEventSource interface {
	Subscribe(h Handler)
}

package input

import "typeahead/internal/domain"

// Key identifies the device keys the adapter cares about
type Key int

const (
	KeyOther Key = iota
	KeyTab
	KeyEnter
	KeyEscape
	KeySpace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// KeyEvent is a normalized key-down. Handlers that act on an intent call
// PreventDefault so the surface does not apply the key, and
// StopImmediatePropagation so no later handler or intent sees it.
type KeyEvent struct {
	Key   Key
	Shift bool
	Ctrl  bool

	defaultPrevented bool
	stopped          bool
}

func (e *KeyEvent) PreventDefault()                     { e.defaultPrevented = true }
func (e *KeyEvent) DefaultPrevented() bool              { return e.defaultPrevented }
func (e *KeyEvent) StopImmediatePropagation()           { e.stopped = true }
func (e *KeyEvent) IsImmediatePropagationStopped() bool { return e.stopped }

// Intent is the semantic meaning of a key-down
type Intent = domain.EventType

const (
	IntentOpen     Intent = "open"
	IntentClose    Intent = "close"
	IntentSelect   Intent = "select"
	IntentMoveUp   Intent = "moveUp"
	IntentMoveDown Intent = "moveDown"
	// emitted only when arrow autocomplete is enabled
	IntentLeftKeyed  Intent = "leftKeyed"
	IntentRightKeyed Intent = "rightKeyed"
)

// intentsFor maps a key-down to the ordered intents it produces
func intentsFor(e *KeyEvent, arrowKeys bool) []Intent {
	switch e.Key {
	case KeyTab:
		if e.Shift {
			return []Intent{IntentOpen, IntentMoveUp}
		}
		return []Intent{IntentOpen, IntentMoveDown}
	case KeyEnter:
		return []Intent{IntentSelect}
	case KeyEscape:
		return []Intent{IntentClose}
	case KeySpace:
		if e.Ctrl {
			return []Intent{IntentOpen}
		}
	case KeyUp:
		return []Intent{IntentMoveUp}
	case KeyDown:
		return []Intent{IntentMoveDown}
	case KeyLeft:
		if arrowKeys && !e.Shift && !e.Ctrl {
			return []Intent{IntentLeftKeyed}
		}
	case KeyRight:
		if arrowKeys && !e.Shift && !e.Ctrl {
			return []Intent{IntentRightKeyed}
		}
	}
	return nil
}

package input

import "typeahead/internal/domain"

// Events emitted by the input adapter
const (
	EventFocused           domain.EventType = "focused"
	EventBlurred           domain.EventType = "blurred"
	EventQueryChanged      domain.EventType = "queryChanged"
	EventWhitespaceChanged domain.EventType = "whitespaceChanged"
	EventLangDirChanged    domain.EventType = "langDirChanged"
	// EventCursorChange is triggered on the adapter by its owner to announce
	// the prospective active descendant
	EventCursorChange domain.EventType = "cursorchange"
)

type FocusedEvent struct{}

func (e FocusedEvent) Type() domain.EventType { return EventFocused }

type BlurredEvent struct{}

func (e BlurredEvent) Type() domain.EventType { return EventBlurred }

type QueryChangedEvent struct {
	Query string
}

func (e QueryChangedEvent) Type() domain.EventType { return EventQueryChanged }

type WhitespaceChangedEvent struct {
	Query string
}

func (e WhitespaceChangedEvent) Type() domain.EventType { return EventWhitespaceChanged }

type LangDirChangedEvent struct {
	Dir domain.LangDir
}

func (e LangDirChangedEvent) Type() domain.EventType { return EventLangDirChanged }

// CursorChangeEvent carries the id of the selectable about to gain the
// cursor, or "" when the cursor leaves the menu
type CursorChangeEvent struct {
	ID string
}

func (e CursorChangeEvent) Type() domain.EventType { return EventCursorChange }

// IntentEvent is a semantic intent derived from a key-down
type IntentEvent struct {
	Intent Intent
	Key    *KeyEvent
}

func (e IntentEvent) Type() domain.EventType { return e.Intent }

// IsPropagationStopped lets the bus skip later handlers once one acted
func (e IntentEvent) IsPropagationStopped() bool {
	return e.Key != nil && e.Key.IsImmediatePropagationStopped()
}

// Intercept marks the key as consumed: the surface must not apply it and no
// further handler or intent sees it
func (e IntentEvent) Intercept() {
	if e.Key == nil {
		return
	}
	e.Key.PreventDefault()
	e.Key.StopImmediatePropagation()
}

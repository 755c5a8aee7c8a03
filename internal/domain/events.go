package domain

// EventType represents the type of a notification
type EventType string

// Public notifications emitted by the typeahead controller
const (
	EventActive       EventType = "active"
	EventIdle         EventType = "idle"
	EventOpen         EventType = "open"
	EventClose        EventType = "close"
	EventSelect       EventType = "select"
	EventAutocomplete EventType = "autocomplete"
	EventCursorChange EventType = "cursorchange"
	EventRender       EventType = "render"
	EventChange       EventType = "change"
	EventAsyncRequest EventType = "asyncrequest"
	EventAsyncCancel  EventType = "asynccancel"
	EventAsyncReceive EventType = "asyncreceive"
)

// DomainEvent is the interface for all notifications carried by an event bus
type DomainEvent interface {
	Type() EventType
}

// ActiveEvent is emitted when the typeahead becomes active
type ActiveEvent struct{}

func (e ActiveEvent) Type() EventType { return EventActive }

// IdleEvent is emitted when the typeahead goes idle
type IdleEvent struct{}

func (e IdleEvent) Type() EventType { return EventIdle }

// OpenEvent is emitted when the menu opens
type OpenEvent struct{}

func (e OpenEvent) Type() EventType { return EventOpen }

// CloseEvent is emitted when the menu closes
type CloseEvent struct{}

func (e CloseEvent) Type() EventType { return EventClose }

// SelectEvent is emitted when a suggestion is selected
type SelectEvent struct {
	Suggestion any
	Dataset    string
}

func (e SelectEvent) Type() EventType { return EventSelect }

// AutocompleteEvent is emitted when the query is completed to a suggestion
type AutocompleteEvent struct {
	Suggestion any
	Dataset    string
}

func (e AutocompleteEvent) Type() EventType { return EventAutocomplete }

// CursorChangeEvent is emitted when the menu cursor moves.
// Suggestion is nil and Dataset is empty when the cursor leaves the menu.
type CursorChangeEvent struct {
	Suggestion any
	Dataset    string
}

func (e CursorChangeEvent) Type() EventType { return EventCursorChange }

// RenderEvent is emitted when a dataset renders suggestions
type RenderEvent struct {
	Suggestions []Suggestion
	Async       bool
	Dataset     string
}

func (e RenderEvent) Type() EventType { return EventRender }

// ChangeEvent is emitted on blur when the query changed since focus
type ChangeEvent struct {
	Query string
}

func (e ChangeEvent) Type() EventType { return EventChange }

// AsyncRequestEvent is emitted when a dataset starts an async fetch
type AsyncRequestEvent struct {
	Query   string
	Dataset string
}

func (e AsyncRequestEvent) Type() EventType { return EventAsyncRequest }

// AsyncCancelEvent is emitted when a pending async fetch is superseded
type AsyncCancelEvent struct {
	Query   string
	Dataset string
}

func (e AsyncCancelEvent) Type() EventType { return EventAsyncCancel }

// AsyncReceiveEvent is emitted when an async fetch delivers results
type AsyncReceiveEvent struct {
	Query   string
	Dataset string
}

func (e AsyncReceiveEvent) Type() EventType { return EventAsyncReceive }

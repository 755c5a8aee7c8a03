package typeahead

import (
	"typeahead/internal/domain"
	"typeahead/internal/eventbus"
)

// Menu owns suggestion rendering, the cursor within the menu, and the
// open/closed visibility. The controller treats IsOpen as ground truth.
//
// A Menu emits the events declared in package menu: selectableClicked,
// datasetCleared, datasetRendered, asyncRequested, asyncCanceled and
// asyncReceived.
type Menu interface {
	Bind()
	Subscribe(eventType domain.EventType, handler eventbus.EventHandler) func()

	// Update requests suggestions for query and reports whether the query
	// was new, meaning fresh data is on its way
	Update(query string) bool
	Open()
	Close()
	IsOpen() bool
	Empty()

	TopSelectable() domain.Selectable
	ActiveSelectable() domain.Selectable
	SelectableRelativeToCursor(delta int) domain.Selectable
	SetCursor(sel domain.Selectable)
	// SelectableData returns nil for a nil or unknown selectable
	SelectableData(sel domain.Selectable) *domain.Descriptor

	SetLanguageDirection(dir domain.LangDir)
	Destroy()
}

// Input is the part of the input adapter the controller drives
type Input interface {
	Bind()
	Subscribe(eventType domain.EventType, handler eventbus.EventHandler) func()
	Trigger(event domain.DomainEvent)

	Query() string
	SetQuery(value string, silent bool)
	InputValue() string
	ResetInputValue()
	SetHint(value string)
	ClearHint()
	HasOverflow() bool
	HasFocus() bool
	HasQueryChangedSinceLastFocus() bool
	IsCursorAtEnd() bool
	LangDir() domain.LangDir
	Destroy()
}

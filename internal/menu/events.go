package menu

import "typeahead/internal/domain"

// Events emitted by the menu
const (
	EventSelectableClicked domain.EventType = "selectableClicked"
	EventDatasetCleared    domain.EventType = "datasetCleared"
	EventDatasetRendered   domain.EventType = "datasetRendered"
	EventAsyncRequested    domain.EventType = "asyncRequested"
	EventAsyncCanceled     domain.EventType = "asyncCanceled"
	EventAsyncReceived     domain.EventType = "asyncReceived"
)

// SelectableClickedEvent is emitted when the user clicks a suggestion
type SelectableClickedEvent struct {
	Selectable domain.Selectable
}

func (e SelectableClickedEvent) Type() domain.EventType { return EventSelectableClicked }

// DatasetClearedEvent is emitted when a dataset has nothing to show
type DatasetClearedEvent struct {
	Dataset string
}

func (e DatasetClearedEvent) Type() domain.EventType { return EventDatasetCleared }

// DatasetRenderedEvent is emitted when a dataset renders suggestions.
// Async is true when the suggestions came from an async fetch.
type DatasetRenderedEvent struct {
	Dataset     string
	Suggestions []domain.Suggestion
	Async       bool
}

func (e DatasetRenderedEvent) Type() domain.EventType { return EventDatasetRendered }

type AsyncRequestedEvent struct {
	Dataset string
	Query   string
}

func (e AsyncRequestedEvent) Type() domain.EventType { return EventAsyncRequested }

type AsyncCanceledEvent struct {
	Dataset string
	Query   string
}

func (e AsyncCanceledEvent) Type() domain.EventType { return EventAsyncCanceled }

type AsyncReceivedEvent struct {
	Dataset string
	Query   string
}

func (e AsyncReceivedEvent) Type() domain.EventType { return EventAsyncReceived }

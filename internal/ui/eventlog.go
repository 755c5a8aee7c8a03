package ui

import (
	"fmt"
	"strings"
	"time"

	"typeahead/internal/config"
	"typeahead/internal/domain"
	"typeahead/internal/eventbus"
)

const maxLogEntries = 500

// EventLog keeps the most recent notifications seen on the bus for the
// event log pager
type EventLog struct {
	entries []string
	now     func() time.Time
}

// NewEventLog subscribes to every public notification on bus
func NewEventLog(bus eventbus.EventBus) *EventLog {
	l := &EventLog{now: time.Now}
	for _, et := range []domain.EventType{
		domain.EventActive, domain.EventIdle, domain.EventOpen, domain.EventClose,
		domain.EventSelect, domain.EventAutocomplete, domain.EventCursorChange,
		domain.EventRender, domain.EventChange, domain.EventAsyncRequest,
		domain.EventAsyncCancel, domain.EventAsyncReceive,
		config.EventConfigLoaded, config.EventConfigSaved,
	} {
		bus.Subscribe(et, l.record)
	}
	return l
}

func (l *EventLog) record(e domain.DomainEvent) {
	line := fmt.Sprintf("%s  %-13s %s", l.now().Format("15:04:05.000"), e.Type(), describe(e))
	l.entries = append(l.entries, strings.TrimRight(line, " "))
	if len(l.entries) > maxLogEntries {
		l.entries = l.entries[len(l.entries)-maxLogEntries:]
	}
}

// Entries returns the recorded lines, oldest first
func (l *EventLog) Entries() []string { return l.entries }

// String renders the log for the pager
func (l *EventLog) String() string {
	if len(l.entries) == 0 {
		return "no events yet\n"
	}
	return strings.Join(l.entries, "\n") + "\n"
}

func describe(e domain.DomainEvent) string {
	switch ev := e.(type) {
	case domain.SelectEvent:
		return fmt.Sprintf("%v (%s)", ev.Suggestion, ev.Dataset)
	case domain.AutocompleteEvent:
		return fmt.Sprintf("%v (%s)", ev.Suggestion, ev.Dataset)
	case domain.CursorChangeEvent:
		if ev.Suggestion == nil {
			return "(none)"
		}
		return fmt.Sprintf("%v (%s)", ev.Suggestion, ev.Dataset)
	case domain.RenderEvent:
		kind := "sync"
		if ev.Async {
			kind = "async"
		}
		return fmt.Sprintf("%d %s suggestions (%s)", len(ev.Suggestions), kind, ev.Dataset)
	case domain.ChangeEvent:
		return fmt.Sprintf("%q", ev.Query)
	case domain.AsyncRequestEvent:
		return fmt.Sprintf("%q (%s)", ev.Query, ev.Dataset)
	case domain.AsyncCancelEvent:
		return fmt.Sprintf("%q (%s)", ev.Query, ev.Dataset)
	case domain.AsyncReceiveEvent:
		return fmt.Sprintf("%q (%s)", ev.Query, ev.Dataset)
	case config.LoadedEvent:
		if ev.Path == "" {
			return fmt.Sprintf("defaults, %d datasets", ev.Datasets)
		}
		return fmt.Sprintf("%s, %d datasets", ev.Path, ev.Datasets)
	case config.SavedEvent:
		return ev.Path
	default:
		return ""
	}
}

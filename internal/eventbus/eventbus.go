package eventbus

import (
	"log"
	"runtime/debug"
	"sync"

	"typeahead/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// EventHandler is a function that handles events
type EventHandler func(DomainEvent)

// BeforeHandler inspects a pending transition. Returning true vetoes it.
type BeforeHandler func(DomainEvent) bool

// Stoppable is implemented by events whose delivery can be cut short by a
// handler (immediate propagation stop on a device event)
type Stoppable interface {
	IsPropagationStopped() bool
}

// EventBus is a synchronous publish/subscribe bus with veto hooks.
// Handlers run on the caller's goroutine, in subscription order, and complete
// before Trigger or Before returns.
type EventBus interface {
	// Before runs the veto hooks for event.Type() and reports whether any
	// of them vetoed the pending transition
	Before(event DomainEvent) bool
	// Trigger delivers event to the handlers subscribed to event.Type()
	Trigger(event DomainEvent)
	// Subscribe registers a handler and returns an unsubscribe function
	Subscribe(eventType EventType, handler EventHandler) func()
	// SubscribeBefore registers a veto hook and returns an unsubscribe function
	SubscribeBefore(eventType EventType, handler BeforeHandler) func()
	// Close drops every subscription
	Close()
}

type entry[H any] struct {
	id      uint64
	handler H
}

// bus is the concrete implementation of EventBus
type bus struct {
	name   string
	mu     sync.RWMutex
	nextID uint64
	on     map[EventType][]entry[EventHandler]
	before map[EventType][]entry[BeforeHandler]
	quiet  map[EventType]bool
}

// New creates a new event bus. The name prefixes log lines.
func New(name string) EventBus {
	return &bus{
		name:   name,
		on:     make(map[EventType][]entry[EventHandler]),
		before: make(map[EventType][]entry[BeforeHandler]),
		quiet: map[EventType]bool{
			// high-frequency notifications are not logged
			domain.EventCursorChange: true,
			domain.EventRender:       true,
		},
	}
}

// Before runs all veto hooks for the event. Every hook runs even after a veto.
func (b *bus) Before(event DomainEvent) bool {
	b.mu.RLock()
	hooks := make([]entry[BeforeHandler], len(b.before[event.Type()]))
	copy(hooks, b.before[event.Type()])
	b.mu.RUnlock()

	vetoed := false
	for _, h := range hooks {
		if b.callBefore(h.handler, event) {
			vetoed = true
		}
	}
	if vetoed {
		log.Printf("%s: before-%s vetoed", b.name, event.Type())
	}
	return vetoed
}

// Trigger delivers the event to all subscribers
func (b *bus) Trigger(event DomainEvent) {
	if !b.quiet[event.Type()] {
		log.Printf("%s: trigger %s", b.name, event.Type())
	}

	b.mu.RLock()
	handlers := make([]entry[EventHandler], len(b.on[event.Type()]))
	copy(handlers, b.on[event.Type()])
	b.mu.RUnlock()

	stoppable, _ := event.(Stoppable)
	for _, h := range handlers {
		b.call(h.handler, event)
		if stoppable != nil && stoppable.IsPropagationStopped() {
			break
		}
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.on[eventType] = append(b.on[eventType], entry[EventHandler]{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.on[eventType] = remove(b.on[eventType], id)
	}
}

// SubscribeBefore subscribes a veto hook to a transition type
// Returns an unsubscribe function
func (b *bus) SubscribeBefore(eventType EventType, handler BeforeHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.before[eventType] = append(b.before[eventType], entry[BeforeHandler]{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.before[eventType] = remove(b.before[eventType], id)
	}
}

func (b *bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.on = make(map[EventType][]entry[EventHandler])
	b.before = make(map[EventType][]entry[BeforeHandler])
}

func (b *bus) call(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("%s: handler panic for %s: %v\nStack: %s", b.name, event.Type(), r, debug.Stack())
		}
	}()
	h(event)
}

// callBefore treats a panicking hook as not vetoing
func (b *bus) callBefore(h BeforeHandler, event DomainEvent) (vetoed bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("%s: before hook panic for %s: %v\nStack: %s", b.name, event.Type(), r, debug.Stack())
			vetoed = false
		}
	}()
	return h(event)
}

func remove[H any](entries []entry[H], id uint64) []entry[H] {
	for i, e := range entries {
		if e.id == id {
			out := make([]entry[H], 0, len(entries)-1)
			out = append(out, entries[:i]...)
			return append(out, entries[i+1:]...)
		}
	}
	return entries
}

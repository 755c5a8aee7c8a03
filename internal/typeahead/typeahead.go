package typeahead

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"typeahead/internal/domain"
	"typeahead/internal/eventbus"
	"typeahead/internal/input"
	"typeahead/internal/menu"
)

// DefaultMinLength is the query length at which suggestions are requested
const DefaultMinLength = 1

var (
	ErrMissingInput    = errors.New("missing input")
	ErrMissingMenu     = errors.New("missing menu")
	ErrMissingEventBus = errors.New("missing event bus")
)

// Option customizes a Typeahead
type Option func(*Typeahead)

// WithMinLength sets the minimum query length before suggestions are fetched
func WithMinLength(n int) Option {
	return func(t *Typeahead) {
		if n >= 0 {
			t.minLength = n
		}
	}
}

// Typeahead is the controller coordinating the input adapter and the menu.
// It owns the activation state and the intent to open or close the menu,
// and reports every observable transition through the event bus, each one
// preceded by a vetoable before-hook.
type Typeahead struct {
	input     Input
	menu      Menu
	bus       eventbus.EventBus
	minLength int

	enabled bool
	active  bool
	dir     domain.LangDir

	unsubscribe []func()
}

// New wires a controller to its collaborators. The input and menu are bound
// here; the caller must not bind them again. A nil *input.Input or
// *menu.Menu counts as missing.
func New(in Input, m Menu, bus eventbus.EventBus, opts ...Option) (*Typeahead, error) {
	if p, ok := in.(*input.Input); in == nil || ok && p == nil {
		return nil, fmt.Errorf("failed to create typeahead: %w", ErrMissingInput)
	}
	if p, ok := m.(*menu.Menu); m == nil || ok && p == nil {
		return nil, fmt.Errorf("failed to create typeahead: %w", ErrMissingMenu)
	}
	if bus == nil {
		return nil, fmt.Errorf("failed to create typeahead: %w", ErrMissingEventBus)
	}

	t := &Typeahead{
		input:     in,
		menu:      m,
		bus:       bus,
		minLength: DefaultMinLength,
		enabled:   true,
	}
	for _, opt := range opts {
		opt(t)
	}

	// activate on init if the input already has focus
	if t.input.HasFocus() {
		t.Activate()
	}

	t.dir = t.input.LangDir()

	t.menu.Bind()
	t.unsubscribe = append(t.unsubscribe,
		t.menu.Subscribe(menu.EventSelectableClicked, t.onSelectableClicked),
		t.menu.Subscribe(menu.EventDatasetCleared, t.onDatasetCleared),
		t.menu.Subscribe(menu.EventDatasetRendered, t.onDatasetRendered),
		t.menu.Subscribe(menu.EventAsyncRequested, t.onAsyncRequested),
		t.menu.Subscribe(menu.EventAsyncCanceled, t.onAsyncCanceled),
		t.menu.Subscribe(menu.EventAsyncReceived, t.onAsyncReceived),
	)

	t.input.Bind()
	t.unsubscribe = append(t.unsubscribe,
		t.input.Subscribe(input.EventFocused, t.onFocused),
		t.input.Subscribe(input.EventBlurred, t.onBlurred),
		t.input.Subscribe(input.IntentSelect, t.onSelect),
		t.input.Subscribe(input.IntentOpen, t.onOpen),
		t.input.Subscribe(input.IntentClose, t.onClose),
		t.input.Subscribe(input.IntentMoveUp, t.onMoveUp),
		t.input.Subscribe(input.IntentMoveDown, t.onMoveDown),
		t.input.Subscribe(input.IntentLeftKeyed, t.onLeftKeyed),
		t.input.Subscribe(input.IntentRightKeyed, t.onRightKeyed),
		t.input.Subscribe(input.EventQueryChanged, t.onQueryChanged),
		t.input.Subscribe(input.EventWhitespaceChanged, t.onWhitespaceChanged),
		t.input.Subscribe(input.EventLangDirChanged, t.onLangDirChanged),
	)

	return t, nil
}

// menu event handlers

func (t *Typeahead) onSelectableClicked(e domain.DomainEvent) {
	if ev, ok := e.(menu.SelectableClickedEvent); ok {
		t.Select(ev.Selectable)
	}
}

func (t *Typeahead) onDatasetCleared(domain.DomainEvent) {
	t.updateHint()
}

func (t *Typeahead) onDatasetRendered(e domain.DomainEvent) {
	ev, ok := e.(menu.DatasetRenderedEvent)
	if !ok {
		return
	}
	t.updateHint()
	t.MoveCursor(0)
	t.bus.Trigger(domain.RenderEvent{Suggestions: ev.Suggestions, Async: ev.Async, Dataset: ev.Dataset})
}

func (t *Typeahead) onAsyncRequested(e domain.DomainEvent) {
	if ev, ok := e.(menu.AsyncRequestedEvent); ok {
		t.bus.Trigger(domain.AsyncRequestEvent{Query: ev.Query, Dataset: ev.Dataset})
	}
}

func (t *Typeahead) onAsyncCanceled(e domain.DomainEvent) {
	if ev, ok := e.(menu.AsyncCanceledEvent); ok {
		t.bus.Trigger(domain.AsyncCancelEvent{Query: ev.Query, Dataset: ev.Dataset})
	}
}

func (t *Typeahead) onAsyncReceived(e domain.DomainEvent) {
	if ev, ok := e.(menu.AsyncReceivedEvent); ok {
		t.bus.Trigger(domain.AsyncReceiveEvent{Query: ev.Query, Dataset: ev.Dataset})
	}
}

// input event handlers

func (t *Typeahead) onFocused(domain.DomainEvent) {
	if t.Activate() && t.minLengthMet(t.input.Query()) {
		t.menu.Update(t.input.Query())
	}
}

func (t *Typeahead) onBlurred(domain.DomainEvent) {
	if t.Deactivate() && t.input.HasQueryChangedSinceLastFocus() {
		t.bus.Trigger(domain.ChangeEvent{Query: t.input.Query()})
	}
}

func (t *Typeahead) onSelect(e domain.DomainEvent) {
	if !t.IsActive() || !t.IsOpen() {
		return
	}
	sel := t.menu.ActiveSelectable()
	if sel == nil {
		return
	}
	if t.Select(sel) {
		intercept(e)
	}
}

func (t *Typeahead) onOpen(e domain.DomainEvent) {
	if t.IsActive() && !t.IsOpen() {
		t.Open()
		intercept(e)
	}
}

func (t *Typeahead) onClose(e domain.DomainEvent) {
	if t.IsActive() {
		t.Close()
		intercept(e)
	}
}

func (t *Typeahead) onMoveUp(e domain.DomainEvent) {
	if t.IsActive() && t.IsOpen() {
		t.MoveCursor(-1)
		intercept(e)
	}
}

func (t *Typeahead) onMoveDown(e domain.DomainEvent) {
	if t.IsActive() && t.IsOpen() {
		t.MoveCursor(+1)
		intercept(e)
	}
}

func (t *Typeahead) onLeftKeyed(e domain.DomainEvent) {
	if t.dir == domain.RTL && t.input.IsCursorAtEnd() {
		t.autocompleteFromMenu(e)
	}
}

func (t *Typeahead) onRightKeyed(e domain.DomainEvent) {
	if t.dir != domain.RTL && t.input.IsCursorAtEnd() {
		t.autocompleteFromMenu(e)
	}
}

func (t *Typeahead) autocompleteFromMenu(e domain.DomainEvent) {
	if !t.IsActive() || !t.IsOpen() {
		return
	}
	sel := t.menu.ActiveSelectable()
	if sel == nil {
		sel = t.menu.TopSelectable()
	}
	if sel != nil && t.Autocomplete(sel) {
		intercept(e)
	}
}

func (t *Typeahead) onQueryChanged(e domain.DomainEvent) {
	ev, ok := e.(input.QueryChangedEvent)
	if !ok || !t.IsActive() || !t.IsOpen() {
		return
	}
	if t.minLengthMet(ev.Query) {
		t.menu.Update(ev.Query)
	} else {
		t.menu.Empty()
		t.Close()
	}
}

func (t *Typeahead) onWhitespaceChanged(domain.DomainEvent) {
	if t.IsActive() && t.Open() {
		t.updateHint()
	}
}

func (t *Typeahead) onLangDirChanged(e domain.DomainEvent) {
	ev, ok := e.(input.LangDirChangedEvent)
	if !ok {
		return
	}
	if t.dir != ev.Dir {
		t.dir = ev.Dir
		t.menu.SetLanguageDirection(ev.Dir)
	}
}

func intercept(e domain.DomainEvent) {
	if ev, ok := e.(input.IntentEvent); ok {
		ev.Intercept()
	}
}

func (t *Typeahead) minLengthMet(query string) bool {
	return utf8.RuneCountInString(query) >= t.minLength
}

// updateHint ghost-completes the raw input with the top suggestion, keeping
// the typed portion exactly as the user entered it
func (t *Typeahead) updateHint() {
	data := t.menu.SelectableData(t.menu.TopSelectable())
	val := t.input.InputValue()

	if data == nil || isBlank(val) || t.input.HasOverflow() {
		t.input.ClearHint()
		return
	}

	query := input.NormalizeQuery(val)
	frontMatch, err := regexp.Compile(`(?i)^(?:` + regexp.QuoteMeta(query) + `)(.+)$`)
	if err != nil {
		t.input.ClearHint()
		return
	}
	match := frontMatch.FindStringSubmatch(data.Value)
	if match == nil {
		t.input.ClearHint()
		return
	}
	t.input.SetHint(val + match[1])
}

func isBlank(s string) bool {
	return strings.TrimFunc(s, unicode.IsSpace) == ""
}

// IsEnabled reports whether activation is allowed
func (t *Typeahead) IsEnabled() bool { return t.enabled }

// Enable allows activation
func (t *Typeahead) Enable() { t.enabled = true }

// Disable refuses future activation. An active instance stays active.
func (t *Typeahead) Disable() { t.enabled = false }

// IsActive reports whether the typeahead takes part in keyboard navigation
func (t *Typeahead) IsActive() bool { return t.active }

// Activate moves Idle to Active. It returns false when disabled or vetoed.
func (t *Typeahead) Activate() bool {
	if t.IsActive() {
		return true
	}
	if !t.IsEnabled() || t.bus.Before(domain.ActiveEvent{}) {
		return false
	}
	t.active = true
	t.bus.Trigger(domain.ActiveEvent{})
	return true
}

// Deactivate moves Active to Idle, closing the menu. It returns false when
// vetoed. The before-idle hook authorizes the close as well, so
// before-close is not consulted here.
func (t *Typeahead) Deactivate() bool {
	if !t.IsActive() {
		return true
	}
	if t.bus.Before(domain.IdleEvent{}) {
		return false
	}
	t.active = false
	if t.IsOpen() {
		t.closeMenu()
	}
	t.bus.Trigger(domain.IdleEvent{})
	return true
}

// IsOpen reports whether the menu is open
func (t *Typeahead) IsOpen() bool { return t.menu.IsOpen() }

// Open opens the menu for the current query and returns whether it is open
func (t *Typeahead) Open() bool {
	if !t.IsOpen() && !t.bus.Before(domain.OpenEvent{}) {
		t.menu.Update(t.input.Query())
		t.menu.Open()
		t.updateHint()
		t.bus.Trigger(domain.OpenEvent{})
	}
	return t.IsOpen()
}

// Close closes the menu and returns whether it is closed
func (t *Typeahead) Close() bool {
	if t.IsOpen() && !t.bus.Before(domain.CloseEvent{}) {
		t.closeMenu()
	}
	return !t.IsOpen()
}

func (t *Typeahead) closeMenu() {
	t.menu.Close()
	t.input.ClearHint()
	// rewriting an unchanged field would still move the caret
	if t.input.InputValue() != t.input.Query() {
		t.input.ResetInputValue()
	}
	t.bus.Trigger(domain.CloseEvent{})
}

// Val returns the committed query
func (t *Typeahead) Val() string { return t.input.Query() }

// SetVal commits val, coerced to a string, as the query
func (t *Typeahead) SetVal(val any) {
	t.input.SetQuery(toStr(val), false)
}

func toStr(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}

// Select commits the selectable's value as the query without a change
// notification, then closes the menu. It returns false when the selectable
// has no data or the selection is vetoed.
func (t *Typeahead) Select(sel domain.Selectable) bool {
	data := t.menu.SelectableData(sel)
	if data == nil {
		return false
	}
	if t.bus.Before(domain.SelectEvent{Suggestion: data.Object, Dataset: data.Dataset}) {
		return false
	}

	t.input.SetQuery(data.Value, true)
	t.bus.Trigger(domain.SelectEvent{Suggestion: data.Object, Dataset: data.Dataset})
	t.Close()
	return true
}

// Autocomplete replaces the query with the selectable's value, keeping the
// menu open. It returns false when there is nothing to complete or it is
// vetoed.
func (t *Typeahead) Autocomplete(sel domain.Selectable) bool {
	data := t.menu.SelectableData(sel)
	if data == nil || t.input.Query() == data.Value {
		return false
	}
	if t.bus.Before(domain.AutocompleteEvent{Suggestion: data.Object, Dataset: data.Dataset}) {
		return false
	}

	t.input.SetQuery(data.Value, false)
	t.bus.Trigger(domain.AutocompleteEvent{Suggestion: data.Object, Dataset: data.Dataset})
	return true
}

// MoveCursor moves the menu cursor by delta. The input always learns the
// prospective descendant; the move itself is dropped when fresh suggestions
// are on their way or the move is vetoed.
func (t *Typeahead) MoveCursor(delta int) bool {
	query := t.input.Query()

	candidate := t.menu.SelectableRelativeToCursor(delta)
	data := t.menu.SelectableData(candidate)

	var (
		suggestion any
		dataset    string
		id         string
	)
	if data != nil {
		suggestion = data.Object
		dataset = data.Dataset
	}
	if candidate != nil {
		id = candidate.ID()
	}
	t.input.Trigger(input.CursorChangeEvent{ID: id})

	// a new query means new suggestions are coming; moving within the stale
	// list would be lost
	if t.minLengthMet(query) && t.menu.Update(query) {
		return false
	}
	if t.bus.Before(domain.CursorChangeEvent{Suggestion: suggestion, Dataset: dataset}) {
		return false
	}

	t.menu.SetCursor(candidate)
	t.bus.Trigger(domain.CursorChangeEvent{Suggestion: suggestion, Dataset: dataset})
	return true
}

// Destroy tears down the input and menu and drops the controller's
// subscriptions
func (t *Typeahead) Destroy() {
	for _, u := range t.unsubscribe {
		u()
	}
	t.unsubscribe = nil
	t.input.Destroy()
	t.menu.Destroy()
}

package input

import (
	"errors"
	"fmt"

	"github.com/mattn/go-runewidth"

	"typeahead/internal/domain"
	"typeahead/internal/eventbus"
)

// DefaultOverflowMargin is the safety margin, in cells, kept between the
// typed text and the right edge of the surface before a hint is suppressed
const DefaultOverflowMargin = 2

// ErrMissingSurface is returned when no primary text surface is supplied
var ErrMissingSurface = errors.New("input is missing")

// Options configures an Input
type Options struct {
	Surface Surface
	// Hint is optional; without it every hint operation is a no-op
	Hint HintSurface
	// OverflowMargin defaults to DefaultOverflowMargin when not positive
	OverflowMargin int
	// ArrowAutocomplete makes Left/Right emit leftKeyed/rightKeyed intents
	ArrowAutocomplete bool
	// DecoupledQuery keeps SetQuery from writing to the surface and skips
	// the reset of the surface on blur
	DecoupledQuery bool
}

// Input owns the text surface and the hint surface. It is the single source
// of truth for the committed query and translates device events into
// semantic events on its own bus.
type Input struct {
	bus     eventbus.EventBus
	surface Surface
	hint    HintSurface
	probe   *overflowProbe

	query            string
	queryWhenFocused *string
	dir              domain.LangDir

	margin    int
	arrowKeys bool
	decoupled bool

	bound  bool
	detach []func()
}

// New creates an input adapter over the given surfaces
func New(opts Options) (*Input, error) {
	if opts.Surface == nil {
		return nil, fmt.Errorf("failed to create input: %w", ErrMissingSurface)
	}

	i := &Input{
		bus:       eventbus.New("Input"),
		surface:   opts.Surface,
		hint:      opts.Hint,
		margin:    opts.OverflowMargin,
		arrowKeys: opts.ArrowAutocomplete,
		decoupled: opts.DecoupledQuery,
	}
	if i.margin <= 0 {
		i.margin = DefaultOverflowMargin
	}

	// the query defaults to whatever the surface holds on construction
	i.query = i.surface.Value()
	if i.surface.Focused() {
		q := i.query
		i.queryWhenFocused = &q
	}

	i.probe = newOverflowProbe()
	i.checkLanguageDirection()

	i.detach = append(i.detach, i.bus.Subscribe(EventCursorChange, func(e domain.DomainEvent) {
		if ev, ok := e.(CursorChangeEvent); ok {
			i.surface.SetActiveDescendant(ev.ID)
		}
	}))

	return i, nil
}

// Subscribe registers a handler for one of the adapter's events
func (i *Input) Subscribe(eventType domain.EventType, handler eventbus.EventHandler) func() {
	return i.bus.Subscribe(eventType, handler)
}

// Trigger emits an event on the adapter's bus
func (i *Input) Trigger(event domain.DomainEvent) {
	i.bus.Trigger(event)
}

// Bind attaches the device listeners. Calling it more than once has no
// further effect.
func (i *Input) Bind() {
	if i.bound {
		return
	}
	i.bound = true
	i.detach = append(i.detach,
		i.surface.OnBlur(i.onBlur),
		i.surface.OnFocus(i.onFocus),
		i.surface.OnKeyDown(i.onKeyDown),
		i.surface.OnTextChange(i.onTextChange),
	)
}

func (i *Input) onBlur() {
	if !i.decoupled {
		i.ResetInputValue()
	}
	i.bus.Trigger(BlurredEvent{})
}

func (i *Input) onFocus() {
	q := i.query
	i.queryWhenFocused = &q
	i.bus.Trigger(FocusedEvent{})
}

func (i *Input) onKeyDown(e *KeyEvent) {
	for _, intent := range intentsFor(e, i.arrowKeys) {
		i.bus.Trigger(IntentEvent{Intent: intent, Key: e})
		if e.IsImmediatePropagationStopped() {
			break
		}
	}
}

func (i *Input) onTextChange() {
	i.setQuery(i.InputValue(), false)
	i.ClearHintIfInvalid()
	i.checkLanguageDirection()
}

func (i *Input) checkLanguageDirection() {
	dir := i.surface.Direction()
	if dir == "" {
		dir = domain.LTR
	}
	if i.dir != dir {
		i.dir = dir
		if i.hint != nil {
			i.hint.SetDirection(dir)
		}
		i.bus.Trigger(LangDirChangedEvent{Dir: dir})
	}
}

func (i *Input) setQuery(value string, silent bool) {
	equivalent := areQueriesEquivalent(value, i.query)
	whitespaceOnly := equivalent && len(i.query) != len(value)

	i.query = value

	switch {
	case silent:
	case !equivalent:
		i.bus.Trigger(QueryChangedEvent{Query: value})
	case whitespaceOnly:
		i.bus.Trigger(WhitespaceChangedEvent{Query: value})
	}
}

// Focus focuses the surface
func (i *Input) Focus() { i.surface.Focus() }

// Blur blurs the surface
func (i *Input) Blur() { i.surface.Blur() }

// LangDir returns the cached text direction
func (i *Input) LangDir() domain.LangDir { return i.dir }

// Query returns the committed query
func (i *Input) Query() string { return i.query }

// SetQuery commits a new query. Unless silent, a queryChanged or
// whitespaceChanged notification follows when the value differs.
func (i *Input) SetQuery(value string, silent bool) {
	if !i.decoupled {
		i.SetInputValue(value)
	}
	i.setQuery(value, silent)
}

// HasQueryChangedSinceLastFocus supports the change notification on blur
func (i *Input) HasQueryChangedSinceLastFocus() bool {
	return i.queryWhenFocused == nil || *i.queryWhenFocused != i.query
}

// InputValue returns the raw text on the surface
func (i *Input) InputValue() string { return i.surface.Value() }

// SetInputValue writes raw text to the surface without committing it
func (i *Input) SetInputValue(value string) {
	i.surface.SetValue(value)
	i.ClearHintIfInvalid()
	i.checkLanguageDirection()
}

// ResetInputValue discards uncommitted edits on the surface
func (i *Input) ResetInputValue() {
	i.SetInputValue(i.query)
}

func (i *Input) Hint() string {
	if i.hint == nil {
		return ""
	}
	return i.hint.Value()
}

func (i *Input) SetHint(value string) {
	if i.hint == nil {
		return
	}
	i.hint.SetValue(value)
}

func (i *Input) ClearHint() {
	i.SetHint("")
}

// ClearHintIfInvalid clears the hint unless the raw value is a non-empty
// strict prefix of it and the text does not overflow the surface
func (i *Input) ClearHintIfInvalid() {
	if i.hint == nil {
		return
	}
	val := i.InputValue()
	hint := i.Hint()
	valIsPrefixOfHint := val != hint && len(hint) > len(val) && hint[:len(val)] == val
	valid := val != "" && valIsPrefixOfHint && !i.HasOverflow()
	if !valid {
		i.ClearHint()
	}
}

// HasOverflow reports whether the raw value fills the visible width of the
// surface, in which case a hint would be clipped
func (i *Input) HasOverflow() bool {
	if i.probe == nil {
		return false
	}
	constraint := i.surface.Width() - i.margin
	return i.probe.measure(i.InputValue()) >= constraint
}

// HasFocus reflects the live focus state of the surface
func (i *Input) HasFocus() bool { return i.surface.Focused() }

// IsCursorAtEnd reports whether the caret is after the last character
func (i *Input) IsCursorAtEnd() bool { return i.surface.CursorAtEnd() }

// Destroy detaches every listener and releases the surfaces
func (i *Input) Destroy() {
	for _, d := range i.detach {
		d()
	}
	i.detach = nil
	i.bus.Close()
	i.probe = nil
	i.surface = nullSurface{}
	i.hint = nil
}

// overflowProbe measures rendered text width the way the terminal will draw it
type overflowProbe struct {
	cond *runewidth.Condition
}

func newOverflowProbe() *overflowProbe {
	return &overflowProbe{cond: runewidth.NewCondition()}
}

func (p *overflowProbe) measure(text string) int {
	return p.cond.StringWidth(text)
}

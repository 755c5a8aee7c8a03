// Package inputtest provides in-memory surfaces for exercising the input
// adapter without a terminal.
package inputtest

import (
	"maps"
	"slices"

	"typeahead/internal/domain"
	"typeahead/internal/input"
)

// Surface is an in-memory input.Surface. Type, Press, Focus and Blur
// simulate the user; SetValue does not fire text-change listeners and,
// like the terminal field, leaves the caret at the end.
type Surface struct {
	ElementID  string
	Text       string
	HasFocus   bool
	Dir        domain.LangDir
	Cols       int
	Caret      int // -1 means end of text
	Descendant string
	Writes     int // SetValue calls

	focus      map[int]func()
	blur       map[int]func()
	keyDown    map[int]func(*input.KeyEvent)
	textChange map[int]func()
	next       int
}

// NewSurface returns a surface 80 cells wide holding value
func NewSurface(value string) *Surface {
	return &Surface{
		ElementID:  "search",
		Text:       value,
		Dir:        domain.LTR,
		Cols:       80,
		Caret:      -1,
		focus:      make(map[int]func()),
		blur:       make(map[int]func()),
		keyDown:    make(map[int]func(*input.KeyEvent)),
		textChange: make(map[int]func()),
	}
}

func (s *Surface) ID() string                    { return s.ElementID }
func (s *Surface) Value() string                 { return s.Text }
func (s *Surface) Focused() bool                 { return s.HasFocus }
func (s *Surface) Direction() domain.LangDir     { return s.Dir }
func (s *Surface) Width() int                    { return s.Cols }
func (s *Surface) CursorAtEnd() bool             { return s.Caret < 0 || s.Caret >= len([]rune(s.Text)) }
func (s *Surface) SetActiveDescendant(id string) { s.Descendant = id }

func (s *Surface) SetValue(v string) {
	s.Text = v
	s.Caret = -1
	s.Writes++
}

func (s *Surface) Focus() {
	if s.HasFocus {
		return
	}
	s.HasFocus = true
	for _, fn := range sorted(s.focus) {
		fn()
	}
}

func (s *Surface) Blur() {
	if !s.HasFocus {
		return
	}
	s.HasFocus = false
	for _, fn := range sorted(s.blur) {
		fn()
	}
}

// Type replaces the text as if the user edited it
func (s *Surface) Type(text string) {
	s.Text = text
	for _, fn := range sorted(s.textChange) {
		fn()
	}
}

// Press delivers a key-down and returns the event for inspection
func (s *Surface) Press(key input.Key, mods ...string) *input.KeyEvent {
	e := &input.KeyEvent{Key: key}
	for _, m := range mods {
		switch m {
		case "shift":
			e.Shift = true
		case "ctrl":
			e.Ctrl = true
		}
	}
	for _, k := range sortedKeys(s.keyDown) {
		if fn, ok := s.keyDown[k]; ok {
			fn(e)
		}
	}
	return e
}

// Listeners reports how many device listeners are attached
func (s *Surface) Listeners() int {
	return len(s.focus) + len(s.blur) + len(s.keyDown) + len(s.textChange)
}

func (s *Surface) OnFocus(fn func()) func()      { return s.add(s.focus, fn) }
func (s *Surface) OnBlur(fn func()) func()       { return s.add(s.blur, fn) }
func (s *Surface) OnTextChange(fn func()) func() { return s.add(s.textChange, fn) }

func (s *Surface) OnKeyDown(fn func(*input.KeyEvent)) func() {
	s.next++
	id := s.next
	s.keyDown[id] = fn
	return func() { delete(s.keyDown, id) }
}

func (s *Surface) add(m map[int]func(), fn func()) func() {
	s.next++
	id := s.next
	m[id] = fn
	return func() { delete(m, id) }
}

func sorted(m map[int]func()) []func() {
	out := make([]func(), 0, len(m))
	for _, k := range sortedKeys(m) {
		out = append(out, m[k])
	}
	return out
}

func sortedKeys[V any](m map[int]V) []int {
	return slices.Sorted(maps.Keys(m))
}

// Hint is an in-memory input.HintSurface
type Hint struct {
	Text string
	Dir  domain.LangDir
}

func (h *Hint) Value() string                   { return h.Text }
func (h *Hint) SetValue(v string)               { h.Text = v }
func (h *Hint) SetDirection(dir domain.LangDir) { h.Dir = dir }

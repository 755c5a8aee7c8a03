package ui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/unicode/bidi"

	"typeahead/internal/domain"
	"typeahead/internal/input"
)

type listener[F any] struct {
	id int
	fn F
}

type listeners[F any] struct {
	next    int
	entries []listener[F]
}

func (l *listeners[F]) add(fn F) func() {
	l.next++
	id := l.next
	l.entries = append(l.entries, listener[F]{id: id, fn: fn})
	return func() {
		for i, e := range l.entries {
			if e.id == id {
				l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
				return
			}
		}
	}
}

func (l *listeners[F]) snapshot() []F {
	out := make([]F, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.fn
	}
	return out
}

// TextSurface is the terminal text field the input adapter drives. Editing
// is delegated to a bubbles textinput; key-downs are offered to listeners
// first and only reach the textinput when no listener prevented them.
type TextSurface struct {
	id         string
	ti         textinput.Model
	width      int
	fallback   domain.LangDir
	descendant string

	focus      listeners[func()]
	blur       listeners[func()]
	keyDown    listeners[func(*input.KeyEvent)]
	textChange listeners[func()]
}

// NewTextSurface creates an unfocused surface. width is the visible text
// width in cells.
func NewTextSurface(id, placeholder string, width int) *TextSurface {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	// the caret is drawn by the view
	ti.Cursor.SetMode(cursor.CursorHide)
	return &TextSurface{
		id:       id,
		ti:       ti,
		width:    width,
		fallback: domain.LTR,
	}
}

func (s *TextSurface) ID() string    { return s.id }
func (s *TextSurface) Value() string { return s.ti.Value() }

// SetValue replaces the text and moves the caret to the end. Listeners are
// not notified.
func (s *TextSurface) SetValue(v string) {
	s.ti.SetValue(v)
	s.ti.CursorEnd()
}

func (s *TextSurface) Focused() bool { return s.ti.Focused() }

func (s *TextSurface) Focus() {
	if s.ti.Focused() {
		return
	}
	s.ti.Focus()
	for _, fn := range s.focus.snapshot() {
		fn()
	}
}

func (s *TextSurface) Blur() {
	if !s.ti.Focused() {
		return
	}
	s.ti.Blur()
	for _, fn := range s.blur.snapshot() {
		fn()
	}
}

// Direction follows the first strong character of the text, falling back
// to the configured direction when there is none
func (s *TextSurface) Direction() domain.LangDir {
	for _, r := range s.ti.Value() {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.L:
			return domain.LTR
		case bidi.R, bidi.AL:
			return domain.RTL
		}
	}
	return s.fallback
}

// SetFallbackDirection sets the direction used for text without strong
// characters
func (s *TextSurface) SetFallbackDirection(dir domain.LangDir) { s.fallback = dir }

func (s *TextSurface) Width() int { return s.width }

func (s *TextSurface) SetWidth(width int) { s.width = width }

// Position is the caret offset in runes
func (s *TextSurface) Position() int { return s.ti.Position() }

func (s *TextSurface) CursorAtEnd() bool {
	return s.ti.Position() >= len([]rune(s.ti.Value()))
}

func (s *TextSurface) SetActiveDescendant(id string) { s.descendant = id }

// ActiveDescendant is the id of the menu entry under the cursor, if any
func (s *TextSurface) ActiveDescendant() string { return s.descendant }

// Placeholder is shown while the surface is empty
func (s *TextSurface) Placeholder() string { return s.ti.Placeholder }

func (s *TextSurface) OnFocus(fn func()) func()      { return s.focus.add(fn) }
func (s *TextSurface) OnBlur(fn func()) func()       { return s.blur.add(fn) }
func (s *TextSurface) OnTextChange(fn func()) func() { return s.textChange.add(fn) }

func (s *TextSurface) OnKeyDown(fn func(*input.KeyEvent)) func() {
	return s.keyDown.add(fn)
}

// HandleKey delivers a key press. The returned event tells whether a
// listener consumed it.
func (s *TextSurface) HandleKey(msg tea.KeyMsg) (*input.KeyEvent, tea.Cmd) {
	ev := translateKey(msg)
	for _, fn := range s.keyDown.snapshot() {
		fn(ev)
		if ev.IsImmediatePropagationStopped() {
			break
		}
	}
	if ev.DefaultPrevented() {
		return ev, nil
	}

	before := s.ti.Value()
	var cmd tea.Cmd
	s.ti, cmd = s.ti.Update(msg)
	if s.ti.Value() != before {
		for _, fn := range s.textChange.snapshot() {
			fn()
		}
	}
	return ev, cmd
}

// Paste inserts text at the caret as if typed
func (s *TextSurface) Paste(text string) {
	s.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text), Paste: true})
}

// Update forwards non-key messages to the textinput
func (s *TextSurface) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.ti, cmd = s.ti.Update(msg)
	return cmd
}

func translateKey(msg tea.KeyMsg) *input.KeyEvent {
	ev := &input.KeyEvent{Key: input.KeyOther}
	switch msg.Type {
	case tea.KeyTab:
		ev.Key = input.KeyTab
	case tea.KeyShiftTab:
		ev.Key, ev.Shift = input.KeyTab, true
	case tea.KeyEnter:
		ev.Key = input.KeyEnter
	case tea.KeyEsc:
		ev.Key = input.KeyEscape
	case tea.KeySpace:
		ev.Key = input.KeySpace
	case tea.KeyCtrlAt:
		ev.Key, ev.Ctrl = input.KeySpace, true
	case tea.KeyUp:
		ev.Key = input.KeyUp
	case tea.KeyDown:
		ev.Key = input.KeyDown
	case tea.KeyLeft:
		ev.Key = input.KeyLeft
	case tea.KeyRight:
		ev.Key = input.KeyRight
	case tea.KeyShiftLeft:
		ev.Key, ev.Shift = input.KeyLeft, true
	case tea.KeyShiftRight:
		ev.Key, ev.Shift = input.KeyRight, true
	case tea.KeyCtrlLeft:
		ev.Key, ev.Ctrl = input.KeyLeft, true
	case tea.KeyCtrlRight:
		ev.Key, ev.Ctrl = input.KeyRight, true
	case tea.KeyRunes:
		if len(msg.Runes) == 1 && msg.Runes[0] == ' ' {
			ev.Key = input.KeySpace
		}
	}
	return ev
}

// HintSurface holds the ghost completion drawn behind the typed text
type HintSurface struct {
	value string
	dir   domain.LangDir
}

func (h *HintSurface) Value() string                   { return h.value }
func (h *HintSurface) SetValue(v string)               { h.value = v }
func (h *HintSurface) SetDirection(dir domain.LangDir) { h.dir = dir }
func (h *HintSurface) Direction() domain.LangDir       { return h.dir }

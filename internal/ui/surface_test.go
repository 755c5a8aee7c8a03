package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"typeahead/internal/domain"
	"typeahead/internal/input"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name  string
		msg   tea.KeyMsg
		key   input.Key
		shift bool
		ctrl  bool
	}{
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, input.KeyTab, false, false},
		{"shift tab", tea.KeyMsg{Type: tea.KeyShiftTab}, input.KeyTab, true, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, input.KeyEnter, false, false},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, input.KeyEscape, false, false},
		{"ctrl space", tea.KeyMsg{Type: tea.KeyCtrlAt}, input.KeySpace, false, true},
		{"space rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}}, input.KeySpace, false, false},
		{"shift right", tea.KeyMsg{Type: tea.KeyShiftRight}, input.KeyRight, true, false},
		{"ctrl left", tea.KeyMsg{Type: tea.KeyCtrlLeft}, input.KeyLeft, false, true},
		{"letter", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}, input.KeyOther, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := translateKey(tt.msg)
			assert.Equal(t, tt.key, ev.Key)
			assert.Equal(t, tt.shift, ev.Shift)
			assert.Equal(t, tt.ctrl, ev.Ctrl)
		})
	}
}

func TestTextSurface_KeyDownPrevented(t *testing.T) {
	s := NewTextSurface("search", "", 40)
	s.Focus()
	changes := 0
	s.OnTextChange(func() { changes++ })
	detach := s.OnKeyDown(func(e *input.KeyEvent) { e.PreventDefault() })

	ev, _ := s.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	assert.True(t, ev.DefaultPrevented())
	assert.Empty(t, s.Value())
	assert.Zero(t, changes)

	detach()
	s.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	assert.Equal(t, "a", s.Value())
	assert.Equal(t, 1, changes)
}

func TestTextSurface_SetValueIsSilent(t *testing.T) {
	s := NewTextSurface("search", "", 40)
	s.Focus()
	changes := 0
	s.OnTextChange(func() { changes++ })

	s.SetValue("hello")

	assert.Equal(t, "hello", s.Value())
	assert.True(t, s.CursorAtEnd())
	assert.Zero(t, changes)
}

func TestTextSurface_FocusListenersFireOnChange(t *testing.T) {
	s := NewTextSurface("search", "", 40)
	var focus, blur int
	s.OnFocus(func() { focus++ })
	s.OnBlur(func() { blur++ })

	s.Blur()
	s.Focus()
	s.Focus()
	s.Blur()

	assert.Equal(t, 1, focus)
	assert.Equal(t, 1, blur)
}

func TestTextSurface_Direction(t *testing.T) {
	s := NewTextSurface("search", "", 40)
	assert.Equal(t, domain.LTR, s.Direction())

	s.SetValue("123 שלום")
	assert.Equal(t, domain.RTL, s.Direction())

	s.SetValue("hello שלום")
	assert.Equal(t, domain.LTR, s.Direction())

	s.SetValue("123")
	s.SetFallbackDirection(domain.RTL)
	assert.Equal(t, domain.RTL, s.Direction())
}

func TestTextSurface_Paste(t *testing.T) {
	s := NewTextSurface("search", "", 40)
	s.Focus()
	s.SetValue("new ")

	s.Paste("york")

	assert.Equal(t, "new york", s.Value())
}

package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"typeahead/internal/domain"
)

// InputState is what the input line needs to render
type InputState struct {
	Prompt      string
	Value       string
	Hint        string
	Placeholder string
	Pos         int
	Focused     bool
	Width       int
	Dir         domain.LangDir
}

// RenderInput draws the prompt, the typed text with its caret, and the
// ghost completion after it. The ghost is only drawn with the caret at
// the end of the text.
func RenderInput(s *Styles, st InputState) string {
	var b strings.Builder
	b.WriteString(s.Prompt.Render(st.Prompt))

	runes := []rune(st.Value)
	pos := min(max(st.Pos, 0), len(runes))

	switch {
	case len(runes) == 0 && st.Placeholder != "" && st.Hint == "":
		ph := []rune(st.Placeholder)
		if st.Focused {
			b.WriteString(s.Cursor.Inherit(s.Placeholder).Render(string(ph[0])))
			b.WriteString(s.Placeholder.Render(string(ph[1:])))
		} else {
			b.WriteString(s.Placeholder.Render(st.Placeholder))
		}

	case !st.Focused:
		b.WriteString(s.Text.Render(st.Value))

	case pos < len(runes):
		b.WriteString(s.Text.Render(string(runes[:pos])))
		b.WriteString(s.Cursor.Render(string(runes[pos])))
		b.WriteString(s.Text.Render(string(runes[pos+1:])))

	default:
		b.WriteString(s.Text.Render(st.Value))
		ghost := ghostText(st.Value, st.Hint)
		if ghost == nil {
			b.WriteString(s.Cursor.Render(" "))
			break
		}
		b.WriteString(s.Cursor.Inherit(s.Hint).Render(string(ghost[0])))
		b.WriteString(s.Hint.Render(string(ghost[1:])))
	}

	line := b.String()
	if st.Dir == domain.RTL && st.Width > 0 {
		return lipgloss.NewStyle().Width(st.Width).Align(lipgloss.Right).Render(line)
	}
	return line
}

// ghostText is the part of hint past value, or nil when hint does not
// extend value
func ghostText(value, hint string) []rune {
	if len(hint) <= len(value) || !strings.HasPrefix(hint, value) {
		return nil
	}
	return []rune(hint[len(value):])
}

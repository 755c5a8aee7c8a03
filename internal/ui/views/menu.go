package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"typeahead/internal/domain"
	"typeahead/internal/menu"
)

// MenuState is what the suggestion menu needs to render
type MenuState struct {
	Sections []menu.SectionView
	ActiveID string
	Width    int
	Dir      domain.LangDir
}

// RenderMenu draws the datasets below the input. It returns the rendered
// block and, for each of its lines, the item on that line or nil.
func RenderMenu(s *Styles, st MenuState) (string, []domain.Selectable) {
	var (
		lines []string
		rows  []domain.Selectable
	)
	add := func(line string, sel domain.Selectable) {
		lines = append(lines, line)
		rows = append(rows, sel)
	}

	width := st.Width
	if width <= 0 {
		width = 60
	}
	// border, padding and the two-cell marker
	textWidth := max(width-4, 1)

	showHeaders := len(st.Sections) > 1
	query := ""
	for _, sec := range st.Sections {
		if sec.Query != "" {
			query = sec.Query
		}
		if len(sec.Suggestions) == 0 && !sec.Pending {
			continue
		}
		if showHeaders {
			add(s.Header.Render(sec.Dataset), nil)
		}
		for i, sug := range sec.Suggestions {
			item := sec.Items[i]
			text := runewidth.Truncate(sug.Value, textWidth, "…")
			if item.ID() == st.ActiveID {
				add(s.Selected.Render("▸ "+text), item)
				continue
			}
			add("  "+highlightMatch(text, sec.Query, s.Highlight, s.Suggestion), item)
		}
		if sec.Pending {
			add(s.Pending.Render("  searching…"), nil)
		}
	}

	if len(lines) == 0 {
		if query == "" {
			return "", nil
		}
		add(s.Empty.Render("  no matches"), nil)
	}

	style := s.Menu
	if st.Dir == domain.RTL {
		style = style.Align(lipgloss.Right).Width(width)
	}
	return style.Render(strings.Join(lines, "\n")), rows
}

// highlightMatch highlights every word of text that starts with a word of
// the query
func highlightMatch(text, query string, highlightStyle, normalStyle lipgloss.Style) string {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return normalStyle.Render(text)
	}

	var b strings.Builder
	for i, word := range strings.Split(text, " ") {
		if i > 0 {
			b.WriteString(normalStyle.Render(" "))
		}
		n := matchedPrefix(word, tokens)
		if n == 0 {
			b.WriteString(normalStyle.Render(word))
			continue
		}
		b.WriteString(highlightStyle.Render(word[:n]))
		if n < len(word) {
			b.WriteString(normalStyle.Render(word[n:]))
		}
	}
	return b.String()
}

// matchedPrefix returns the byte length of the longest query token that
// prefixes word
func matchedPrefix(word string, tokens []string) int {
	lower := strings.ToLower(word)
	best := 0
	for _, t := range tokens {
		if len(t) > best && len(lower) == len(word) && strings.HasPrefix(lower, t) {
			best = len(t)
		}
	}
	return best
}

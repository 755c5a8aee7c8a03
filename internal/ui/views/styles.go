package views

import (
	"github.com/charmbracelet/lipgloss"

	"typeahead/internal/config"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Prompt      lipgloss.Style
	Text        lipgloss.Style
	Placeholder lipgloss.Style
	Hint        lipgloss.Style
	Cursor      lipgloss.Style
	Menu        lipgloss.Style
	Header      lipgloss.Style
	Suggestion  lipgloss.Style
	Selected    lipgloss.Style
	Highlight   lipgloss.Style
	Pending     lipgloss.Style
	Empty       lipgloss.Style
	Help        lipgloss.Style
	Status      lipgloss.Style
}

// NewStyles creates a new Styles instance from the configured colors
func NewStyles(c config.Styles) *Styles {
	return &Styles{
		Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(c.Header)).Bold(true),
		Text:        lipgloss.NewStyle(),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hint)),
		Hint:        lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hint)),
		Cursor:      lipgloss.NewStyle().Reverse(true),
		Menu: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color(c.Border)).
			PaddingLeft(1),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.Header)),
		Suggestion: lipgloss.NewStyle().Foreground(lipgloss.Color(c.Suggestion)),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Cursor)).
			Bold(true),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color(c.Highlight)).Bold(true),
		Pending:   lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hint)).Italic(true),
		Empty:     lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hint)).Italic(true),
		Help:      lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
	}
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"typeahead/internal/config"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	keys keyMap
	cfg  *config.Config
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(keys keyMap, cfg *config.Config) *HelpRenderer {
	return &HelpRenderer{keys: keys, cfg: cfg}
}

// RenderHelpContent generates help content with colors for the pager
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(14)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	help.WriteString(titleStyle.Render("Typeahead Help"))
	help.WriteString("\n")

	binding := func(b key.Binding) {
		if !b.Enabled() {
			return
		}
		h := b.Help()
		help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(h.Key), descStyle.Render(h.Desc)))
	}

	help.WriteString(sectionStyle.Render("Menu"))
	help.WriteString("\n")
	binding(r.keys.Next)
	binding(r.keys.Prev)
	binding(r.keys.Select)
	binding(r.keys.Close)
	binding(r.keys.Open)
	binding(r.keys.Autocomplete)
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	binding(r.keys.Help)
	binding(r.keys.Events)
	binding(r.keys.Quit)
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Settings"))
	help.WriteString("\n")
	setting := func(name string, value any) {
		help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(name), descStyle.Render(fmt.Sprint(value))))
	}
	setting("min_length", r.cfg.MinLength)
	setting("hint", r.cfg.Hint)
	setting("decoupled", r.cfg.DecoupledQuery)
	for _, ds := range r.cfg.Datasets {
		setting("dataset", fmt.Sprintf("%s (%s)", ds.Name, datasetKind(ds)))
	}

	help.WriteString("\n")
	help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).
		Render("  Enter with the menu closed accepts the current text."))
	help.WriteString("\n")

	return help.String()
}

func datasetKind(ds config.Dataset) string {
	switch {
	case ds.Command != "":
		return "command"
	case ds.File != "" && ds.Watch:
		return "file, watched"
	case ds.File != "":
		return "file"
	default:
		return fmt.Sprintf("%d words", len(ds.Words))
	}
}

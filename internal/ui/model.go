package ui

import (
	"log"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"typeahead/internal/config"
	"typeahead/internal/domain"
	"typeahead/internal/eventbus"
	"typeahead/internal/input"
	"typeahead/internal/menu"
	"typeahead/internal/typeahead"
	"typeahead/internal/ui/views"
)

// ReadyMarker is printed below the view when TYPEAHEAD_E2E_TEST=1 so
// terminal tests know the first frame is up
const ReadyMarker = "__READY__"

// Model is the picker: a single text field with a suggestion menu below it
type Model struct {
	bus    eventbus.EventBus
	config *config.Config

	surface *TextSurface
	hint    *HintSurface
	input   *input.Input
	menu    *menu.Menu
	ta      *typeahead.Typeahead

	styles   *views.Styles
	keys     keyMap
	help     help.Model
	helpText *HelpRenderer
	events   *EventLog
	pager    *Pager

	width       int
	height      int
	menuRows    []domain.Selectable
	inPagerMode bool // tracks if we're currently in pager mode
	readyMarker bool

	result   string
	accepted bool
	quitting bool

	// Program reference for terminal management
	program *tea.Program
}

// ModelOption configures a Model
type ModelOption func(*Model)

// WithEventLog makes the model show l instead of a log of its own, so
// events published before the model existed are kept
func WithEventLog(l *EventLog) ModelOption {
	return func(m *Model) { m.events = l }
}

// NewModel creates the picker over datasets and focuses it
func NewModel(bus eventbus.EventBus, cfg *config.Config, datasets []menu.Dataset, opts ...ModelOption) (*Model, error) {
	m := &Model{
		bus:         bus,
		config:      cfg,
		styles:      views.NewStyles(cfg.Styles),
		keys:        newKeyMap(cfg.AutocompleteKeys),
		help:        help.New(),
		pager:       NewPager(),
		readyMarker: os.Getenv("TYPEAHEAD_E2E_TEST") == "1",
	}
	m.helpText = NewHelpRenderer(m.keys, cfg)
	for _, opt := range opts {
		opt(m)
	}
	if m.events == nil {
		m.events = NewEventLog(bus)
	}

	m.surface = NewTextSurface("search", cfg.Placeholder, m.textWidth(cfg.Width))

	inOpts := input.Options{
		Surface:           m.surface,
		OverflowMargin:    cfg.HintMargin,
		ArrowAutocomplete: cfg.AutocompleteKeys,
		DecoupledQuery:    cfg.DecoupledQuery,
	}
	if cfg.Hint {
		m.hint = &HintSurface{dir: domain.LTR}
		inOpts.Hint = m.hint
	}
	in, err := input.New(inOpts)
	if err != nil {
		return nil, err
	}
	m.input = in

	m.menu = menu.New(m.surface.ID()+"_listbox", datasets...)

	ta, err := typeahead.New(in, m.menu, bus, typeahead.WithMinLength(cfg.MinLength))
	if err != nil {
		return nil, err
	}
	m.ta = ta

	if cfg.OpenOnFocus {
		bus.Subscribe(domain.EventActive, func(domain.DomainEvent) { m.ta.Open() })
		// typing into a closed menu reopens it once the query is long enough
		in.Subscribe(input.EventQueryChanged, func(e domain.DomainEvent) {
			q := e.(input.QueryChangedEvent).Query
			if m.ta.IsActive() && !m.ta.IsOpen() && q != "" && utf8.RuneCountInString(q) >= cfg.MinLength {
				m.ta.Open()
			}
		})
	}
	bus.Subscribe(domain.EventSelect, func(e domain.DomainEvent) {
		ev := e.(domain.SelectEvent)
		log.Printf("Selected %v from %s", ev.Suggestion, ev.Dataset)
	})

	m.surface.Focus()
	return m, nil
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// Typeahead exposes the controller
func (m *Model) Typeahead() *typeahead.Typeahead { return m.ta }

// Result returns the accepted text, and false when the picker was aborted
func (m *Model) Result() (string, bool) {
	return m.result, m.accepted
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return m.fetchAsync()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.surface.SetWidth(m.textWidth(m.lineWidth()))
		return m, nil

	case tea.KeyMsg:
		if m.inPagerMode {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			return m, m.showInPager("help", m.helpText.RenderHelpContent())
		case key.Matches(msg, m.keys.Events):
			return m, m.showInPager("events", m.events.String())
		}

		ev, cmd := m.surface.HandleKey(msg)
		if ev.Key == input.KeyEnter && !ev.DefaultPrevented() {
			m.accept()
			return m, tea.Quit
		}
		return m, tea.Batch(cmd, m.fetchAsync())

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			// the menu starts on the line below the input
			row := msg.Y - 1
			if row >= 0 && row < len(m.menuRows) && m.menuRows[row] != nil {
				m.menu.Click(m.menuRows[row])
			}
		}
		return m, m.fetchAsync()

	case asyncResultMsg:
		m.menu.Receive(msg.resp)
		return m, m.fetchAsync()

	case DatasetReloadedMsg:
		log.Printf("Dataset %s reloaded", msg.Name)
		m.refresh()
		return m, m.fetchAsync()

	case pagerMsg:
		if msg.err != nil {
			log.Printf("%s pager failed: %v", msg.title, msg.err)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil
	}

	return m, m.surface.Update(msg)
}

// accept commits whatever the field holds and leaves the picker
func (m *Model) accept() {
	m.ta.SetVal(m.surface.Value())
	m.result = m.ta.Val()
	m.accepted = true
	m.quitting = true
	m.surface.Blur()
}

// refresh re-renders the menu after a dataset changed underneath it
func (m *Model) refresh() {
	if !m.ta.IsOpen() {
		return
	}
	query := m.input.Query()
	m.menu.Empty()
	if utf8.RuneCountInString(query) >= m.config.MinLength {
		m.menu.Update(query)
	}
}

// fetchAsync turns the menu's pending async requests into commands
func (m *Model) fetchAsync() tea.Cmd {
	reqs := m.menu.Requests()
	if len(reqs) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(reqs))
	for _, req := range reqs {
		cmds = append(cmds, func() tea.Msg {
			return asyncResultMsg{resp: req.Run()}
		})
	}
	return tea.Batch(cmds...)
}

// lineWidth is the width of the input line and the menu
func (m *Model) lineWidth() int {
	w := m.config.Width
	if m.width > 0 && (w <= 0 || w > m.width) {
		w = m.width
	}
	if w <= 0 {
		w = 80
	}
	return w
}

func (m *Model) textWidth(lineWidth int) int {
	if lineWidth <= 0 {
		lineWidth = 80
	}
	return max(lineWidth-lipgloss.Width(m.config.Prompt), 1)
}

// View renders the input line, the open menu and the help line
func (m *Model) View() string {
	if m.quitting || m.inPagerMode {
		return ""
	}

	hint := ""
	if m.hint != nil {
		hint = m.hint.Value()
	}

	lines := []string{views.RenderInput(m.styles, views.InputState{
		Prompt:      m.config.Prompt,
		Value:       m.surface.Value(),
		Hint:        hint,
		Placeholder: m.surface.Placeholder(),
		Pos:         m.surface.Position(),
		Focused:     m.surface.Focused(),
		Width:       m.lineWidth(),
		Dir:         m.input.LangDir(),
	})}

	m.menuRows = nil
	if m.ta.IsOpen() {
		activeID := ""
		if sel := m.menu.ActiveSelectable(); sel != nil {
			activeID = sel.ID()
		}
		block, rows := views.RenderMenu(m.styles, views.MenuState{
			Sections: m.menu.Sections(),
			ActiveID: activeID,
			Width:    m.lineWidth(),
			Dir:      m.menu.LanguageDirection(),
		})
		if block != "" {
			lines = append(lines, block)
			m.menuRows = rows
		}
	}

	lines = append(lines, m.styles.Status.Render(m.help.View(m.keys)))
	if m.readyMarker {
		lines = append(lines, ReadyMarker)
	}
	return strings.Join(lines, "\n")
}

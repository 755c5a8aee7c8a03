package menu

import (
	"context"
	"fmt"
	"log"

	"typeahead/internal/domain"
	"typeahead/internal/eventbus"
)

// DefaultLimit caps the number of suggestions a dataset renders
const DefaultLimit = 5

// Source answers a query synchronously
type Source interface {
	Search(query string) []domain.Suggestion
}

// AsyncSource answers a query off the UI goroutine. Fetch must honor ctx.
type AsyncSource interface {
	Fetch(ctx context.Context, query string) ([]domain.Suggestion, error)
}

// Dataset is one named group of suggestions in the menu
type Dataset struct {
	Name   string
	Limit  int
	Source Source
	Async  AsyncSource
}

// Item is a selectable suggestion. Items from an earlier render are stale
// and resolve to no data.
type Item struct {
	id      string
	dataset string
	index   int
	gen     uint64
}

func (i Item) ID() string { return i.id }

// Request is an async fetch the owner must run off the UI goroutine and
// hand back through Receive
type Request struct {
	ID      uint64
	Dataset string
	Query   string

	ctx   context.Context
	async AsyncSource
}

// Run performs the fetch. It blocks.
func (r Request) Run() Response {
	suggestions, err := r.async.Fetch(r.ctx, r.Query)
	return Response{ID: r.ID, Dataset: r.Dataset, Query: r.Query, Suggestions: suggestions, Err: err}
}

// Response carries the result of a Request
type Response struct {
	ID          uint64
	Dataset     string
	Query       string
	Suggestions []domain.Suggestion
	Err         error
}

type pendingFetch struct {
	id     uint64
	query  string
	cancel context.CancelFunc
}

type section struct {
	dataset     Dataset
	query       string
	suggestions []domain.Suggestion
	gen         uint64
	pending     *pendingFetch
}

// Menu is a terminal suggestion menu made of datasets. It keeps the
// cursor and the open state and reports dataset activity on its bus.
type Menu struct {
	bus       eventbus.EventBus
	listboxID string
	sections  []*section

	query    string
	hasQuery bool
	open     bool
	cursor   *Item
	dir      domain.LangDir
	bound    bool

	nextID   uint64
	requests []Request
}

// New creates a menu. listboxID prefixes every item id.
func New(listboxID string, datasets ...Dataset) *Menu {
	m := &Menu{
		bus:       eventbus.New("Menu"),
		listboxID: listboxID,
		dir:       domain.LTR,
	}
	for _, d := range datasets {
		if d.Limit <= 0 {
			d.Limit = DefaultLimit
		}
		m.sections = append(m.sections, &section{dataset: d})
	}
	return m
}

// Bind enables click reporting
func (m *Menu) Bind() { m.bound = true }

func (m *Menu) Subscribe(eventType domain.EventType, handler eventbus.EventHandler) func() {
	return m.bus.Subscribe(eventType, handler)
}

// Update renders every dataset for query. It returns false when query is
// the one already shown.
func (m *Menu) Update(query string) bool {
	if m.hasQuery && query == m.query {
		return false
	}
	m.query = query
	m.hasQuery = true
	for _, s := range m.sections {
		m.updateSection(s, query)
	}
	return true
}

func (m *Menu) updateSection(s *section, query string) {
	m.cancel(s)
	s.query = query

	var suggestions []domain.Suggestion
	if s.dataset.Source != nil {
		suggestions = s.dataset.Source.Search(query)
	}
	if len(suggestions) > s.dataset.Limit {
		suggestions = suggestions[:s.dataset.Limit]
	}
	m.overwrite(s, suggestions)

	if s.dataset.Async != nil && len(suggestions) < s.dataset.Limit {
		ctx, cancel := context.WithCancel(context.Background())
		m.nextID++
		s.pending = &pendingFetch{id: m.nextID, query: query, cancel: cancel}
		m.requests = append(m.requests, Request{
			ID:      m.nextID,
			Dataset: s.dataset.Name,
			Query:   query,
			ctx:     ctx,
			async:   s.dataset.Async,
		})
		m.bus.Trigger(AsyncRequestedEvent{Dataset: s.dataset.Name, Query: query})
	}
}

func (m *Menu) overwrite(s *section, suggestions []domain.Suggestion) {
	s.gen++
	s.suggestions = suggestions
	m.bus.Trigger(DatasetRenderedEvent{Dataset: s.dataset.Name, Suggestions: suggestions, Async: false})
}

func (m *Menu) cancel(s *section) {
	if s.pending == nil {
		return
	}
	p := s.pending
	s.pending = nil
	p.cancel()
	m.bus.Trigger(AsyncCanceledEvent{Dataset: s.dataset.Name, Query: p.query})
}

// Requests drains the async fetches started since the last call
func (m *Menu) Requests() []Request {
	out := m.requests
	m.requests = nil
	return out
}

// Receive appends the result of an async fetch. Results of canceled or
// superseded requests are dropped.
func (m *Menu) Receive(resp Response) {
	s := m.section(resp.Dataset)
	if s == nil || s.pending == nil || s.pending.id != resp.ID {
		return
	}
	s.pending.cancel()
	s.pending = nil

	if resp.Err != nil {
		log.Printf("Menu: async fetch for %q in %s failed: %v", resp.Query, resp.Dataset, resp.Err)
		return
	}

	room := s.dataset.Limit - len(s.suggestions)
	added := resp.Suggestions
	if len(added) > room {
		added = added[:room]
	}
	s.suggestions = append(s.suggestions, added...)

	m.bus.Trigger(DatasetRenderedEvent{Dataset: s.dataset.Name, Suggestions: added, Async: true})
	m.bus.Trigger(AsyncReceivedEvent{Dataset: s.dataset.Name, Query: resp.Query})
}

// Pending reports whether dataset waits on an async fetch
func (m *Menu) Pending(dataset string) bool {
	s := m.section(dataset)
	return s != nil && s.pending != nil
}

// Empty clears every dataset and forgets the current query
func (m *Menu) Empty() {
	for _, s := range m.sections {
		s.gen++
		s.suggestions = nil
		s.query = ""
		m.cancel(s)
		m.bus.Trigger(DatasetClearedEvent{Dataset: s.dataset.Name})
	}
	m.query = ""
	m.hasQuery = false
}

func (m *Menu) Open()        { m.open = true }
func (m *Menu) Close()       { m.open = false }
func (m *Menu) IsOpen() bool { return m.open }

// IsEmpty reports whether no dataset has suggestions
func (m *Menu) IsEmpty() bool {
	for _, s := range m.sections {
		if len(s.suggestions) > 0 {
			return false
		}
	}
	return true
}

func (m *Menu) selectables() []Item {
	var items []Item
	for _, s := range m.sections {
		for i := range s.suggestions {
			items = append(items, m.item(s, i))
		}
	}
	return items
}

func (m *Menu) item(s *section, index int) Item {
	return Item{
		id:      fmt.Sprintf("%s-%s-%d", m.listboxID, s.dataset.Name, index),
		dataset: s.dataset.Name,
		index:   index,
		gen:     s.gen,
	}
}

func (m *Menu) TopSelectable() domain.Selectable {
	items := m.selectables()
	if len(items) == 0 {
		return nil
	}
	return items[0]
}

func (m *Menu) ActiveSelectable() domain.Selectable {
	if m.cursor == nil || m.SelectableData(*m.cursor) == nil {
		return nil
	}
	return *m.cursor
}

// SelectableRelativeToCursor walks delta entries from the cursor. Walking
// past either end lands on "no entry" before wrapping around.
func (m *Menu) SelectableRelativeToCursor(delta int) domain.Selectable {
	items := m.selectables()
	oldIndex := -1
	if active := m.ActiveSelectable(); active != nil {
		for i, it := range items {
			if it == active.(Item) {
				oldIndex = i
				break
			}
		}
	}

	n := len(items) + 1
	newIndex := ((oldIndex+delta+1)%n+n)%n - 1
	if newIndex == -1 {
		return nil
	}
	return items[newIndex]
}

func (m *Menu) SetCursor(sel domain.Selectable) {
	it, ok := sel.(Item)
	if !ok || m.SelectableData(it) == nil {
		m.cursor = nil
		return
	}
	m.cursor = &it
}

func (m *Menu) SelectableData(sel domain.Selectable) *domain.Descriptor {
	it, ok := sel.(Item)
	if !ok {
		return nil
	}
	s := m.section(it.dataset)
	if s == nil || s.gen != it.gen || it.index < 0 || it.index >= len(s.suggestions) {
		return nil
	}
	sug := s.suggestions[it.index]
	return &domain.Descriptor{Value: sug.Value, Object: sug.Object, Dataset: s.dataset.Name}
}

func (m *Menu) SetLanguageDirection(dir domain.LangDir) { m.dir = dir }

// LanguageDirection is the direction the menu renders in
func (m *Menu) LanguageDirection() domain.LangDir { return m.dir }

// Click reports a click on sel
func (m *Menu) Click(sel domain.Selectable) {
	if !m.bound || sel == nil {
		return
	}
	m.bus.Trigger(SelectableClickedEvent{Selectable: sel})
}

// SectionView is a read-only snapshot of a dataset for rendering
type SectionView struct {
	Dataset     string
	Query       string
	Suggestions []domain.Suggestion
	Items       []Item
	Pending     bool
}

// Sections returns a snapshot of every dataset in display order
func (m *Menu) Sections() []SectionView {
	views := make([]SectionView, 0, len(m.sections))
	for _, s := range m.sections {
		v := SectionView{
			Dataset:     s.dataset.Name,
			Query:       s.query,
			Suggestions: s.suggestions,
			Pending:     s.pending != nil,
		}
		for i := range s.suggestions {
			v.Items = append(v.Items, m.item(s, i))
		}
		views = append(views, v)
	}
	return views
}

// Destroy cancels outstanding fetches and drops every subscriber
func (m *Menu) Destroy() {
	for _, s := range m.sections {
		if s.pending != nil {
			s.pending.cancel()
			s.pending = nil
		}
	}
	m.requests = nil
	m.bound = false
	m.bus.Close()
}

func (m *Menu) section(name string) *section {
	for _, s := range m.sections {
		if s.dataset.Name == name {
			return s
		}
	}
	return nil
}

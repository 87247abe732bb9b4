package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"artbind/internal/adapters/tui/styles"
	"artbind/internal/application"
	"artbind/internal/application/commands"
)

// resultsPerPage is the number of search results shown at once
const resultsPerPage = 10

// SearchKeyMap defines key bindings for the search view
type SearchKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
}

var SearchKeys = SearchKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "go to and copy path"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// SearchModel fuzzy-searches the property paths of an instance
type SearchModel struct {
	ViewState
	registry   *application.Registry
	instanceID string
	input      textinput.Model
	results    []commands.SearchResult
	pager      *Pager
}

// NewSearchModel creates a new search view model
func NewSearchModel(registry *application.Registry, instanceID string) *SearchModel {
	input := textinput.New()
	input.Placeholder = "Search properties..."
	input.Focus()

	return &SearchModel{
		registry:   registry,
		instanceID: instanceID,
		input:      input,
		pager:      NewPager(resultsPerPage),
	}
}

// Init initializes the search view
func (m *SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

// Reset clears the query and results
func (m *SearchModel) Reset() {
	m.input.SetValue("")
	m.input.Focus()
	m.setResults(nil)
}

func (m *SearchModel) setResults(results []commands.SearchResult) {
	m.results = results
	m.pager.SetTotal(len(results))
	m.pager.SetCursor(0)
}

type searchResultsMsg struct {
	query   string
	results []commands.SearchResult
}

// Update handles messages for the search view
func (m *SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case searchResultsMsg:
		// the user typed past this query
		if msg.query != m.input.Value() {
			return m, nil
		}
		m.setResults(msg.results)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, SearchKeys.Cancel):
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}

		case key.Matches(msg, SearchKeys.Up):
			m.pager.Move(-1)
			return m, nil

		case key.Matches(msg, SearchKeys.Down):
			m.pager.Move(1)
			return m, nil

		case key.Matches(msg, SearchKeys.Select):
			if len(m.results) == 0 {
				return m, nil
			}
			path := m.results[m.pager.Cursor()].Path
			err := clipboard.WriteAll(path)
			return m, func() tea.Msg {
				return SelectPathMsg{Path: path, CopyErr: err}
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	switch query := m.input.Value(); {
	case len(query) >= 2:
		return m, tea.Batch(cmd, m.search(query))
	case query == "":
		m.setResults(nil)
	}
	return m, cmd
}

func (m *SearchModel) search(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := commands.NewSearchCommand(m.registry, m.instanceID, query).Execute(context.Background())
		if err != nil {
			return searchResultsMsg{query: query}
		}
		return searchResultsMsg{query: query, results: results}
	}
}

// View renders the search view
func (m *SearchModel) View() string {
	return screen("Search", "",
		styles.Editor.Render(m.input.View()),
		m.renderResults(),
		renderHelp(SearchKeys.Up, SearchKeys.Down, SearchKeys.Select, SearchKeys.Cancel),
	)
}

func (m *SearchModel) renderResults() string {
	if len(m.results) == 0 {
		if len(m.input.Value()) >= 2 {
			return styles.Faint.Render("No results found")
		}
		return styles.Faint.Render("Type at least 2 characters to search")
	}

	lines := []string{styles.Subtitle.Render(fmt.Sprintf("%d results", len(m.results))), ""}
	start, end := m.pager.Bounds()
	for i := start; i < end; i++ {
		r := m.results[i]
		path := r.Path
		if i == m.pager.Cursor() {
			path = styles.Cursor.Render(path)
		}
		lines = append(lines, path+"  "+RenderKind(r.Kind)+"  "+RenderValue(r.Value))
	}
	if page := m.pager.View(); page != "" {
		lines = append(lines, styles.Faint.Render(page))
	}
	return strings.Join(lines, "\n")
}

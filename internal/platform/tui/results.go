package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vkalinin/pairtiles/internal/session"
	"github.com/vkalinin/pairtiles/internal/storage"
)

// maxResults caps how many rows the results screen loads per collection.
const maxResults = 100

// ResultsKeyMap defines the key bindings for the results screen.
type ResultsKeyMap struct {
	Up             key.Binding
	Down           key.Binding
	NextCollection key.Binding
	PrevCollection key.Binding
	Quit           key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ResultsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextCollection, k.PrevCollection, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ResultsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextCollection, k.PrevCollection, k.Quit},
	}
}

// DefaultResultsKeyMap returns default key bindings.
func DefaultResultsKeyMap() ResultsKeyMap {
	return ResultsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextCollection: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next collection"),
		),
		PrevCollection: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev collection"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ResultsModel is the Bubble Tea model for the best-results screen.
type ResultsModel struct {
	store       *storage.Store
	collections []string
	cursor      int
	results     []storage.ResultEntry
	table       table.Model
	help        help.Model
	keys        ResultsKeyMap
	width       int
	height      int
	quitting    bool
}

// NewResultsModel creates a results screen over every played collection.
func NewResultsModel(store *storage.Store, width, height int) ResultsModel {
	var collections []string
	if store != nil {
		collections, _ = store.PlayedCollections()
	}

	h := help.New()
	h.ShowAll = false

	m := ResultsModel{
		store:       store,
		collections: collections,
		keys:        DefaultResultsKeyMap(),
		help:        h,
		width:       width,
		height:      height,
	}

	m.table = m.createTable()
	if len(m.collections) > 0 {
		m.loadResults(m.collections[0])
	}

	return m
}

// createTable creates a new table with appropriate columns.
func (m *ResultsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Pairs", Width: 7},
		{Title: "Attempts", Width: 10},
		{Title: "Time", Width: 8},
		{Title: "Date", Width: 14},
	}

	height := m.height - 8
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadResults loads the best results for the given collection.
func (m *ResultsModel) loadResults(collectionID string) {
	if m.store == nil {
		m.results = nil
		m.updateTableRows()
		return
	}

	results, err := m.store.BestResults(collectionID, maxResults)
	if err != nil {
		m.results = nil
	} else {
		m.results = results
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current results.
func (m *ResultsModel) updateTableRows() {
	rows := make([]table.Row, len(m.results))
	for i, r := range m.results {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Pairs),
			fmt.Sprintf("%d", r.Attempts),
			session.FormatElapsed(time.Duration(r.DurationSecs) * time.Second),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the results model.
func (m ResultsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the results screen.
func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextCollection):
			if len(m.collections) > 0 {
				m.cursor = (m.cursor + 1) % len(m.collections)
				m.loadResults(m.collections[m.cursor])
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevCollection):
			if len(m.collections) > 0 {
				m.cursor--
				if m.cursor < 0 {
					m.cursor = len(m.collections) - 1
				}
				m.loadResults(m.collections[m.cursor])
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the results screen.
func (m ResultsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := "BEST RESULTS"
	if len(m.collections) > 0 {
		title = fmt.Sprintf("BEST RESULTS - %s", m.collections[m.cursor])
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	if len(m.collections) == 0 {
		b.WriteString(statsStyle.Render("No games recorded yet. Play one first!"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.table.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")

	return b.String()
}

// RunResults runs the results screen in the local terminal.
func RunResults(store *storage.Store, width, height int) error {
	model := NewResultsModel(store, width, height)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vkalinin/pairtiles/internal/provider"
)

// collectionsMsg carries a fetched collection listing.
type collectionsMsg []provider.CollectionSummary

// collectionsErrMsg reports a failed listing fetch.
type collectionsErrMsg struct {
	err error
}

// loadCollectionsCmd fetches the available collections from the provider.
func loadCollectionsCmd(prov provider.Provider) tea.Cmd {
	return func() tea.Msg {
		cols, err := prov.Collections(context.Background())
		if err != nil {
			return collectionsErrMsg{err: err}
		}
		return collectionsMsg(cols)
	}
}

var (
	pickerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212"))

	pickerDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	pickerErrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))
)

// PickerModel is the Bubble Tea model for the collection picker.
type PickerModel struct {
	prov     provider.Provider
	items    []provider.CollectionSummary
	cursor   int
	width    int
	height   int
	loading  bool
	loadErr  error
	quitting bool
	selected *provider.CollectionSummary
}

// NewPickerModel creates a picker that fetches collections on Init.
func NewPickerModel(prov provider.Provider, width, height int) PickerModel {
	return PickerModel{
		prov:    prov,
		width:   width,
		height:  height,
		loading: true,
	}
}

// Init kicks off the collection fetch.
func (m PickerModel) Init() tea.Cmd {
	return loadCollectionsCmd(m.prov)
}

// Update handles messages for the picker.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case collectionsMsg:
		m.loading = false
		m.loadErr = nil
		m.items = msg
		if m.cursor >= len(m.items) {
			m.cursor = 0
		}
		return m, nil

	case collectionsErrMsg:
		m.loading = false
		m.loadErr = msg.err
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for picker navigation.
func (m PickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case "r":
		if m.loadErr != nil {
			m.loading = true
			m.loadErr = nil
			return m, loadCollectionsCmd(m.prov)
		}

	case "enter", " ":
		if !m.loading && m.loadErr == nil && len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}
	}

	return m, nil
}

// View renders the picker.
func (m PickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(pickerTitleStyle.Render("P A I R T I L E S"))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(pickerDescStyle.Render("Loading collections..."))
		b.WriteString("\n")

	case m.loadErr != nil:
		b.WriteString(pickerErrStyle.Render("Could not reach the content server."))
		b.WriteString("\n")
		b.WriteString(pickerDescStyle.Render(m.loadErr.Error()))
		b.WriteString("\n\n")
		b.WriteString(pickerDescStyle.Render("r: retry  q: quit"))
		b.WriteString("\n")

	case len(m.items) == 0:
		b.WriteString(pickerDescStyle.Render("The server has no collections to play."))
		b.WriteString("\n")

	default:
		b.WriteString(pickerDescStyle.Render("Select a collection"))
		b.WriteString("\n\n")
		for i, item := range m.items {
			cursor := "  "
			if i == m.cursor {
				cursor = "> "
			}
			line := fmt.Sprintf("%s%s (%d pairs)", cursor, item.Title, item.PairCount)
			b.WriteString(line)
			b.WriteString("\n")
			if i == m.cursor && item.Description != "" {
				b.WriteString(pickerDescStyle.Render("    " + truncate(item.Description, m.width-6)))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
		b.WriteString(pickerDescStyle.Render("Up/Down: Navigate  |  Enter: Play  |  Q: Quit"))
		b.WriteString("\n")
	}

	return b.String()
}

// Selected returns the chosen collection, or nil if none chosen yet.
func (m PickerModel) Selected() *provider.CollectionSummary {
	return m.selected
}

// IsQuitting returns true if the user requested to quit.
func (m PickerModel) IsQuitting() bool {
	return m.quitting
}

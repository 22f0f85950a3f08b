package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vkalinin/pairtiles/internal/config"
	"github.com/vkalinin/pairtiles/internal/content"
	"github.com/vkalinin/pairtiles/internal/deck"
	"github.com/vkalinin/pairtiles/internal/layout"
	"github.com/vkalinin/pairtiles/internal/provider"
	"github.com/vkalinin/pairtiles/internal/session"
	"github.com/vkalinin/pairtiles/internal/storage"
)

// Rows reserved above and below the tile grid for the HUD and help line.
const (
	hudRows  = 3
	helpRows = 2
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	statsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	hiddenTileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Foreground(lipgloss.Color("240")).
			Align(lipgloss.Center, lipgloss.Center)

	visibleTileStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("75")).
				Foreground(lipgloss.Color("255")).
				Align(lipgloss.Center, lipgloss.Center)

	matchedTileStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("35")).
				Foreground(lipgloss.Color("35")).
				Faint(true).
				Align(lipgloss.Center, lipgloss.Center)

	cursorBorderColor = lipgloss.Color("220")

	winStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))
)

// BoardModel is the Bubble Tea model for an active game board.
type BoardModel struct {
	sess       *session.Session
	store      *storage.Store
	collection provider.CollectionSummary
	pairs      []content.Pair

	requestedPairs   int
	requestedColumns int

	cursor      int
	width       int
	height      int
	keys        BoardKeyMap
	help        help.Model
	resultSaved bool
	quitting    bool
	backToMenu  bool
}

// NewBoardModel builds a session for the given collection content and starts
// it. It fails when the collection cannot field a playable board.
func NewBoardModel(cfg config.Config, store *storage.Store, col provider.CollectionSummary, pairs []content.Pair, requestedPairs, requestedColumns, width, height int, seed int64) (BoardModel, error) {
	sess := session.New(session.Config{
		MismatchDelay:  cfg.Game.MismatchDelay(),
		DefaultColumns: cfg.Game.DefaultColumns,
		Layout: layout.Config{
			MinTileSize: cfg.Layout.MinTileSize,
			MinGap:      cfg.Layout.MinGap,
			MaxGap:      cfg.Layout.MaxGap,
		},
		Seed: seed,
	})

	m := BoardModel{
		sess:             sess,
		store:            store,
		collection:       col,
		pairs:            pairs,
		requestedPairs:   requestedPairs,
		requestedColumns: requestedColumns,
		width:            width,
		height:           height,
		keys:             DefaultBoardKeyMap(),
		help:             help.New(),
	}

	if err := sess.Start(col.ID, pairs, requestedPairs, requestedColumns); err != nil {
		return BoardModel{}, err
	}
	m.applySize()
	return m, nil
}

// Init starts the clock refresh loop.
func (m BoardModel) Init() tea.Cmd {
	return tickCmd()
}

// Update handles messages for the board.
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.applySize()
		return m, nil

	case TickMsg:
		return m, tickCmd()

	case MismatchMsg:
		m.sess.ResolveMismatch(msg.Gen)
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for the board.
func (m BoardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := m.sess.View()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.sess.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.backToMenu = true
		m.sess.Stop()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor-v.Columns >= 0 {
			m.cursor -= v.Columns
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor+v.Columns < len(v.Tiles) {
			m.cursor += v.Columns
		}

	case key.Matches(msg, m.keys.Left):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Right):
		if m.cursor < len(v.Tiles)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if m.cursor < len(v.Tiles) {
			gen, schedule := m.sess.Select(v.Tiles[m.cursor].ID)
			cmd := m.maybeSaveResult()
			if schedule {
				return m, tea.Batch(cmd, mismatchCmd(m.sess.MismatchDelay(), gen))
			}
			return m, cmd
		}

	case key.Matches(msg, m.keys.Wider):
		m.sess.SetColumns(v.Columns + 1)

	case key.Matches(msg, m.keys.Tighter):
		m.sess.SetColumns(v.Columns - 1)

	case key.Matches(msg, m.keys.Restart):
		// Restart invalidates any outstanding mismatch timer.
		if err := m.sess.Start(m.collection.ID, m.pairs, m.requestedPairs, m.requestedColumns); err == nil {
			m.cursor = 0
			m.resultSaved = false
			m.applySize()
		}
	}

	return m, nil
}

// maybeSaveResult persists the finished game exactly once.
func (m *BoardModel) maybeSaveResult() tea.Cmd {
	v := m.sess.View()
	if !v.AllMatched || m.resultSaved {
		return nil
	}
	m.resultSaved = true
	if m.store != nil {
		//nolint:errcheck // Best-effort save
		m.store.SaveResult(m.collection.ID, v.TotalPairs, v.Attempts, v.Seconds)
	}
	return nil
}

// applySize feeds the drawable area into the session's layout engine.
func (m *BoardModel) applySize() {
	w := m.width
	h := m.height - hudRows - helpRows
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	m.sess.Resize(float64(w), float64(h))
}

// View renders the board.
func (m BoardModel) View() string {
	if m.quitting {
		return ""
	}

	v := m.sess.View()

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.collection.Title))
	b.WriteString("\n")
	b.WriteString(statsStyle.Render(fmt.Sprintf(
		"matched %d/%d   attempts %d   time %s",
		v.MatchedPairs, v.TotalPairs, v.Attempts, v.Elapsed,
	)))
	b.WriteString("\n\n")

	b.WriteString(m.renderGrid(v))
	b.WriteString("\n")

	if v.AllMatched {
		b.WriteString(winStyle.Render(fmt.Sprintf(
			"All pairs matched in %d attempts, %s!", v.Attempts, v.Elapsed,
		)))
		b.WriteString("  ")
		b.WriteString(statsStyle.Render("r: play again  esc: menu  q: quit"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.help.View(m.keys))
		b.WriteString("\n")
	}

	return b.String()
}

// renderGrid draws the tiles using the geometry the session computed.
func (m BoardModel) renderGrid(v session.View) string {
	if len(v.Tiles) == 0 {
		return ""
	}

	tileW := int(v.Layout.TileSize)
	if tileW < 5 {
		tileW = 5
	}
	// Terminal cells are roughly twice as tall as wide.
	tileH := tileW / 3
	if tileH < 1 {
		tileH = 1
	}
	gap := int(v.Layout.Gap)
	if gap < 1 {
		gap = 1
	}
	innerW := tileW - 2

	spacer := strings.Repeat(" ", gap)
	rows := make([]string, 0, v.Layout.Rows)

	for start := 0; start < len(v.Tiles); start += v.Columns {
		end := start + v.Columns
		if end > len(v.Tiles) {
			end = len(v.Tiles)
		}

		cells := make([]string, 0, 2*(end-start))
		for i := start; i < end; i++ {
			if i > start {
				cells = append(cells, spacer)
			}
			cells = append(cells, m.renderTile(v.Tiles[i], i == m.cursor, innerW, tileH))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return strings.Join(rows, "\n")
}

// renderTile draws one tile face.
func (m BoardModel) renderTile(t session.TileView, underCursor bool, innerW, innerH int) string {
	var style lipgloss.Style
	var face string

	switch t.State {
	case deck.Matched:
		style = matchedTileStyle
		face = tileFace(t, innerW)
	case deck.Visible:
		style = visibleTileStyle
		face = tileFace(t, innerW)
	default:
		style = hiddenTileStyle
		face = "?"
	}

	style = style.Width(innerW).Height(innerH)
	if underCursor {
		style = style.BorderForeground(cursorBorderColor)
	}
	return style.Render(face)
}

// tileFace picks the terminal representation of a revealed payload.
// Images cannot be drawn in cells, so their alt text stands in.
func tileFace(t session.TileView, width int) string {
	text := t.Text
	if t.Kind == content.KindImage {
		text = t.Alt
	}
	return truncate(text, width)
}

// truncate clips text to width runes, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if width < 1 {
		return ""
	}
	r := []rune(strings.ReplaceAll(s, "\n", " "))
	if len(r) <= width {
		return string(r)
	}
	if width == 1 {
		return string(r[:1])
	}
	return string(r[:width-1]) + "…"
}

// BackToMenu returns true if the user asked to return to the picker.
func (m BoardModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if the user asked to quit entirely.
func (m BoardModel) IsQuitting() bool {
	return m.quitting
}

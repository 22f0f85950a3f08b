package tui

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vkalinin/pairtiles/internal/config"
	"github.com/vkalinin/pairtiles/internal/content"
	"github.com/vkalinin/pairtiles/internal/deck"
	"github.com/vkalinin/pairtiles/internal/provider"
	"github.com/vkalinin/pairtiles/internal/storage"
)

// pairsLoadedMsg carries the fetched pairs for a chosen collection.
type pairsLoadedMsg struct {
	col   provider.CollectionSummary
	pairs []content.Pair
}

// pairsErrMsg reports a failed pair fetch.
type pairsErrMsg struct {
	col provider.CollectionSummary
	err error
}

// loadPairsCmd fetches the pair list for one collection.
func loadPairsCmd(prov provider.Provider, col provider.CollectionSummary) tea.Cmd {
	return func() tea.Msg {
		pairs, err := prov.Pairs(context.Background(), col.ID)
		if err != nil {
			return pairsErrMsg{col: col, err: err}
		}
		return pairsLoadedMsg{col: col, pairs: pairs}
	}
}

// appState names the screen the app is currently showing.
type appState int

const (
	statePicker appState = iota
	stateLoading
	stateBoard
	stateError
)

// AppOptions carries the per-invocation game preferences.
type AppOptions struct {
	// Pairs is the requested pair count. Zero means the configured default.
	Pairs int
	// Columns is the requested column count. Zero means the configured
	// default.
	Columns int
	// Seed fixes the deck shuffle for reproducible boards. Zero means
	// time-based.
	Seed int64
}

// AppModel manages the full game flow: picker -> board -> picker.
// This is the top-level model used for both local play and SSH sessions.
type AppModel struct {
	cfg   config.Config
	prov  provider.Provider
	store *storage.Store
	opts  AppOptions

	state    appState
	picker   PickerModel
	board    BoardModel
	pending  provider.CollectionSummary
	errText  string
	canRetry bool

	width    int
	height   int
	quitting bool
}

// NewAppModel creates the top-level model starting at the picker.
func NewAppModel(cfg config.Config, prov provider.Provider, store *storage.Store, opts AppOptions, width, height int) AppModel {
	if opts.Pairs <= 0 {
		opts.Pairs = cfg.Game.DefaultPairs
	}
	return AppModel{
		cfg:    cfg,
		prov:   prov,
		store:  store,
		opts:   opts,
		state:  statePicker,
		picker: NewPickerModel(prov, width, height),
		width:  width,
		height: height,
	}
}

// Init initializes the current screen.
func (m AppModel) Init() tea.Cmd {
	return m.picker.Init()
}

// Update routes messages to the active screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch msg := msg.(type) {
	case pairsLoadedMsg:
		return m.startBoard(msg.col, msg.pairs)

	case pairsErrMsg:
		m.state = stateError
		m.errText = "Could not load " + msg.col.Title + ": " + msg.err.Error()
		m.canRetry = true
		m.pending = msg.col
		return m, nil
	}

	switch m.state {
	case stateBoard:
		return m.updateBoard(msg)
	case stateLoading, stateError:
		return m.updateInterstitial(msg)
	default:
		return m.updatePicker(msg)
	}
}

// updatePicker delegates to the picker and reacts to its outcome.
func (m AppModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	newPicker, cmd := m.picker.Update(msg)
	if picker, ok := newPicker.(PickerModel); ok {
		m.picker = picker
	}

	if m.picker.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if selected := m.picker.Selected(); selected != nil {
		m.state = stateLoading
		m.pending = *selected
		return m, loadPairsCmd(m.prov, *selected)
	}

	return m, cmd
}

// updateInterstitial handles input on the loading and error screens.
func (m AppModel) updateInterstitial(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc", "b":
		return m.backToPicker()

	case "r":
		if m.state == stateError && m.canRetry {
			m.state = stateLoading
			return m, loadPairsCmd(m.prov, m.pending)
		}
	}

	return m, nil
}

// updateBoard delegates to the board and reacts to its outcome.
func (m AppModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBoard, cmd := m.board.Update(msg)
	if board, ok := newBoard.(BoardModel); ok {
		m.board = board
	}

	if m.board.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.board.BackToMenu() {
		return m.backToPicker()
	}

	return m, cmd
}

// startBoard builds and enters a game board for the fetched pairs.
func (m AppModel) startBoard(col provider.CollectionSummary, pairs []content.Pair) (tea.Model, tea.Cmd) {
	board, err := NewBoardModel(m.cfg, m.store, col, pairs, m.opts.Pairs, m.opts.Columns, m.width, m.height, m.opts.Seed)
	if err != nil {
		m.state = stateError
		if errors.Is(err, deck.ErrInsufficientPairs) {
			m.errText = col.Title + " does not have enough pairs to play."
			m.canRetry = false
		} else {
			m.errText = "Could not start " + col.Title + ": " + err.Error()
			m.canRetry = true
			m.pending = col
		}
		return m, nil
	}

	m.state = stateBoard
	m.board = board
	return m, m.board.Init()
}

// backToPicker resets to a fresh picker screen.
func (m AppModel) backToPicker() (tea.Model, tea.Cmd) {
	m.state = statePicker
	m.picker = NewPickerModel(m.prov, m.width, m.height)
	return m, m.picker.Init()
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case stateBoard:
		return m.board.View()

	case stateLoading:
		return pickerTitleStyle.Render("P A I R T I L E S") +
			"\n\n" + pickerDescStyle.Render("Loading "+m.pending.Title+"...") + "\n"

	case stateError:
		var b strings.Builder
		b.WriteString(pickerTitleStyle.Render("P A I R T I L E S"))
		b.WriteString("\n\n")
		b.WriteString(pickerErrStyle.Render(m.errText))
		b.WriteString("\n\n")
		if m.canRetry {
			b.WriteString(pickerDescStyle.Render("r: retry  esc: back  q: quit"))
		} else {
			b.WriteString(pickerDescStyle.Render("esc: back  q: quit"))
		}
		b.WriteString("\n")
		return b.String()

	default:
		return m.picker.View()
	}
}

// RunApp runs the full picker-and-board flow in the local terminal.
func RunApp(cfg config.Config, prov provider.Provider, store *storage.Store, opts AppOptions, width, height int) error {
	model := NewAppModel(cfg, prov, store, opts, width, height)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// standaloneBoard runs a board with no picker behind it, so going back
// quits the program.
type standaloneBoard struct {
	board BoardModel
}

func (m standaloneBoard) Init() tea.Cmd {
	return m.board.Init()
}

func (m standaloneBoard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBoard, cmd := m.board.Update(msg)
	if board, ok := newBoard.(BoardModel); ok {
		m.board = board
	}
	if m.board.BackToMenu() {
		return m, tea.Quit
	}
	return m, cmd
}

func (m standaloneBoard) View() string {
	if m.board.BackToMenu() {
		return ""
	}
	return m.board.View()
}

// RunBoard skips the picker and plays one collection directly.
func RunBoard(cfg config.Config, store *storage.Store, col provider.CollectionSummary, pairs []content.Pair, opts AppOptions, width, height int) error {
	if opts.Pairs <= 0 {
		opts.Pairs = cfg.Game.DefaultPairs
	}
	board, err := NewBoardModel(cfg, store, col, pairs, opts.Pairs, opts.Columns, width, height, opts.Seed)
	if err != nil {
		return err
	}

	p := tea.NewProgram(standaloneBoard{board: board}, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

package tui

import "github.com/charmbracelet/bubbles/key"

// BoardKeyMap defines the key bindings for the game board.
type BoardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Select  key.Binding
	Restart key.Binding
	Wider   key.Binding
	Tighter key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BoardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Select, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k BoardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Select},
		{k.Wider, k.Tighter, k.Restart, k.Back, k.Quit},
	}
}

// DefaultBoardKeyMap returns default key bindings.
func DefaultBoardKeyMap() BoardKeyMap {
	return BoardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "right"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "flip"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Wider: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "more columns"),
		),
		Tighter: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "fewer columns"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

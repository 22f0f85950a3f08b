// Package tui provides the Bubble Tea integration for the pairtiles game.
// It handles the terminal UI loop, input mapping, and session orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent once per second to refresh the play clock display.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that emits clock refresh ticks.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// MismatchMsg fires after the mismatch cooldown. Gen carries the generation
// token the session handed out; the session ignores tokens that a later
// selection or restart has superseded, so a late timer can never flip tiles
// that belong to a newer attempt.
type MismatchMsg struct {
	Gen uint64
}

// mismatchCmd schedules the flip-back of a mismatched pair.
func mismatchCmd(delay time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return MismatchMsg{Gen: gen}
	})
}

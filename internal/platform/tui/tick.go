// Package tui provides the Bubble Tea integration for the maze game.
// It handles the terminal UI loop, input mapping, menus, and dump files.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg advances the game by one simulation step.
type TickMsg time.Time

// tickInterval is the frame period for fps, falling back to the default rate.
func tickInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = 30
	}
	return time.Second / time.Duration(fps)
}

func tickCmd(fps int) tea.Cmd {
	return tea.Tick(tickInterval(fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

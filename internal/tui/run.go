// Package tui is the terminal front-end: a Bubble Tea program that
// renders the board, accepts UCI moves and commands, and talks to the
// engine on a background goroutine.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quietpawn/quietpawn/internal/storage"
)

// Run starts the terminal UI. The storage handle may be nil; saving
// and statistics are then disabled.
func Run(st *storage.Storage) error {
	p := tea.NewProgram(NewModel(st), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

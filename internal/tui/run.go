package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brume-cli/brume/internal/core/ports/driving"
)

// Run starts the search TUI and blocks until the user quits.
func Run(ctx context.Context, search driving.SearchService) error {
	program := tea.NewProgram(New(ctx, search))
	_, err := program.Run()
	return err
}

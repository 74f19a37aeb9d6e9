package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/moneta-cli/moneta/internal/api"
)

// Run starts the dashboard and blocks until the user quits.
func Run(ctx context.Context, reader api.Reader) error {
	p := tea.NewProgram(
		NewModel(ctx, reader),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}

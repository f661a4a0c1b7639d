package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DaanHessen/budgethero/internal/game"
	"github.com/DaanHessen/budgethero/internal/util"
)

// Run boots the TUI program and blocks until it exits.
func Run(ctx context.Context, s *game.Session, cfg util.Config, version string) error {
	m := newModel(ctx, s, cfg.Theme, version, nil)
	program := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

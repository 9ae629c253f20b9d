package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/SameerAmesara/Book-Catalogue-App/internal/shared"
	"github.com/SameerAmesara/Book-Catalogue-App/internal/ui"
)

// TUI launches the interactive terminal UI for the book catalogue.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.catalog == nil {
		return fmt.Errorf("%w: catalogue service not initialized", shared.ErrServiceUnavailable)
	}
	if r.identity == nil {
		return fmt.Errorf("%w: identity service not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/bookcat-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	// Restore any persisted session so the TUI can skip the login view.
	if err := r.store.Restore(r.sessions); err != nil {
		r.logger.Warn("failed to restore session", "error", err)
	}

	model := ui.NewModel(ctx, r.gateway, r.catalog)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/Prabhat9801/libman/internal/shared"
	"github.com/Prabhat9801/libman/internal/ui"
	"github.com/Prabhat9801/libman/internal/views"
)

// TUI launches the interactive terminal UI for circulation management.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.library == nil {
		return fmt.Errorf("%w: library client not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	logPath := r.config.Log.TUIFile
	if logPath == "" {
		logPath = "./tmp/libman-tui.log"
	}
	fileLogger, err := shared.NewFileLogger(logPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	// The TUI's confirm view handles confirmation, so the coordinator gets none.
	issued := views.NewIssuedView(r.library)
	history := views.NewHistoryView(r.library)
	coordinator := views.NewCoordinator(r.library, issued, history, nil, fileLogger)

	model := ui.NewModel(ctx, coordinator)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

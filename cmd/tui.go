package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/playdex/internal/repositories"
	"github.com/desertthunder/playdex/internal/shared"
	"github.com/desertthunder/playdex/internal/tasks"
	"github.com/desertthunder/playdex/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for playlist browsing and caching.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	svc, err := r.ensureService(ctx)
	if err != nil {
		return err
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/playdex-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	engine := tasks.NewSnapshotEngine(svc, repositories.NewPlaylistRepository(db), repositories.NewTrackRepository(db))

	model := ui.NewModel(ctx, svc, engine)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

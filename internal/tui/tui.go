package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"siralim-planner/internal/catalog"
	"siralim-planner/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Options configure the interactive planner.
type Options struct {
	Catalog *catalog.Catalog
	Store   store.Store
	Party   *store.Loaded
	// Autosave is the quiet period before an edit is written. Zero means two seconds.
	Autosave time.Duration
	Logger   *slog.Logger
}

// Run shows the party grid until the user quits, then writes any unsaved edit.
func Run(ctx context.Context, opts Options) error {
	if opts.Catalog == nil || opts.Party == nil {
		return errors.New("tui: catalog and party are required")
	}
	applyThemePreference()
	applyColorProfilePreference()

	m := newAppModel(opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if ferr := m.saver.Flush(context.WithoutCancel(ctx)); ferr != nil {
		m.log.Error("final save failed", "party", m.name, "err", ferr)
		if err == nil {
			err = ferr
		}
	}
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Package tui is the interactive desktop: menu bar, desktop icons, dock and draggable
// Finder windows over the portfolio catalog.
package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"deskfolio/internal/catalog"
	"deskfolio/internal/theme"
)

type Options struct {
	Catalog *catalog.Catalog
	// CatalogPath is reloaded on change when Watch is set.
	CatalogPath string
	Watch       bool

	Theme   *theme.Context
	Logger  *zerolog.Logger
	Sidebar SidebarMode

	// Terminal cell size in pixels, for viewport classification.
	CellWidth  int
	CellHeight int

	// Open is a launcher id activated once the terminal size is known.
	Open string
}

// Run blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	if opts.Open != "" && !IsLauncher(opts.Open) {
		return errors.New("unknown launcher: " + opts.Open)
	}
	theme.ApplyColorProfile()
	applyGlyphPreference()

	m := newAppModel(opts)
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)

	if opts.Watch && opts.CatalogPath != "" {
		wctx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			err := catalog.Watch(wctx, opts.CatalogPath, func(c *catalog.Catalog, err error) {
				p.Send(catalogReloadedMsg{cat: c, err: err})
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				p.Send(catalogReloadedMsg{err: err})
			}
		}()
	}

	start := time.Now()
	_, err := p.Run()
	if opts.Logger != nil {
		opts.Logger.Info().Dur("elapsed", time.Since(start)).Msg("tui exited")
	}
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkarlsen/tally/internal/backup"
	"github.com/mkarlsen/tally/internal/logger"
	"github.com/mkarlsen/tally/internal/session"
	"github.com/mkarlsen/tally/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if _, err := ctx.Session.Current(); err != nil {
		if errors.Is(err, session.ErrNotSignedIn) {
			return fmt.Errorf("not signed in; run 'tally login' first")
		}
		return err
	}

	// Best-effort snapshot before an interactive session mutates anything.
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("automatic backup failed", "err", err)
	}

	p := tea.NewProgram(tui.NewModel(ctx.Session), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

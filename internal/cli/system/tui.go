package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitduel/internal/cli"
	"github.com/julianstephens/habitduel/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	// Tracker loads the snapshot and takes the automatic backup.
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(svc), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited with error: %w", err)
	}
	return nil
}

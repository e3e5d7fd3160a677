package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/habitduel/internal/cli"
)

type InitCmd struct {
	Force bool `help:"Delete existing data before initializing (file storage only)."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if !cli.HasFileStore(ctx.Store) {
			return fmt.Errorf("--force is only supported for SQLite and JSON storage")
		}
		if err := ctx.AcquireLock(); err != nil {
			return err
		}
		path := ctx.Store.GetConfigPath()
		if _, err := os.Stat(path); err == nil {
			// Close first to release file locks
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			ctx.PerformAutomaticBackup()
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing data: %w", err)
			}
			fmt.Printf("Deleted existing data at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing data: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	fmt.Printf("Initialized habitduel storage at: %s\n", ctx.Store.GetConfigPath())
	for _, u := range svc.ListUsers() {
		fmt.Printf("  %s\n", cli.UserLabel(u.Profile))
	}
	return nil
}

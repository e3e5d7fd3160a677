package system

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/julianstephens/habitduel/internal/backup"
	"github.com/julianstephens/habitduel/internal/cli"
	"github.com/julianstephens/habitduel/internal/constants"
	"github.com/julianstephens/habitduel/internal/keyring"
	"github.com/julianstephens/habitduel/internal/migration"
	"github.com/julianstephens/habitduel/internal/storage/sqlite"
	"github.com/julianstephens/habitduel/internal/utils"
	"github.com/julianstephens/habitduel/migrations"
)

type DoctorCmd struct{}

type check struct {
	name string
	// warnOnly checks print a warning instead of failing the run.
	warnOnly bool
	// needsDB checks are skipped when storage could not be loaded.
	needsDB bool
	run     func(*cli.Context) error
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	checks := []check{
		{name: "Storage reachable", run: checkStoreReachable},
		{name: "Schema version", needsDB: true, run: checkSchemaVersion},
		{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
		{name: "Data validation", needsDB: true, run: checkValidation},
		{name: "Clock/timezone", run: checkClockTimezone},
		{name: "Keyring", warnOnly: true, run: checkKeyring},
	}

	hasError := false
	dbReachable := false
	for i, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
			if i == 0 {
				dbReachable = true
			}
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if _, err := ctx.Tracker(); err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}

	if sqliteStore, ok := ctx.Store.(*sqlite.Store); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil
	}
	db := sqliteStore.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	sub, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return err
	}
	runner := migration.NewRunner(db, sub, migration.SQLite)
	if err := runner.ValidateVersion(); err != nil {
		return err
	}

	current, err := runner.GetCurrentVersion()
	if err != nil {
		return err
	}
	latest, err := runner.GetLatestVersion()
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if !cli.HasFileStore(ctx.Store) {
		return fmt.Errorf("backups are not managed for PostgreSQL storage")
	}
	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'habitduel backup create'")
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	conflicts := 0
	for _, res := range svc.Validate() {
		conflicts += len(res.Conflicts)
	}
	if conflicts > 0 {
		return fmt.Errorf("found %d conflict(s), run 'habitduel validate' for details", conflicts)
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now, err := utils.NowInTimezone(ctx.Config.Timezone)
	if err != nil {
		return err
	}
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkKeyring(*cli.Context) error {
	if !keyring.IsAvailable() {
		return fmt.Errorf("OS keyring is not available; set %s for PostgreSQL credentials", constants.ConnectionEnvVar)
	}
	return nil
}

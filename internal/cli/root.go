package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/habitduel/internal/backup"
	"github.com/julianstephens/habitduel/internal/clock"
	"github.com/julianstephens/habitduel/internal/config"
	"github.com/julianstephens/habitduel/internal/lock"
	"github.com/julianstephens/habitduel/internal/logger"
	"github.com/julianstephens/habitduel/internal/models"
	"github.com/julianstephens/habitduel/internal/storage"
	"github.com/julianstephens/habitduel/internal/storage/postgres"
	"github.com/julianstephens/habitduel/internal/storage/sqlite"
	"github.com/julianstephens/habitduel/internal/tracker"
	"github.com/julianstephens/habitduel/internal/utils"
)

type Context struct {
	Store      storage.Provider
	Config     config.Config
	ConfigFile string
	// User, when set, is switched to before any command runs.
	User string

	svc  *tracker.Service
	lock *lock.Lock
}

// NewStore picks a provider for target: a PostgreSQL URL or DSN, a .json
// file, or an SQLite database for any other path. Passwords in a PostgreSQL
// target are rejected unless allowCredentials is set, as it is for values
// read from the keyring.
func NewStore(target string, allowCredentials bool) (storage.Provider, error) {
	switch {
	case postgres.IsConnString(target) || strings.Contains(target, "host="):
		if _, err := postgres.ValidateConnString(target); err != nil {
			if !allowCredentials || !errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, err
			}
		}
		return postgres.New(target), nil
	case strings.EqualFold(filepath.Ext(target), ".json"):
		return storage.NewJSONStore(target), nil
	default:
		return sqlite.NewStore(target), nil
	}
}

// HasFileStore reports whether p keeps its data in a local file.
func HasFileStore(p storage.Provider) bool {
	_, isPostgres := p.(*postgres.Store)
	return !isPostgres
}

// Tracker returns the service, loading and initializing the snapshot on
// first use.
func (c *Context) Tracker() (*tracker.Service, error) {
	if c.svc != nil {
		return c.svc, nil
	}

	loc, err := utils.LoadLocation(c.Config.Timezone)
	if err != nil {
		return nil, err
	}
	clk := clock.RealClock{Location: loc}

	if err := c.AcquireLock(); err != nil {
		return nil, err
	}
	c.PerformAutomaticBackup()

	repo := storage.NewRepository(c.Store, clk, uuid.NewString)
	svc := tracker.New(repo, tracker.WithClock(clk))
	report, err := svc.EnsureInitialized()
	if err != nil {
		return nil, err
	}
	if report.Recovered {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("⚠️  Stored data was unreadable and has been replaced with a fresh start."))
	}
	if c.User != "" {
		u, err := svc.FindUser(c.User)
		if err != nil {
			return nil, err
		}
		if cur, err := svc.CurrentUser(); err != nil || cur.ID != u.ID {
			if err := svc.SwitchUser(u.ID); err != nil {
				return nil, err
			}
		}
	}

	c.svc = svc
	return svc, nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if !c.Config.BackupsEnabled() || !HasFileStore(c.Store) {
		return
	}
	path := c.Store.GetConfigPath()
	if _, err := os.Stat(path); err != nil {
		return
	}
	mgr := backup.NewManager(path, backup.WithMaxBackups(c.Config.Backups.Max))
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ResolveUser finds a user by id or name. An empty ref means the current user.
func (c *Context) ResolveUser(ref string) (models.User, error) {
	svc, err := c.Tracker()
	if err != nil {
		return models.User{}, err
	}
	if ref == "" {
		return svc.CurrentUser()
	}
	return svc.FindUser(ref)
}

// AcquireLock claims the data file for this process. PostgreSQL targets are
// not locked.
func (c *Context) AcquireLock() error {
	if c.lock != nil || c.Store == nil || !HasFileStore(c.Store) {
		return nil
	}
	l, err := lock.Acquire(c.Store.GetConfigPath())
	if err != nil {
		return err
	}
	c.lock = l
	return nil
}

func (c *Context) Close() error {
	if err := c.lock.Release(); err != nil {
		logger.Warn("Failed to release data lock", "error", err)
	}
	c.lock = nil
	if c.Store == nil {
		return nil
	}
	return c.Store.Close()
}

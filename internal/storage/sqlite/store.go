package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/habitduel/internal/logger"
	"github.com/julianstephens/habitduel/internal/migration"
	"github.com/julianstephens/habitduel/internal/models"
	"github.com/julianstephens/habitduel/internal/storage"
	"github.com/julianstephens/habitduel/internal/storage/sqldoc"
	"github.com/julianstephens/habitduel/migrations"
)

type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := s.open(); err != nil {
		return err
	}

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Store) open() error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db
	return nil
}

func (s *Store) Load() (models.State, error) {
	if s.db == nil {
		if _, err := os.Stat(s.path); os.IsNotExist(err) {
			return models.State{}, storage.ErrNotInitialized
		}
		if err := s.open(); err != nil {
			return models.State{}, err
		}
		if err := s.runMigrations(); err != nil {
			return models.State{}, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	state, err := sqldoc.Load(s.db, migration.SQLite)
	var decodeErr *sqldoc.DecodeError
	switch {
	case errors.Is(err, sqldoc.ErrEmpty):
		return models.State{}, storage.ErrNotInitialized
	case errors.As(err, &decodeErr):
		return models.State{}, &storage.CorruptError{Source: s.path, Err: err}
	case err != nil:
		return models.State{}, err
	}
	return state, nil
}

func (s *Store) Save(state models.State) error {
	if s.db == nil {
		if err := s.Init(); err != nil {
			return err
		}
	}
	return sqldoc.Save(s.db, migration.SQLite, state)
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB exposes the connection for backups and tests.
func (s *Store) GetDB() *sql.DB {
	return s.db
}

func (s *Store) runMigrations() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS, migration.SQLite)
	_, err = runner.ApplyMigrations(func(msg string) {
		logger.Debug(msg)
	})
	return err
}

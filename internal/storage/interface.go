package storage

import (
	"errors"
	"fmt"

	"github.com/julianstephens/habitduel/internal/models"
)

// Provider persists whole-state snapshots. Stores may keep each collection in
// its own table, but the boundary is always load-all and save-all.
type Provider interface {
	// Lifecycle
	Init() error
	Close() error

	// Snapshot
	Load() (models.State, error)
	Save(models.State) error

	// Utils
	GetConfigPath() string
}

// ErrNotInitialized is returned by Load when nothing has been stored yet.
var ErrNotInitialized = errors.New("storage not initialized, run 'habitduel init' first")

// CorruptError reports stored data that could not be decoded.
type CorruptError struct {
	Source string
	Err    error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt snapshot in %s: %v", e.Source, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

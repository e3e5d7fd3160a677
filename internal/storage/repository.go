package storage

import (
	"errors"

	"github.com/julianstephens/habitduel/internal/clock"
	"github.com/julianstephens/habitduel/internal/logger"
	"github.com/julianstephens/habitduel/internal/models"
)

// LoadResult is a loaded snapshot plus how it was obtained.
type LoadResult struct {
	State models.State
	// Fresh is set when nothing was stored yet and the default was used.
	Fresh bool
	// Recovered is set when stored data was unreadable and the default replaced it.
	Recovered bool
}

// Repository is the persistence boundary the tracker talks to. Corrupt data
// never reaches the caller as an error, and save failures are only logged.
type Repository struct {
	provider Provider
	clock    clock.Clock
	newID    func() string

	// lastSaveErr keeps the most recent save failure for diagnostics.
	lastSaveErr error
}

func NewRepository(p Provider, c clock.Clock, newID func() string) *Repository {
	return &Repository{provider: p, clock: c, newID: newID}
}

// Provider returns the underlying store.
func (r *Repository) Provider() Provider {
	return r.provider
}

// Load returns the stored snapshot, or the default one when nothing is
// stored or the stored data is corrupt. Other failures, such as an
// unreachable database, are returned.
func (r *Repository) Load() (LoadResult, error) {
	state, err := r.provider.Load()

	var corrupt *CorruptError
	switch {
	case err == nil && len(state.Users) > 0:
		return LoadResult{State: state}, nil
	case err == nil, errors.Is(err, ErrNotInitialized):
		if initErr := r.provider.Init(); initErr != nil {
			return LoadResult{}, initErr
		}
		logger.Debug("No stored snapshot, using defaults", "path", r.provider.GetConfigPath())
		return LoadResult{State: r.defaultState(), Fresh: true}, nil
	case errors.As(err, &corrupt):
		logger.Warn("Stored snapshot is corrupt, falling back to defaults", "source", corrupt.Source, "error", corrupt.Err)
		return LoadResult{State: r.defaultState(), Recovered: true}, nil
	default:
		return LoadResult{}, err
	}
}

// Save writes the snapshot. Failures are logged and kept for LastSaveError;
// the in-memory state stays authoritative.
func (r *Repository) Save(state models.State) {
	if err := r.provider.Save(state); err != nil {
		r.lastSaveErr = err
		logger.Error("Failed to save snapshot", "path", r.provider.GetConfigPath(), "error", err)
		return
	}
	r.lastSaveErr = nil
}

// LastSaveError returns the error from the most recent Save, if it failed.
func (r *Repository) LastSaveError() error {
	return r.lastSaveErr
}

func (r *Repository) Close() error {
	return r.provider.Close()
}

func (r *Repository) defaultState() models.State {
	return DefaultState(clock.Timestamp(r.clock), r.newID)
}

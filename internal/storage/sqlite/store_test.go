package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/habitduel/internal/models"
	"github.com/julianstephens/habitduel/internal/storage"
	"github.com/julianstephens/habitduel/internal/storage/storagetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(filepath.Join(t.TempDir(), "habitduel.db"))
	require.NoError(t, s.Init())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLoadMissingFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	_, err := s.Load()
	assert.True(t, errors.Is(err, storage.ErrNotInitialized))
}

func TestLoadEmptyDatabase(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Load()
	assert.True(t, errors.Is(err, storage.ErrNotInitialized))
}

func TestRoundTrip(t *testing.T) {
	s := newTestStore(t)
	want := storagetest.SampleState()

	require.NoError(t, s.Save(want))
	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, s.Close())
	reopened := NewStore(s.GetConfigPath())
	defer reopened.Close()
	got, err = reopened.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got, "snapshot survives reopening the file")
}

func TestSavePrunesRemovedRows(t *testing.T) {
	s := newTestStore(t)
	state := storagetest.SampleState()
	require.NoError(t, s.Save(state))

	// Drop a habit, a challenge, and finalize the active battle.
	u := &state.Users[0]
	u.Habits = u.Habits[:1]
	u.Challenges = []models.MiniChallenge{}
	done := *state.ActiveBattle
	done.Status = models.BattleDraw
	state.Battles = append(state.Battles, done)
	state.ActiveBattle = nil
	state.Users = append(state.Users[:1], models.User{
		ID:         "u3",
		Profile:    models.UserProfile{ID: "u3", Name: "Player 3", Badges: []models.Badge{}},
		Habits:     []models.Habit{},
		Challenges: []models.MiniChallenge{},
	})

	require.NoError(t, s.Save(state))
	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, state, got)

	for table, want := range map[string]int{"users": 2, "habits": 1, "challenges": 0, "battles": 2} {
		var n int
		require.NoError(t, s.GetDB().QueryRow("SELECT count(*) FROM "+table).Scan(&n))
		assert.Equal(t, want, n, table)
	}
}

func TestSaveWritesMetaRows(t *testing.T) {
	s := newTestStore(t)
	state := storagetest.SampleState()
	state.Version = 3
	require.NoError(t, s.Save(state))

	meta := map[string]string{}
	rows, err := s.GetDB().Query("SELECT key, value FROM meta")
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var k, v string
		require.NoError(t, rows.Scan(&k, &v))
		meta[k] = v
	}
	require.NoError(t, rows.Err())

	assert.Equal(t, "3", meta["version"])
	assert.Equal(t, state.CurrentUserID, meta["current_user_id"])
	assert.NotEmpty(t, meta["settings"])

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 3, got.Version)
}

func TestLoadCorruptDocument(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(storagetest.SampleState()))

	_, err := s.GetDB().Exec("UPDATE habits SET doc = ? WHERE id = ?", "{broken", "h1")
	require.NoError(t, err)

	_, err = s.Load()
	var corrupt *storage.CorruptError
	require.True(t, errors.As(err, &corrupt))
	assert.Equal(t, s.GetConfigPath(), corrupt.Source)
	assert.Contains(t, err.Error(), "h1")
}

package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/habitduel/internal/storage/storagetest"
)

func TestJSONStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "habitduel.json")
	store := NewJSONStore(path)
	require.NoError(t, store.Init())

	want := storagetest.SampleState()
	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestJSONStoreMissingFile(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "none.json"))
	_, err := store.Load()
	assert.True(t, errors.Is(err, ErrNotInitialized))
}

func TestJSONStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habitduel.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"users": [`), 0600))

	_, err := NewJSONStore(path).Load()
	var corrupt *CorruptError
	require.True(t, errors.As(err, &corrupt))
	assert.Equal(t, path, corrupt.Source)
}

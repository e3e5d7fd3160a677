package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/habitduel/internal/models"
)

// JSONStore keeps the whole snapshot in one indented JSON document.
type JSONStore struct {
	path string
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

// Init creates the config directory. An existing file is left alone.
func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return nil
}

func (s *JSONStore) Load() (models.State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.State{}, ErrNotInitialized
		}
		return models.State{}, fmt.Errorf("failed to read storage: %w", err)
	}

	var state models.State
	if err := json.Unmarshal(data, &state); err != nil {
		return models.State{}, &CorruptError{Source: s.path, Err: err}
	}
	state.Normalize()
	return state, nil
}

func (s *JSONStore) Save(state models.State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Write to a temp file and rename over the target.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

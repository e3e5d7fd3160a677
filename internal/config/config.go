// Package config reads the optional YAML settings file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/habitduel/internal/constants"
	"github.com/julianstephens/habitduel/internal/utils"
)

type Config struct {
	Timezone    string  `yaml:"timezone"`
	Debug       bool    `yaml:"debug"`
	DefaultUser string  `yaml:"default_user"`
	Backups     Backups `yaml:"backups"`
}

type Backups struct {
	Enabled *bool `yaml:"enabled"`
	Max     int   `yaml:"max"`
}

// Default returns the settings used when no file exists.
func Default() Config {
	enabled := true
	return Config{
		Timezone: "Local",
		Backups:  Backups{Enabled: &enabled, Max: constants.MaxBackups},
	}
}

// ApplyDefaults fills zero fields with their defaults.
func (c *Config) ApplyDefaults() {
	d := Default()
	if c.Timezone == "" {
		c.Timezone = d.Timezone
	}
	if c.Backups.Enabled == nil {
		c.Backups.Enabled = d.Backups.Enabled
	}
	if c.Backups.Max <= 0 {
		c.Backups.Max = d.Backups.Max
	}
}

// BackupsEnabled reports whether automatic backups should run.
func (c Config) BackupsEnabled() bool {
	return c.Backups.Enabled == nil || *c.Backups.Enabled
}

// Validate checks values that yaml decoding cannot.
func (c Config) Validate() error {
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("invalid timezone %q", c.Timezone)
	}
	if c.Backups.Max < 0 {
		return fmt.Errorf("backups.max must not be negative")
	}
	return nil
}

// Load reads path. A missing file yields the defaults; a malformed one is an
// error.
func Load(path string) (Config, error) {
	path, err := ExpandPath(path)
	if err != nil {
		return Config{}, err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Save writes c to path as YAML.
func Save(path string, c Config) error {
	path, err := ExpandPath(path)
	if err != nil {
		return err
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, b, 0600)
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}

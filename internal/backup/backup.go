package backup

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/habitduel/internal/clock"
	"github.com/julianstephens/habitduel/internal/constants"
	"github.com/julianstephens/habitduel/internal/logger"
)

const (
	// DefaultMaxBackups is how many backups are kept when no limit is configured
	DefaultMaxBackups = constants.MaxBackups
	// BackupDirName is the name of the backup directory
	BackupDirName = constants.BackupDirName
	// BackupFilePrefix is the prefix for backup files
	BackupFilePrefix = constants.BackupFilePrefix

	minuteLayout = "20060102-1504"
	secondLayout = "20060102-150405"
)

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager snapshots the data file into a sibling backups directory. SQLite
// files are copied with VACUUM INTO; JSON files are copied after validation.
type Manager struct {
	dataPath   string
	backupDir  string
	suffix     string
	maxBackups int
	clock      clock.Clock
}

// Option configures a Manager.
type Option func(*Manager)

// WithMaxBackups sets the retention limit. Values below 1 keep the default.
func WithMaxBackups(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.maxBackups = n
		}
	}
}

// WithClock sets the clock used to name backups.
func WithClock(c clock.Clock) Option {
	return func(m *Manager) { m.clock = c }
}

// NewManager creates a backup manager for the data file at dataPath
func NewManager(dataPath string, opts ...Option) *Manager {
	suffix := filepath.Ext(dataPath)
	if suffix == "" {
		suffix = ".db"
	}
	m := &Manager{
		dataPath:   dataPath,
		backupDir:  filepath.Join(filepath.Dir(dataPath), BackupDirName),
		suffix:     suffix,
		maxBackups: DefaultMaxBackups,
		clock:      clock.RealClock{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// MaxBackups returns the retention limit
func (m *Manager) MaxBackups() int {
	return m.maxBackups
}

func (m *Manager) isJSON() bool {
	return strings.EqualFold(m.suffix, ".json")
}

// CreateBackup creates a new backup of the data file and rotates old ones
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

// createBackup skips rotation when called from a restore.
func (m *Manager) createBackup(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	if _, err := os.Stat(m.dataPath); os.IsNotExist(err) {
		return "", fmt.Errorf("data file does not exist: %s", m.dataPath)
	}

	backupPath, err := m.nextBackupPath()
	if err != nil {
		return "", err
	}

	if m.isJSON() {
		err = m.backupJSON(backupPath)
	} else {
		err = m.backupDatabase(backupPath)
	}
	if err != nil {
		return "", fmt.Errorf("failed to backup data file: %w", err)
	}

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}

	return backupPath, nil
}

// nextBackupPath names a backup by minute, falling back to seconds and then
// a counter when the name is taken.
func (m *Manager) nextBackupPath() (string, error) {
	now := m.clock.Now()
	name := func(ts string) string {
		return filepath.Join(m.backupDir, BackupFilePrefix+ts+m.suffix)
	}

	path := name(now.Format(minuteLayout))
	if !exists(path) {
		return path, nil
	}

	ts := now.Format(secondLayout)
	path = name(ts)
	for counter := 1; exists(path); counter++ {
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = name(fmt.Sprintf("%s-%d", ts, counter))
	}
	return path, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (m *Manager) backupDatabase(destPath string) error {
	srcDB, err := sql.Open("sqlite", m.dataPath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer srcDB.Close()

	var count int
	if err := srcDB.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	if _, err := srcDB.Exec("VACUUM INTO ?", destPath); err != nil {
		logger.Debug("VACUUM INTO failed, copying file instead", "error", err)
		srcDB.Close()
		return copyFile(m.dataPath, destPath)
	}
	return nil
}

func (m *Manager) backupJSON(destPath string) error {
	if err := verifyJSON(m.dataPath); err != nil {
		return fmt.Errorf("source file appears to be corrupted: %w", err)
	}
	return copyFile(m.dataPath, destPath)
}

// ListBackups returns all available backups, newest first
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []BackupInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasPrefix(name, BackupFilePrefix) || !strings.HasSuffix(name, m.suffix) {
			continue
		}

		timestamp, ok := parseTimestamp(strings.TrimSuffix(strings.TrimPrefix(name, BackupFilePrefix), m.suffix))
		if !ok {
			continue
		}

		path := filepath.Join(m.backupDir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		backups = append(backups, BackupInfo{
			Path:      path,
			Timestamp: timestamp,
			Size:      info.Size(),
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Path > backups[j].Path
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})

	return backups, nil
}

// parseTimestamp accepts YYYYMMDD-HHMM, YYYYMMDD-HHMMSS and either with a
// trailing -N counter.
func parseTimestamp(s string) (time.Time, bool) {
	parts := strings.Split(s, "-")
	if len(parts) == 3 && isDigits(parts[2]) {
		s = parts[0] + "-" + parts[1]
	}
	for _, layout := range []string{minuteLayout, secondLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// rotateBackups removes old backups beyond the retention limit
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	for i := m.maxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// RestoreBackup replaces the data file with backupPath. The current file is
// backed up first.
func (m *Manager) RestoreBackup(backupPath string) error {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", backupPath)
	}

	if err := m.verifyBackup(backupPath); err != nil {
		return fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	if exists(m.dataPath) {
		current, err := m.createBackup(true)
		if err != nil {
			return fmt.Errorf("failed to backup current data before restore: %w", err)
		}
		logger.Info("Backed up current data before restore", "path", current)
	}

	tempPath := m.dataPath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return fmt.Errorf("failed to copy backup file: %w", err)
	}

	if err := os.Rename(tempPath, m.dataPath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			logger.Warn("Failed to remove temporary file", "path", tempPath, "error", removeErr)
		}
		return fmt.Errorf("failed to restore data file: %w", err)
	}

	return nil
}

func (m *Manager) verifyBackup(path string) error {
	if m.isJSON() {
		return verifyJSON(path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func verifyJSON(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if !json.Valid(data) {
		return fmt.Errorf("%s is not valid JSON", filepath.Base(path))
	}
	return nil
}

// copyFile copies a file from src to dst
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}

	return destFile.Sync()
}

// Package lock keeps a second habitduel process from writing the same data
// file. The lockfile holds "pid|acquired-at" and is treated as stale once
// that process is gone.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/habitduel/internal/constants"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// ErrLocked is returned when another live habitduel process holds the data.
var ErrLocked = errors.New("data is in use by another habitduel process")

type Lock struct {
	path string
}

// PathFor returns the lockfile path guarding dataPath.
func PathFor(dataPath string) string {
	return dataPath + constants.LockfileSuffix
}

// Acquire takes the lock for dataPath, replacing a stale lockfile.
func Acquire(dataPath string) (*Lock, error) {
	path := PathFor(dataPath)
	if pid, err := Holder(path); err == nil && pid != getpidFunc() {
		return nil, fmt.Errorf("%w (pid %d); close it and try again", ErrLocked, pid)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	content := fmt.Sprintf("%d|%s", getpidFunc(), time.Now().UTC().Format(time.RFC3339))
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	return &Lock{path: path}, nil
}

// Holder returns the pid of the running habitduel process named in the
// lockfile at path. Any error means the lock is free.
func Holder(path string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.New("no lockfile")
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 2 {
		return 0, errors.New("lockfile is malformed")
	}
	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		return 0, errors.New("invalid process ID in lockfile")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return 0, errors.New("lock holder is not running")
	}
	if !strings.HasPrefix(process.Executable(), constants.AppName) {
		return 0, fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.AppName, process.Executable())
	}
	return pid, nil
}

// Release removes the lockfile. It is safe on a nil Lock.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}

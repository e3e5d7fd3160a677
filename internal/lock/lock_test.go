package lock

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-ps"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 1 }
func (m *mockProcess) Executable() string { return m.executable }

func stubProcesses(t *testing.T, self int, running map[int]string) {
	t.Helper()
	oldFind, oldPid := findProcessFunc, getpidFunc
	t.Cleanup(func() { findProcessFunc, getpidFunc = oldFind, oldPid })

	getpidFunc = func() int { return self }
	findProcessFunc = func(pid int) (ps.Process, error) {
		exe, ok := running[pid]
		if !ok {
			return nil, nil
		}
		return &mockProcess{pid: pid, executable: exe}, nil
	}
}

func TestAcquireAndRelease(t *testing.T) {
	stubProcesses(t, 100, map[int]string{100: "habitduel"})
	data := filepath.Join(t.TempDir(), "habitduel.db")

	l, err := Acquire(data)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if pid, err := Holder(PathFor(data)); err != nil || pid != 100 {
		t.Errorf("Holder() = %d, %v; want 100", pid, err)
	}

	if _, err := Acquire(data); err != nil {
		t.Errorf("re-acquiring our own lock should succeed: %v", err)
	}

	if err := l.Release(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(PathFor(data)); !os.IsNotExist(err) {
		t.Error("lockfile should be removed on release")
	}
	if err := l.Release(); err != nil {
		t.Errorf("second release should be a no-op: %v", err)
	}
}

func TestAcquireHeldByOtherProcess(t *testing.T) {
	data := filepath.Join(t.TempDir(), "habitduel.db")
	if err := os.WriteFile(PathFor(data), []byte("200|2026-01-23T09:00:00Z"), 0600); err != nil {
		t.Fatal(err)
	}

	stubProcesses(t, 100, map[int]string{200: "habitduel"})
	_, err := Acquire(data)
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if !strings.Contains(err.Error(), "pid 200") {
		t.Errorf("error should name the holder: %v", err)
	}
}

func TestAcquireReplacesStaleLock(t *testing.T) {
	tests := []struct {
		name    string
		content string
		running map[int]string
	}{
		{"holder gone", "200|2026-01-23T09:00:00Z", map[int]string{}},
		{"pid reused by other program", "200|2026-01-23T09:00:00Z", map[int]string{200: "vim"}},
		{"malformed", "garbage", map[int]string{}},
		{"bad pid", "abc|2026-01-23T09:00:00Z", map[int]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := filepath.Join(t.TempDir(), "habitduel.json")
			if err := os.WriteFile(PathFor(data), []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			stubProcesses(t, 100, tt.running)

			l, err := Acquire(data)
			if err != nil {
				t.Fatalf("stale lock should be replaced: %v", err)
			}
			defer l.Release()

			content, _ := os.ReadFile(PathFor(data))
			if !strings.HasPrefix(string(content), "100|") {
				t.Errorf("lockfile = %q, want our pid", content)
			}
		})
	}
}

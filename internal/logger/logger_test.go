package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{Debug: false, ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Warn("Test warning message")
	Error("Test error message")

	data, err := os.ReadFile(filepath.Join(logDir, "habitduel.log"))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "Test warning message") {
		t.Errorf("log file missing warning, got %q", string(data))
	}
}

func TestInitDebugMode(t *testing.T) {
	if err := Init(Config{Debug: true, ConfigDir: t.TempDir()}); err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}
	if Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", Logger.GetLevel())
	}
}

func TestInitWriterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, log.WarnLevel, false)
	t.Cleanup(func() { Logger = nil })

	Info("hidden")
	Warn("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message leaked at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "key=value") {
		t.Errorf("warn message missing: %q", out)
	}
	if !strings.Contains(out, "habitduel") {
		t.Errorf("prefix missing: %q", out)
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}

func TestFieldsCarryDomainContext(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, log.DebugLevel, false)
	t.Cleanup(func() { Logger = nil })

	user := ForUser("u1", "Player 1")
	habit := user.Habit("h1", "Exercise")
	habit.Info("Recorded check-in", "points", 12)
	user.Battle("b1").Debug("Battle finished")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %q", len(lines), buf.String())
	}
	for _, want := range []string{"user_id=u1", "habit_id=h1", "habit=Exercise", "points=12"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("check-in line missing %q: %q", want, lines[0])
		}
	}
	if !strings.Contains(lines[1], "battle_id=b1") || strings.Contains(lines[1], "habit_id") {
		t.Errorf("battle line has wrong fields: %q", lines[1])
	}

	Logger = nil
	habit.Warn("no logger, no panic")
}

package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/habitduel/internal/clock"
	"github.com/julianstephens/habitduel/internal/storage"
	"github.com/julianstephens/habitduel/internal/storage/storagetest"
	"github.com/julianstephens/habitduel/internal/tracker"
)

func newTestModel(t *testing.T) (Model, *tracker.Service) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "habitduel.json"))
	require.NoError(t, store.Save(storagetest.SampleState()))

	clk := clock.NewFakeClock(time.Date(2026, 1, 23, 9, 0, 0, 0, time.UTC))
	svc := tracker.New(storage.NewRepository(store, clk, uuid.NewString),
		tracker.WithClock(clk), tracker.WithRandom(clock.NewSeededRandom(1)))
	_, err := svc.EnsureInitialized()
	require.NoError(t, err)

	m := NewModel(svc)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model), svc
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drain applies every pending service event to m.
func drain(m Model) Model {
	for len(m.events) > 0 {
		updated, _ := m.Update(changedMsg(<-m.events))
		m = updated.(Model)
	}
	return m
}

func TestNewModelShowsCurrentUser(t *testing.T) {
	m, _ := newTestModel(t)

	assert.Len(t, m.list.Items(), 2)
	view := m.View()
	assert.Contains(t, view, "Player 1")
	assert.Contains(t, view, "Quit Smoking")
	assert.Contains(t, view, "Reduce Screen Time", "today's battle is shown")
}

func TestSwitchUser(t *testing.T) {
	m, svc := newTestModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = drain(updated.(Model))

	cur, err := svc.CurrentUser()
	require.NoError(t, err)
	assert.Equal(t, "u2", cur.ID)
	assert.Equal(t, "u2", m.dashboard.User.ID)
	assert.Empty(t, m.list.Items())
	assert.Contains(t, m.View(), "No habits yet")
}

func TestFreezeOnCooldown(t *testing.T) {
	m, _ := newTestModel(t)

	updated, _ := m.Update(runes("f"))
	m = updated.(Model)
	require.Error(t, m.err)
	assert.Contains(t, m.err.Error(), "6 day(s)")
}

func TestCheckinFormOpensForActiveHabit(t *testing.T) {
	m, _ := newTestModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	assert.Equal(t, stateCheckin, m.state)
	assert.Equal(t, "h1", m.checkinHabit.ID)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	assert.Equal(t, stateHabits, m.state)
}

func TestPausedHabitCannotCheckIn(t *testing.T) {
	m, _ := newTestModel(t)
	m.list.Select(1)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	assert.Equal(t, stateHabits, m.state)
	require.Error(t, m.err)
	assert.True(t, strings.HasSuffix(m.err.Error(), "is paused"))
}

func TestCheckinNotice(t *testing.T) {
	res := tracker.CheckinResult{PointsEarned: 18, StreakUpdated: true, PerfectDayBonus: 20}
	res.Habit.Name = "Quit Smoking"
	res.Habit.CurrentStreak = 3
	assert.Equal(t, "+18 pts for Quit Smoking · 🔥 3 · perfect day +20", checkinNotice(res))
}

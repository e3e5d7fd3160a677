package streak

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/habitduel/internal/models"
)

const today = "2026-01-23"

func TestAdvanceIncrementsOnlyWithReplacement(t *testing.T) {
	h := &models.Habit{CurrentStreak: 2, BestStreak: 2}

	advanced := Advance(h, today, true, true)
	require.True(t, advanced)
	assert.Equal(t, 3, h.CurrentStreak)
	assert.Equal(t, 3, h.BestStreak)

	advanced = Advance(h, today, true, false)
	require.False(t, advanced)
	assert.Equal(t, 0, h.CurrentStreak, "missing replacement resets the streak")
	assert.Equal(t, 3, h.BestStreak, "best streak never drops")
}

func TestAdvanceFrozenDayKeepsStreak(t *testing.T) {
	h := &models.Habit{CurrentStreak: 4, BestStreak: 6}
	require.True(t, UseFreeze(h, today))

	Advance(h, today, false, false)
	assert.Equal(t, 4, h.CurrentStreak)
	assert.Equal(t, 6, h.BestStreak)
}

func TestBestStreakNeverBelowCurrent(t *testing.T) {
	h := &models.Habit{}
	outcomes := []struct{ met, repl bool }{
		{true, true}, {true, true}, {false, true}, {true, true},
		{true, true}, {true, true}, {true, false}, {true, true},
	}
	for i, o := range outcomes {
		Advance(h, today, o.met, o.repl)
		require.GreaterOrEqualf(t, h.BestStreak, h.CurrentStreak, "step %d", i)
	}
	assert.Equal(t, 3, h.BestStreak)
	assert.Equal(t, 1, h.CurrentStreak)
}

func TestUseFreezeSynthesizesStatus(t *testing.T) {
	h := &models.Habit{}
	require.True(t, UseFreeze(h, today))

	s, ok := h.StatusFor(today)
	require.True(t, ok)
	assert.Equal(t, models.DailyStatus{
		Date:         today,
		Mood:         models.MoodNeutral,
		StreakFrozen: true,
	}, *s)
	assert.Equal(t, today, h.LastStreakFreezeDate)
}

func TestUseFreezeMarksExistingStatus(t *testing.T) {
	h := &models.Habit{DailyStatus: []models.DailyStatus{{Date: today, Value: 3, Mood: models.MoodSad}}}
	require.True(t, UseFreeze(h, today))
	require.Len(t, h.DailyStatus, 1)
	assert.True(t, h.DailyStatus[0].StreakFrozen)
	assert.Equal(t, float64(3), h.DailyStatus[0].Value)
}

func TestUseFreezeCooldown(t *testing.T) {
	h := &models.Habit{}
	require.True(t, UseFreeze(h, "2026-01-10"))

	assert.False(t, UseFreeze(h, "2026-01-16"), "6 days later is still inside the cooldown")
	assert.Equal(t, "2026-01-10", h.LastStreakFreezeDate)
	assert.Equal(t, 1, DaysUntilFreezeAvailable(h, "2026-01-16"))

	assert.True(t, UseFreeze(h, "2026-01-17"), "7 whole days later the freeze is available")
	assert.Equal(t, "2026-01-17", h.LastStreakFreezeDate)
}

func TestCheckMissedDays(t *testing.T) {
	habits := []models.Habit{
		{ID: "absent", CurrentStreak: 5},
		{ID: "done", CurrentStreak: 5, DailyStatus: []models.DailyStatus{{Date: "2026-01-22", Done: true}}},
		{ID: "failed", CurrentStreak: 5, DailyStatus: []models.DailyStatus{{Date: "2026-01-22", Done: false}}},
		{ID: "frozen", CurrentStreak: 5, DailyStatus: []models.DailyStatus{{Date: "2026-01-22", StreakFrozen: true}}},
		{ID: "zero"},
		{ID: "checked-in", CurrentStreak: 1, DailyStatus: []models.DailyStatus{{Date: today, Done: true, StreakBefore: new(int)}}},
		{ID: "frozen-today", CurrentStreak: 2, DailyStatus: []models.DailyStatus{{Date: today, StreakFrozen: true}}},
	}

	reset := CheckMissedDays(habits, today)

	assert.ElementsMatch(t, []string{"absent", "failed", "frozen-today"}, reset)
	assert.Equal(t, 0, habits[0].CurrentStreak)
	assert.Equal(t, 5, habits[1].CurrentStreak)
	assert.Equal(t, 0, habits[2].CurrentStreak)
	assert.Equal(t, 5, habits[3].CurrentStreak)
	assert.Equal(t, 1, habits[5].CurrentStreak, "today's check-in already settled yesterday")
	assert.Equal(t, 0, habits[6].CurrentStreak)
}

func TestSummarize(t *testing.T) {
	s := Summarize([]models.Habit{
		{CurrentStreak: 3, BestStreak: 9},
		{CurrentStreak: 0, BestStreak: 4},
		{CurrentStreak: 7, BestStreak: 7},
	})
	assert.Equal(t, Summary{LongestCurrent: 7, BestEver: 9, TotalActiveStreaks: 10, HabitsWithStreaks: 2}, s)
}

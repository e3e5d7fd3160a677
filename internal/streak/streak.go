// Package streak maintains per-habit streak state: advancing on a qualifying
// check-in, weekly freezes, and resets for days the user never showed up.
package streak

import (
	"github.com/julianstephens/habitduel/internal/clock"
	"github.com/julianstephens/habitduel/internal/constants"
	"github.com/julianstephens/habitduel/internal/models"
)

// Advance applies one day's outcome to the habit's streak. The streak grows
// only when the target was met and the replacement action was done. Any
// other outcome resets it unless today is frozen. Reports whether the streak
// was incremented.
func Advance(h *models.Habit, today string, targetMet, replacementDone bool) bool {
	if targetMet && replacementDone {
		h.CurrentStreak++
		if h.CurrentStreak > h.BestStreak {
			h.BestStreak = h.CurrentStreak
		}
		return true
	}

	if !FrozenOn(h, today) {
		h.CurrentStreak = 0
	}
	return false
}

// FrozenOn reports whether a freeze covers date.
func FrozenOn(h *models.Habit, date string) bool {
	s, ok := h.StatusFor(date)
	return ok && s.StreakFrozen
}

// FreezeAvailable reports whether the cooldown since the last freeze has elapsed.
func FreezeAvailable(h *models.Habit, today string) bool {
	return DaysUntilFreezeAvailable(h, today) == 0
}

// DaysUntilFreezeAvailable returns how many days remain on the freeze cooldown.
func DaysUntilFreezeAvailable(h *models.Habit, today string) int {
	if h.LastStreakFreezeDate == "" {
		return 0
	}
	elapsed, ok := clock.DaysBetween(h.LastStreakFreezeDate, today)
	if !ok {
		return 0
	}
	return max(0, constants.FreezeCooldownDays-elapsed)
}

// UseFreeze spends the habit's freeze on today. It returns false without
// touching the habit when the cooldown has not elapsed. A freeze only
// suppresses the next reset; it never advances the streak.
func UseFreeze(h *models.Habit, today string) bool {
	if !FreezeAvailable(h, today) {
		return false
	}

	h.LastStreakFreezeDate = today
	if s, ok := h.StatusFor(today); ok {
		s.StreakFrozen = true
		return true
	}

	h.UpsertStatus(models.DailyStatus{
		Date:         today,
		Done:         false,
		Value:        0,
		Mood:         models.MoodNeutral,
		PointsEarned: 0,
		StreakFrozen: true,
	})
	return true
}

// CheckMissedDays resets the streak of every habit whose yesterday is missing,
// or present but neither done nor frozen. Habits already checked in today are
// left alone: that check-in ran against a streak this pass had already
// settled. It returns the ids of habits whose streak was reset. Run once at
// startup before anything reads streaks.
func CheckMissedDays(habits []models.Habit, today string) []string {
	yesterday := clock.AddDays(today, -1)

	var reset []string
	for i := range habits {
		h := &habits[i]
		if st, ok := h.StatusFor(today); ok && st.StreakBefore != nil {
			continue
		}
		s, ok := h.StatusFor(yesterday)
		if ok && (s.Done || s.StreakFrozen) {
			continue
		}
		if h.CurrentStreak > 0 {
			h.CurrentStreak = 0
			reset = append(reset, h.ID)
		}
	}
	return reset
}

// Summary aggregates streaks across a set of habits for the dashboard.
type Summary struct {
	LongestCurrent     int `json:"longest_current"`
	BestEver           int `json:"best_ever"`
	TotalActiveStreaks int `json:"total_active_streaks"`
	HabitsWithStreaks  int `json:"habits_with_streaks"`
}

func Summarize(habits []models.Habit) Summary {
	var s Summary
	for _, h := range habits {
		s.LongestCurrent = max(s.LongestCurrent, h.CurrentStreak)
		s.BestEver = max(s.BestEver, h.BestStreak)
		s.TotalActiveStreaks += h.CurrentStreak
		if h.CurrentStreak > 0 {
			s.HabitsWithStreaks++
		}
	}
	return s
}

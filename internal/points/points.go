package points

import (
	"math"
	"sort"

	"github.com/julianstephens/habitduel/internal/clock"
	"github.com/julianstephens/habitduel/internal/constants"
	"github.com/julianstephens/habitduel/internal/models"
	"github.com/julianstephens/habitduel/internal/utils"
)

// MoodBonus rewards harder moods more.
var MoodBonus = map[models.Mood]int{
	models.MoodHappy:    2,
	models.MoodNeutral:  0,
	models.MoodSad:      3,
	models.MoodStressed: 3,
}

// Calculate returns the points for one check-in. h.CurrentStreak must still
// hold the streak going into this check-in.
func Calculate(h models.Habit, targetMet, replacementDone bool, mood models.Mood, early bool) int {
	if !targetMet {
		return 0
	}

	pts := constants.PointsBaseComplete
	if replacementDone {
		pts += constants.PointsReplacementBonus
	}
	pts += int(math.Floor(float64(h.CurrentStreak) * constants.StreakMultiplier))
	pts += MoodBonus[mood]
	if early {
		pts += constants.PointsEarlyBonus
	}
	return pts
}

func PerfectDayBonus() int {
	return constants.PointsPerfectDayBonus
}

// Today sums the points recorded for today across habits.
func Today(habits []models.Habit, today string) int {
	total := 0
	for i := range habits {
		if s, ok := habits[i].StatusFor(today); ok {
			total += s.PointsEarned
		}
	}
	return total
}

// ThisWeek sums points over the trailing seven days, today included.
func ThisWeek(habits []models.Habit, today string) int {
	from := clock.AddDays(today, -6)
	total := 0
	for _, h := range habits {
		for _, s := range h.DailyStatus {
			if s.Date >= from && s.Date <= today {
				total += s.PointsEarned
			}
		}
	}
	return total
}

type Ranked struct {
	Habit models.Habit `json:"habit"`
	Rank  int          `json:"rank"`
}

// Leaderboard ranks habits by lifetime points. Ties keep their input order.
func Leaderboard(habits []models.Habit) []Ranked {
	sorted := make([]models.Habit, len(habits))
	copy(sorted, habits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalPoints > sorted[j].TotalPoints
	})

	ranked := make([]Ranked, len(sorted))
	for i, h := range sorted {
		ranked[i] = Ranked{Habit: h, Rank: i + 1}
	}
	return ranked
}

// IsEarly reports whether hour:minute falls strictly before the habit's time
// window opens. Habits without a window are never early.
func IsEarly(h models.Habit, hour, minute int) bool {
	if h.TimeWindow == nil {
		return false
	}
	start, err := utils.ParseTimeToMinutes(h.TimeWindow.Start)
	if err != nil {
		return false
	}
	return hour*60+minute < start
}

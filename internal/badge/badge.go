// Package badge holds the static badge table and the checks that grant
// badges to a profile. Grants are one-way: a badge is copied into the profile
// once, with the time it was first earned, and never removed.
package badge

import (
	"github.com/julianstephens/habitduel/internal/clock"
	"github.com/julianstephens/habitduel/internal/constants"
	"github.com/julianstephens/habitduel/internal/models"
)

const (
	IDEarlyBird   = "early-bird"
	IDComeback    = "comeback"
	IDChallenger  = "challenger"
	IDPerfectWeek = "perfect-week"
)

var definitions = []models.Badge{
	{ID: "streak-3", Name: "Getting Started", Description: "3-day streak", Icon: "🌱", Type: models.BadgeTypeStreak, Requirement: 3},
	{ID: "streak-7", Name: "One Week Strong", Description: "7-day streak", Icon: "🔥", Type: models.BadgeTypeStreak, Requirement: 7},
	{ID: "streak-14", Name: "Two Week Warrior", Description: "14-day streak", Icon: "⚡", Type: models.BadgeTypeStreak, Requirement: 14},
	{ID: "streak-30", Name: "Monthly Master", Description: "30-day streak", Icon: "🏆", Type: models.BadgeTypeStreak, Requirement: 30},
	{ID: "streak-60", Name: "Habit Hero", Description: "60-day streak", Icon: "👑", Type: models.BadgeTypeStreak, Requirement: 60},
	{ID: "streak-100", Name: "Century Champion", Description: "100-day streak", Icon: "💎", Type: models.BadgeTypeStreak, Requirement: 100},

	{ID: "points-100", Name: "Point Collector", Description: "Earn 100 points", Icon: "⭐", Type: models.BadgeTypePoints, Requirement: 100},
	{ID: "points-500", Name: "Point Hunter", Description: "Earn 500 points", Icon: "🌟", Type: models.BadgeTypePoints, Requirement: 500},
	{ID: "points-1000", Name: "Point Master", Description: "Earn 1000 points", Icon: "✨", Type: models.BadgeTypePoints, Requirement: 1000},
	{ID: "points-5000", Name: "Point Legend", Description: "Earn 5000 points", Icon: "💫", Type: models.BadgeTypePoints, Requirement: 5000},

	{ID: "habits-1", Name: "First Step", Description: "Create first habit", Icon: "🎯", Type: models.BadgeTypeHabits, Requirement: 1},
	{ID: "habits-3", Name: "Triple Threat", Description: "Track 3 habits", Icon: "🎪", Type: models.BadgeTypeHabits, Requirement: 3},
	{ID: "habits-5", Name: "Habit Collector", Description: "Track 5 habits", Icon: "🎨", Type: models.BadgeTypeHabits, Requirement: 5},

	{ID: IDPerfectWeek, Name: "Perfect Week", Description: "Complete all habits for 7 days", Icon: "🌈", Type: models.BadgeTypePerfectWeek, Requirement: constants.PerfectWeekDays},
	{ID: IDEarlyBird, Name: "Early Bird", Description: "Complete habit before time window", Icon: "🐦", Type: models.BadgeTypeEarlyBird, Requirement: 1},
	{ID: IDComeback, Name: "Comeback Kid", Description: "Return after 3+ days break", Icon: "💪", Type: models.BadgeTypeComeback, Requirement: 1},
	{ID: IDChallenger, Name: "Challenge Accepted", Description: "Complete a mini challenge", Icon: "🎖️", Type: models.BadgeTypeChallenger, Requirement: 1},
}

// Definitions returns a copy of the badge table.
func Definitions() []models.Badge {
	out := make([]models.Badge, len(definitions))
	copy(out, definitions)
	return out
}

// Lookup returns the definition for id.
func Lookup(id string) (models.Badge, bool) {
	for _, d := range definitions {
		if d.ID == id {
			return d, true
		}
	}
	return models.Badge{}, false
}

// Grant copies the definition for id into the profile, stamped with now.
// It returns false if the badge is unknown or already earned.
func Grant(p *models.UserProfile, id string, now string) (models.Badge, bool) {
	if p.HasBadge(id) {
		return models.Badge{}, false
	}
	def, ok := Lookup(id)
	if !ok {
		return models.Badge{}, false
	}
	def.EarnedAt = now
	p.Badges = append(p.Badges, def)
	return def, true
}

// grantByThreshold grants every badge of type t whose requirement is at most value.
func grantByThreshold(p *models.UserProfile, t models.BadgeType, value int, now string) []models.Badge {
	var earned []models.Badge
	for _, d := range definitions {
		if d.Type != t || value < d.Requirement {
			continue
		}
		if b, ok := Grant(p, d.ID, now); ok {
			earned = append(earned, b)
		}
	}
	return earned
}

// CheckStreak grants streak badges reached by the habit's current streak and
// raises the profile's longest streak to match.
func CheckStreak(h models.Habit, p *models.UserProfile, now string) []models.Badge {
	if h.CurrentStreak > p.LongestStreak {
		p.LongestStreak = h.CurrentStreak
	}
	return grantByThreshold(p, models.BadgeTypeStreak, h.CurrentStreak, now)
}

func CheckPoints(p *models.UserProfile, now string) []models.Badge {
	return grantByThreshold(p, models.BadgeTypePoints, p.TotalPoints, now)
}

func CheckHabits(p *models.UserProfile, now string) []models.Badge {
	return grantByThreshold(p, models.BadgeTypeHabits, p.TotalHabits, now)
}

// CheckChallenger grants the challenger badge once any challenge is completed.
func CheckChallenger(p *models.UserProfile, challenges []models.MiniChallenge, now string) (models.Badge, bool) {
	for _, c := range challenges {
		if c.IsCompleted {
			return Grant(p, IDChallenger, now)
		}
	}
	return models.Badge{}, false
}

// CheckEarlyBird grants the early-bird badge on the first early completion.
func CheckEarlyBird(p *models.UserProfile, early bool, now string) (models.Badge, bool) {
	if !early {
		return models.Badge{}, false
	}
	return Grant(p, IDEarlyBird, now)
}

// CheckComeback grants the comeback badge when the habit's most recent entry
// before today is at least ComebackGapDays old. A habit with no earlier history
// is a first check-in, not a comeback.
func CheckComeback(p *models.UserProfile, h models.Habit, today string, now string) (models.Badge, bool) {
	last := ""
	for _, s := range h.DailyStatus {
		if s.Date < today && s.Date > last {
			last = s.Date
		}
	}
	if last == "" {
		return models.Badge{}, false
	}
	gap, ok := clock.DaysBetween(last, today)
	if !ok || gap <= constants.ComebackGapDays {
		return models.Badge{}, false
	}
	return Grant(p, IDComeback, now)
}

// PerfectDay reports whether every habit was done on date. An empty set is
// never perfect.
func PerfectDay(habits []models.Habit, date string) bool {
	if len(habits) == 0 {
		return false
	}
	for i := range habits {
		if !habits[i].DoneOn(date) {
			return false
		}
	}
	return true
}

// CheckPerfectWeek grants the perfect-week badge after PerfectWeekDays
// consecutive perfect days ending today.
func CheckPerfectWeek(p *models.UserProfile, habits []models.Habit, today string, now string) (models.Badge, bool) {
	for i := 0; i < constants.PerfectWeekDays; i++ {
		if !PerfectDay(habits, clock.AddDays(today, -i)) {
			return models.Badge{}, false
		}
	}
	return Grant(p, IDPerfectWeek, now)
}

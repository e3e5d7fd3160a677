package battle

import (
	"math"

	"github.com/julianstephens/habitduel/internal/models"
)

// UserStats is one side of a user comparison.
type UserStats struct {
	UserID          string `json:"user_id"`
	Name            string `json:"name"`
	Avatar          string `json:"avatar"`
	Color           string `json:"color"`
	TotalPoints     int    `json:"total_points"`
	PointsToday     int    `json:"points_today"`
	TotalStreaks    int    `json:"total_streaks"`
	LongestStreak   int    `json:"longest_streak"`
	HabitsCompleted int    `json:"habits_completed"`
	HabitsTotal     int    `json:"habits_total"`
	CompletionRate  int    `json:"completion_rate"`
}

// Comparison holds per-metric winners. An empty winner id is a draw.
type Comparison struct {
	User1         UserStats `json:"user1"`
	User2         UserStats `json:"user2"`
	TodayWinner   string    `json:"today_winner,omitempty"`
	OverallWinner string    `json:"overall_winner,omitempty"`
	StreakWinner  string    `json:"streak_winner,omitempty"`
}

// Stats derives a user's comparison figures as of today.
func Stats(u models.User, today string) UserStats {
	s := UserStats{
		UserID:        u.ID,
		Name:          u.Profile.Name,
		Avatar:        u.Profile.Avatar,
		Color:         u.Profile.Color,
		TotalPoints:   u.Profile.TotalPoints,
		LongestStreak: u.Profile.LongestStreak,
		HabitsTotal:   len(u.Habits),
	}

	for i := range u.Habits {
		h := &u.Habits[i]
		if st, ok := h.StatusFor(today); ok {
			s.PointsToday += st.PointsEarned
			if st.Done {
				s.HabitsCompleted++
			}
		}
		s.TotalStreaks += h.CurrentStreak
	}

	if s.HabitsTotal > 0 {
		s.CompletionRate = int(math.Round(float64(s.HabitsCompleted) / float64(s.HabitsTotal) * 100))
	}
	return s
}

// higher returns the id of the side with the larger value, or "" on a tie.
func higher(a, b int, idA, idB string) string {
	switch {
	case a > b:
		return idA
	case b > a:
		return idB
	default:
		return ""
	}
}

// CompareUsers compares two users. Today's winner falls back to completion
// rate when points are tied.
func CompareUsers(u1, u2 models.User, today string) Comparison {
	s1, s2 := Stats(u1, today), Stats(u2, today)

	todayWinner := higher(s1.PointsToday, s2.PointsToday, s1.UserID, s2.UserID)
	if todayWinner == "" {
		todayWinner = higher(s1.CompletionRate, s2.CompletionRate, s1.UserID, s2.UserID)
	}

	return Comparison{
		User1:         s1,
		User2:         s2,
		TodayWinner:   todayWinner,
		OverallWinner: higher(s1.TotalPoints, s2.TotalPoints, s1.UserID, s2.UserID),
		StreakWinner:  higher(s1.LongestStreak, s2.LongestStreak, s1.UserID, s2.UserID),
	}
}

// HabitSide is one user's standing on a habit.
type HabitSide struct {
	HasHabit       bool    `json:"has_habit"`
	Streak         int     `json:"streak"`
	Points         int     `json:"points"`
	CompletedToday bool    `json:"completed_today"`
	TodayValue     float64 `json:"today_value"`
}

// HabitComparison compares both users on one habit name. Winner is 1 or 2,
// or 0 for a draw.
type HabitComparison struct {
	HabitName string    `json:"habit_name"`
	Icon      string    `json:"icon"`
	User1     HabitSide `json:"user1"`
	User2     HabitSide `json:"user2"`
	Winner    int       `json:"winner"`
}

const defaultHabitIcon = "🎯"

func side(u *models.User, name, today string) (HabitSide, *models.Habit) {
	h, ok := u.HabitByName(name)
	if !ok {
		return HabitSide{}, nil
	}
	s := HabitSide{HasHabit: true, Streak: h.CurrentStreak, Points: h.TotalPoints}
	if st, ok := h.StatusFor(today); ok {
		s.CompletedToday = st.Done
		s.TodayValue = st.Value
	}
	return s, h
}

// CompareHabits walks the union of both users' habit names, first-seen order.
// Completion today decides first, then current streak. A missing habit
// always loses.
func CompareHabits(u1, u2 models.User, today string) []HabitComparison {
	var names []string
	seen := map[string]bool{}
	for _, list := range [][]models.Habit{u1.Habits, u2.Habits} {
		for _, h := range list {
			if !seen[h.Name] {
				seen[h.Name] = true
				names = append(names, h.Name)
			}
		}
	}

	out := make([]HabitComparison, 0, len(names))
	for _, name := range names {
		s1, h1 := side(&u1, name, today)
		s2, h2 := side(&u2, name, today)

		icon := defaultHabitIcon
		switch {
		case h1 != nil && h1.Icon != "":
			icon = h1.Icon
		case h2 != nil && h2.Icon != "":
			icon = h2.Icon
		}

		out = append(out, HabitComparison{
			HabitName: name,
			Icon:      icon,
			User1:     s1,
			User2:     s2,
			Winner:    habitWinner(s1, s2),
		})
	}
	return out
}

func habitWinner(s1, s2 HabitSide) int {
	switch {
	case !s1.HasHabit && !s2.HasHabit:
		return 0
	case !s1.HasHabit:
		return 2
	case !s2.HasHabit:
		return 1
	case s1.CompletedToday && !s2.CompletedToday:
		return 1
	case s2.CompletedToday && !s1.CompletedToday:
		return 2
	case s1.Streak > s2.Streak:
		return 1
	case s2.Streak > s1.Streak:
		return 2
	default:
		return 0
	}
}

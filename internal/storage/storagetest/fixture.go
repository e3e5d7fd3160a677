// Package storagetest provides a populated snapshot for store round-trip tests.
package storagetest

import "github.com/julianstephens/habitduel/internal/models"

func intPtr(n int) *int { return &n }

// SampleState returns a normalized snapshot exercising every entity shape.
func SampleState() models.State {
	s := models.State{
		Version:       1,
		CurrentUserID: "u1",
		Settings:      models.Settings{Theme: "dark", Notifications: true, ReminderTime: "09:00", Timezone: "UTC"},
		Users: []models.User{
			{
				ID: "u1",
				Profile: models.UserProfile{
					ID: "u1", Name: "Player 1", Avatar: "🦸", Color: "#667eea",
					TotalPoints: 143, TotalHabits: 2, LongestStreak: 7,
					Badges: []models.Badge{
						{ID: "streak-3", Name: "Getting Started", Description: "3-day streak", Icon: "🌱", Type: models.BadgeTypeStreak, Requirement: 3, EarnedAt: "2026-01-20T08:00:00Z"},
						{ID: "habits-1", Name: "First Step", Description: "Create first habit", Icon: "🎯", Type: models.BadgeTypeHabits, Requirement: 1, EarnedAt: "2026-01-10T08:00:00Z"},
					},
					CreatedAt:      "2026-01-10T08:00:00Z",
					LastPerfectDay: "2026-01-22",
				},
				Habits: []models.Habit{
					{
						ID: "h1", Name: "Quit Smoking", Category: models.CategoryHealth, Icon: "🚭",
						IsReduceHabit: true, TargetValue: 5, TargetUnit: "cigarettes", Replacement: "Chew gum",
						TargetOptions: []models.TargetOption{{Label: "5 per day", Value: 5}, {Label: "No smoking", Value: 0}},
						TimeWindow:    &models.TimeWindow{Start: "07:00", End: "21:30"},
						CurrentStreak: 3, BestStreak: 7, TotalPoints: 95,
						DailyStatus: []models.DailyStatus{
							{Date: "2026-01-21", Done: true, Value: 4, Mood: models.MoodSad, PointsEarned: 19, ReplacementDone: true, StreakBefore: intPtr(2)},
							{Date: "2026-01-22", Done: false, Value: 0, Mood: models.MoodNeutral, StreakFrozen: true},
						},
						CreatedAt: "2026-01-10T08:00:00Z", LastStreakFreezeDate: "2026-01-22", IsActive: true,
					},
					{
						ID: "h2", Name: "Sleep Early", Description: "bed on time", Category: models.CategoryHealth, Icon: "😴",
						TargetValue: 22.5, TargetUnit: "PM", DailyStatus: []models.DailyStatus{},
						CreatedAt: "2026-01-11T08:00:00Z", IsActive: false,
					},
				},
				Challenges: []models.MiniChallenge{
					{ID: "c1", Title: "Point Rush", Description: "Earn 50 points today", Type: models.ChallengePoints, TargetValue: 50, CurrentValue: 19, Reward: 25, StartDate: "2026-01-20", EndDate: "2026-01-27"},
					{ID: "c2", Title: "Perfect Day", Description: "Complete all your habits in a single day", Type: models.ChallengePerfectDay, TargetValue: 1, CurrentValue: 1, Reward: 30, StartDate: "2026-01-20", EndDate: "2026-01-27", IsCompleted: true, HabitID: "h1"},
				},
			},
			{
				ID:         "u2",
				Profile:    models.UserProfile{ID: "u2", Name: "Player 2", Avatar: "🧙", Color: "#f093fb", Badges: []models.Badge{}, CreatedAt: "2026-01-10T08:00:00Z"},
				Habits:     []models.Habit{},
				Challenges: []models.MiniChallenge{},
			},
		},
		Battles: []models.HabitBattle{
			{
				ID: "b0", Date: "2026-01-21", HabitName: "Exercise", HabitCategory: models.CategoryFitness,
				TargetValue: 30, TargetUnit: "minutes",
				Participants: [2]models.BattleParticipant{
					{UserID: "u1", Name: "Player 1", Avatar: "🦸", Value: 35, Completed: true, PointsEarned: 25},
					{UserID: "u2", Name: "Player 2", Avatar: "🧙", Value: 20},
				},
				WinnerID: "u1", BonusPoints: 25, Status: models.BattleCompleted,
			},
		},
		ActiveBattle: &models.HabitBattle{
			ID: "b1", Date: "2026-01-23", HabitName: "Reduce Screen Time", HabitCategory: models.CategoryProductivity,
			TargetValue: 3, TargetUnit: "hours", IsReduceHabit: true,
			Participants: [2]models.BattleParticipant{
				{UserID: "u1", Name: "Player 1", Avatar: "🦸", Value: 2.5, Completed: true},
				{UserID: "u2", Name: "Player 2", Avatar: "🧙"},
			},
			BonusPoints: 25, Status: models.BattleActive,
		},
	}
	s.Normalize()
	return s
}

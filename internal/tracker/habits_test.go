package tracker

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/habitduel/internal/constants"
	apperrors "github.com/julianstephens/habitduel/internal/errors"
	"github.com/julianstephens/habitduel/internal/models"
)

func TestCreateFromSuggestion(t *testing.T) {
	f := newFixture(t)

	h, err := f.svc.CreateFromSuggestion("meditate", -1)
	require.NoError(t, err)
	assert.Equal(t, "Meditate", h.Name)
	assert.Equal(t, float64(10), h.TargetValue)
	assert.True(t, h.IsActive)
	assert.Empty(t, h.DailyStatus)

	u, err := f.svc.CurrentUser()
	require.NoError(t, err)
	assert.Equal(t, 1, u.Profile.TotalHabits)
	assert.True(t, u.Profile.HasBadge("habits-1"))

	_, err = f.svc.CreateFromSuggestion("juggling", -1)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	_, err = f.svc.CreateFromSuggestion("Meditate", 20)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput), "names are unique per user")
}

func TestCreateHabitValidation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		in   models.HabitInput
	}{
		{"blank name", models.HabitInput{Name: "  ", Category: models.CategoryHealth}},
		{"unknown category", models.HabitInput{Name: "Nap", Category: models.Category("sleep")}},
		{"negative target", models.HabitInput{Name: "Nap", Category: models.CategoryHealth, TargetValue: -1}},
		{"bad window", models.HabitInput{Name: "Nap", Category: models.CategoryHealth, TimeWindow: &models.TimeWindow{Start: "25:00", End: "26:00"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateHabit(tt.in)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidInput), "got %v", err)
		})
	}
	assert.Empty(t, f.svc.GetHabits())
}

func TestUpdateHabitKeepsProgress(t *testing.T) {
	f := newFixture(t)
	h := f.create(t, models.HabitInput{Name: "Exercise", Category: models.CategoryFitness, TargetValue: 30})
	_, err := f.svc.RecordDailyProgress(h.ID, 30, models.MoodHappy, true)
	require.NoError(t, err)

	in := inputFrom(h)
	in.Name = "Workout"
	in.TargetValue = 45
	updated, err := f.svc.UpdateHabit(h.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Workout", updated.Name)
	assert.Equal(t, float64(45), updated.TargetValue)
	assert.Equal(t, 1, updated.CurrentStreak)
	assert.Len(t, updated.DailyStatus, 1)

	_, err = f.svc.UpdateHabit("missing", in)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestDeleteHabit(t *testing.T) {
	f := newFixture(t)
	a := f.create(t, models.HabitInput{Name: "Exercise", Category: models.CategoryFitness, TargetValue: 30})
	f.create(t, models.HabitInput{Name: "Read", Category: models.CategoryLearning, TargetValue: 10})

	require.NoError(t, f.svc.DeleteHabit(a.ID))
	habits := f.svc.GetHabits()
	require.Len(t, habits, 1)
	assert.Equal(t, "Read", habits[0].Name)

	u, _ := f.svc.CurrentUser()
	assert.Equal(t, 1, u.Profile.TotalHabits)

	assert.True(t, errors.Is(f.svc.DeleteHabit(a.ID), apperrors.ErrNotFound))
}

func TestFindHabit(t *testing.T) {
	f := newFixture(t)
	habitIDs := []string{"abcd-1111", "abcd-2222", "efgh-3333"}
	f.svc.newID = func() string {
		id := habitIDs[0]
		habitIDs = habitIDs[1:]
		return id
	}

	f.create(t, models.HabitInput{Name: "Exercise", Category: models.CategoryFitness})
	f.create(t, models.HabitInput{Name: "Read", Category: models.CategoryLearning})
	f.create(t, models.HabitInput{Name: "Meditate", Category: models.CategoryMindfulness})

	h, err := f.svc.FindHabit("read")
	require.NoError(t, err)
	assert.Equal(t, "abcd-2222", h.ID)

	h, err = f.svc.FindHabit("efgh")
	require.NoError(t, err)
	assert.Equal(t, "Meditate", h.Name)

	h, err = f.svc.FindHabit("abcd-1111")
	require.NoError(t, err)
	assert.Equal(t, "Exercise", h.Name)

	_, err = f.svc.FindHabit("abcd")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput), "ambiguous prefix")

	_, err = f.svc.FindHabit("ab")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "prefixes need four characters")
}

func TestUsers(t *testing.T) {
	f := newFixture(t)

	u, err := f.svc.AddUser(models.UserInput{Name: " Player 3 "})
	require.NoError(t, err)
	assert.Equal(t, "Player 3", u.Profile.Name)
	assert.Equal(t, constants.DefaultAvatars[2], u.Profile.Avatar)
	assert.Equal(t, constants.DefaultColors[2], u.Profile.Color)
	assert.Len(t, u.Challenges, constants.ChallengeBatchSize)
	assert.Len(t, f.svc.ListUsers(), 3)

	_, err = f.svc.AddUser(models.UserInput{Name: "player 3"})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	_, err = f.svc.AddUser(models.UserInput{Name: "Bad", Color: "red"})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	require.NoError(t, f.svc.SwitchUser(u.ID))
	cur, err := f.svc.CurrentUser()
	require.NoError(t, err)
	assert.Equal(t, u.ID, cur.ID)
	assert.True(t, errors.Is(f.svc.SwitchUser("nobody"), apperrors.ErrNotFound))

	require.NoError(t, f.svc.RenameUser(u.ID, "Challenger"))
	found, err := f.svc.FindUser("challenger")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)
	assert.True(t, errors.Is(f.svc.RenameUser(u.ID, "Player 1"), apperrors.ErrInvalidInput))
	assert.NoError(t, f.svc.RenameUser(u.ID, "CHALLENGER"), "renaming to a case variant of itself is allowed")

	opp, err := f.svc.Opponent(u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, u.ID, opp.ID)
}

func TestQueries(t *testing.T) {
	f := newFixture(t)
	h := f.create(t, models.HabitInput{Name: "Exercise", Category: models.CategoryFitness, TargetValue: 30})
	f.create(t, models.HabitInput{Name: "Read", Category: models.CategoryLearning, TargetValue: 10})
	_, err := f.svc.RecordDailyProgress(h.ID, 30, models.MoodHappy, true)
	require.NoError(t, err)

	d, err := f.svc.Dashboard("")
	require.NoError(t, err)
	assert.Equal(t, today, d.Today)
	assert.Equal(t, 17, d.PointsToday)
	assert.Equal(t, 17, d.PointsThisWeek)
	assert.Equal(t, 1, d.DoneToday)
	assert.Equal(t, 2, d.ActiveHabits)
	assert.False(t, d.PerfectToday)
	assert.Equal(t, 1, d.Streaks.LongestCurrent)
	require.Len(t, d.Leaderboard, 2)
	assert.Equal(t, "Exercise", d.Leaderboard[0].Habit.Name)

	badges, err := f.svc.Badges(d.User.ID)
	require.NoError(t, err)
	earned := 0
	for _, b := range badges {
		if b.Earned {
			earned++
			assert.NotEmpty(t, b.EarnedAt)
		}
	}
	assert.Equal(t, len(d.User.Profile.Badges), earned)

	_, err = f.svc.Dashboard("nobody")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

package tracker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/habitduel/internal/badge"
	"github.com/julianstephens/habitduel/internal/clock"
	apperrors "github.com/julianstephens/habitduel/internal/errors"
	"github.com/julianstephens/habitduel/internal/models"
)

func reduceHabit() models.HabitInput {
	return models.HabitInput{
		Name:          "Quit Smoking",
		Category:      models.CategoryHealth,
		IsReduceHabit: true,
		TargetValue:   5,
		TargetUnit:    "cigarettes",
		Replacement:   "Chew gum",
	}
}

func badgeIDs(badges []models.Badge) []string {
	out := make([]string, len(badges))
	for i, b := range badges {
		out[i] = b.ID
	}
	return out
}

func TestRecordDailyProgressScenario(t *testing.T) {
	f := newFixture(t)
	h := f.create(t, reduceHabit())
	f.habit(t, h.ID).CurrentStreak = 2
	f.habit(t, h.ID).BestStreak = 2

	res, err := f.svc.RecordDailyProgress(h.ID, 3, models.MoodHappy, true)
	require.NoError(t, err)

	assert.True(t, res.TargetMet)
	assert.Equal(t, 18, res.PointsEarned)
	assert.True(t, res.StreakUpdated)
	assert.Equal(t, 3, res.Habit.CurrentStreak)
	assert.Equal(t, 3, res.Habit.BestStreak)
	assert.Equal(t, 18, res.Habit.TotalPoints)
	assert.Equal(t, 20, res.PerfectDayBonus, "the only habit is done")
	assert.Contains(t, badgeIDs(res.NewBadges), "streak-3")

	require.Len(t, res.Habit.DailyStatus, 1)
	st := res.Habit.DailyStatus[0]
	assert.Equal(t, today, st.Date)
	assert.True(t, st.Done)
	assert.Equal(t, 18, st.PointsEarned)
	require.NotNil(t, st.StreakBefore)
	assert.Equal(t, 2, *st.StreakBefore)

	u, err := f.svc.CurrentUser()
	require.NoError(t, err)
	assert.Equal(t, 38, u.Profile.TotalPoints)
	assert.Equal(t, 3, u.Profile.LongestStreak)
	assert.Equal(t, today, u.Profile.LastPerfectDay)
}

func TestRecordDailyProgressSameDayReplaces(t *testing.T) {
	f := newFixture(t)
	h := f.create(t, reduceHabit())
	f.habit(t, h.ID).CurrentStreak = 2
	f.habit(t, h.ID).BestStreak = 2

	_, err := f.svc.RecordDailyProgress(h.ID, 3, models.MoodHappy, true)
	require.NoError(t, err)

	res, err := f.svc.RecordDailyProgress(h.ID, 10, models.MoodHappy, true)
	require.NoError(t, err)
	assert.True(t, res.Replaced)
	assert.False(t, res.TargetMet)
	assert.Zero(t, res.PointsEarned)
	assert.Zero(t, res.Habit.CurrentStreak)
	assert.Equal(t, 3, res.Habit.BestStreak, "best streak never goes down")
	assert.Zero(t, res.Habit.TotalPoints)
	assert.Len(t, res.Habit.DailyStatus, 1)
	assert.Zero(t, res.PerfectDayBonus)
	assert.True(t, res.PerfectDayRevoked)

	u, _ := f.svc.CurrentUser()
	assert.Zero(t, u.Profile.TotalPoints, "the perfect-day bonus goes with the perfect day")
	assert.Empty(t, u.Profile.LastPerfectDay)

	res, err = f.svc.RecordDailyProgress(h.ID, 4, models.MoodHappy, true)
	require.NoError(t, err)
	assert.Equal(t, 18, res.PointsEarned, "points use the streak the day started with")
	assert.Equal(t, 3, res.Habit.CurrentStreak)
	assert.Equal(t, 18, res.Habit.TotalPoints)
	assert.Equal(t, 20, res.PerfectDayBonus, "perfect again, paid again")
	assert.False(t, res.PerfectDayRevoked)

	res, err = f.svc.RecordDailyProgress(h.ID, 2, models.MoodHappy, true)
	require.NoError(t, err)
	assert.Zero(t, res.PerfectDayBonus, "still perfect, not paid twice")
	assert.False(t, res.PerfectDayRevoked)

	u, _ = f.svc.CurrentUser()
	assert.Equal(t, 38, u.Profile.TotalPoints)
	assert.Equal(t, today, u.Profile.LastPerfectDay)
}

func TestRecordDailyProgressErrors(t *testing.T) {
	f := newFixture(t)
	h := f.create(t, reduceHabit())

	_, err := f.svc.RecordDailyProgress("missing", 1, models.MoodHappy, false)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	_, err = f.svc.RecordDailyProgress(h.ID, 1, models.Mood("Bored"), false)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	_, err = f.svc.RecordDailyProgress(h.ID, -1, models.MoodHappy, false)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestRecordDailyProgressWithoutReplacementResetsStreak(t *testing.T) {
	f := newFixture(t)
	h := f.create(t, models.HabitInput{Name: "Exercise", Category: models.CategoryFitness, TargetValue: 30})
	f.habit(t, h.ID).CurrentStreak = 6
	f.habit(t, h.ID).BestStreak = 6

	res, err := f.svc.RecordDailyProgress(h.ID, 40, models.MoodSad, false)
	require.NoError(t, err)
	assert.True(t, res.TargetMet)
	assert.Equal(t, 10+3+3, res.PointsEarned)
	assert.False(t, res.StreakUpdated, "the replacement action is required to advance")
	assert.Zero(t, res.Habit.CurrentStreak)
}

func TestEarlyCompletion(t *testing.T) {
	f := newFixture(t)
	h := f.create(t, models.HabitInput{
		Name:        "Exercise",
		Category:    models.CategoryFitness,
		TargetValue: 30,
		TimeWindow:  &models.TimeWindow{Start: "10:00", End: "12:00"},
	})

	res, err := f.svc.RecordDailyProgress(h.ID, 30, models.MoodNeutral, false)
	require.NoError(t, err)
	assert.True(t, res.Early)
	assert.Equal(t, 15, res.PointsEarned)
	assert.Contains(t, badgeIDs(res.NewBadges), badge.IDEarlyBird)

	f.clock.Set(time.Date(2026, 1, 24, 10, 0, 0, 0, time.UTC))
	res, err = f.svc.RecordDailyProgress(h.ID, 30, models.MoodNeutral, false)
	require.NoError(t, err)
	assert.False(t, res.Early, "inside the window is not early")
	assert.Equal(t, 10, res.PointsEarned)
}

func TestComebackBadge(t *testing.T) {
	f := newFixture(t)
	h := f.create(t, models.HabitInput{Name: "Exercise", Category: models.CategoryFitness, TargetValue: 30})
	f.habit(t, h.ID).UpsertStatus(models.DailyStatus{Date: clock.AddDays(today, -5), Done: true, Value: 30, Mood: models.MoodHappy})

	res, err := f.svc.RecordDailyProgress(h.ID, 30, models.MoodHappy, false)
	require.NoError(t, err)
	assert.Contains(t, badgeIDs(res.NewBadges), badge.IDComeback)
}

func TestPerfectDayNeedsEveryActiveHabit(t *testing.T) {
	f := newFixture(t)
	a := f.create(t, models.HabitInput{Name: "Exercise", Category: models.CategoryFitness, TargetValue: 30})
	b := f.create(t, models.HabitInput{Name: "Read", Category: models.CategoryLearning, TargetValue: 10})
	paused := f.create(t, models.HabitInput{Name: "Meditate", Category: models.CategoryMindfulness, TargetValue: 10})
	_, err := f.svc.SetHabitActive(paused.ID, false)
	require.NoError(t, err)

	res, err := f.svc.RecordDailyProgress(a.ID, 30, models.MoodNeutral, false)
	require.NoError(t, err)
	assert.Zero(t, res.PerfectDayBonus)

	res, err = f.svc.RecordDailyProgress(b.ID, 10, models.MoodNeutral, false)
	require.NoError(t, err)
	assert.Equal(t, 20, res.PerfectDayBonus, "paused habits do not count")
}

func TestChallengeProgressFromCheckin(t *testing.T) {
	f := newFixture(t)
	h := f.create(t, models.HabitInput{Name: "Exercise", Category: models.CategoryFitness, TargetValue: 30})

	u, err := f.svc.current()
	require.NoError(t, err)
	end := clock.AddDays(today, 7)
	u.Challenges = []models.MiniChallenge{
		{ID: "c1", Type: models.ChallengePoints, TargetValue: 10, Reward: 25, StartDate: today, EndDate: end},
		{ID: "c2", Type: models.ChallengeReplacement, TargetValue: 2, Reward: 40, StartDate: today, EndDate: end},
		{ID: "c3", Type: models.ChallengePerfectDay, TargetValue: 1, Reward: 30, StartDate: today, EndDate: end},
	}

	res, err := f.svc.RecordDailyProgress(h.ID, 30, models.MoodNeutral, true)
	require.NoError(t, err)

	var done []string
	for _, c := range res.CompletedChallenges {
		done = append(done, c.ID)
	}
	assert.ElementsMatch(t, []string{"c1", "c3"}, done)
	assert.Contains(t, badgeIDs(res.NewBadges), badge.IDChallenger)

	board, err := f.svc.Challenges(u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, board.Challenges[1].CurrentValue)
	assert.Equal(t, 55, board.Rewards)
	assert.Equal(t, 7, board.DaysRemaining)

	// A repeat check-in adds nothing new for the replacement action.
	_, err = f.svc.RecordDailyProgress(h.ID, 35, models.MoodNeutral, true)
	require.NoError(t, err)
	board, _ = f.svc.Challenges(u.ID)
	assert.Equal(t, 1, board.Challenges[1].CurrentValue)
}

func TestUseFreeze(t *testing.T) {
	f := newFixture(t)
	h := f.create(t, reduceHabit())

	ok, err := f.svc.UseFreeze(h.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	got, _ := f.svc.GetHabit(h.ID)
	require.Len(t, got.DailyStatus, 1)
	assert.True(t, got.DailyStatus[0].StreakFrozen)
	assert.Nil(t, got.DailyStatus[0].StreakBefore)

	f.clock.AdvanceDays(6)
	ok, err = f.svc.UseFreeze(h.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	got, _ = f.svc.GetHabit(h.ID)
	assert.Equal(t, today, got.LastStreakFreezeDate)

	available, days, err := f.svc.FreezeStatus(h.ID)
	require.NoError(t, err)
	assert.False(t, available)
	assert.Equal(t, 1, days)

	f.clock.AdvanceDays(1)
	ok, err = f.svc.UseFreeze(h.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = f.svc.UseFreeze("missing")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestFrozenDaySurvivesCheckin(t *testing.T) {
	f := newFixture(t)
	h := f.create(t, reduceHabit())
	f.habit(t, h.ID).CurrentStreak = 4
	f.habit(t, h.ID).BestStreak = 4

	ok, err := f.svc.UseFreeze(h.ID)
	require.NoError(t, err)
	require.True(t, ok)

	res, err := f.svc.RecordDailyProgress(h.ID, 9, models.MoodStressed, false)
	require.NoError(t, err)
	assert.False(t, res.StreakUpdated)
	assert.Equal(t, 4, res.Habit.CurrentStreak, "a frozen day suppresses the reset")
	require.Len(t, res.Habit.DailyStatus, 1)
	assert.True(t, res.Habit.DailyStatus[0].StreakFrozen)
	assert.False(t, res.Replaced, "a freeze entry is not a check-in")
}

package challenge

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/habitduel/internal/clock"
	"github.com/julianstephens/habitduel/internal/models"
)

const today = "2026-01-23"

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("challenge-%d", n)
	}
}

func TestGenerate(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		batch := Generate(today, clock.NewSeededRandom(seed), sequentialIDs())
		require.Len(t, batch, 3)

		titles := map[string]bool{}
		for _, c := range batch {
			assert.False(t, titles[c.Title], "templates are drawn without replacement")
			titles[c.Title] = true

			assert.Equal(t, today, c.StartDate)
			assert.Equal(t, "2026-01-30", c.EndDate)
			assert.Zero(t, c.CurrentValue)
			assert.False(t, c.IsCompleted)
			assert.NotEmpty(t, c.ID)
		}
	}
}

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	a := Generate(today, clock.NewSeededRandom(7), sequentialIDs())
	b := Generate(today, clock.NewSeededRandom(7), sequentialIDs())
	assert.Equal(t, a, b)
}

func TestRefreshIfNeeded(t *testing.T) {
	rnd := clock.NewSeededRandom(1)
	batch, refreshed := RefreshIfNeeded(nil, today, rnd, sequentialIDs())
	require.True(t, refreshed)
	require.Len(t, batch, 3)

	batch[0].CurrentValue = 1
	same, refreshed := RefreshIfNeeded(batch, "2026-01-30", rnd, sequentialIDs())
	assert.False(t, refreshed, "the end date itself is not past")
	assert.Equal(t, 1, same[0].CurrentValue)

	fresh, refreshed := RefreshIfNeeded(batch, "2026-01-31", rnd, sequentialIDs())
	require.True(t, refreshed)
	assert.Equal(t, "2026-01-31", fresh[0].StartDate)
	for _, c := range fresh {
		assert.Zero(t, c.CurrentValue)
	}
}

func TestUpdateProgressByType(t *testing.T) {
	challenges := []models.MiniChallenge{
		{ID: "r", Type: models.ChallengeReplacement, TargetValue: 5, CurrentValue: 3},
		{ID: "p", Type: models.ChallengePoints, TargetValue: 50},
		{ID: "s", Type: models.ChallengeStreak, TargetValue: 3},
	}

	done := UpdateProgress(challenges, models.ChallengeReplacement, 1, nil, today)
	assert.Empty(t, done)
	assert.Equal(t, 4, challenges[0].CurrentValue)

	done = UpdateProgress(challenges, models.ChallengeReplacement, 1, nil, today)
	require.Len(t, done, 1)
	assert.Equal(t, "r", done[0].ID)
	assert.True(t, challenges[0].IsCompleted)

	done = UpdateProgress(challenges, models.ChallengeReplacement, 1, nil, today)
	assert.Empty(t, done, "completed challenges do not move")
	assert.Equal(t, 5, challenges[0].CurrentValue)

	UpdateProgress(challenges, models.ChallengePoints, 18, nil, today)
	assert.Equal(t, 18, challenges[1].CurrentValue)
	assert.Zero(t, challenges[2].CurrentValue)
}

func TestUpdateProgressPerfectDayStandingCheck(t *testing.T) {
	challenges := []models.MiniChallenge{
		{ID: "pd", Type: models.ChallengePerfectDay, TargetValue: 1},
		{ID: "s", Type: models.ChallengeStreak, TargetValue: 1},
	}
	habits := []models.Habit{
		{DailyStatus: []models.DailyStatus{{Date: today, Done: true}}},
		{DailyStatus: []models.DailyStatus{{Date: today, Done: false}}},
	}

	done := UpdateProgress(challenges, models.ChallengeStreak, 1, habits, today)
	require.Len(t, done, 1)
	assert.Equal(t, "s", done[0].ID)
	assert.False(t, challenges[0].IsCompleted)

	habits[1].DailyStatus[0].Done = true
	done = UpdateProgress(challenges, models.ChallengeReplacement, 1, habits, today)
	require.Len(t, done, 1)
	assert.Equal(t, "pd", done[0].ID)
	assert.Equal(t, 1, challenges[0].CurrentValue)

	empty := []models.MiniChallenge{{ID: "pd", Type: models.ChallengePerfectDay, TargetValue: 1}}
	assert.Empty(t, UpdateProgress(empty, models.ChallengeStreak, 1, []models.Habit{}, today), "no habits is not a perfect day")
}

func TestProgressAndRewards(t *testing.T) {
	assert.Equal(t, 40.0, Progress(models.MiniChallenge{TargetValue: 5, CurrentValue: 2}))
	assert.Equal(t, 100.0, Progress(models.MiniChallenge{TargetValue: 50, CurrentValue: 73}))

	challenges := []models.MiniChallenge{
		{Reward: 50, IsCompleted: true},
		{Reward: 30},
		{Reward: 20, IsCompleted: true},
	}
	assert.Equal(t, 70, CompletedRewards(challenges))
	assert.Len(t, Active(challenges), 1)
}

func TestDaysRemaining(t *testing.T) {
	batch := []models.MiniChallenge{{EndDate: "2026-01-30"}}

	morning := time.Date(2026, 1, 23, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, 7, DaysRemaining(batch, morning))

	midnight := time.Date(2026, 1, 23, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 7, DaysRemaining(batch, midnight))

	after := time.Date(2026, 2, 3, 9, 0, 0, 0, time.UTC)
	assert.Zero(t, DaysRemaining(batch, after))
	assert.Zero(t, DaysRemaining(nil, morning))
}

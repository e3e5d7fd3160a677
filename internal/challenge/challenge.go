// Package challenge rotates weekly mini-challenges and advances their progress.
package challenge

import (
	"math"
	"time"

	"github.com/julianstephens/habitduel/internal/badge"
	"github.com/julianstephens/habitduel/internal/clock"
	"github.com/julianstephens/habitduel/internal/constants"
	"github.com/julianstephens/habitduel/internal/models"
)

// Template is the fixed part of a mini-challenge.
type Template struct {
	Title       string
	Description string
	Type        models.ChallengeType
	TargetValue int
	Reward      int
}

var templates = []Template{
	{Title: "3-Day Streak", Description: "Maintain any habit for 3 consecutive days", Type: models.ChallengeStreak, TargetValue: 3, Reward: 50},
	{Title: "Perfect Day", Description: "Complete all your habits in a single day", Type: models.ChallengePerfectDay, TargetValue: 1, Reward: 30},
	{Title: "Point Rush", Description: "Earn 50 points today", Type: models.ChallengePoints, TargetValue: 50, Reward: 25},
	{Title: "Early Achiever", Description: "Complete a habit before its time window", Type: models.ChallengeEarly, TargetValue: 1, Reward: 20},
	{Title: "Replacement Pro", Description: "Do replacement actions 5 times", Type: models.ChallengeReplacement, TargetValue: 5, Reward: 40},
}

// Templates returns a copy of the template pool.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// Generate draws ChallengeBatchSize distinct templates and starts them today.
func Generate(today string, rnd clock.Random, newID func() string) []models.MiniChallenge {
	pool := Templates()
	rnd.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	n := min(constants.ChallengeBatchSize, len(pool))
	end := clock.AddDays(today, constants.ChallengeWindowDays)

	out := make([]models.MiniChallenge, 0, n)
	for _, t := range pool[:n] {
		out = append(out, models.MiniChallenge{
			ID:           newID(),
			Title:        t.Title,
			Description:  t.Description,
			Type:         t.Type,
			TargetValue:  t.TargetValue,
			CurrentValue: 0,
			Reward:       t.Reward,
			StartDate:    today,
			EndDate:      end,
			IsCompleted:  false,
		})
	}
	return out
}

// NeedsRefresh reports whether there is no batch or the batch's window has
// lapsed. Every challenge in a batch shares the first one's end date.
func NeedsRefresh(challenges []models.MiniChallenge, today string) bool {
	return len(challenges) == 0 || today > challenges[0].EndDate
}

// RefreshIfNeeded replaces the whole batch when NeedsRefresh holds. Old
// progress is discarded, completed or not.
func RefreshIfNeeded(challenges []models.MiniChallenge, today string, rnd clock.Random, newID func() string) ([]models.MiniChallenge, bool) {
	if !NeedsRefresh(challenges, today) {
		return challenges, false
	}
	return Generate(today, rnd, newID), true
}

// UpdateProgress adds value to every open challenge of type t and completes
// those that reach their target. Independently, open perfect-day challenges
// complete when every supplied habit is done today. It returns the
// challenges completed by this call.
func UpdateProgress(challenges []models.MiniChallenge, t models.ChallengeType, value int, habits []models.Habit, today string) []models.MiniChallenge {
	perfect := badge.PerfectDay(habits, today)

	var completed []models.MiniChallenge
	for i := range challenges {
		c := &challenges[i]
		if c.IsCompleted {
			continue
		}

		if c.Type == t {
			c.CurrentValue += value
			if c.CurrentValue >= c.TargetValue {
				c.IsCompleted = true
				completed = append(completed, *c)
				continue
			}
		}

		if c.Type == models.ChallengePerfectDay && perfect {
			c.CurrentValue = 1
			c.IsCompleted = true
			completed = append(completed, *c)
		}
	}
	return completed
}

// Active returns the challenges not yet completed.
func Active(challenges []models.MiniChallenge) []models.MiniChallenge {
	var out []models.MiniChallenge
	for _, c := range challenges {
		if !c.IsCompleted {
			out = append(out, c)
		}
	}
	return out
}

// Progress returns completion as a percentage capped at 100.
func Progress(c models.MiniChallenge) float64 {
	if c.TargetValue <= 0 {
		return 100
	}
	return math.Min(100, float64(c.CurrentValue)/float64(c.TargetValue)*100)
}

// DaysRemaining returns the whole days, rounded up, until the batch ends.
func DaysRemaining(challenges []models.MiniChallenge, now time.Time) int {
	if len(challenges) == 0 {
		return 0
	}
	end, err := time.ParseInLocation(constants.DateFormat, challenges[0].EndDate, now.Location())
	if err != nil {
		return 0
	}
	days := math.Ceil(end.Sub(now).Hours() / 24)
	return max(0, int(days))
}

// CompletedRewards sums the rewards of completed challenges.
func CompletedRewards(challenges []models.MiniChallenge) int {
	total := 0
	for _, c := range challenges {
		if c.IsCompleted {
			total += c.Reward
		}
	}
	return total
}

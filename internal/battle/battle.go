// Package battle compares two users and runs the single daily battle between
// them. Battles own a snapshot of their habit and participants; nothing here
// touches a live habit or profile.
package battle

import (
	"time"

	"github.com/julianstephens/habitduel/internal/clock"
	"github.com/julianstephens/habitduel/internal/constants"
	apperrors "github.com/julianstephens/habitduel/internal/errors"
	"github.com/julianstephens/habitduel/internal/models"
	"github.com/julianstephens/habitduel/internal/suggestions"
)

// PickTemplate returns the named template, or a random battle-eligible one
// when name is empty or unknown. Lookup by name searches the whole catalog.
func PickTemplate(name string, rnd clock.Random) models.HabitSuggestion {
	if name != "" {
		if s, ok := suggestions.Find(name); ok {
			return s
		}
	}
	eligible := suggestions.BattleEligible()
	return eligible[rnd.IntN(len(eligible))]
}

func participant(u models.User) models.BattleParticipant {
	return models.BattleParticipant{
		UserID: u.ID,
		Name:   u.Profile.Name,
		Avatar: u.Profile.Avatar,
	}
}

// New starts an active battle for today between u1 and u2 on tmpl.
func New(id, today string, u1, u2 models.User, tmpl models.HabitSuggestion) models.HabitBattle {
	return models.HabitBattle{
		ID:            id,
		Date:          today,
		HabitName:     tmpl.Name,
		HabitCategory: tmpl.Category,
		TargetValue:   tmpl.DefaultTarget,
		TargetUnit:    tmpl.TargetUnit,
		IsReduceHabit: tmpl.IsReduceHabit,
		Participants:  [2]models.BattleParticipant{participant(u1), participant(u2)},
		BonusPoints:   constants.BattleBonusPoints,
		Status:        models.BattleActive,
	}
}

// PastCutoff reports whether now is at or after the daily battle cutoff.
func PastCutoff(now time.Time) bool {
	return now.Hour() >= constants.BattleCutoffHour
}

// UpdateProgress records userID's value and recomputes their completion from
// the battle's own target and polarity. It reports whether the battle should
// now be finalized: both participants completed, or the cutoff has passed.
func UpdateProgress(b *models.HabitBattle, userID string, value float64, now time.Time) (bool, error) {
	p, ok := b.Participant(userID)
	if !ok {
		return false, apperrors.ErrNotParticipant
	}

	p.Value = value
	p.Completed = models.MeetsTarget(b.IsReduceHabit, value, b.TargetValue)

	both := b.Participants[0].Completed && b.Participants[1].Completed
	return both || PastCutoff(now), nil
}

// better reports whether a beats b under the battle's polarity.
func better(reduce bool, a, b float64) bool {
	if reduce {
		return a < b
	}
	return a > b
}

// Complete decides the winner and moves the battle to completed or draw.
// A lone finisher wins; when both finished the better raw value wins and an
// exact tie is a draw; when neither finished it is a draw. The winner's
// participant entry records the bonus. It returns the winner id, empty on a
// draw. Crediting the bonus to the profile is the caller's job.
func Complete(b *models.HabitBattle) string {
	p1, p2 := &b.Participants[0], &b.Participants[1]

	var winner *models.BattleParticipant
	switch {
	case p1.Completed && !p2.Completed:
		winner = p1
	case p2.Completed && !p1.Completed:
		winner = p2
	case p1.Completed && p2.Completed:
		if better(b.IsReduceHabit, p1.Value, p2.Value) {
			winner = p1
		} else if better(b.IsReduceHabit, p2.Value, p1.Value) {
			winner = p2
		}
	}

	if winner == nil {
		b.WinnerID = ""
		b.Status = models.BattleDraw
		return ""
	}

	winner.PointsEarned = b.BonusPoints
	b.WinnerID = winner.UserID
	b.Status = models.BattleCompleted
	return winner.UserID
}

// Record is a user's tally over finished battles.
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

// RecordFor tallies history for userID. Every draw counts, whoever fought it.
func RecordFor(history []models.HabitBattle, userID string) Record {
	var r Record
	for i := range history {
		b := &history[i]
		switch {
		case b.Status == models.BattleDraw:
			r.Draws++
		case b.WinnerID == userID:
			r.Wins++
		default:
			if _, ok := b.Participant(userID); ok {
				r.Losses++
			}
		}
	}
	return r
}

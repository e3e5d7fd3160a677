package tracker

import (
	"github.com/julianstephens/habitduel/internal/badge"
	"github.com/julianstephens/habitduel/internal/challenge"
	apperrors "github.com/julianstephens/habitduel/internal/errors"
	"github.com/julianstephens/habitduel/internal/logger"
	"github.com/julianstephens/habitduel/internal/models"
	"github.com/julianstephens/habitduel/internal/points"
	"github.com/julianstephens/habitduel/internal/streak"
)

// CheckinResult is everything a check-in changed.
type CheckinResult struct {
	Habit         models.Habit
	PointsEarned  int
	StreakUpdated bool
	TargetMet     bool
	Early         bool
	// Replaced is set when an earlier check-in for today was overwritten.
	Replaced bool
	// PerfectDayBonus is the bonus paid by this check-in, if any.
	PerfectDayBonus int
	// PerfectDayRevoked is set when this check-in undid today's perfect day
	// and its bonus was taken back.
	PerfectDayRevoked   bool
	NewBadges           []models.Badge
	CompletedChallenges []models.MiniChallenge
}

// RecordDailyProgress records today's check-in for a habit. Points use the
// streak going into the check-in. Checking in again on the same day first
// reverses the earlier entry's points and restores the streak it started
// from, so the day's outcome is always that of the latest check-in.
func (s *Service) RecordDailyProgress(habitID string, value float64, mood models.Mood, replacementDone bool) (CheckinResult, error) {
	if err := s.validator.Checkin(models.CheckinInput{
		HabitID:         habitID,
		Value:           value,
		Mood:            mood,
		ReplacementDone: replacementDone,
	}); err != nil {
		return CheckinResult{}, err
	}

	u, h, ok := s.state.FindHabit(habitID)
	if !ok {
		return CheckinResult{}, apperrors.NotFound("habit", habitID)
	}

	today := s.today()
	now := s.clock.Now()
	stamp := s.timestamp()
	p := &u.Profile

	// Undo an earlier check-in for today.
	var prev models.DailyStatus
	prevCheckin := false
	frozen := false
	if st, ok := h.StatusFor(today); ok {
		prev = *st
		frozen = st.StreakFrozen
		if st.StreakBefore != nil {
			prevCheckin = true
			h.CurrentStreak = *st.StreakBefore
			h.TotalPoints = max(0, h.TotalPoints-st.PointsEarned)
			p.TotalPoints = max(0, p.TotalPoints-st.PointsEarned)
		}
	}

	targetMet := h.TargetMet(value)
	early := targetMet && points.IsEarly(*h, now.Hour(), now.Minute())
	pts := points.Calculate(*h, targetMet, replacementDone, mood, early)

	before := h.CurrentStreak
	h.UpsertStatus(models.DailyStatus{
		Date:            today,
		Done:            targetMet,
		Value:           value,
		Mood:            mood,
		PointsEarned:    pts,
		ReplacementDone: replacementDone,
		StreakFrozen:    frozen,
		StreakBefore:    &before,
	})
	advanced := streak.Advance(h, today, targetMet, replacementDone)

	h.TotalPoints += pts
	p.TotalPoints += pts

	res := CheckinResult{
		PointsEarned:  pts,
		StreakUpdated: advanced,
		TargetMet:     targetMet,
		Early:         early,
		Replaced:      prevCheckin,
	}

	res.NewBadges = append(res.NewBadges, badge.CheckStreak(*h, p, stamp)...)
	if b, ok := badge.CheckEarlyBird(p, early, stamp); ok {
		res.NewBadges = append(res.NewBadges, b)
	}
	if b, ok := badge.CheckComeback(p, *h, today, stamp); ok {
		res.NewBadges = append(res.NewBadges, b)
	}

	active := u.ActiveHabits()
	perfect := badge.PerfectDay(active, today)
	switch {
	case perfect && p.LastPerfectDay != today:
		res.PerfectDayBonus = points.PerfectDayBonus()
		p.TotalPoints += res.PerfectDayBonus
		p.LastPerfectDay = today
	case !perfect && prevCheckin && p.LastPerfectDay == today:
		res.PerfectDayRevoked = true
		p.TotalPoints = max(0, p.TotalPoints-points.PerfectDayBonus())
		p.LastPerfectDay = ""
	}
	if b, ok := badge.CheckPerfectWeek(p, active, today, stamp); ok {
		res.NewBadges = append(res.NewBadges, b)
	}
	res.NewBadges = append(res.NewBadges, badge.CheckPoints(p, stamp)...)

	res.CompletedChallenges = s.advanceChallenges(u, active, today, checkinDelta{
		streak:      advanced && !(prevCheckin && prev.Done && prev.ReplacementDone),
		replacement: replacementDone && !(prevCheckin && prev.ReplacementDone),
		points:      pts - prev.PointsEarned,
		early:       early && !prevCheckin,
	})
	if b, ok := badge.CheckChallenger(p, u.Challenges, stamp); ok {
		res.NewBadges = append(res.NewBadges, b)
	}

	res.Habit = *h
	s.save()

	log := logger.ForUser(u.ID, p.Name).Habit(h.ID, h.Name)
	log.Debug("Recorded check-in", "value", value, "points", pts, "streak", h.CurrentStreak)
	for _, b := range res.NewBadges {
		log.Info("Badge earned", "badge", b.ID)
	}

	events := []Event{{Kind: EventCheckin, UserID: u.ID, HabitID: h.ID}}
	if len(res.NewBadges) > 0 {
		events = append(events, Event{Kind: EventBadgeEarned, UserID: u.ID})
	}
	if len(res.CompletedChallenges) > 0 {
		events = append(events, Event{Kind: EventChallengesDone, UserID: u.ID})
	}
	s.notify(events...)
	return res, nil
}

// checkinDelta is what one check-in adds to challenge progress beyond any
// earlier check-in for the same day.
type checkinDelta struct {
	streak      bool
	replacement bool
	points      int
	early       bool
}

func (s *Service) advanceChallenges(u *models.User, active []models.Habit, today string, d checkinDelta) []models.MiniChallenge {
	s.refreshChallenges(u)

	var done []models.MiniChallenge
	step := func(t models.ChallengeType, v int) {
		done = append(done, challenge.UpdateProgress(u.Challenges, t, v, active, today)...)
	}
	if d.streak {
		step(models.ChallengeStreak, 1)
	}
	if d.replacement {
		step(models.ChallengeReplacement, 1)
	}
	if d.points > 0 {
		step(models.ChallengePoints, d.points)
	}
	if d.early {
		step(models.ChallengeEarly, 1)
	}
	// Standing perfect-day check.
	step(models.ChallengePerfectDay, 0)
	return done
}

// UseFreeze spends the habit's weekly freeze on today. It reports false,
// changing nothing, while the cooldown is running.
func (s *Service) UseFreeze(habitID string) (bool, error) {
	u, h, ok := s.state.FindHabit(habitID)
	if !ok {
		return false, apperrors.NotFound("habit", habitID)
	}

	if !streak.UseFreeze(h, s.today()) {
		return false, nil
	}

	s.save()
	logger.ForUser(u.ID, u.Profile.Name).Habit(h.ID, h.Name).Debug("Streak freeze used")
	s.notify(Event{Kind: EventHabitsChanged, UserID: u.ID, HabitID: h.ID})
	return true, nil
}

// FreezeStatus reports whether a freeze is available and, if not, the days left.
func (s *Service) FreezeStatus(habitID string) (bool, int, error) {
	_, h, ok := s.state.FindHabit(habitID)
	if !ok {
		return false, 0, apperrors.NotFound("habit", habitID)
	}
	today := s.today()
	return streak.FreezeAvailable(h, today), streak.DaysUntilFreezeAvailable(h, today), nil
}

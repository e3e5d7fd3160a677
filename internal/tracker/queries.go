package tracker

import (
	"github.com/julianstephens/habitduel/internal/badge"
	"github.com/julianstephens/habitduel/internal/challenge"
	"github.com/julianstephens/habitduel/internal/models"
	"github.com/julianstephens/habitduel/internal/points"
	"github.com/julianstephens/habitduel/internal/streak"
)

// Dashboard is the read model behind the status screen.
type Dashboard struct {
	User           models.User
	Today          string
	PointsToday    int
	PointsThisWeek int
	Streaks        streak.Summary
	Leaderboard    []points.Ranked
	PerfectToday   bool
	DoneToday      int
	ActiveHabits   int
}

// Dashboard summarizes userID's day. An empty id means the current user.
func (s *Service) Dashboard(userID string) (Dashboard, error) {
	if userID == "" {
		userID = s.state.CurrentUserID
	}
	u, err := s.user(userID)
	if err != nil {
		return Dashboard{}, err
	}

	today := s.today()
	active := u.ActiveHabits()
	d := Dashboard{
		User:           *u,
		Today:          today,
		PointsToday:    points.Today(u.Habits, today),
		PointsThisWeek: points.ThisWeek(u.Habits, today),
		Streaks:        streak.Summarize(u.Habits),
		Leaderboard:    points.Leaderboard(u.Habits),
		PerfectToday:   badge.PerfectDay(active, today),
		ActiveHabits:   len(active),
	}
	for i := range active {
		if active[i].DoneOn(today) {
			d.DoneToday++
		}
	}
	return d, nil
}

// BadgeStatus pairs a definition with the earned copy, if any.
type BadgeStatus struct {
	Definition models.Badge
	Earned     bool
	EarnedAt   string
}

// Badges lists every badge definition with userID's progress.
func (s *Service) Badges(userID string) ([]BadgeStatus, error) {
	u, err := s.user(userID)
	if err != nil {
		return nil, err
	}
	earned := map[string]string{}
	for _, b := range u.Profile.Badges {
		earned[b.ID] = b.EarnedAt
	}

	defs := badge.Definitions()
	out := make([]BadgeStatus, len(defs))
	for i, d := range defs {
		at, ok := earned[d.ID]
		out[i] = BadgeStatus{Definition: d, Earned: ok, EarnedAt: at}
	}
	return out, nil
}

// ChallengeBoard is a user's current batch with derived numbers.
type ChallengeBoard struct {
	Challenges    []models.MiniChallenge
	DaysRemaining int
	Rewards       int
}

// Challenges returns userID's batch, replacing it first if it has lapsed.
func (s *Service) Challenges(userID string) (ChallengeBoard, error) {
	u, err := s.user(userID)
	if err != nil {
		return ChallengeBoard{}, err
	}
	if s.refreshChallenges(u) {
		s.save()
		s.notify(Event{Kind: EventChallengesDone, UserID: u.ID})
	}

	return ChallengeBoard{
		Challenges:    append([]models.MiniChallenge(nil), u.Challenges...),
		DaysRemaining: challenge.DaysRemaining(u.Challenges, s.clock.Now()),
		Rewards:       challenge.CompletedRewards(u.Challenges),
	}, nil
}

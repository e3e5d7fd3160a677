// Package tracker owns the in-memory snapshot and runs every operation that
// mutates it: check-ins, freezes, users, habits and battles. Each mutation is
// written through the storage repository and announced to subscribers.
//
// A Service assumes a single writer. Concurrent callers must serialize their
// own access; two interleaved mutations would race on the whole snapshot.
package tracker

import (
	"github.com/google/uuid"

	"github.com/julianstephens/habitduel/internal/challenge"
	"github.com/julianstephens/habitduel/internal/clock"
	apperrors "github.com/julianstephens/habitduel/internal/errors"
	"github.com/julianstephens/habitduel/internal/logger"
	"github.com/julianstephens/habitduel/internal/models"
	"github.com/julianstephens/habitduel/internal/storage"
	"github.com/julianstephens/habitduel/internal/streak"
	"github.com/julianstephens/habitduel/internal/validation"
)

type Service struct {
	repo      *storage.Repository
	clock     clock.Clock
	rnd       clock.Random
	newID     func() string
	validator *validation.Validator

	state     models.State
	observers map[int]Observer
	nextObs   int
}

// Option configures a Service.
type Option func(*Service)

func WithClock(c clock.Clock) Option {
	return func(s *Service) { s.clock = c }
}

func WithRandom(r clock.Random) Option {
	return func(s *Service) { s.rnd = r }
}

// WithIDs replaces the uuid generator.
func WithIDs(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// New builds a Service. Call EnsureInitialized before anything else.
func New(repo *storage.Repository, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		clock:     clock.RealClock{},
		rnd:       clock.NewRandom(),
		newID:     uuid.NewString,
		validator: validation.New(),
		observers: map[int]Observer{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// InitReport describes what EnsureInitialized found and fixed.
type InitReport struct {
	Fresh     bool
	Recovered bool
	// ResetHabits lists habits whose streak was reset for a missed yesterday.
	ResetHabits []string
	// RefreshedUsers lists users that received a new challenge batch.
	RefreshedUsers []string
}

// EnsureInitialized loads the snapshot, resets streaks for missed days,
// refreshes lapsed challenge batches and saves the result. It must run once
// at startup before any streak is read.
func (s *Service) EnsureInitialized() (InitReport, error) {
	res, err := s.repo.Load()
	if err != nil {
		return InitReport{}, err
	}

	s.state = res.State
	s.state.Normalize()
	report := InitReport{Fresh: res.Fresh, Recovered: res.Recovered}

	if _, ok := s.state.User(s.state.CurrentUserID); !ok && len(s.state.Users) > 0 {
		s.state.CurrentUserID = s.state.Users[0].ID
	}

	today := s.today()
	for i := range s.state.Users {
		u := &s.state.Users[i]
		reset := streak.CheckMissedDays(u.Habits, today)
		report.ResetHabits = append(report.ResetHabits, reset...)

		if s.refreshChallenges(u) {
			report.RefreshedUsers = append(report.RefreshedUsers, u.ID)
		}
	}

	if len(report.ResetHabits) > 0 {
		logger.Info("Reset streaks for missed days", "habits", len(report.ResetHabits))
	}

	s.save()
	return report, nil
}

// State returns a copy of the top-level snapshot fields. Collections are
// shared; callers must treat them as read-only.
func (s *Service) State() models.State {
	return s.state
}

// Today returns the service clock's date.
func (s *Service) Today() string {
	return s.today()
}

// Repository exposes the storage boundary, mainly for LastSaveError.
func (s *Service) Repository() *storage.Repository {
	return s.repo
}

func (s *Service) today() string {
	return clock.Today(s.clock)
}

func (s *Service) timestamp() string {
	return clock.Timestamp(s.clock)
}

func (s *Service) save() {
	s.repo.Save(s.state)
}

func (s *Service) user(id string) (*models.User, error) {
	u, ok := s.state.User(id)
	if !ok {
		return nil, apperrors.NotFound("user", id)
	}
	return u, nil
}

func (s *Service) current() (*models.User, error) {
	return s.user(s.state.CurrentUserID)
}

// refreshChallenges replaces a missing or lapsed batch for u.
func (s *Service) refreshChallenges(u *models.User) bool {
	next, refreshed := challenge.RefreshIfNeeded(u.Challenges, s.today(), s.rnd, s.newID)
	if refreshed {
		u.Challenges = next
		logger.Debug("Generated weekly challenges", "user", u.Profile.Name, "ends", next[0].EndDate)
	}
	return refreshed
}

// RepairStatuses collapses duplicate daily entries on every habit, keeping
// the last entry per date. It returns the number of entries removed.
func (s *Service) RepairStatuses() int {
	removed := 0
	for i := range s.state.Users {
		u := &s.state.Users[i]
		for j := range u.Habits {
			removed += validation.DedupeStatuses(&u.Habits[j])
		}
	}
	if removed > 0 {
		s.save()
		logger.Info("Removed duplicate daily entries", "count", removed)
		s.notify(Event{Kind: EventHabitsChanged})
	}
	return removed
}

// Validate reports integrity conflicts per user id.
func (s *Service) Validate() map[string]validation.ValidationResult {
	return s.validator.ValidateState(s.state)
}

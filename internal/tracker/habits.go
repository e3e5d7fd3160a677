package tracker

import (
	"strings"

	"github.com/julianstephens/habitduel/internal/badge"
	apperrors "github.com/julianstephens/habitduel/internal/errors"
	"github.com/julianstephens/habitduel/internal/logger"
	"github.com/julianstephens/habitduel/internal/models"
	"github.com/julianstephens/habitduel/internal/suggestions"
)

// CreateHabit adds a habit to the current user.
func (s *Service) CreateHabit(in models.HabitInput) (models.Habit, error) {
	u, err := s.current()
	if err != nil {
		return models.Habit{}, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validator.Habit(in); err != nil {
		return models.Habit{}, err
	}
	if err := checkUniqueName(u, in.Name, ""); err != nil {
		return models.Habit{}, err
	}

	h := models.Habit{
		ID:          s.newID(),
		DailyStatus: []models.DailyStatus{},
		CreatedAt:   s.timestamp(),
		IsActive:    true,
	}
	applyInput(&h, in)

	u.Habits = append(u.Habits, h)
	u.Profile.TotalHabits++
	earned := badge.CheckHabits(&u.Profile, s.timestamp())
	s.save()

	logger.ForUser(u.ID, u.Profile.Name).Habit(h.ID, h.Name).Info("Habit created")
	events := []Event{{Kind: EventHabitsChanged, UserID: u.ID, HabitID: h.ID}}
	if len(earned) > 0 {
		events = append(events, Event{Kind: EventBadgeEarned, UserID: u.ID})
	}
	s.notify(events...)
	return h, nil
}

// CreateFromSuggestion adds a catalog habit to the current user. A negative
// target uses the suggestion's default.
func (s *Service) CreateFromSuggestion(name string, target float64) (models.Habit, error) {
	sug, ok := suggestions.Find(name)
	if !ok {
		return models.Habit{}, apperrors.NotFound("suggestion", name)
	}
	h := suggestions.ToHabit(sug, target)
	return s.CreateHabit(inputFrom(h))
}

// UpdateHabit replaces a habit's editable fields. Streaks, points and history
// are kept.
func (s *Service) UpdateHabit(id string, in models.HabitInput) (models.Habit, error) {
	u, h, ok := s.state.FindHabit(id)
	if !ok {
		return models.Habit{}, apperrors.NotFound("habit", id)
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validator.Habit(in); err != nil {
		return models.Habit{}, err
	}
	if err := checkUniqueName(u, in.Name, id); err != nil {
		return models.Habit{}, err
	}

	applyInput(h, in)
	s.save()
	s.notify(Event{Kind: EventHabitsChanged, UserID: u.ID, HabitID: id})
	return *h, nil
}

// SetHabitActive pauses or resumes a habit. Inactive habits do not count
// toward perfect days.
func (s *Service) SetHabitActive(id string, active bool) (models.Habit, error) {
	u, h, ok := s.state.FindHabit(id)
	if !ok {
		return models.Habit{}, apperrors.NotFound("habit", id)
	}
	h.IsActive = active
	s.save()
	s.notify(Event{Kind: EventHabitsChanged, UserID: u.ID, HabitID: id})
	return *h, nil
}

// DeleteHabit removes a habit and its history.
func (s *Service) DeleteHabit(id string) error {
	u, _, ok := s.state.FindHabit(id)
	if !ok {
		return apperrors.NotFound("habit", id)
	}

	kept := u.Habits[:0]
	for _, h := range u.Habits {
		if h.ID != id {
			kept = append(kept, h)
		}
	}
	u.Habits = kept
	u.Profile.TotalHabits = max(0, u.Profile.TotalHabits-1)
	s.save()

	s.notify(Event{Kind: EventHabitsChanged, UserID: u.ID, HabitID: id})
	return nil
}

// GetHabit returns the habit with id, whoever owns it.
func (s *Service) GetHabit(id string) (models.Habit, error) {
	_, h, ok := s.state.FindHabit(id)
	if !ok {
		return models.Habit{}, apperrors.NotFound("habit", id)
	}
	return *h, nil
}

// GetHabits returns the current user's habits.
func (s *Service) GetHabits() []models.Habit {
	u, err := s.current()
	if err != nil {
		return nil
	}
	return append([]models.Habit(nil), u.Habits...)
}

// FindHabit resolves ref within the current user as an id, an id prefix of
// at least four characters, or a case-insensitive name.
func (s *Service) FindHabit(ref string) (models.Habit, error) {
	u, err := s.current()
	if err != nil {
		return models.Habit{}, err
	}
	if h, ok := u.Habit(ref); ok {
		return *h, nil
	}
	var match *models.Habit
	for i := range u.Habits {
		h := &u.Habits[i]
		if strings.EqualFold(h.Name, ref) {
			return *h, nil
		}
		if len(ref) >= 4 && strings.HasPrefix(h.ID, ref) {
			if match != nil {
				return models.Habit{}, apperrors.Invalid("%q matches more than one habit", ref)
			}
			match = h
		}
	}
	if match == nil {
		return models.Habit{}, apperrors.NotFound("habit", ref)
	}
	return *match, nil
}

func checkUniqueName(u *models.User, name, exceptID string) error {
	for _, h := range u.Habits {
		if h.ID != exceptID && strings.EqualFold(h.Name, name) {
			return apperrors.Invalid("a habit named %q already exists", name)
		}
	}
	return nil
}

func applyInput(h *models.Habit, in models.HabitInput) {
	h.Name = in.Name
	h.Description = in.Description
	h.Category = in.Category
	h.Icon = in.Icon
	h.IsReduceHabit = in.IsReduceHabit
	h.TargetValue = in.TargetValue
	h.TargetUnit = in.TargetUnit
	h.TargetOptions = append([]models.TargetOption(nil), in.TargetOptions...)
	if len(h.TargetOptions) == 0 {
		h.TargetOptions = nil
	}
	h.Replacement = in.Replacement
	h.TimeWindow = nil
	if in.TimeWindow != nil {
		w := *in.TimeWindow
		h.TimeWindow = &w
	}
}

func inputFrom(h models.Habit) models.HabitInput {
	return models.HabitInput{
		Name:          h.Name,
		Description:   h.Description,
		Category:      h.Category,
		Icon:          h.Icon,
		IsReduceHabit: h.IsReduceHabit,
		TargetValue:   h.TargetValue,
		TargetUnit:    h.TargetUnit,
		TargetOptions: h.TargetOptions,
		Replacement:   h.Replacement,
		TimeWindow:    h.TimeWindow,
	}
}

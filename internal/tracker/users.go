package tracker

import (
	"strings"

	apperrors "github.com/julianstephens/habitduel/internal/errors"
	"github.com/julianstephens/habitduel/internal/logger"
	"github.com/julianstephens/habitduel/internal/models"
	"github.com/julianstephens/habitduel/internal/storage"
)

// AddUser creates a profile. Avatar and color default to the next entries in
// the rotating palettes.
func (s *Service) AddUser(in models.UserInput) (models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validator.User(in); err != nil {
		return models.User{}, err
	}
	if _, err := s.FindUser(in.Name); err == nil {
		return models.User{}, apperrors.Invalid("a user named %q already exists", in.Name)
	}

	u := storage.NewUser(s.newID(), in.Name, in.Avatar, in.Color, len(s.state.Users), s.timestamp())
	s.refreshChallenges(&u)
	s.state.Users = append(s.state.Users, u)
	s.save()

	logger.Info("User added", "name", u.Profile.Name)
	s.notify(Event{Kind: EventUsersChanged, UserID: u.ID})
	return u, nil
}

// SwitchUser makes id the current user.
func (s *Service) SwitchUser(id string) error {
	u, err := s.user(id)
	if err != nil {
		return err
	}
	s.state.CurrentUserID = u.ID
	s.save()
	s.notify(Event{Kind: EventUsersChanged, UserID: u.ID})
	return nil
}

// RenameUser changes a profile's display name. Battles keep the name they
// were created with.
func (s *Service) RenameUser(id, name string) error {
	name = strings.TrimSpace(name)
	u, err := s.user(id)
	if err != nil {
		return err
	}
	if err := s.validator.User(models.UserInput{Name: name}); err != nil {
		return err
	}
	if other, err := s.FindUser(name); err == nil && other.ID != id {
		return apperrors.Invalid("a user named %q already exists", name)
	}

	u.Profile.Name = name
	s.save()
	s.notify(Event{Kind: EventUsersChanged, UserID: u.ID})
	return nil
}

// ListUsers returns every user in creation order.
func (s *Service) ListUsers() []models.User {
	return append([]models.User(nil), s.state.Users...)
}

// CurrentUser returns the active user.
func (s *Service) CurrentUser() (models.User, error) {
	u, err := s.current()
	if err != nil {
		return models.User{}, err
	}
	return *u, nil
}

// GetUser returns the user with id.
func (s *Service) GetUser(id string) (models.User, error) {
	u, err := s.user(id)
	if err != nil {
		return models.User{}, err
	}
	return *u, nil
}

// FindUser resolves ref as a user id or, case-insensitively, a name.
func (s *Service) FindUser(ref string) (models.User, error) {
	if u, ok := s.state.User(ref); ok {
		return *u, nil
	}
	for _, u := range s.state.Users {
		if strings.EqualFold(u.Profile.Name, ref) {
			return u, nil
		}
	}
	return models.User{}, apperrors.NotFound("user", ref)
}

// Opponent returns the first user other than id.
func (s *Service) Opponent(id string) (models.User, error) {
	for _, u := range s.state.Users {
		if u.ID != id {
			return u, nil
		}
	}
	return models.User{}, apperrors.Invalid("at least two users are needed")
}

package storage

import (
	"github.com/julianstephens/habitduel/internal/constants"
	"github.com/julianstephens/habitduel/internal/models"
)

// SnapshotVersion is the current State.Version written by every store.
const SnapshotVersion = 1

// DefaultSettings are applied to a fresh snapshot.
func DefaultSettings() models.Settings {
	return models.Settings{
		Theme:         "dark",
		Notifications: true,
		ReminderTime:  "09:00",
		Timezone:      "Local",
	}
}

// NewUser builds an empty user. The avatar and color rotate through the
// default palettes by seq when not given.
func NewUser(id, name, avatar, color string, seq int, createdAt string) models.User {
	if avatar == "" {
		avatar = constants.DefaultAvatars[seq%len(constants.DefaultAvatars)]
	}
	if color == "" {
		color = constants.DefaultColors[seq%len(constants.DefaultColors)]
	}
	return models.User{
		ID: id,
		Profile: models.UserProfile{
			ID:        id,
			Name:      name,
			Avatar:    avatar,
			Color:     color,
			Badges:    []models.Badge{},
			CreatedAt: createdAt,
		},
		Habits:     []models.Habit{},
		Challenges: []models.MiniChallenge{},
	}
}

// DefaultState is the documented fallback snapshot: two players, no habits.
func DefaultState(createdAt string, newID func() string) models.State {
	p1 := NewUser(newID(), "Player 1", "🦸", "#667eea", 0, createdAt)
	p2 := NewUser(newID(), "Player 2", "🧙", "#f093fb", 1, createdAt)

	s := models.State{
		Version:       SnapshotVersion,
		Users:         []models.User{p1, p2},
		CurrentUserID: p1.ID,
		Battles:       []models.HabitBattle{},
		Settings:      DefaultSettings(),
	}
	s.Normalize()
	return s
}

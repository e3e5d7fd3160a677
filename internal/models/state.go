package models

// Settings represents application-wide settings stored with the snapshot.
type Settings struct {
	Theme         string `json:"theme"`         // "light" or "dark"
	Notifications bool   `json:"notifications"` // whether reminders are shown
	ReminderTime  string `json:"reminder_time"` // HH:MM format
	Timezone      string `json:"timezone"`      // IANA timezone name or "Local"
}

// State is the whole persisted snapshot.
type State struct {
	Version       int           `json:"version"`
	Users         []User        `json:"users"`
	CurrentUserID string        `json:"current_user_id"`
	Battles       []HabitBattle `json:"battles"`
	ActiveBattle  *HabitBattle  `json:"active_battle,omitempty"`
	Settings      Settings      `json:"settings"`
}

// User returns a pointer to the user with id.
func (s *State) User(id string) (*User, bool) {
	for i := range s.Users {
		if s.Users[i].ID == id {
			return &s.Users[i], true
		}
	}
	return nil, false
}

// FindHabit locates a habit across every user.
func (s *State) FindHabit(id string) (*User, *Habit, bool) {
	for i := range s.Users {
		if h, ok := s.Users[i].Habit(id); ok {
			return &s.Users[i], h, true
		}
	}
	return nil, nil, false
}

// Normalize replaces nil collections with empty ones so that snapshots
// compare equal regardless of which store produced them.
func (s *State) Normalize() {
	if s.Users == nil {
		s.Users = []User{}
	}
	if s.Battles == nil {
		s.Battles = []HabitBattle{}
	}
	for i := range s.Users {
		u := &s.Users[i]
		if u.Habits == nil {
			u.Habits = []Habit{}
		}
		if u.Challenges == nil {
			u.Challenges = []MiniChallenge{}
		}
		if u.Profile.Badges == nil {
			u.Profile.Badges = []Badge{}
		}
		for j := range u.Habits {
			h := &u.Habits[j]
			if h.DailyStatus == nil {
				h.DailyStatus = []DailyStatus{}
			}
			if len(h.TargetOptions) == 0 {
				h.TargetOptions = nil
			}
		}
	}
}

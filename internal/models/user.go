package models

// UserProfile holds a user's aggregate score and achievements.
type UserProfile struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Avatar         string  `json:"avatar"`
	Color          string  `json:"color"`
	TotalPoints    int     `json:"total_points"`
	TotalHabits    int     `json:"total_habits"`
	LongestStreak  int     `json:"longest_streak"`
	Badges         []Badge `json:"badges"`
	CreatedAt      string  `json:"created_at"`                 // RFC3339 timestamp
	LastPerfectDay string  `json:"last_perfect_day,omitempty"` // YYYY-MM-DD format
}

// HasBadge reports whether a badge with id has already been earned.
func (p *UserProfile) HasBadge(id string) bool {
	for _, b := range p.Badges {
		if b.ID == id {
			return true
		}
	}
	return false
}

// User is a profile together with everything it owns.
type User struct {
	ID         string          `json:"id"`
	Profile    UserProfile     `json:"profile"`
	Habits     []Habit         `json:"habits"`
	Challenges []MiniChallenge `json:"challenges"`
}

// Habit returns a pointer to the habit with id, if owned by the user.
func (u *User) Habit(id string) (*Habit, bool) {
	for i := range u.Habits {
		if u.Habits[i].ID == id {
			return &u.Habits[i], true
		}
	}
	return nil, false
}

// HabitByName returns the first habit named name.
func (u *User) HabitByName(name string) (*Habit, bool) {
	for i := range u.Habits {
		if u.Habits[i].Name == name {
			return &u.Habits[i], true
		}
	}
	return nil, false
}

// ActiveHabits returns the habits currently being tracked.
func (u *User) ActiveHabits() []Habit {
	active := make([]Habit, 0, len(u.Habits))
	for _, h := range u.Habits {
		if h.IsActive {
			active = append(active, h)
		}
	}
	return active
}

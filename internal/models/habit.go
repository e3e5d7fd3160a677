package models

// Mood is the user's self-reported mood for a check-in.
type Mood string

const (
	MoodHappy    Mood = "Happy"
	MoodSad      Mood = "Sad"
	MoodStressed Mood = "Stressed"
	MoodNeutral  Mood = "Neutral"
)

// Moods lists every valid mood in display order.
var Moods = []Mood{MoodHappy, MoodNeutral, MoodSad, MoodStressed}

// Valid reports whether m is one of the defined moods.
func (m Mood) Valid() bool {
	for _, v := range Moods {
		if v == m {
			return true
		}
	}
	return false
}

// Category is the closed set of habit categories.
type Category string

const (
	CategoryHealth       Category = "health"
	CategoryFitness      Category = "fitness"
	CategoryMindfulness  Category = "mindfulness"
	CategoryProductivity Category = "productivity"
	CategorySocial       Category = "social"
	CategoryLearning     Category = "learning"
	CategoryFinance      Category = "finance"
	CategoryOther        Category = "other"
)

// Categories lists every valid category.
var Categories = []Category{
	CategoryHealth, CategoryFitness, CategoryMindfulness, CategoryProductivity,
	CategorySocial, CategoryLearning, CategoryFinance, CategoryOther,
}

// Valid reports whether c is one of the defined categories.
func (c Category) Valid() bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// TimeWindow is an inclusive local-time window, both ends in HH:MM format.
type TimeWindow struct {
	Start string `json:"start" validate:"required,hhmm"`
	End   string `json:"end" validate:"required,hhmm"`
}

// TargetOption is a preset daily target offered when creating a habit.
type TargetOption struct {
	Label string  `json:"label" validate:"required"`
	Value float64 `json:"value" validate:"gte=0"`
}

// DailyStatus records what happened for a habit on one day.
type DailyStatus struct {
	Date            string  `json:"date"` // YYYY-MM-DD format
	Done            bool    `json:"done"`
	Value           float64 `json:"value"`
	Mood            Mood    `json:"mood"`
	PointsEarned    int     `json:"points_earned"`
	ReplacementDone bool    `json:"replacement_done"`
	StreakFrozen    bool    `json:"streak_frozen,omitempty"`
	// StreakBefore is the habit's streak going into this day's check-in. It
	// is nil for entries created only by a freeze.
	StreakBefore *int `json:"streak_before,omitempty"`
}

type Habit struct {
	ID                   string         `json:"id"`
	Name                 string         `json:"name"`
	Description          string         `json:"description,omitempty"`
	Category             Category       `json:"category"`
	Icon                 string         `json:"icon"`
	IsReduceHabit        bool           `json:"is_reduce_habit"`
	TargetOptions        []TargetOption `json:"target_options,omitempty"`
	TargetValue          float64        `json:"target_value"`
	TargetUnit           string         `json:"target_unit"`
	Replacement          string         `json:"replacement"`
	TimeWindow           *TimeWindow    `json:"time_window,omitempty"`
	CurrentStreak        int            `json:"current_streak"`
	BestStreak           int            `json:"best_streak"`
	TotalPoints          int            `json:"total_points"`
	DailyStatus          []DailyStatus  `json:"daily_status"`
	CreatedAt            string         `json:"created_at"`                        // RFC3339 timestamp
	LastStreakFreezeDate string         `json:"last_streak_freeze_date,omitempty"` // YYYY-MM-DD format
	IsActive             bool           `json:"is_active"`
}

// TargetMet reports whether value satisfies the habit's target given its polarity.
func (h Habit) TargetMet(value float64) bool {
	return MeetsTarget(h.IsReduceHabit, value, h.TargetValue)
}

// MeetsTarget applies reduce/build polarity: reduce succeeds at or below
// target, build succeeds at or above it.
func MeetsTarget(isReduce bool, value, target float64) bool {
	if isReduce {
		return value <= target
	}
	return value >= target
}

// StatusFor returns the status recorded for date, if any.
func (h *Habit) StatusFor(date string) (*DailyStatus, bool) {
	for i := range h.DailyStatus {
		if h.DailyStatus[i].Date == date {
			return &h.DailyStatus[i], true
		}
	}
	return nil, false
}

// DoneOn reports whether the habit's target was met on date.
func (h *Habit) DoneOn(date string) bool {
	s, ok := h.StatusFor(date)
	return ok && s.Done
}

// UpsertStatus replaces the entry for status.Date or appends it, keeping
// entries ordered by date. It returns the previous entry when one was replaced.
func (h *Habit) UpsertStatus(status DailyStatus) (DailyStatus, bool) {
	for i := range h.DailyStatus {
		if h.DailyStatus[i].Date == status.Date {
			prev := h.DailyStatus[i]
			h.DailyStatus[i] = status
			return prev, true
		}
	}

	idx := len(h.DailyStatus)
	for i := range h.DailyStatus {
		if h.DailyStatus[i].Date > status.Date {
			idx = i
			break
		}
	}
	h.DailyStatus = append(h.DailyStatus, DailyStatus{})
	copy(h.DailyStatus[idx+1:], h.DailyStatus[idx:])
	h.DailyStatus[idx] = status
	return DailyStatus{}, false
}

package models

type ChallengeType string

const (
	ChallengeStreak      ChallengeType = "streak"
	ChallengePoints      ChallengeType = "points"
	ChallengePerfectDay  ChallengeType = "perfect-day"
	ChallengeEarly       ChallengeType = "early"
	ChallengeReplacement ChallengeType = "replacement"
)

// MiniChallenge is a time-boxed goal active for [StartDate, EndDate).
type MiniChallenge struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Type         ChallengeType `json:"type"`
	TargetValue  int           `json:"target_value"`
	CurrentValue int           `json:"current_value"`
	Reward       int           `json:"reward"`
	StartDate    string        `json:"start_date"` // YYYY-MM-DD format
	EndDate      string        `json:"end_date"`   // YYYY-MM-DD format
	IsCompleted  bool          `json:"is_completed"`
	HabitID      string        `json:"habit_id,omitempty"`
}

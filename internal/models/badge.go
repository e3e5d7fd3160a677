package models

type BadgeType string

const (
	BadgeTypeStreak      BadgeType = "streak"
	BadgeTypePoints      BadgeType = "points"
	BadgeTypeHabits      BadgeType = "habits"
	BadgeTypePerfectWeek BadgeType = "perfect-week"
	BadgeTypeEarlyBird   BadgeType = "early-bird"
	BadgeTypeComeback    BadgeType = "comeback"
	BadgeTypeChallenger  BadgeType = "challenger"
)

// Badge is a static achievement definition. EarnedAt is set only on the copy
// stored in a profile.
type Badge struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Type        BadgeType `json:"type"`
	Requirement int       `json:"requirement"`
	EarnedAt    string    `json:"earned_at,omitempty"` // RFC3339 timestamp
}

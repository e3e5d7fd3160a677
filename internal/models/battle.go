package models

type BattleStatus string

const (
	BattleActive    BattleStatus = "active"
	BattleCompleted BattleStatus = "completed"
	BattleDraw      BattleStatus = "draw"
)

// BattleParticipant is a battle's own copy of a user's data.
type BattleParticipant struct {
	UserID       string  `json:"user_id"`
	Name         string  `json:"name"`
	Avatar       string  `json:"avatar"`
	Value        float64 `json:"value"`
	Completed    bool    `json:"completed"`
	PointsEarned int     `json:"points_earned"`
}

// HabitBattle is a single-day race between two users on a snapshotted habit.
type HabitBattle struct {
	ID            string               `json:"id"`
	Date          string               `json:"date"` // YYYY-MM-DD format
	HabitName     string               `json:"habit_name"`
	HabitCategory Category             `json:"habit_category"`
	TargetValue   float64              `json:"target_value"`
	TargetUnit    string               `json:"target_unit"`
	IsReduceHabit bool                 `json:"is_reduce_habit"`
	Participants  [2]BattleParticipant `json:"participants"`
	WinnerID      string               `json:"winner_id,omitempty"`
	BonusPoints   int                  `json:"bonus_points"`
	Status        BattleStatus         `json:"status"`
}

// Participant returns the participant entry for userID.
func (b *HabitBattle) Participant(userID string) (*BattleParticipant, bool) {
	for i := range b.Participants {
		if b.Participants[i].UserID == userID {
			return &b.Participants[i], true
		}
	}
	return nil, false
}

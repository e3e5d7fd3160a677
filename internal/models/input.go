package models

// HabitInput is the user-supplied part of a new or edited habit.
type HabitInput struct {
	Name          string         `json:"name" validate:"required,max=64"`
	Description   string         `json:"description,omitempty" validate:"max=256"`
	Category      Category       `json:"category" validate:"required,category"`
	Icon          string         `json:"icon"`
	IsReduceHabit bool           `json:"is_reduce_habit"`
	TargetValue   float64        `json:"target_value" validate:"gte=0"`
	TargetUnit    string         `json:"target_unit" validate:"max=32"`
	TargetOptions []TargetOption `json:"target_options,omitempty" validate:"dive"`
	Replacement   string         `json:"replacement" validate:"max=128"`
	TimeWindow    *TimeWindow    `json:"time_window,omitempty"`
}

// UserInput is the user-supplied part of a new profile.
type UserInput struct {
	Name   string `json:"name" validate:"required,max=32"`
	Avatar string `json:"avatar"`
	Color  string `json:"color" validate:"omitempty,hexcolor"`
}

// CheckinInput is one daily check-in as submitted by the user.
type CheckinInput struct {
	HabitID         string  `json:"habit_id" validate:"required"`
	Value           float64 `json:"value" validate:"gte=0"`
	Mood            Mood    `json:"mood" validate:"required,mood"`
	ReplacementDone bool    `json:"replacement_done"`
}

package models

// HabitSuggestion is a built-in habit template. It also serves as a battle template.
type HabitSuggestion struct {
	Name                  string         `json:"name"`
	Description           string         `json:"description"`
	Category              Category       `json:"category"`
	Icon                  string         `json:"icon"`
	IsReduceHabit         bool           `json:"is_reduce_habit"`
	TargetOptions         []TargetOption `json:"target_options"`
	DefaultTarget         float64        `json:"default_target"`
	TargetUnit            string         `json:"target_unit"`
	SuggestedReplacements []string       `json:"suggested_replacements"`
}

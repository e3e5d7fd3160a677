// Package suggestions is the catalog of built-in habit templates.
package suggestions

import (
	"strings"

	"github.com/julianstephens/habitduel/internal/models"
)

// BattleReduceTemplate is the only reduce-type template allowed in battles.
const BattleReduceTemplate = "Reduce Screen Time"

var catalog = []models.HabitSuggestion{
	{
		Name:          "Quit Smoking",
		Description:   "Reduce cigarette consumption gradually",
		Category:      models.CategoryHealth,
		Icon:          "🚭",
		IsReduceHabit: true,
		TargetOptions: []models.TargetOption{
			{Label: "10 per day", Value: 10},
			{Label: "5 per day", Value: 5},
			{Label: "3 per day", Value: 3},
			{Label: "1 per day", Value: 1},
			{Label: "No smoking", Value: 0},
		},
		DefaultTarget:         5,
		TargetUnit:            "cigarettes",
		SuggestedReplacements: []string{"Drink water", "Chew gum", "Take deep breaths", "Go for a walk", "Eat a healthy snack"},
	},
	{
		Name:          "Drink Water",
		Description:   "Stay hydrated throughout the day",
		Category:      models.CategoryHealth,
		Icon:          "💧",
		IsReduceHabit: false,
		TargetOptions: []models.TargetOption{
			{Label: "4 glasses", Value: 4},
			{Label: "6 glasses", Value: 6},
			{Label: "8 glasses", Value: 8},
			{Label: "10 glasses", Value: 10},
		},
		DefaultTarget:         8,
		TargetUnit:            "glasses",
		SuggestedReplacements: []string{"Set hourly reminders", "Keep water bottle nearby", "Add lemon for taste"},
	},
	{
		Name:          "Exercise",
		Description:   "Stay active and healthy",
		Category:      models.CategoryFitness,
		Icon:          "🏃",
		IsReduceHabit: false,
		TargetOptions: []models.TargetOption{
			{Label: "15 minutes", Value: 15},
			{Label: "30 minutes", Value: 30},
			{Label: "45 minutes", Value: 45},
			{Label: "60 minutes", Value: 60},
		},
		DefaultTarget:         30,
		TargetUnit:            "minutes",
		SuggestedReplacements: []string{"Do stretching", "Take stairs", "Walk during calls"},
	},
	{
		Name:          "Read Books",
		Description:   "Expand your knowledge daily",
		Category:      models.CategoryLearning,
		Icon:          "📚",
		IsReduceHabit: false,
		TargetOptions: []models.TargetOption{
			{Label: "10 pages", Value: 10},
			{Label: "20 pages", Value: 20},
			{Label: "30 pages", Value: 30},
			{Label: "1 chapter", Value: 25},
		},
		DefaultTarget:         20,
		TargetUnit:            "pages",
		SuggestedReplacements: []string{"Listen to audiobook", "Read article", "Watch educational video"},
	},
	{
		Name:          "Meditate",
		Description:   "Practice mindfulness and calm",
		Category:      models.CategoryMindfulness,
		Icon:          "🧘",
		IsReduceHabit: false,
		TargetOptions: []models.TargetOption{
			{Label: "5 minutes", Value: 5},
			{Label: "10 minutes", Value: 10},
			{Label: "15 minutes", Value: 15},
			{Label: "20 minutes", Value: 20},
		},
		DefaultTarget:         10,
		TargetUnit:            "minutes",
		SuggestedReplacements: []string{"Deep breathing", "Mindful walking", "Body scan"},
	},
	{
		Name:          "Reduce Screen Time",
		Description:   "Limit phone and computer usage",
		Category:      models.CategoryProductivity,
		Icon:          "📱",
		IsReduceHabit: true,
		TargetOptions: []models.TargetOption{
			{Label: "4 hours max", Value: 4},
			{Label: "3 hours max", Value: 3},
			{Label: "2 hours max", Value: 2},
			{Label: "1 hour max", Value: 1},
		},
		DefaultTarget:         3,
		TargetUnit:            "hours",
		SuggestedReplacements: []string{"Read a book", "Go outside", "Talk to someone", "Do a hobby"},
	},
	{
		Name:          "Sleep Early",
		Description:   "Get better sleep by going to bed on time",
		Category:      models.CategoryHealth,
		Icon:          "😴",
		IsReduceHabit: false,
		TargetOptions: []models.TargetOption{
			{Label: "By 11 PM", Value: 23},
			{Label: "By 10 PM", Value: 22},
			{Label: "By 10:30 PM", Value: 22.5},
			{Label: "By 9:30 PM", Value: 21.5},
		},
		DefaultTarget:         22,
		TargetUnit:            "PM",
		SuggestedReplacements: []string{"No screens 1hr before", "Read instead", "Warm shower"},
	},
	{
		Name:          "Save Money",
		Description:   "Build financial discipline",
		Category:      models.CategoryFinance,
		Icon:          "💰",
		IsReduceHabit: false,
		TargetOptions: []models.TargetOption{
			{Label: "$5 per day", Value: 5},
			{Label: "$10 per day", Value: 10},
			{Label: "$20 per day", Value: 20},
			{Label: "$50 per day", Value: 50},
		},
		DefaultTarget:         10,
		TargetUnit:            "dollars",
		SuggestedReplacements: []string{"Skip coffee out", "Bring lunch", "Use coupons"},
	},
	{
		Name:          "Practice Gratitude",
		Description:   "Write things you are grateful for",
		Category:      models.CategoryMindfulness,
		Icon:          "🙏",
		IsReduceHabit: false,
		TargetOptions: []models.TargetOption{
			{Label: "1 thing", Value: 1},
			{Label: "3 things", Value: 3},
			{Label: "5 things", Value: 5},
		},
		DefaultTarget:         3,
		TargetUnit:            "things",
		SuggestedReplacements: []string{"Think about positives", "Call someone you appreciate"},
	},
	{
		Name:          "Reduce Junk Food",
		Description:   "Eat healthier by limiting junk food",
		Category:      models.CategoryHealth,
		Icon:          "🍔",
		IsReduceHabit: true,
		TargetOptions: []models.TargetOption{
			{Label: "2 times max", Value: 2},
			{Label: "1 time max", Value: 1},
			{Label: "No junk food", Value: 0},
		},
		DefaultTarget:         1,
		TargetUnit:            "times",
		SuggestedReplacements: []string{"Eat fruits", "Drink smoothie", "Healthy snack"},
	},
}

// All returns every built-in suggestion in catalog order.
func All() []models.HabitSuggestion {
	out := make([]models.HabitSuggestion, len(catalog))
	copy(out, catalog)
	return out
}

// Find looks up a suggestion by name, ignoring case.
func Find(name string) (models.HabitSuggestion, bool) {
	for _, s := range catalog {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return models.HabitSuggestion{}, false
}

// BattleEligible returns the templates usable in a battle: every build habit
// plus the screen-time reduce habit.
func BattleEligible() []models.HabitSuggestion {
	var out []models.HabitSuggestion
	for _, s := range catalog {
		if !s.IsReduceHabit || s.Name == BattleReduceTemplate {
			out = append(out, s)
		}
	}
	return out
}

// ToHabit builds an unsaved habit from the suggestion. A negative target
// selects the suggestion's default.
func ToHabit(s models.HabitSuggestion, target float64) models.Habit {
	if target < 0 {
		target = s.DefaultTarget
	}
	replacement := ""
	if len(s.SuggestedReplacements) > 0 {
		replacement = s.SuggestedReplacements[0]
	}
	return models.Habit{
		Name:          s.Name,
		Description:   s.Description,
		Category:      s.Category,
		Icon:          s.Icon,
		IsReduceHabit: s.IsReduceHabit,
		TargetOptions: append([]models.TargetOption(nil), s.TargetOptions...),
		TargetValue:   target,
		TargetUnit:    s.TargetUnit,
		Replacement:   replacement,
		IsActive:      true,
	}
}

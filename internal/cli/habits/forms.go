package habits

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitduel/internal/models"
	"github.com/julianstephens/habitduel/internal/utils"
	"github.com/julianstephens/habitduel/internal/validation"
)

// ParseWindow parses "HH:MM-HH:MM".
func ParseWindow(s string) (*models.TimeWindow, error) {
	start, end, ok := strings.Cut(strings.TrimSpace(s), "-")
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if !ok || !utils.ValidateTimeFormat(start) || !utils.ValidateTimeFormat(end) {
		return nil, fmt.Errorf("invalid time window %q (expected HH:MM-HH:MM)", s)
	}
	return &models.TimeWindow{Start: start, End: end}, nil
}

// FormatWindow is the inverse of ParseWindow; nil gives "".
func FormatWindow(w *models.TimeWindow) string {
	if w == nil {
		return ""
	}
	return w.Start + "-" + w.End
}

// ParseMood accepts a mood in any case.
func ParseMood(s string) (models.Mood, error) {
	return validation.New().Mood(s)
}

// InputFrom returns the editable fields of h.
func InputFrom(h models.Habit) models.HabitInput {
	var w *models.TimeWindow
	if h.TimeWindow != nil {
		cp := *h.TimeWindow
		w = &cp
	}
	return models.HabitInput{
		Name:          h.Name,
		Description:   h.Description,
		Category:      h.Category,
		Icon:          h.Icon,
		IsReduceHabit: h.IsReduceHabit,
		TargetValue:   h.TargetValue,
		TargetUnit:    h.TargetUnit,
		TargetOptions: append([]models.TargetOption(nil), h.TargetOptions...),
		Replacement:   h.Replacement,
		TimeWindow:    w,
	}
}

func validateNumber(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if v < 0 {
		return fmt.Errorf("value must not be negative")
	}
	return nil
}

func validateWindow(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := ParseWindow(s)
	return err
}

// NewHabitForm binds a form to in. Text fields go through the string
// pointers, which ApplyHabitForm copies back.
func NewHabitForm(in *models.HabitInput, target, window *string) *huh.Form {
	categories := make([]huh.Option[models.Category], len(models.Categories))
	for i, c := range models.Categories {
		categories[i] = huh.NewOption(string(c), c)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&in.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewSelect[models.Category]().
				Title("Category").
				Options(categories...).
				Value(&in.Category),
			huh.NewConfirm().
				Title("Reduce habit?").
				Description("Success is staying at or under the target.").
				Value(&in.IsReduceHabit),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Daily target").
				Value(target).
				Validate(validateNumber),
			huh.NewInput().
				Title("Unit").
				Value(&in.TargetUnit),
			huh.NewInput().
				Title("Replacement action").
				Description("Doing it is required to build a streak.").
				Value(&in.Replacement),
			huh.NewInput().
				Title("Time window (HH:MM-HH:MM)").
				Description("Optional; finishing before it opens earns a bonus.").
				Value(window).
				Validate(validateWindow),
		),
	)
}

// ApplyHabitForm copies the form's string fields into in.
func ApplyHabitForm(in *models.HabitInput, target, window string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(target), 64)
	if err != nil {
		return fmt.Errorf("invalid target %q", target)
	}
	in.TargetValue = v
	in.TimeWindow = nil
	if strings.TrimSpace(window) != "" {
		w, err := ParseWindow(window)
		if err != nil {
			return err
		}
		in.TimeWindow = w
	}
	return nil
}

// RunHabitForm prompts for every habit field, starting from in.
func RunHabitForm(in *models.HabitInput) error {
	if !in.Category.Valid() {
		in.Category = models.CategoryOther
	}
	target := strconv.FormatFloat(in.TargetValue, 'f', -1, 64)
	window := FormatWindow(in.TimeWindow)
	if err := NewHabitForm(in, &target, &window).Run(); err != nil {
		return err
	}
	return ApplyHabitForm(in, target, window)
}

// CheckinForm is the data a check-in form collects.
type CheckinForm struct {
	Value           float64
	Mood            models.Mood
	ReplacementDone bool
}

// NewCheckinForm binds a check-in form for h. Preset target options are
// offered as a select; otherwise the value is typed into value.
func NewCheckinForm(h models.Habit, in *CheckinForm, value *string) *huh.Form {
	moods := make([]huh.Option[models.Mood], len(models.Moods))
	for i, m := range models.Moods {
		moods[i] = huh.NewOption(string(m), m)
	}

	fields := []huh.Field{
		huh.NewInput().
			Title(fmt.Sprintf("%s: today's value (%s)", h.Name, h.TargetUnit)).
			Description(fmt.Sprintf("Target: %g", h.TargetValue)).
			Value(value).
			Validate(validateNumber),
		huh.NewSelect[models.Mood]().
			Title("Mood").
			Options(moods...).
			Value(&in.Mood),
	}
	if h.Replacement != "" {
		fields = append(fields, huh.NewConfirm().
			Title("Did you "+strings.ToLower(h.Replacement)+"?").
			Value(&in.ReplacementDone))
	} else {
		fields = append(fields, huh.NewConfirm().
			Title("Replacement action done?").
			Value(&in.ReplacementDone))
	}
	return huh.NewForm(huh.NewGroup(fields...))
}

// RunCheckinForm prompts for a check-in on h.
func RunCheckinForm(h models.Habit, in *CheckinForm) error {
	if !in.Mood.Valid() {
		in.Mood = models.MoodNeutral
	}
	value := ""
	if in.Value >= 0 {
		value = strconv.FormatFloat(in.Value, 'f', -1, 64)
	}
	if err := NewCheckinForm(h, in, &value).Run(); err != nil {
		return err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fmt.Errorf("invalid value %q", value)
	}
	in.Value = v
	return nil
}

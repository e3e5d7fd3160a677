package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/julianstephens/habitduel/internal/errors"
	"github.com/julianstephens/habitduel/internal/models"
	"github.com/julianstephens/habitduel/internal/utils"
)

// ConflictType represents the type of integrity problem found in stored data
type ConflictType string

const (
	ConflictDuplicateHabitName ConflictType = "duplicate_habit_name"
	ConflictDuplicateStatus    ConflictType = "duplicate_daily_status"
	ConflictInvalidDateTime    ConflictType = "invalid_datetime"
	ConflictStreakInvariant    ConflictType = "streak_invariant"
	ConflictDuplicateBadge     ConflictType = "duplicate_badge"
	ConflictMissingID          ConflictType = "missing_id"
)

// Conflict represents a detected problem in a user's habits or profile
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string
	HabitIDs    []string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

// Validator checks user input against struct tags and stored data for
// integrity problems.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator with the habit-specific tags registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return utils.ValidateTimeFormat(fl.Field().String())
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return models.Category(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("mood", func(fl validator.FieldLevel) bool {
		return models.Mood(fl.Field().String()).Valid()
	})
	return &Validator{v: v}
}

// Habit validates habit input. Failures wrap apperrors.ErrInvalidInput.
func (v *Validator) Habit(in models.HabitInput) error {
	if err := v.check(in); err != nil {
		return err
	}
	if w := in.TimeWindow; w != nil {
		start, _ := utils.ParseTimeToMinutes(w.Start)
		end, _ := utils.ParseTimeToMinutes(w.End)
		if end < start {
			return apperrors.Invalid("time window ends (%s) before it starts (%s)", w.End, w.Start)
		}
	}
	return nil
}

// User validates profile input.
func (v *Validator) User(in models.UserInput) error {
	return v.check(in)
}

// Checkin validates a check-in submission.
func (v *Validator) Checkin(in models.CheckinInput) error {
	return v.check(in)
}

// Mood validates a mood string and returns it typed.
func (v *Validator) Mood(s string) (models.Mood, error) {
	for _, m := range models.Moods {
		if strings.EqualFold(string(m), s) {
			return m, nil
		}
	}
	return "", apperrors.Invalid("mood must be one of %s", joinMoods())
}

func joinMoods() string {
	names := make([]string, len(models.Moods))
	for i, m := range models.Moods {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

func (v *Validator) check(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return apperrors.Invalid("%s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Namespace())
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "hhmm":
		return fmt.Sprintf("%s must be in HH:MM format, got %q", field, fe.Value())
	case "category":
		return fmt.Sprintf("%s %q is not a known category", field, fe.Value())
	case "mood":
		return fmt.Sprintf("%s must be one of %s", field, joinMoods())
	case "hexcolor":
		return fmt.Sprintf("%s must be a hex color like #667eea", field)
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

// ValidateUser checks a stored user for integrity problems.
func (v *Validator) ValidateUser(u models.User) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	nameIDs := make(map[string][]string)
	for _, h := range u.Habits {
		if h.ID == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingID,
				Description: fmt.Sprintf("Habit \"%s\" has no id", h.Name),
				Items:       []string{h.Name},
			})
		}
		if h.Name != "" {
			nameIDs[h.Name] = append(nameIDs[h.Name], h.ID)
		}
	}

	names := make([]string, 0, len(nameIDs))
	for name := range nameIDs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if ids := nameIDs[name]; len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateHabitName,
				Description: fmt.Sprintf("Duplicate habit name: \"%s\" (IDs: %v)", name, ids),
				Items:       []string{name},
				HabitIDs:    ids,
			})
		}
	}

	for _, h := range u.Habits {
		result.Conflicts = append(result.Conflicts, habitConflicts(h)...)
	}

	seen := map[string]bool{}
	for _, b := range u.Profile.Badges {
		if seen[b.ID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateBadge,
				Description: fmt.Sprintf("Badge \"%s\" earned more than once", b.ID),
				Items:       []string{b.ID},
			})
		}
		seen[b.ID] = true
	}

	return result
}

func habitConflicts(h models.Habit) []Conflict {
	var out []Conflict
	add := func(t ConflictType, format string, args ...any) {
		out = append(out, Conflict{
			Type:        t,
			Description: fmt.Sprintf(format, args...),
			Items:       []string{h.Name},
			HabitIDs:    []string{h.ID},
		})
	}

	if h.BestStreak < h.CurrentStreak {
		add(ConflictStreakInvariant, "Habit \"%s\" has best streak %d below current streak %d", h.Name, h.BestStreak, h.CurrentStreak)
	}
	if w := h.TimeWindow; w != nil {
		if !utils.ValidateTimeFormat(w.Start) || !utils.ValidateTimeFormat(w.End) {
			add(ConflictInvalidDateTime, "Habit \"%s\" has invalid time window %s-%s", h.Name, w.Start, w.End)
		}
	}
	if h.LastStreakFreezeDate != "" && !utils.ValidateDateFormat(h.LastStreakFreezeDate) {
		add(ConflictInvalidDateTime, "Habit \"%s\" has invalid freeze date: %s", h.Name, h.LastStreakFreezeDate)
	}

	dates := map[string]int{}
	for _, s := range h.DailyStatus {
		if !utils.ValidateDateFormat(s.Date) {
			add(ConflictInvalidDateTime, "Habit \"%s\" has a status with invalid date: %s", h.Name, s.Date)
		}
		dates[s.Date]++
	}
	dup := make([]string, 0)
	for d, n := range dates {
		if n > 1 {
			dup = append(dup, d)
		}
	}
	sort.Strings(dup)
	for _, d := range dup {
		add(ConflictDuplicateStatus, "Habit \"%s\" has %d statuses for %s", h.Name, dates[d], d)
	}
	return out
}

// ValidateState checks every user in the snapshot.
func (v *Validator) ValidateState(s models.State) map[string]ValidationResult {
	out := make(map[string]ValidationResult, len(s.Users))
	for _, u := range s.Users {
		out[u.ID] = v.ValidateUser(u)
	}
	return out
}

// DedupeStatuses keeps the last status recorded per date and reports how many
// entries were dropped.
func DedupeStatuses(h *models.Habit) int {
	if len(h.DailyStatus) < 2 {
		return 0
	}
	last := map[string]int{}
	for i, s := range h.DailyStatus {
		last[s.Date] = i
	}
	kept := make([]models.DailyStatus, 0, len(last))
	for i, s := range h.DailyStatus {
		if last[s.Date] == i {
			kept = append(kept, s)
		}
	}
	dropped := len(h.DailyStatus) - len(kept)
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Date < kept[j].Date })
	h.DailyStatus = kept
	return dropped
}

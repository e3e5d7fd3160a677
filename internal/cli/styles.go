package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitduel/internal/models"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	DangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// UserStyle renders text in the user's profile color.
func UserStyle(p models.UserProfile) lipgloss.Style {
	if p.Color == "" {
		return lipgloss.NewStyle().Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Bold(true)
}

// UserLabel is the avatar and name in the user's color.
func UserLabel(p models.UserProfile) string {
	return UserStyle(p).Render(strings.TrimSpace(p.Avatar + " " + p.Name))
}

// ProgressBar draws a fixed-width bar for a percentage.
func ProgressBar(pct float64, width int) string {
	pct = max(0, min(100, pct))
	filled := int(pct / 100 * float64(width))
	return SuccessStyle.Render(strings.Repeat("█", filled)) + MutedStyle.Render(strings.Repeat("░", width-filled))
}

// FormatValue prints a target value without trailing zeros.
func FormatValue(v float64, unit string) string {
	s := fmt.Sprintf("%g", v)
	if unit == "" {
		return s
	}
	return s + " " + unit
}

// HabitIcon falls back to a generic icon.
func HabitIcon(h models.Habit) string {
	if h.Icon == "" {
		return "🎯"
	}
	return h.Icon
}

// TargetLabel describes the habit's daily goal with its polarity.
func TargetLabel(h models.Habit) string {
	if h.IsReduceHabit {
		return "≤ " + FormatValue(h.TargetValue, h.TargetUnit)
	}
	return "≥ " + FormatValue(h.TargetValue, h.TargetUnit)
}

package tui

import (
	"fmt"

	"github.com/julianstephens/habitduel/internal/cli"
	"github.com/julianstephens/habitduel/internal/models"
)

type habitItem struct {
	habit models.Habit
	today string
}

func (i habitItem) Title() string {
	mark := "○"
	switch {
	case !i.habit.IsActive:
		mark = "⏸"
	case i.habit.DoneOn(i.today):
		mark = "✓"
	}
	return fmt.Sprintf("%s %s %s", mark, cli.HabitIcon(i.habit), i.habit.Name)
}

func (i habitItem) Description() string {
	if !i.habit.IsActive {
		return "paused"
	}
	desc := fmt.Sprintf("%s · 🔥 %d · %d pts", cli.TargetLabel(i.habit), i.habit.CurrentStreak, i.habit.TotalPoints)
	if st, ok := i.habit.StatusFor(i.today); ok {
		if st.StreakBefore != nil {
			desc += " · today " + cli.FormatValue(st.Value, i.habit.TargetUnit)
		}
		if st.StreakFrozen {
			desc += " · ❄"
		}
	}
	return desc
}

func (i habitItem) FilterValue() string { return i.habit.Name }

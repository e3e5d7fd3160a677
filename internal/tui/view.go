package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitduel/internal/cli"
	"github.com/julianstephens/habitduel/internal/constants"
	"github.com/julianstephens/habitduel/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case stateCheckin:
		content = docStyle.Render(m.form.View())
	default:
		content = docStyle.Render(m.viewHabits())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		m.viewBattle(),
		content,
		m.viewStatus(),
		m.help.View(m.keys),
	)
}

func (m Model) viewHeader() string {
	d := m.dashboard
	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		statStyle.Render(cli.UserLabel(d.User.Profile)),
		statStyle.Render(fmt.Sprintf("⭐ %d total", d.User.Profile.TotalPoints)),
		statStyle.Render(fmt.Sprintf("+%d today", d.PointsToday)),
		statStyle.Render(fmt.Sprintf("🔥 best %d", d.Streaks.LongestCurrent)),
		statStyle.Render(fmt.Sprintf("%d/%d done", d.DoneToday, d.ActiveHabits)),
	)
	if d.PerfectToday {
		stats = lipgloss.JoinHorizontal(lipgloss.Top, stats, noticeStyle.Render("✨ perfect day"))
	}
	return headerStyle.Render(stats)
}

func (m Model) viewBattle() string {
	b := m.battle
	if b == nil || b.Status != models.BattleActive {
		return ""
	}
	p1, p2 := b.Participants[0], b.Participants[1]
	return battleStyle.Render(fmt.Sprintf(" ⚔ %s: %s %s vs %s %s (target %s, ends %02d:00)",
		b.HabitName,
		p1.Avatar, cli.FormatValue(p1.Value, b.TargetUnit),
		p2.Avatar, cli.FormatValue(p2.Value, b.TargetUnit),
		cli.FormatValue(b.TargetValue, b.TargetUnit),
		constants.BattleCutoffHour,
	))
}

func (m Model) viewHabits() string {
	if len(m.list.Items()) == 0 {
		return "No habits yet.\nAdd one with 'habitduel habit add' or 'habitduel habit adopt'."
	}
	return m.list.View()
}

func (m Model) viewStatus() string {
	switch {
	case m.err != nil:
		return " " + errorStyle.Render(m.err.Error())
	case m.notice != "":
		return " " + noticeStyle.Render(m.notice)
	case m.svc.Repository().LastSaveError() != nil:
		return " " + errorStyle.Render("⚠ changes are not being saved: "+m.svc.Repository().LastSaveError().Error())
	}
	return ""
}

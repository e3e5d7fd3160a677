package stats

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitduel/internal/battle"
	"github.com/julianstephens/habitduel/internal/challenge"
	"github.com/julianstephens/habitduel/internal/cli"
)

type StatusCmd struct {
	User string `arg:"" optional:"" help:"Player name or id; defaults to the current player."`
}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	u, err := ctx.ResolveUser(c.User)
	if err != nil {
		return err
	}
	d, err := svc.Dashboard(u.ID)
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", cli.UserLabel(d.User.Profile), cli.MutedStyle.Render(d.Today))
	fmt.Fprintf(&b, "⭐ %d total  •  %d today  •  %d this week\n", d.User.Profile.TotalPoints, d.PointsToday, d.PointsThisWeek)
	fmt.Fprintf(&b, "🔥 longest current %d  •  best ever %d  •  %d habits on a streak\n",
		d.Streaks.LongestCurrent, d.Streaks.BestEver, d.Streaks.HabitsWithStreaks)
	fmt.Fprintf(&b, "✅ %d/%d done today", d.DoneToday, d.ActiveHabits)
	if d.PerfectToday {
		b.WriteString("  🌟 perfect day")
	}
	fmt.Println(cli.BoxStyle.Render(b.String()))

	today := d.Today
	for i := range d.User.Habits {
		h := &d.User.Habits[i]
		if !h.IsActive {
			continue
		}
		mark := "○"
		detail := cli.TargetLabel(*h)
		if st, ok := h.StatusFor(today); ok {
			if st.Done {
				mark = cli.SuccessStyle.Render("✓")
			}
			if st.StreakFrozen {
				mark += "🧊"
			}
			detail = fmt.Sprintf("%s (%s)", cli.FormatValue(st.Value, h.TargetUnit), cli.TargetLabel(*h))
		}
		fmt.Printf("%s %s %-20s 🔥%-3d %s\n", mark, cli.HabitIcon(*h), h.Name, h.CurrentStreak, detail)
	}
	return nil
}

type LeaderboardCmd struct {
	User string `arg:"" optional:"" help:"Player name or id; defaults to the current player."`
}

func (c *LeaderboardCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	u, err := ctx.ResolveUser(c.User)
	if err != nil {
		return err
	}
	d, err := svc.Dashboard(u.ID)
	if err != nil {
		return err
	}
	if len(d.Leaderboard) == 0 {
		fmt.Println("No habits yet.")
		return nil
	}
	medals := []string{"🥇", "🥈", "🥉"}
	fmt.Println(cli.TitleStyle.Render("Habit leaderboard"))
	for _, r := range d.Leaderboard {
		rank := fmt.Sprintf("%2d.", r.Rank)
		if r.Rank <= len(medals) {
			rank = medals[r.Rank-1]
		}
		fmt.Printf("%s %s %-20s %5d pts  🔥%d\n", rank, cli.HabitIcon(r.Habit), r.Habit.Name, r.Habit.TotalPoints, r.Habit.CurrentStreak)
	}
	return nil
}

type BadgesCmd struct {
	User string `arg:"" optional:"" help:"Player name or id; defaults to the current player."`
}

func (c *BadgesCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	u, err := ctx.ResolveUser(c.User)
	if err != nil {
		return err
	}
	badges, err := svc.Badges(u.ID)
	if err != nil {
		return err
	}
	earned := 0
	for _, b := range badges {
		if b.Earned {
			earned++
		}
	}
	fmt.Printf("%s  %d/%d badges\n\n", cli.UserLabel(u.Profile), earned, len(badges))
	for _, b := range badges {
		d := b.Definition
		if b.Earned {
			fmt.Printf("%s %-16s %s  %s\n", d.Icon, d.Name, d.Description, cli.MutedStyle.Render(earnedDate(b.EarnedAt)))
		} else {
			fmt.Println(cli.MutedStyle.Render(fmt.Sprintf("🔒 %-16s %s", d.Name, d.Description)))
		}
	}
	return nil
}

func earnedDate(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}

type ChallengesCmd struct {
	User string `arg:"" optional:"" help:"Player name or id; defaults to the current player."`
}

func (c *ChallengesCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	u, err := ctx.ResolveUser(c.User)
	if err != nil {
		return err
	}
	board, err := svc.Challenges(u.ID)
	if err != nil {
		return err
	}
	fmt.Printf("%s  %d day(s) left  •  %d reward pts earned\n\n", cli.TitleStyle.Render("Weekly challenges"), board.DaysRemaining, board.Rewards)
	for _, ch := range board.Challenges {
		mark := "○"
		if ch.IsCompleted {
			mark = cli.SuccessStyle.Render("✓")
		}
		fmt.Printf("%s %s  %s\n", mark, ch.Title, cli.MutedStyle.Render(fmt.Sprintf("+%d", ch.Reward)))
		fmt.Printf("    %s  %d/%d  %s\n", ch.Description, min(ch.CurrentValue, ch.TargetValue), ch.TargetValue, cli.ProgressBar(challenge.Progress(ch), 20))
	}
	return nil
}

type CompareCmd struct {
	Other string `arg:"" optional:"" help:"Player to compare with; defaults to the first other player."`
}

func (c *CompareCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	me, err := svc.CurrentUser()
	if err != nil {
		return err
	}
	other, err := svc.Opponent(me.ID)
	if c.Other != "" {
		other, err = svc.FindUser(c.Other)
	}
	if err != nil {
		return err
	}

	cmp, items, err := svc.Compare(me.ID, other.ID)
	if err != nil {
		return err
	}
	name := func(id string) string {
		switch id {
		case me.ID:
			return me.Profile.Name
		case other.ID:
			return other.Profile.Name
		}
		return "draw"
	}

	fmt.Printf("%s  vs  %s\n\n", cli.UserLabel(me.Profile), cli.UserLabel(other.Profile))
	row := func(label string, a, b int, winner string) {
		fmt.Printf("%-16s %6d  %6d   %s\n", label, a, b, cli.MutedStyle.Render(name(winner)))
	}
	row("Points today", cmp.User1.PointsToday, cmp.User2.PointsToday, cmp.TodayWinner)
	row("Completion %", cmp.User1.CompletionRate, cmp.User2.CompletionRate, cmp.TodayWinner)
	row("Total points", cmp.User1.TotalPoints, cmp.User2.TotalPoints, cmp.OverallWinner)
	row("Longest streak", cmp.User1.LongestStreak, cmp.User2.LongestStreak, cmp.StreakWinner)

	if len(items) > 0 {
		fmt.Println()
		for _, it := range items {
			fmt.Printf("%s %-20s %s  %s  %s\n", it.Icon, it.HabitName, side(it.User1), side(it.User2), cli.MutedStyle.Render(habitWinner(it.Winner, me.Profile.Name, other.Profile.Name)))
		}
	}

	r1 := battle.RecordFor(svc.BattleHistory(), me.ID)
	fmt.Printf("\nBattle record: %dW %dL %dD\n", r1.Wins, r1.Losses, r1.Draws)
	return nil
}

func side(s battle.HabitSide) string {
	switch {
	case !s.HasHabit:
		return fmt.Sprintf("%-10s", "—")
	case s.CompletedToday:
		return fmt.Sprintf("✓ 🔥%-6d", s.Streak)
	default:
		return fmt.Sprintf("○ 🔥%-6d", s.Streak)
	}
}

func habitWinner(w int, n1, n2 string) string {
	switch w {
	case 1:
		return n1
	case 2:
		return n2
	}
	return "draw"
}

package habits

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/habitduel/internal/cli"
	"github.com/julianstephens/habitduel/internal/models"
	"github.com/julianstephens/habitduel/internal/suggestions"
	"github.com/julianstephens/habitduel/internal/tracker"
)

type HabitCmd struct {
	Add         HabitAddCmd         `cmd:"" help:"Add a new habit."`
	Adopt       HabitAdoptCmd       `cmd:"" help:"Add a habit from the suggestion catalog."`
	Suggestions HabitSuggestionsCmd `cmd:"" help:"List built-in habit suggestions."`
	List        HabitListCmd        `cmd:"" help:"List the current user's habits." default:"1"`
	Checkin     HabitCheckinCmd     `cmd:"" help:"Record today's progress for a habit."`
	Freeze      HabitFreezeCmd      `cmd:"" help:"Spend the weekly streak freeze on today."`
	Edit        HabitEditCmd        `cmd:"" help:"Edit a habit."`
	Pause       HabitPauseCmd       `cmd:"" help:"Pause a habit so it stops counting toward perfect days."`
	Resume      HabitResumeCmd      `cmd:"" help:"Resume a paused habit."`
	Delete      HabitDeleteCmd      `cmd:"" help:"Delete a habit and its history."`
}

type HabitAddCmd struct {
	Name        string  `arg:"" optional:"" help:"Habit name."`
	Category    string  `help:"Category (health, fitness, mindfulness, productivity, social, learning, finance, other)." default:"other"`
	Reduce      bool    `help:"Track a habit to cut down on; success is staying at or under the target."`
	Target      float64 `help:"Daily target value." default:"1"`
	Unit        string  `help:"Unit for the target value." default:"times"`
	Replacement string  `help:"Replacement action done instead of the habit."`
	Description string  `help:"Optional description."`
	Icon        string  `help:"Emoji icon."`
	Window      string  `help:"Time window as HH:MM-HH:MM; finishing before it opens earns the early bonus."`
	Interactive bool    `short:"i" help:"Fill in the habit with a form."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}

	in := models.HabitInput{
		Name:          c.Name,
		Description:   c.Description,
		Category:      models.Category(strings.ToLower(c.Category)),
		Icon:          c.Icon,
		IsReduceHabit: c.Reduce,
		TargetValue:   c.Target,
		TargetUnit:    c.Unit,
		Replacement:   c.Replacement,
	}
	if c.Window != "" {
		w, err := ParseWindow(c.Window)
		if err != nil {
			return err
		}
		in.TimeWindow = w
	}

	if c.Interactive {
		if err := RunHabitForm(&in); err != nil {
			return err
		}
	} else if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("a habit name is required (or use --interactive)")
	}

	h, err := svc.CreateHabit(in)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Added habit: %s %s (%s)\n", cli.HabitIcon(h), h.Name, cli.TargetLabel(h))
	return nil
}

type HabitAdoptCmd struct {
	Name   string  `arg:"" help:"Suggestion name, e.g. \"Drink Water\"."`
	Target float64 `help:"Daily target; defaults to the suggestion's default." default:"-1"`
}

func (c *HabitAdoptCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, err := svc.CreateFromSuggestion(c.Name, c.Target)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Added habit: %s %s (%s)\n", cli.HabitIcon(h), h.Name, cli.TargetLabel(h))
	if h.Replacement != "" {
		fmt.Printf("  Replacement: %s\n", h.Replacement)
	}
	return nil
}

type HabitSuggestionsCmd struct{}

func (c *HabitSuggestionsCmd) Run(ctx *cli.Context) error {
	fmt.Println(cli.TitleStyle.Render("Habit suggestions"))
	for _, s := range suggestions.All() {
		kind := "build"
		if s.IsReduceHabit {
			kind = "reduce"
		}
		fmt.Printf("\n%s %s  %s\n", s.Icon, s.Name, cli.MutedStyle.Render(fmt.Sprintf("[%s, %s]", s.Category, kind)))
		fmt.Printf("  %s\n", s.Description)
		var opts []string
		for _, o := range s.TargetOptions {
			opts = append(opts, o.Label)
		}
		fmt.Printf("  Targets: %s (default %s)\n", strings.Join(opts, ", "), cli.FormatValue(s.DefaultTarget, s.TargetUnit))
		if len(s.SuggestedReplacements) > 0 {
			fmt.Printf("  Replacements: %s\n", strings.Join(s.SuggestedReplacements, ", "))
		}
	}
	return nil
}

type HabitListCmd struct {
	All bool `help:"Include paused habits."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	u, err := svc.CurrentUser()
	if err != nil {
		return err
	}

	today := svc.Today()
	shown := 0
	for i := range u.Habits {
		h := &u.Habits[i]
		if !h.IsActive && !c.All {
			continue
		}
		shown++

		mark := "○"
		if h.DoneOn(today) {
			mark = cli.SuccessStyle.Render("✓")
		}
		status := ""
		if !h.IsActive {
			status = cli.MutedStyle.Render(" [PAUSED]")
		}
		fmt.Printf("%s %s %s%s\n", mark, cli.HabitIcon(*h), h.Name, status)
		fmt.Printf("    %s  🔥 %d (best %d)  ⭐ %d pts  %s\n",
			cli.TargetLabel(*h), h.CurrentStreak, h.BestStreak, h.TotalPoints, cli.MutedStyle.Render(shortID(h.ID)))
	}
	if shown == 0 {
		fmt.Println("No habits found. Add one with 'habitduel habit add' or 'habitduel habit adopt'.")
	}
	return nil
}

type HabitCheckinCmd struct {
	Habit       string  `arg:"" help:"Habit name or id."`
	Value       float64 `arg:"" optional:"" help:"Today's value." default:"-1"`
	Mood        string  `help:"Mood: Happy, Neutral, Sad or Stressed." default:"Neutral"`
	Replacement bool    `short:"r" help:"The replacement action was done."`
	Interactive bool    `short:"i" help:"Fill in the check-in with a form."`
}

func (c *HabitCheckinCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, err := svc.FindHabit(c.Habit)
	if err != nil {
		return err
	}

	in := CheckinForm{Value: c.Value, Mood: models.Mood(c.Mood), ReplacementDone: c.Replacement}
	if c.Interactive {
		if err := RunCheckinForm(h, &in); err != nil {
			return err
		}
	} else if c.Value < 0 {
		return fmt.Errorf("a value is required (or use --interactive)")
	}

	mood, err := ParseMood(string(in.Mood))
	if err != nil {
		return err
	}

	res, err := svc.RecordDailyProgress(h.ID, in.Value, mood, in.ReplacementDone)
	if err != nil {
		return err
	}
	PrintCheckin(res)
	return nil
}

// PrintCheckin renders a check-in result.
func PrintCheckin(res tracker.CheckinResult) {
	h := res.Habit
	if res.Replaced {
		fmt.Println(cli.MutedStyle.Render("Replaced today's earlier check-in."))
	}
	if res.TargetMet {
		fmt.Printf("%s %s %s: target met, +%d points\n", cli.SuccessStyle.Render("✓"), cli.HabitIcon(h), h.Name, res.PointsEarned)
	} else {
		fmt.Printf("%s %s %s: target missed (%s)\n", cli.DangerStyle.Render("✗"), cli.HabitIcon(h), h.Name, cli.TargetLabel(h))
	}
	if res.Early {
		fmt.Println("  🌅 Early completion bonus!")
	}
	if res.StreakUpdated {
		fmt.Printf("  🔥 Streak: %d days\n", h.CurrentStreak)
	} else if h.CurrentStreak > 0 {
		fmt.Printf("  🧊 Streak held at %d by today's freeze\n", h.CurrentStreak)
	} else if res.TargetMet && h.Replacement != "" {
		fmt.Printf("  Do the replacement (%s) to build a streak.\n", h.Replacement)
	}
	if res.PerfectDayBonus > 0 {
		fmt.Printf("  🌟 Perfect day! +%d bonus points\n", res.PerfectDayBonus)
	}
	if res.PerfectDayRevoked {
		fmt.Println("  Today is no longer a perfect day; its bonus was removed.")
	}
	for _, b := range res.NewBadges {
		fmt.Printf("  %s Badge earned: %s\n", b.Icon, cli.TitleStyle.Render(b.Name))
	}
	for _, ch := range res.CompletedChallenges {
		fmt.Printf("  🏁 Challenge complete: %s (+%d)\n", ch.Title, ch.Reward)
	}
}

type HabitFreezeCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *HabitFreezeCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, err := svc.FindHabit(c.Habit)
	if err != nil {
		return err
	}
	ok, err := svc.UseFreeze(h.ID)
	if err != nil {
		return err
	}
	if !ok {
		_, days, _ := svc.FreezeStatus(h.ID)
		fmt.Printf("🧊 Freeze not available for %s: %d day(s) left on the cooldown.\n", h.Name, days)
		return nil
	}
	fmt.Printf("🧊 Streak frozen for today: %s keeps its %d-day streak.\n", h.Name, h.CurrentStreak)
	return nil
}

type HabitEditCmd struct {
	Habit       string  `arg:"" help:"Habit name or id."`
	Name        string  `help:"New name."`
	Category    string  `help:"New category."`
	Target      float64 `help:"New daily target." default:"-1"`
	Unit        string  `help:"New unit."`
	Replacement string  `help:"New replacement action."`
	Description string  `help:"New description."`
	Icon        string  `help:"New icon."`
	Window      string  `help:"New time window as HH:MM-HH:MM, or 'none' to clear it."`
	Interactive bool    `short:"i" help:"Edit the habit with a form."`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, err := svc.FindHabit(c.Habit)
	if err != nil {
		return err
	}

	in := InputFrom(h)
	if c.Name != "" {
		in.Name = c.Name
	}
	if c.Category != "" {
		in.Category = models.Category(strings.ToLower(c.Category))
	}
	if c.Target >= 0 {
		in.TargetValue = c.Target
	}
	if c.Unit != "" {
		in.TargetUnit = c.Unit
	}
	if c.Replacement != "" {
		in.Replacement = c.Replacement
	}
	if c.Description != "" {
		in.Description = c.Description
	}
	if c.Icon != "" {
		in.Icon = c.Icon
	}
	switch {
	case strings.EqualFold(c.Window, "none"):
		in.TimeWindow = nil
	case c.Window != "":
		w, err := ParseWindow(c.Window)
		if err != nil {
			return err
		}
		in.TimeWindow = w
	}

	if c.Interactive {
		if err := RunHabitForm(&in); err != nil {
			return err
		}
	}

	updated, err := svc.UpdateHabit(h.ID, in)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Updated habit: %s %s (%s)\n", cli.HabitIcon(updated), updated.Name, cli.TargetLabel(updated))
	return nil
}

type HabitPauseCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *HabitPauseCmd) Run(ctx *cli.Context) error {
	return setActive(ctx, c.Habit, false)
}

type HabitResumeCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *HabitResumeCmd) Run(ctx *cli.Context) error {
	return setActive(ctx, c.Habit, true)
}

func setActive(ctx *cli.Context, ref string, active bool) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, err := svc.FindHabit(ref)
	if err != nil {
		return err
	}
	if _, err := svc.SetHabitActive(h.ID, active); err != nil {
		return err
	}
	if active {
		fmt.Printf("Resumed habit: %s\n", h.Name)
	} else {
		fmt.Printf("Paused habit: %s\n", h.Name)
	}
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Yes   bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, err := svc.FindHabit(c.Habit)
	if err != nil {
		return err
	}

	if !c.Yes {
		fmt.Printf("Delete %s and its %d-day history? [y/N]: ", h.Name, len(h.DailyStatus))
		response, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return err
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	if err := svc.DeleteHabit(h.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted habit: %s\n", h.Name)
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

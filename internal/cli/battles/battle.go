package battles

import (
	"fmt"

	"github.com/julianstephens/habitduel/internal/battle"
	"github.com/julianstephens/habitduel/internal/cli"
	"github.com/julianstephens/habitduel/internal/constants"
	"github.com/julianstephens/habitduel/internal/models"
	"github.com/julianstephens/habitduel/internal/tracker"
)

type BattleCmd struct {
	Start   BattleStartCmd   `cmd:"" help:"Start today's battle."`
	Show    BattleShowCmd    `cmd:"" help:"Show today's battle." default:"1"`
	Update  BattleUpdateCmd  `cmd:"" help:"Report a player's value in today's battle."`
	Record  BattleRecordCmd  `cmd:"" help:"Show a player's win/loss record."`
	History BattleHistoryCmd `cmd:"" help:"List finished battles."`
}

type BattleStartCmd struct {
	Habit    string `help:"Battle template name; random when empty or unknown."`
	Opponent string `help:"Opponent name or id; defaults to the first other player."`
}

func (c *BattleStartCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	me, err := svc.CurrentUser()
	if err != nil {
		return err
	}
	var opp models.User
	if c.Opponent != "" {
		opp, err = svc.FindUser(c.Opponent)
	} else {
		opp, err = svc.Opponent(me.ID)
	}
	if err != nil {
		return err
	}

	b, err := svc.CreateBattle(me.ID, opp.ID, c.Habit)
	if err != nil {
		return err
	}
	fmt.Println(cli.TitleStyle.Render("⚔️  Battle started!"))
	printBattle(svc, b)
	return nil
}

type BattleShowCmd struct{}

func (c *BattleShowCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	b, err := svc.GetTodaysBattle()
	if err != nil {
		return err
	}
	if b == nil {
		fmt.Println("No battle today. Start one with 'habitduel battle start'.")
		return nil
	}
	printBattle(svc, *b)
	return nil
}

type BattleUpdateCmd struct {
	Value float64 `arg:"" help:"Value reached so far today."`
	User  string  `help:"Player name or id; defaults to the current player."`
}

func (c *BattleUpdateCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	u, err := ctx.ResolveUser(c.User)
	if err != nil {
		return err
	}
	b, err := svc.UpdateBattle("", u.ID, c.Value)
	if err != nil {
		return err
	}
	printBattle(svc, b)
	return nil
}

type BattleRecordCmd struct {
	User string `arg:"" optional:"" help:"Player name or id; defaults to the current player."`
}

func (c *BattleRecordCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	u, err := ctx.ResolveUser(c.User)
	if err != nil {
		return err
	}
	r, err := svc.BattleRecord(u.ID)
	if err != nil {
		return err
	}
	fmt.Printf("%s  %s\n", cli.UserLabel(u.Profile), formatRecord(r))
	return nil
}

type BattleHistoryCmd struct {
	Limit int `help:"Show at most this many battles, newest first." default:"10"`
}

func (c *BattleHistoryCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	history := svc.BattleHistory()
	if len(history) == 0 {
		fmt.Println("No battles fought yet.")
		return nil
	}
	shown := 0
	for i := len(history) - 1; i >= 0 && shown < c.Limit; i-- {
		b := history[i]
		p1, p2 := b.Participants[0], b.Participants[1]
		result := "draw"
		if b.Status == models.BattleCompleted {
			if p, ok := b.Participant(b.WinnerID); ok {
				result = p.Name + " won"
			}
		}
		fmt.Printf("%s  %-18s %s %g vs %g %s  %s\n", b.Date, b.HabitName, p1.Name, p1.Value, p2.Value, p2.Name, cli.MutedStyle.Render(result))
		shown++
	}
	return nil
}

func formatRecord(r battle.Record) string {
	return fmt.Sprintf("%s  %s  %s",
		cli.SuccessStyle.Render(fmt.Sprintf("%dW", r.Wins)),
		cli.DangerStyle.Render(fmt.Sprintf("%dL", r.Losses)),
		cli.MutedStyle.Render(fmt.Sprintf("%dD", r.Draws)))
}

func printBattle(svc *tracker.Service, b models.HabitBattle) {
	goal := "≥"
	if b.IsReduceHabit {
		goal = "≤"
	}
	fmt.Printf("%s  %s %g %s  (bonus %d pts)\n", b.HabitName, goal, b.TargetValue, b.TargetUnit, b.BonusPoints)
	for _, p := range b.Participants {
		label := p.Name
		if u, err := svc.GetUser(p.UserID); err == nil {
			label = cli.UserLabel(u.Profile)
		}
		done := "○"
		if p.Completed {
			done = cli.SuccessStyle.Render("✓")
		}
		fmt.Printf("  %s %s: %g %s\n", done, label, p.Value, b.TargetUnit)
	}
	switch b.Status {
	case models.BattleCompleted:
		if p, ok := b.Participant(b.WinnerID); ok {
			fmt.Printf("🏆 %s wins +%d points!\n", p.Name, b.BonusPoints)
		}
	case models.BattleDraw:
		fmt.Println("🤝 It's a draw.")
	default:
		fmt.Println(cli.MutedStyle.Render(fmt.Sprintf("Battle closes at %02d:00 or when both players finish.", constants.BattleCutoffHour)))
	}
}

package users

import (
	"fmt"

	"github.com/julianstephens/habitduel/internal/cli"
	"github.com/julianstephens/habitduel/internal/models"
)

type UserCmd struct {
	Add    UserAddCmd    `cmd:"" help:"Add a player."`
	List   UserListCmd   `cmd:"" help:"List players." default:"1"`
	Switch UserSwitchCmd `cmd:"" help:"Switch the current player."`
	Rename UserRenameCmd `cmd:"" help:"Rename a player."`
}

type UserAddCmd struct {
	Name   string `arg:"" help:"Display name."`
	Avatar string `help:"Emoji avatar; defaults to the next in the palette."`
	Color  string `help:"Hex color like #667eea; defaults to the next in the palette."`
	Switch bool   `help:"Make the new player current."`
}

func (c *UserAddCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	u, err := svc.AddUser(models.UserInput{Name: c.Name, Avatar: c.Avatar, Color: c.Color})
	if err != nil {
		return err
	}
	fmt.Printf("✓ Added player %s\n", cli.UserLabel(u.Profile))
	if c.Switch {
		if err := svc.SwitchUser(u.ID); err != nil {
			return err
		}
		fmt.Println("  Now playing as", u.Profile.Name)
	}
	return nil
}

type UserListCmd struct{}

func (c *UserListCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	cur, _ := svc.CurrentUser()
	for _, u := range svc.ListUsers() {
		marker := "  "
		if u.ID == cur.ID {
			marker = cli.SuccessStyle.Render("▸ ")
		}
		fmt.Printf("%s%s  ⭐ %d pts  🔥 best %d  🏅 %d badges  %s\n",
			marker, cli.UserLabel(u.Profile), u.Profile.TotalPoints, u.Profile.LongestStreak,
			len(u.Profile.Badges), cli.MutedStyle.Render(fmt.Sprintf("%d habits", len(u.Habits))))
	}
	return nil
}

type UserSwitchCmd struct {
	User string `arg:"" help:"Player name or id."`
}

func (c *UserSwitchCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	u, err := svc.FindUser(c.User)
	if err != nil {
		return err
	}
	if err := svc.SwitchUser(u.ID); err != nil {
		return err
	}
	fmt.Printf("Now playing as %s\n", cli.UserLabel(u.Profile))
	return nil
}

type UserRenameCmd struct {
	User string `arg:"" help:"Player name or id."`
	Name string `arg:"" help:"New display name."`
}

func (c *UserRenameCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	u, err := svc.FindUser(c.User)
	if err != nil {
		return err
	}
	if err := svc.RenameUser(u.ID, c.Name); err != nil {
		return err
	}
	fmt.Printf("Renamed %s to %s\n", u.Profile.Name, c.Name)
	return nil
}

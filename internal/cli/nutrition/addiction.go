package nutrition

import (
	"fmt"

	"github.com/julianstephens/phoenix-rise/internal/cli"
)

type AddictionCmd struct {
	Add    AddictionAddCmd    `cmd:"" help:"Start tracking a habit to quit."`
	List   AddictionListCmd   `cmd:"" help:"Show current streaks." default:"1"`
	Reset  AddictionResetCmd  `cmd:"" help:"Restart a streak after a relapse."`
	Delete AddictionDeleteCmd `cmd:"" help:"Stop tracking a habit."`
}

type AddictionAddCmd struct {
	Name string `arg:"" help:"What you are quitting."`
}

func (c *AddictionAddCmd) Run(ctx *cli.Context) error {
	a, err := ctx.Store.AddAddiction(c.Name)
	if err != nil {
		return fmt.Errorf("failed to add addiction: %w", err)
	}
	ctx.Printf("✓ Tracking %s from today (ID: %s)\n", a.Name, a.ID)
	return nil
}

type AddictionListCmd struct{}

func (c *AddictionListCmd) Run(ctx *cli.Context) error {
	addictions := ctx.Store.Snapshot().Addictions
	if len(addictions) == 0 {
		ctx.Println("Nothing tracked.")
		return nil
	}
	st := ctx.Styles()
	now := ctx.Store.Now()
	for _, a := range addictions {
		days := a.StreakDays(now)
		unit := "days"
		if days == 1 {
			unit = "day"
		}
		ctx.Printf("%s  %s\n", st.Row(a.Name, fmt.Sprintf("%d %s", days, unit)), st.Muted.Render(a.ID))
	}
	return nil
}

type AddictionResetCmd struct {
	ID string `arg:"" help:"Addiction ID."`
}

func (c *AddictionResetCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.ResetAddiction(c.ID); err != nil {
		return fmt.Errorf("failed to reset streak: %w", err)
	}
	ctx.Println("✓ Streak reset. Every day is a fresh start.")
	return nil
}

type AddictionDeleteCmd struct {
	ID string `arg:"" help:"Addiction ID."`
}

func (c *AddictionDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteAddiction(c.ID); err != nil {
		return fmt.Errorf("failed to delete addiction: %w", err)
	}
	ctx.Printf("✓ Deleted %s\n", c.ID)
	return nil
}

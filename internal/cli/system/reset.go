package system

import (
	"github.com/julianstephens/phoenix-rise/internal/cli"
)

type ResetCmd struct {
	Yes bool `help:"Skip the confirmation prompt." short:"y"`
}

// Run wipes all data and settings. A safety backup is taken first.
func (c *ResetCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		ok, err := ctx.Ask("Erase all Phoenix data?", "Meals, goals, routines, settings and API keys will be deleted. A safety backup is kept.")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Cancelled.")
			return nil
		}
	}
	ctx.PerformAutomaticBackup()
	ctx.Store.ClearAll(ctx.Ctx())
	ctx.Println("✓ All data cleared.")
	return nil
}

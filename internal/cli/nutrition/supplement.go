package nutrition

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/phoenix-rise/internal/cli"
	"github.com/julianstephens/phoenix-rise/internal/models"
)

type SupplementCmd struct {
	Add    SupplementAddCmd    `cmd:"" help:"Add a supplement."`
	List   SupplementListCmd   `cmd:"" help:"List supplements with this week's history." default:"1"`
	Take   SupplementTakeCmd   `cmd:"" help:"Toggle whether a supplement was taken today."`
	Delete SupplementDeleteCmd `cmd:"" help:"Delete a supplement."`
}

type SupplementAddCmd struct {
	Name   string `arg:"" help:"Supplement name."`
	Dosage string `help:"Dosage, e.g. 500mg."`
	Time   string `help:"Time of day to take it." default:"morning"`
}

func (c *SupplementAddCmd) Run(ctx *cli.Context) error {
	supp, err := ctx.Store.AddSupplement(models.Supplement{
		Name:      c.Name,
		Dosage:    c.Dosage,
		TimeOfDay: c.Time,
	})
	if err != nil {
		return fmt.Errorf("failed to add supplement: %w", err)
	}
	ctx.Printf("✓ Added supplement: %s (ID: %s)\n", supp.Name, supp.ID)
	return nil
}

type SupplementListCmd struct{}

func (c *SupplementListCmd) Run(ctx *cli.Context) error {
	supps := ctx.Store.Snapshot().Supplements
	if len(supps) == 0 {
		ctx.Println("No supplements.")
		return nil
	}

	st := ctx.Styles()
	days := make([]string, 7)
	for i := range days {
		days[i] = time.Weekday(i).String()[:2]
	}
	ctx.Printf("%-30s %s\n", "", strings.Join(days, " "))
	for _, s := range supps {
		week := make([]string, 7)
		for i, taken := range s.WeeklyHistory {
			week[i] = " ·"
			if taken {
				week[i] = " ✓"
			}
		}
		label := fmt.Sprintf("%s %s", cli.Check(s.TakenToday), s.Name)
		if s.Dosage != "" {
			label += " (" + s.Dosage + ")"
		}
		ctx.Printf("%-30s%s  %s\n", label, strings.Join(week, " "), st.Muted.Render(s.ID))
	}
	return nil
}

type SupplementTakeCmd struct {
	ID string `arg:"" help:"Supplement ID."`
}

func (c *SupplementTakeCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.ToggleSupplementTaken(c.ID); err != nil {
		return fmt.Errorf("failed to update supplement: %w", err)
	}
	for _, s := range ctx.Store.Snapshot().Supplements {
		if s.ID == c.ID {
			if s.TakenToday {
				ctx.Printf("✓ %s taken today\n", s.Name)
			} else {
				ctx.Printf("✓ %s marked not taken\n", s.Name)
			}
		}
	}
	return nil
}

type SupplementDeleteCmd struct {
	ID string `arg:"" help:"Supplement ID."`
}

func (c *SupplementDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteSupplement(c.ID); err != nil {
		return fmt.Errorf("failed to delete supplement: %w", err)
	}
	ctx.Printf("✓ Deleted supplement %s\n", c.ID)
	return nil
}

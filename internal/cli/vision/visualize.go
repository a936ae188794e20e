package vision

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/phoenix-rise/internal/cli"
	"github.com/julianstephens/phoenix-rise/internal/models"
)

type VisualizeCmd struct {
	Log     VisualizeLogCmd     `cmd:"" help:"Log a visualization session." default:"withargs"`
	History VisualizeHistoryCmd `cmd:"" help:"Show past sessions and the current streak."`
}

type VisualizeLogCmd struct {
	Duration time.Duration `help:"How long you visualized." default:"5m"`
	Mood     int           `help:"Mood afterwards, 1-10 (0 to skip)."`
	Goals    []string      `help:"Goal IDs or titles you focused on." short:"g"`
	Notes    string        `help:"Notes."`
}

func (c *VisualizeLogCmd) Run(ctx *cli.Context) error {
	if c.Duration < 0 {
		return fmt.Errorf("duration cannot be negative")
	}
	session, err := ctx.Store.AddVisualizationSession(models.VisualizationSession{
		Duration:   int(c.Duration.Seconds()),
		FocusGoals: c.Goals,
		Notes:      c.Notes,
		Mood:       c.Mood,
	})
	if err != nil {
		return fmt.Errorf("failed to log session: %w", err)
	}
	ctx.Printf("✓ Logged %s visualization (ID: %s)\n", c.Duration, session.ID)
	ctx.Printf("🔥 Visualization streak: %d\n", ctx.Store.Snapshot().VisualizationStreak)
	return nil
}

type VisualizeHistoryCmd struct{}

func (c *VisualizeHistoryCmd) Run(ctx *cli.Context) error {
	data := ctx.Store.Snapshot()
	st := ctx.Styles()
	ctx.Println(st.Row("Streak", data.VisualizationStreak))
	ctx.Println(st.Row("Sessions", len(data.VisualizationSessions)))
	for _, v := range data.VisualizationSessions {
		line := fmt.Sprintf("  %s  %s", v.Date.Format("2006-01-02 15:04"), time.Duration(v.Duration)*time.Second)
		if v.Mood > 0 {
			line += fmt.Sprintf("  mood %d/10", v.Mood)
		}
		if len(v.FocusGoals) > 0 {
			line += "  focus: " + strings.Join(v.FocusGoals, ", ")
		}
		ctx.Println(line)
	}
	return nil
}

package goals

import (
	"fmt"
	"strings"

	"github.com/julianstephens/phoenix-rise/internal/cli"
	"github.com/julianstephens/phoenix-rise/internal/models"
	"github.com/julianstephens/phoenix-rise/internal/store"
	"github.com/julianstephens/phoenix-rise/internal/utils"
)

type GoalCmd struct {
	Add       GoalAddCmd       `cmd:"" help:"Add a goal."`
	List      GoalListCmd      `cmd:"" help:"List goals." default:"1"`
	Edit      GoalEditCmd      `cmd:"" help:"Edit a goal."`
	Progress  GoalProgressCmd  `cmd:"" help:"Set goal progress (0-100)."`
	Complete  GoalCompleteCmd  `cmd:"" help:"Mark a goal complete."`
	Milestone GoalMilestoneCmd `cmd:"" help:"Manage goal milestones."`
	Delete    GoalDeleteCmd    `cmd:"" help:"Delete a goal."`
}

type GoalAddCmd struct {
	Title       string   `arg:"" help:"Goal title."`
	Description string   `help:"Longer description."`
	Category    string   `help:"Category." default:"personal"`
	Target      string   `help:"Target date (YYYY-MM-DD)."`
	Measure     string   `help:"How progress is measured."`
	Priority    string   `help:"Priority." enum:"low,medium,high" default:"medium"`
	Milestones  []string `help:"Milestone titles (comma-separated or repeated)." short:"m"`
}

func (c *GoalAddCmd) Run(ctx *cli.Context) error {
	target, err := cli.ParseDate(c.Target)
	if err != nil {
		return err
	}
	milestones := make([]models.Milestone, 0, len(c.Milestones))
	for _, title := range c.Milestones {
		if title = strings.TrimSpace(title); title != "" {
			milestones = append(milestones, models.Milestone{Title: title})
		}
	}

	goal, err := ctx.Store.AddGoal(models.Goal{
		Title:             c.Title,
		Description:       c.Description,
		Category:          c.Category,
		TargetDate:        target,
		MeasurementMethod: c.Measure,
		Priority:          models.Priority(c.Priority),
		Milestones:        milestones,
	})
	if err != nil {
		return fmt.Errorf("failed to add goal: %w", err)
	}
	ctx.Printf("✓ Added goal: %s (ID: %s)\n", goal.Title, goal.ID)
	return nil
}

type GoalListCmd struct {
	Completed bool `help:"Include completed goals."`
}

func (c *GoalListCmd) Run(ctx *cli.Context) error {
	goals := ctx.Store.Snapshot().Goals
	st := ctx.Styles()
	shown := 0
	for _, g := range goals {
		if g.Completed && !c.Completed {
			continue
		}
		shown++
		ctx.Printf("%s %s [%s] %s\n", cli.Check(g.Completed), st.Accent.Render(g.Title), g.Priority, st.Muted.Render(g.ID))
		ctx.Printf("    %s %3d%%", progressBar(g.Progress, 20), g.Progress)
		if g.TargetDate != nil {
			ctx.Printf("  due %s", utils.FormatDate(*g.TargetDate))
		}
		ctx.Println()
		for _, m := range g.Milestones {
			ctx.Printf("      %s %s %s\n", cli.Check(m.Completed), m.Title, st.Muted.Render(m.ID))
		}
	}
	if shown == 0 {
		ctx.Println("No goals yet.")
	}
	return nil
}

func progressBar(pct, width int) string {
	filled := pct * width / 100
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

type GoalEditCmd struct {
	ID          string  `arg:"" help:"Goal ID."`
	Title       *string `help:"New title."`
	Description *string `help:"New description."`
	Category    *string `help:"New category."`
	Target      *string `help:"New target date (YYYY-MM-DD)."`
	Measure     *string `help:"New measurement method."`
	Priority    *string `help:"New priority (low, medium, high)."`
}

func (c *GoalEditCmd) Run(ctx *cli.Context) error {
	patch := store.GoalPatch{
		Title:             c.Title,
		Description:       c.Description,
		Category:          c.Category,
		MeasurementMethod: c.Measure,
	}
	if c.Target != nil {
		target, err := cli.ParseDate(*c.Target)
		if err != nil {
			return err
		}
		patch.TargetDate = target
	}
	if c.Priority != nil {
		p := models.Priority(*c.Priority)
		patch.Priority = &p
	}
	if err := ctx.Store.UpdateGoal(c.ID, patch); err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	ctx.Printf("✓ Updated goal %s\n", c.ID)
	return nil
}

type GoalProgressCmd struct {
	ID       string `arg:"" help:"Goal ID."`
	Progress int    `arg:"" help:"Progress percentage. Values outside 0-100 are clamped."`
}

func (c *GoalProgressCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.UpdateGoalProgress(c.ID, c.Progress); err != nil {
		return fmt.Errorf("failed to update progress: %w", err)
	}
	for _, g := range ctx.Store.Snapshot().Goals {
		if g.ID == c.ID {
			ctx.Printf("✓ %s is at %d%%\n", g.Title, g.Progress)
			if g.Completed {
				ctx.Println("🔥 Goal complete!")
			}
		}
	}
	return nil
}

type GoalCompleteCmd struct {
	ID string `arg:"" help:"Goal ID."`
}

func (c *GoalCompleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.CompleteGoal(c.ID); err != nil {
		return fmt.Errorf("failed to complete goal: %w", err)
	}
	ctx.Println("🔥 Goal complete!")
	return nil
}

type GoalMilestoneCmd struct {
	Add    GoalMilestoneAddCmd    `cmd:"" help:"Add a milestone to a goal."`
	Toggle GoalMilestoneToggleCmd `cmd:"" help:"Toggle a milestone."`
}

type GoalMilestoneAddCmd struct {
	GoalID string `arg:"" help:"Goal ID."`
	Title  string `arg:"" help:"Milestone title."`
}

func (c *GoalMilestoneAddCmd) Run(ctx *cli.Context) error {
	m, err := ctx.Store.AddMilestone(c.GoalID, c.Title)
	if err != nil {
		return fmt.Errorf("failed to add milestone: %w", err)
	}
	ctx.Printf("✓ Added milestone: %s (ID: %s)\n", m.Title, m.ID)
	return nil
}

type GoalMilestoneToggleCmd struct {
	GoalID      string `arg:"" help:"Goal ID."`
	MilestoneID string `arg:"" help:"Milestone ID."`
}

func (c *GoalMilestoneToggleCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.ToggleMilestone(c.GoalID, c.MilestoneID); err != nil {
		return fmt.Errorf("failed to toggle milestone: %w", err)
	}
	ctx.Printf("✓ Toggled milestone %s\n", c.MilestoneID)
	return nil
}

type GoalDeleteCmd struct {
	ID string `arg:"" help:"Goal ID."`
}

func (c *GoalDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteGoal(c.ID); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	ctx.Printf("✓ Deleted goal %s\n", c.ID)
	return nil
}

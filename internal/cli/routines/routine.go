package routines

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/phoenix-rise/internal/cli"
	"github.com/julianstephens/phoenix-rise/internal/models"
	"github.com/julianstephens/phoenix-rise/internal/store"
	"github.com/julianstephens/phoenix-rise/internal/utils"
)

type RoutineCmd struct {
	Add      RoutineAddCmd      `cmd:"" help:"Create a habit-stacked routine."`
	List     RoutineListCmd     `cmd:"" help:"List routines and their streaks." default:"1"`
	Edit     RoutineEditCmd     `cmd:"" help:"Rename a routine or replace its habit chain."`
	Toggle   RoutineToggleCmd   `cmd:"" help:"Activate or pause a routine."`
	Complete RoutineCompleteCmd `cmd:"" help:"Record a completion of a routine."`
	History  RoutineHistoryCmd  `cmd:"" help:"Show completion history."`
	Delete   RoutineDeleteCmd   `cmd:"" help:"Delete a routine."`
}

// ParseLink parses "type:name[:points[:minutes[:keystone]]]".
func ParseLink(spec string) (models.HabitLink, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 {
		return models.HabitLink{}, fmt.Errorf("invalid link %q (expected type:name[:points[:minutes[:keystone]]])", spec)
	}
	link := models.HabitLink{
		Type: models.LinkType(strings.ToLower(strings.TrimSpace(parts[0]))),
		Name: strings.TrimSpace(parts[1]),
	}
	if !link.Type.Valid() {
		return models.HabitLink{}, fmt.Errorf("invalid link type %q (expected trigger, habit or reward)", parts[0])
	}
	if len(parts) > 2 && parts[2] != "" {
		points, err := strconv.Atoi(parts[2])
		if err != nil {
			return models.HabitLink{}, fmt.Errorf("invalid points in %q: %w", spec, err)
		}
		link.Points = points
	}
	if len(parts) > 3 && parts[3] != "" {
		minutes, err := strconv.Atoi(parts[3])
		if err != nil {
			return models.HabitLink{}, fmt.Errorf("invalid minutes in %q: %w", spec, err)
		}
		link.TimeEstimate = minutes
	}
	if len(parts) > 4 {
		link.IsKeystone = strings.EqualFold(parts[4], "keystone")
	}
	return link, nil
}

func parseLinks(specs []string) ([]models.HabitLink, error) {
	links := make([]models.HabitLink, 0, len(specs))
	for _, spec := range specs {
		link, err := ParseLink(spec)
		if err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, nil
}

type RoutineAddCmd struct {
	Name  string   `arg:"" help:"Routine name."`
	Type  string   `help:"Routine type, e.g. morning or evening." default:"morning"`
	Links []string `help:"Habit links as type:name[:points[:minutes[:keystone]]]." short:"l" sep:"none"`
}

func (c *RoutineAddCmd) Run(ctx *cli.Context) error {
	links, err := parseLinks(c.Links)
	if err != nil {
		return err
	}
	r, err := ctx.Store.AddRoutine(models.Routine{Name: c.Name, Type: c.Type, HabitLinks: links})
	if err != nil {
		return fmt.Errorf("failed to add routine: %w", err)
	}
	ctx.Printf("✓ Added routine: %s with %d links, %d points (ID: %s)\n", r.Name, len(r.HabitLinks), r.TotalPoints(), r.ID)
	return nil
}

type RoutineListCmd struct{}

func (c *RoutineListCmd) Run(ctx *cli.Context) error {
	routines := ctx.Store.Snapshot().Routines
	if len(routines) == 0 {
		ctx.Println("No routines.")
		return nil
	}
	st := ctx.Styles()
	for _, r := range routines {
		status := "active"
		if !r.IsActive {
			status = "paused"
		}
		ctx.Printf("%s (%s, %s) %s\n", st.Accent.Render(r.Name), r.Type, status, st.Muted.Render(r.ID))
		ctx.Printf("    streak %d, best %d, %d completions, %.0f%% average\n", r.Streak, r.BestStreak, r.TotalCompletions, r.CompletionRate)
		for _, link := range r.HabitLinks {
			keystone := ""
			if link.IsKeystone {
				keystone = " ★"
			}
			ctx.Printf("      %s %-7s %s (%d pts, %d min)%s %s\n", cli.Check(link.Completed), link.Type, link.Name, link.Points, link.TimeEstimate, keystone, st.Muted.Render(link.ID))
		}
	}
	return nil
}

type RoutineEditCmd struct {
	ID    string   `arg:"" help:"Routine ID."`
	Name  *string  `help:"New name."`
	Type  *string  `help:"New type."`
	Links []string `help:"Replace the habit chain (type:name[:points[:minutes[:keystone]]])." short:"l" sep:"none"`
}

func (c *RoutineEditCmd) Run(ctx *cli.Context) error {
	patch := store.RoutinePatch{Name: c.Name, Type: c.Type}
	if len(c.Links) > 0 {
		links, err := parseLinks(c.Links)
		if err != nil {
			return err
		}
		patch.HabitLinks = &links
	}
	if err := ctx.Store.UpdateRoutine(c.ID, patch); err != nil {
		return fmt.Errorf("failed to update routine: %w", err)
	}
	ctx.Printf("✓ Updated routine %s\n", c.ID)
	return nil
}

type RoutineToggleCmd struct {
	ID string `arg:"" help:"Routine ID."`
}

func (c *RoutineToggleCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.ToggleRoutineActive(c.ID); err != nil {
		return fmt.Errorf("failed to toggle routine: %w", err)
	}
	ctx.Printf("✓ Toggled routine %s\n", c.ID)
	return nil
}

type RoutineCompleteCmd struct {
	ID    string   `arg:"" help:"Routine ID."`
	Links []string `arg:"" optional:"" help:"IDs of the links completed. Omit with --all."`
	All   bool     `help:"Every link was completed."`
}

func (c *RoutineCompleteCmd) Run(ctx *cli.Context) error {
	linkIDs := c.Links
	if c.All {
		linkIDs = nil
		for _, r := range ctx.Store.Snapshot().Routines {
			if r.ID == c.ID {
				for _, link := range r.HabitLinks {
					linkIDs = append(linkIDs, link.ID)
				}
			}
		}
	}
	completion, err := ctx.Store.CompleteRoutine(c.ID, linkIDs)
	if err != nil {
		return fmt.Errorf("failed to complete routine: %w", err)
	}
	if completion.PartialCompletion {
		ctx.Printf("✓ Partial completion: %.0f%%. Streak reset.\n", completion.CompletionPercentage)
		return nil
	}
	for _, r := range ctx.Store.Snapshot().Routines {
		if r.ID == c.ID {
			ctx.Printf("🔥 Routine complete! Streak: %d\n", r.Streak)
		}
	}
	return nil
}

type RoutineHistoryCmd struct {
	ID string `arg:"" optional:"" help:"Only show this routine."`
}

func (c *RoutineHistoryCmd) Run(ctx *cli.Context) error {
	data := ctx.Store.Snapshot()
	names := make(map[string]string, len(data.Routines))
	for _, r := range data.Routines {
		names[r.ID] = r.Name
	}
	shown := 0
	for _, rc := range data.RoutineCompletions {
		if c.ID != "" && rc.RoutineID != c.ID {
			continue
		}
		name, ok := names[rc.RoutineID]
		if !ok {
			name = "(deleted routine)"
		}
		ctx.Printf("%s  %-24s %3.0f%%\n", utils.FormatDate(rc.Date), name, rc.CompletionPercentage)
		shown++
	}
	if shown == 0 {
		ctx.Println("No completions recorded.")
	}
	return nil
}

type RoutineDeleteCmd struct {
	ID string `arg:"" help:"Routine ID."`
}

func (c *RoutineDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteRoutine(c.ID); err != nil {
		return fmt.Errorf("failed to delete routine: %w", err)
	}
	ctx.Printf("✓ Deleted routine %s\n", c.ID)
	return nil
}

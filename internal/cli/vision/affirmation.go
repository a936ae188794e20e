package vision

import (
	"fmt"
	"math/rand/v2"

	"github.com/julianstephens/phoenix-rise/internal/cli"
	"github.com/julianstephens/phoenix-rise/internal/models"
)

type AffirmationCmd struct {
	Add    AffirmationAddCmd    `cmd:"" help:"Add a custom affirmation."`
	List   AffirmationListCmd   `cmd:"" help:"List affirmations." default:"1"`
	Recite AffirmationReciteCmd `cmd:"" help:"Recite an affirmation (random when no ID is given)."`
	Delete AffirmationDeleteCmd `cmd:"" help:"Delete an affirmation."`
}

type AffirmationAddCmd struct {
	Text     string `arg:"" help:"Affirmation text."`
	Category string `help:"Category." default:"general"`
}

func (c *AffirmationAddCmd) Run(ctx *cli.Context) error {
	a, err := ctx.Store.AddAffirmation(c.Text, c.Category)
	if err != nil {
		return fmt.Errorf("failed to add affirmation: %w", err)
	}
	ctx.Printf("✓ Added affirmation (ID: %s)\n", a.ID)
	return nil
}

type AffirmationListCmd struct{}

func (c *AffirmationListCmd) Run(ctx *cli.Context) error {
	affirmations := ctx.Store.Snapshot().Affirmations
	if len(affirmations) == 0 {
		ctx.Println("No affirmations yet.")
		return nil
	}
	st := ctx.Styles()
	for _, a := range affirmations {
		ctx.Printf("%q  [%s] used %d× %s\n", a.Text, a.Category, a.TimesUsed, st.Muted.Render(a.ID))
	}
	return nil
}

type AffirmationReciteCmd struct {
	ID    string `arg:"" optional:"" help:"Affirmation ID."`
	Speak bool   `help:"Read it aloud."`
}

func (c *AffirmationReciteCmd) Run(ctx *cli.Context) error {
	affirmations := ctx.Store.Snapshot().Affirmations
	if len(affirmations) == 0 {
		return fmt.Errorf("no affirmations to recite")
	}
	var chosen models.Affirmation
	if c.ID == "" {
		chosen = affirmations[rand.IntN(len(affirmations))]
	} else {
		for _, a := range affirmations {
			if a.ID == c.ID {
				chosen = a
			}
		}
	}
	// An unknown ID falls through to the store, which reports it.
	id := chosen.ID
	if id == "" {
		id = c.ID
	}
	if err := ctx.Store.UseAffirmation(id); err != nil {
		return fmt.Errorf("failed to recite affirmation: %w", err)
	}

	st := ctx.Styles()
	ctx.Println(st.Panel.Render(st.Accent.Render(chosen.Text)))
	if c.Speak && ctx.Speaker != nil {
		if err := ctx.Speaker.Speak(ctx.Ctx(), chosen.Text); err != nil {
			return err
		}
	}
	return nil
}

type AffirmationDeleteCmd struct {
	ID string `arg:"" help:"Affirmation ID."`
}

func (c *AffirmationDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteAffirmation(c.ID); err != nil {
		return fmt.Errorf("failed to delete affirmation: %w", err)
	}
	ctx.Printf("✓ Deleted affirmation %s\n", c.ID)
	return nil
}

package vision

import (
	"fmt"

	"github.com/julianstephens/phoenix-rise/internal/cli"
	"github.com/julianstephens/phoenix-rise/internal/models"
)

// DreamLifeCmd shows the script, or rewrites the given sections. Sections
// not passed keep their current text.
type DreamLifeCmd struct {
	Health         *string `help:"Health section."`
	Relationships  *string `help:"Relationships section."`
	Career         *string `help:"Career section."`
	Finances       *string `help:"Finances section."`
	PersonalGrowth *string `help:"Personal growth section."`
	Lifestyle      *string `help:"Lifestyle section."`
}

func (c *DreamLifeCmd) Run(ctx *cli.Context) error {
	current := ctx.Store.Snapshot().DreamLifeScript
	script := models.DreamLifeScript{}
	if current != nil {
		script = *current
	}

	updated := false
	for _, f := range []struct {
		dst *string
		v   *string
	}{
		{&script.Health, c.Health},
		{&script.Relationships, c.Relationships},
		{&script.Career, c.Career},
		{&script.Finances, c.Finances},
		{&script.PersonalGrowth, c.PersonalGrowth},
		{&script.Lifestyle, c.Lifestyle},
	} {
		if f.v != nil {
			*f.dst = *f.v
			updated = true
		}
	}

	if updated {
		if err := ctx.Store.SaveDreamLifeScript(script); err != nil {
			return fmt.Errorf("failed to save dream life script: %w", err)
		}
		ctx.Println("✓ Dream life script saved.")
		return nil
	}

	if current == nil {
		ctx.Println("No dream life script yet. Pass --health, --career, ... to write one.")
		return nil
	}
	st := ctx.Styles()
	ctx.Println(st.Title.Render("My dream life"))
	ctx.Println(st.Rows(
		[2]string{"Health", script.Health},
		[2]string{"Relationships", script.Relationships},
		[2]string{"Career", script.Career},
		[2]string{"Finances", script.Finances},
		[2]string{"Personal growth", script.PersonalGrowth},
		[2]string{"Lifestyle", script.Lifestyle},
	))
	ctx.Println(st.Muted.Render("Last updated " + script.LastUpdated.Format("2006-01-02 15:04")))
	return nil
}

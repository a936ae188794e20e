package wellbeing

import (
	"fmt"

	"github.com/julianstephens/phoenix-rise/internal/cli"
	"github.com/julianstephens/phoenix-rise/internal/models"
)

type ProfileCmd struct {
	Name       *string `help:"Your name."`
	Age        *int    `help:"Your age."`
	Motivation *string `help:"What drives you."`
}

// Run shows the profile, or saves it when any flag is given.
func (c *ProfileCmd) Run(ctx *cli.Context) error {
	current := ctx.Store.Snapshot().UserProfile
	if c.Name == nil && c.Age == nil && c.Motivation == nil {
		if current == nil {
			ctx.Println("No profile yet. Set one with --name, --age and --motivation.")
			return nil
		}
		st := ctx.Styles()
		ctx.Println(st.Rows(
			[2]string{"Name", current.Name},
			[2]string{"Age", fmt.Sprint(current.Age)},
			[2]string{"Motivation", current.Motivation},
		))
		return nil
	}

	p := models.UserProfile{}
	if current != nil {
		p = *current
	}
	if c.Name != nil {
		p.Name = *c.Name
	}
	if c.Age != nil {
		p.Age = *c.Age
	}
	if c.Motivation != nil {
		p.Motivation = *c.Motivation
	}
	if err := ctx.Store.SaveUserProfile(p); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	ctx.Println("✓ Profile saved.")
	return nil
}

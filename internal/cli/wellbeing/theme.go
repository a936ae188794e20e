package wellbeing

import (
	"fmt"

	"github.com/julianstephens/phoenix-rise/internal/cli"
)

type ThemeCmd struct {
	Show  ThemeShowCmd  `cmd:"" help:"Show the current theme." default:"1"`
	Set   ThemeSetCmd   `cmd:"" help:"Change theme colors."`
	Reset ThemeResetCmd `cmd:"" help:"Restore the Phoenix theme."`
}

type ThemeShowCmd struct{}

func (c *ThemeShowCmd) Run(ctx *cli.Context) error {
	theme := ctx.Store.Snapshot().Theme
	st := ctx.Styles()
	ctx.Println(st.Title.Render(theme.Name))
	for _, f := range [][2]string{
		{"Primary", theme.Primary},
		{"Secondary", theme.Secondary},
		{"Accent", theme.Accent},
		{"Background", theme.Background},
		{"Text", theme.Text},
	} {
		ctx.Println(st.Label.Render(f[0]) + st.Swatch(f[1]))
	}
	return nil
}

type ThemeSetCmd struct {
	Name       *string `help:"Theme name."`
	Primary    *string `help:"Primary color."`
	Secondary  *string `help:"Secondary color."`
	Accent     *string `help:"Accent color."`
	Background *string `help:"Background color."`
	Text       *string `help:"Text color."`
}

func (c *ThemeSetCmd) Run(ctx *cli.Context) error {
	theme := ctx.Store.Snapshot().Theme
	for _, f := range []struct {
		dst *string
		v   *string
	}{
		{&theme.Name, c.Name},
		{&theme.Primary, c.Primary},
		{&theme.Secondary, c.Secondary},
		{&theme.Accent, c.Accent},
		{&theme.Background, c.Background},
		{&theme.Text, c.Text},
	} {
		if f.v != nil {
			*f.dst = *f.v
		}
	}
	if err := ctx.Store.SetTheme(theme); err != nil {
		return fmt.Errorf("failed to set theme: %w", err)
	}
	ctx.Printf("✓ Theme set to %s\n", theme.Name)
	return nil
}

type ThemeResetCmd struct{}

func (c *ThemeResetCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.ResetTheme(); err != nil {
		return fmt.Errorf("failed to reset theme: %w", err)
	}
	ctx.Println("✓ Theme reset to Phoenix.")
	return nil
}

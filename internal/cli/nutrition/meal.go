package nutrition

import (
	"fmt"
	"strings"

	"github.com/julianstephens/phoenix-rise/internal/cli"
	"github.com/julianstephens/phoenix-rise/internal/models"
)

type MealCmd struct {
	Add    MealAddCmd    `cmd:"" help:"Log a meal for today."`
	List   MealListCmd   `cmd:"" help:"List today's meals." default:"1"`
	Toggle MealToggleCmd `cmd:"" help:"Mark a meal eaten or not eaten."`
	Delete MealDeleteCmd `cmd:"" help:"Delete a meal."`
	Plan   MealPlanCmd   `cmd:"" help:"Manage planned meals with nutrition detail."`
}

type MealAddCmd struct {
	Name     string `arg:"" help:"Meal name."`
	Type     string `help:"Meal type." enum:"breakfast,lunch,dinner,snack" default:"lunch"`
	Calories int    `help:"Calories." default:"0"`
	Done     bool   `help:"Mark the meal as already eaten."`
}

func (c *MealAddCmd) Run(ctx *cli.Context) error {
	meal, err := ctx.Store.AddMeal(models.Meal{
		Type:     models.MealType(c.Type),
		Name:     c.Name,
		Calories: c.Calories,
	})
	if err != nil {
		return fmt.Errorf("failed to add meal: %w", err)
	}
	if c.Done {
		if err := ctx.Store.ToggleMealCompleted(meal.ID); err != nil {
			return fmt.Errorf("failed to complete meal: %w", err)
		}
	}
	ctx.Printf("✓ Added %s: %s (ID: %s)\n", meal.Type, meal.Name, meal.ID)
	return nil
}

type MealListCmd struct {
	Archive bool `help:"Show archived meals from previous days instead."`
}

func (c *MealListCmd) Run(ctx *cli.Context) error {
	meals := ctx.Store.TodayMeals()
	heading := "Today's meals"
	if c.Archive {
		meals = ctx.Store.Snapshot().MealArchive
		heading = "Archived meals"
	}
	if len(meals) == 0 {
		ctx.Println("No meals logged.")
		return nil
	}

	st := ctx.Styles()
	ctx.Println(st.Title.Render(heading))
	calories := 0
	for _, m := range meals {
		line := fmt.Sprintf("  %s %-9s %-24s %5d kcal  %s", cli.Check(m.Completed), m.Type, m.Name, m.Calories, st.Muted.Render(m.ID))
		if c.Archive {
			line += "  " + m.Date.Format("2006-01-02")
		}
		ctx.Println(line)
		if m.Completed {
			calories += m.Calories
		}
	}
	ctx.Println(st.Row("Calories eaten", calories))
	return nil
}

type MealToggleCmd struct {
	ID string `arg:"" help:"Meal ID."`
}

func (c *MealToggleCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.ToggleMealCompleted(c.ID); err != nil {
		return fmt.Errorf("failed to toggle meal: %w", err)
	}
	ctx.Printf("✓ Toggled meal %s\n", c.ID)
	return nil
}

type MealDeleteCmd struct {
	ID string `arg:"" help:"Meal ID."`
}

func (c *MealDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteMeal(c.ID); err != nil {
		return fmt.Errorf("failed to delete meal: %w", err)
	}
	ctx.Printf("✓ Deleted meal %s\n", c.ID)
	return nil
}

type MealPlanCmd struct {
	Add    MealPlanAddCmd    `cmd:"" help:"Plan a meal."`
	List   MealPlanListCmd   `cmd:"" help:"List planned meals." default:"1"`
	Toggle MealPlanToggleCmd `cmd:"" help:"Mark a planned meal eaten or not eaten."`
	Delete MealPlanDeleteCmd `cmd:"" help:"Delete a planned meal."`
}

type MealPlanAddCmd struct {
	Name        string   `arg:"" help:"Meal name."`
	Type        string   `help:"Meal type." enum:"breakfast,lunch,dinner,snack" default:"dinner"`
	Calories    int      `help:"Calories."`
	Protein     float64  `help:"Protein in grams."`
	Carbs       float64  `help:"Carbohydrates in grams."`
	Fat         float64  `help:"Fat in grams."`
	Ingredients []string `help:"Ingredients (comma-separated or repeated)." short:"i"`
	Date        string   `help:"Planned date (YYYY-MM-DD). Defaults to today."`
}

func (c *MealPlanAddCmd) Run(ctx *cli.Context) error {
	meal := models.ExtendedMeal{
		Type:        models.MealType(c.Type),
		Name:        c.Name,
		Calories:    c.Calories,
		Macros:      models.Macros{Protein: c.Protein, Carbs: c.Carbs, Fat: c.Fat},
		Ingredients: c.Ingredients,
	}
	date, err := cli.ParseDate(c.Date)
	if err != nil {
		return err
	}
	if date != nil {
		meal.Date = *date
	}

	meal, err = ctx.Store.AddExtendedMeal(meal)
	if err != nil {
		return fmt.Errorf("failed to plan meal: %w", err)
	}
	ctx.Printf("✓ Planned %s: %s (ID: %s)\n", meal.Type, meal.Name, meal.ID)
	return nil
}

type MealPlanListCmd struct{}

func (c *MealPlanListCmd) Run(ctx *cli.Context) error {
	meals := ctx.Store.Snapshot().ExtendedMeals
	if len(meals) == 0 {
		ctx.Println("No planned meals.")
		return nil
	}
	st := ctx.Styles()
	for _, m := range meals {
		ctx.Printf("%s %s %s %s\n", cli.Check(m.Completed), m.Date.Format("2006-01-02"), st.Accent.Render(m.Name), st.Muted.Render(m.ID))
		ctx.Printf("    %s, %d kcal, P %.0fg C %.0fg F %.0fg\n", m.Type, m.Calories, m.Macros.Protein, m.Macros.Carbs, m.Macros.Fat)
		if len(m.Ingredients) > 0 {
			ctx.Printf("    %s\n", strings.Join(m.Ingredients, ", "))
		}
	}
	return nil
}

type MealPlanToggleCmd struct {
	ID string `arg:"" help:"Planned meal ID."`
}

func (c *MealPlanToggleCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.ToggleExtendedMealCompleted(c.ID); err != nil {
		return fmt.Errorf("failed to toggle planned meal: %w", err)
	}
	ctx.Printf("✓ Toggled planned meal %s\n", c.ID)
	return nil
}

type MealPlanDeleteCmd struct {
	ID string `arg:"" help:"Planned meal ID."`
}

func (c *MealPlanDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteExtendedMeal(c.ID); err != nil {
		return fmt.Errorf("failed to delete planned meal: %w", err)
	}
	ctx.Printf("✓ Deleted planned meal %s\n", c.ID)
	return nil
}

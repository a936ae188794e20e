package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/phoenix-rise/internal/cli/clitest"
	"github.com/julianstephens/phoenix-rise/internal/models"
	"github.com/julianstephens/phoenix-rise/internal/store"
)

func TestMealCommands(t *testing.T) {
	h := clitest.New(t)

	require.NoError(t, (&MealAddCmd{Name: "Oatmeal", Type: "breakfast", Calories: 350, Done: true}).Run(h.Ctx))
	assert.Contains(t, h.Output(), "Added breakfast: Oatmeal (ID: id-1)")
	require.NoError(t, (&MealAddCmd{Name: "Salad", Type: "lunch", Calories: 400}).Run(h.Ctx))
	h.Output()

	require.NoError(t, (&MealListCmd{}).Run(h.Ctx))
	out := h.Output()
	assert.Contains(t, out, "[x] breakfast")
	assert.Contains(t, out, "[ ] lunch")
	assert.Contains(t, out, "350")

	require.NoError(t, (&MealToggleCmd{ID: "id-2"}).Run(h.Ctx))
	assert.Equal(t, 20, h.Store.Points())

	require.NoError(t, (&MealDeleteCmd{ID: "id-1"}).Run(h.Ctx))
	assert.Len(t, h.Store.Snapshot().Meals, 1)

	err := (&MealDeleteCmd{ID: "nope"}).Run(h.Ctx)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMealAddRejectsBlankName(t *testing.T) {
	h := clitest.New(t)
	err := (&MealAddCmd{Name: "  ", Type: "lunch"}).Run(h.Ctx)
	assert.ErrorIs(t, err, store.ErrInvalidInput)
	assert.Empty(t, h.Store.Snapshot().Meals)
}

func TestMealPlanCommands(t *testing.T) {
	h := clitest.New(t)

	cmd := &MealPlanAddCmd{
		Name:        "Salmon bowl",
		Type:        "dinner",
		Calories:    650,
		Protein:     42,
		Carbs:       55,
		Fat:         20,
		Ingredients: []string{"salmon", "rice", "avocado"},
		Date:        "2026-03-09",
	}
	require.NoError(t, cmd.Run(h.Ctx))

	planned := h.Store.Snapshot().ExtendedMeals
	require.Len(t, planned, 1)
	assert.Equal(t, 9, planned[0].Date.Day())
	assert.Equal(t, models.Macros{Protein: 42, Carbs: 55, Fat: 20}, planned[0].Macros)
	h.Output()

	require.NoError(t, (&MealPlanListCmd{}).Run(h.Ctx))
	out := h.Output()
	assert.Contains(t, out, "Salmon bowl")
	assert.Contains(t, out, "salmon, rice, avocado")
	assert.Contains(t, out, "P 42g C 55g F 20g")

	require.NoError(t, (&MealPlanToggleCmd{ID: "id-1"}).Run(h.Ctx))
	assert.True(t, h.Store.Snapshot().ExtendedMeals[0].Completed)

	require.NoError(t, (&MealPlanDeleteCmd{ID: "id-1"}).Run(h.Ctx))
	assert.Empty(t, h.Store.Snapshot().ExtendedMeals)

	assert.Error(t, (&MealPlanAddCmd{Name: "Soup", Type: "dinner", Date: "tomorrow"}).Run(h.Ctx))
}

func TestSupplementCommands(t *testing.T) {
	h := clitest.New(t)

	require.NoError(t, (&SupplementAddCmd{Name: "Vitamin D", Dosage: "1000IU", Time: "morning"}).Run(h.Ctx))
	require.NoError(t, (&SupplementTakeCmd{ID: "id-1"}).Run(h.Ctx))
	assert.Contains(t, h.Output(), "Vitamin D taken today")

	supp := h.Store.Snapshot().Supplements[0]
	assert.True(t, supp.TakenToday)
	assert.True(t, supp.WeeklyHistory[clitest.Now.Weekday()])

	require.NoError(t, (&SupplementListCmd{}).Run(h.Ctx))
	out := h.Output()
	assert.Contains(t, out, "[x] Vitamin D (1000IU)")
	assert.Contains(t, out, "Su Mo Tu We Th Fr Sa")
	assert.Contains(t, out, "✓")

	require.NoError(t, (&SupplementTakeCmd{ID: "id-1"}).Run(h.Ctx))
	assert.Contains(t, h.Output(), "marked not taken")

	require.NoError(t, (&SupplementDeleteCmd{ID: "id-1"}).Run(h.Ctx))
	assert.Empty(t, h.Store.Snapshot().Supplements)
}

func TestAddictionCommands(t *testing.T) {
	h := clitest.New(t)

	require.NoError(t, (&AddictionAddCmd{Name: "Soda"}).Run(h.Ctx))
	h.Output()
	require.NoError(t, (&AddictionListCmd{}).Run(h.Ctx))
	assert.Contains(t, h.Output(), "0 days")

	require.NoError(t, (&AddictionResetCmd{ID: "id-1"}).Run(h.Ctx))
	assert.ErrorIs(t, (&AddictionResetCmd{ID: "id-9"}).Run(h.Ctx), store.ErrNotFound)

	require.NoError(t, (&AddictionDeleteCmd{ID: "id-1"}).Run(h.Ctx))
	h.Output()
	require.NoError(t, (&AddictionListCmd{}).Run(h.Ctx))
	assert.Contains(t, h.Output(), "Nothing tracked.")
}

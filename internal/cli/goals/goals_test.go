package goals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/phoenix-rise/internal/cli/clitest"
	"github.com/julianstephens/phoenix-rise/internal/models"
	"github.com/julianstephens/phoenix-rise/internal/store"
)

func ptr[T any](v T) *T { return &v }

func TestGoalLifecycle(t *testing.T) {
	h := clitest.New(t)

	add := &GoalAddCmd{
		Title:      "Run a 10k",
		Category:   "health",
		Target:     "2026-06-01",
		Priority:   "high",
		Milestones: []string{"5k", " ", "8k"},
	}
	require.NoError(t, add.Run(h.Ctx))
	assert.Contains(t, h.Output(), "Added goal: Run a 10k (ID: id-1)")

	goal := h.Store.Snapshot().Goals[0]
	require.Len(t, goal.Milestones, 2)
	assert.Equal(t, models.PriorityHigh, goal.Priority)
	require.NotNil(t, goal.TargetDate)

	require.NoError(t, (&GoalMilestoneAddCmd{GoalID: "id-1", Title: "9k"}).Run(h.Ctx))
	require.NoError(t, (&GoalMilestoneToggleCmd{GoalID: "id-1", MilestoneID: "id-2"}).Run(h.Ctx))

	require.NoError(t, (&GoalProgressCmd{ID: "id-1", Progress: 140}).Run(h.Ctx))
	out := h.Output()
	assert.Contains(t, out, "Run a 10k is at 100%")
	assert.Contains(t, out, "Goal complete!")
	assert.Equal(t, 50, h.Store.Points())

	require.NoError(t, (&GoalListCmd{}).Run(h.Ctx))
	assert.Contains(t, h.Output(), "No goals yet.")

	require.NoError(t, (&GoalListCmd{Completed: true}).Run(h.Ctx))
	out = h.Output()
	assert.Contains(t, out, "[x] Run a 10k [high]")
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, "due 2026-06-01")
	assert.Contains(t, out, "[x] 5k")
	assert.Contains(t, out, "[ ] 9k")

	require.NoError(t, (&GoalProgressCmd{ID: "id-1", Progress: -5}).Run(h.Ctx))
	goal = h.Store.Snapshot().Goals[0]
	assert.Equal(t, 0, goal.Progress)
	assert.False(t, goal.Completed)

	require.NoError(t, (&GoalDeleteCmd{ID: "id-1"}).Run(h.Ctx))
	assert.Empty(t, h.Store.Snapshot().Goals)
}

func TestGoalEdit(t *testing.T) {
	h := clitest.New(t)
	require.NoError(t, (&GoalAddCmd{Title: "Read more", Priority: "medium"}).Run(h.Ctx))

	edit := &GoalEditCmd{ID: "id-1", Title: ptr("Read 12 books"), Priority: ptr("low"), Target: ptr("2026-12-31")}
	require.NoError(t, edit.Run(h.Ctx))

	goal := h.Store.Snapshot().Goals[0]
	assert.Equal(t, "Read 12 books", goal.Title)
	assert.Equal(t, models.PriorityLow, goal.Priority)
	assert.Equal(t, 31, goal.TargetDate.Day())

	err := (&GoalEditCmd{ID: "id-1", Priority: ptr("urgent")}).Run(h.Ctx)
	assert.ErrorIs(t, err, store.ErrInvalidInput)
	assert.ErrorIs(t, (&GoalCompleteCmd{ID: "missing"}).Run(h.Ctx), store.ErrNotFound)
}

func TestJournalCommands(t *testing.T) {
	h := clitest.New(t)

	require.NoError(t, (&JournalAddCmd{Title: "First", Mood: "good", Wins: "Walked"}).Run(h.Ctx))
	require.NoError(t, (&JournalAddCmd{Title: "Second", Mood: "great", Content: "Felt strong"}).Run(h.Ctx))
	assert.Equal(t, 30, h.Store.Points())
	h.Output()

	require.NoError(t, (&JournalListCmd{Limit: 1}).Run(h.Ctx))
	out := h.Output()
	assert.Contains(t, out, "Second")
	assert.NotContains(t, out, "First")
	assert.Contains(t, out, "... and 1 more")

	require.NoError(t, (&JournalEditCmd{ID: "id-1", Mood: ptr("bad"), Tomorrow: ptr("Rest")}).Run(h.Ctx))
	require.NoError(t, (&JournalShowCmd{ID: "id-1"}).Run(h.Ctx))
	out = h.Output()
	assert.Contains(t, out, "bad")
	assert.Contains(t, out, "Rest")

	assert.ErrorIs(t, (&JournalAddCmd{Mood: "okay"}).Run(h.Ctx), store.ErrInvalidInput)
	assert.ErrorIs(t, (&JournalShowCmd{ID: "id-9"}).Run(h.Ctx), store.ErrNotFound)

	require.NoError(t, (&JournalDeleteCmd{ID: "id-2"}).Run(h.Ctx))
	entries := h.Store.Snapshot().JournalEntries
	require.Len(t, entries, 1)
	assert.Equal(t, "First", entries[0].Title)
}

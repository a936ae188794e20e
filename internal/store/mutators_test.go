package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/phoenix-rise/internal/backup"
	"github.com/julianstephens/phoenix-rise/internal/constants"
	"github.com/julianstephens/phoenix-rise/internal/models"
)

func TestSupplementToggleTracksWeek(t *testing.T) {
	h := newHarness(t, time.Hour)
	h.load(t)

	supp, err := h.store.AddSupplement(models.Supplement{Name: "Omega 3", Dosage: "1g"})
	require.NoError(t, err)

	require.NoError(t, h.store.ToggleSupplementTaken(supp.ID))
	got := h.store.Snapshot().Supplements[0]
	assert.True(t, got.TakenToday)
	require.NotNil(t, got.LastTaken)
	assert.True(t, got.WeeklyHistory[baseTime.Weekday()])
	assert.Equal(t, constants.PointsPerSupplementTaken, h.store.Points())

	require.NoError(t, h.store.ToggleSupplementTaken(supp.ID))
	got = h.store.Snapshot().Supplements[0]
	assert.False(t, got.TakenToday)
	assert.False(t, got.WeeklyHistory[baseTime.Weekday()])

	require.NoError(t, h.store.DeleteSupplement(supp.ID))
	assert.ErrorIs(t, h.store.DeleteSupplement(supp.ID), ErrNotFound)
}

func TestAddictionStreakScoring(t *testing.T) {
	h := newHarness(t, time.Hour)
	h.load(t)

	a, err := h.store.AddAddiction("Smoking")
	require.NoError(t, err)
	h.clock.Set(baseTime.Add(72 * time.Hour))
	assert.Equal(t, 3, h.store.Snapshot().Addictions[0].StreakDays(h.clock.Now()))
	assert.Equal(t, 3*constants.PointsPerAddictionDay, h.store.Breakdown().Addictions)

	require.NoError(t, h.store.ResetAddiction(a.ID))
	assert.Equal(t, 0, h.store.Points())
}

func TestMealsAndExtendedMeals(t *testing.T) {
	h := newHarness(t, time.Hour)
	h.load(t)

	meal, err := h.store.AddMeal(models.Meal{Type: models.MealBreakfast, Name: "Porridge", Calories: 300})
	require.NoError(t, err)
	require.NoError(t, h.store.ToggleMealCompleted(meal.ID))
	assert.Equal(t, constants.PointsPerCompletedMeal, h.store.Points())

	ext, err := h.store.AddExtendedMeal(models.ExtendedMeal{
		Type:   models.MealDinner,
		Name:   "Salmon bowl",
		Macros: models.Macros{Protein: 40, Carbs: 50, Fat: 20},
	})
	require.NoError(t, err)
	assert.NotNil(t, ext.Ingredients)
	require.NoError(t, h.store.ToggleExtendedMealCompleted(ext.ID))
	assert.True(t, h.store.Snapshot().ExtendedMeals[0].Completed)

	_, err = h.store.AddExtendedMeal(models.ExtendedMeal{Type: models.MealDinner, Name: "Bad", Macros: models.Macros{Fat: -1}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, h.store.DeleteExtendedMeal(ext.ID))
	require.NoError(t, h.store.DeleteMeal(meal.ID))
	assert.Equal(t, 0, h.store.Points())
}

func TestGoalMilestonesAndJournal(t *testing.T) {
	h := newHarness(t, time.Hour)
	h.load(t)

	goal, err := h.store.AddGoal(models.Goal{
		Title:      "Learn Go",
		Milestones: []models.Milestone{{Title: "Tour"}},
	})
	require.NoError(t, err)
	assert.Equal(t, models.PriorityMedium, goal.Priority)
	require.NotEmpty(t, goal.Milestones[0].ID)

	m, err := h.store.AddMilestone(goal.ID, "Ship a CLI")
	require.NoError(t, err)
	require.NoError(t, h.store.ToggleMilestone(goal.ID, m.ID))
	assert.True(t, h.store.Snapshot().Goals[0].Milestones[1].Completed)

	title := "Master Go"
	require.NoError(t, h.store.UpdateGoal(goal.ID, GoalPatch{Title: &title}))
	require.NoError(t, h.store.CompleteGoal(goal.ID))
	assert.Equal(t, "Master Go", h.store.Snapshot().Goals[0].Title)
	assert.True(t, h.store.Snapshot().Goals[0].Completed)

	first, err := h.store.AddJournalEntry(models.JournalEntry{Title: "Day one", Mood: models.MoodGood, Content: "ok"})
	require.NoError(t, err)
	second, err := h.store.AddJournalEntry(models.JournalEntry{Title: "Day two", Mood: models.MoodGreat, Content: "better"})
	require.NoError(t, err)
	entries := h.store.Snapshot().JournalEntries
	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].ID, "newest first")

	_, err = h.store.AddJournalEntry(models.JournalEntry{Title: "x", Mood: "meh", Content: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	mood := models.MoodOkay
	require.NoError(t, h.store.UpdateJournalEntry(first.ID, JournalPatch{Mood: &mood}))
	assert.Equal(t, models.MoodOkay, h.store.Snapshot().JournalEntries[1].Mood)

	require.NoError(t, h.store.DeleteJournalEntry(first.ID))
	require.NoError(t, h.store.DeleteGoal(goal.ID))
	assert.Equal(t, constants.PointsPerJournalEntry, h.store.Points())
}

func TestRoutineEditing(t *testing.T) {
	h := newHarness(t, time.Hour)
	h.load(t)

	_, err := h.store.AddRoutine(models.Routine{Name: "Bad", HabitLinks: []models.HabitLink{{Type: "chore", Name: "x"}}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	r, err := h.store.AddRoutine(models.Routine{
		Name:       "Evening",
		HabitLinks: []models.HabitLink{{Type: models.LinkHabit, Name: "Read", Points: 10}},
	})
	require.NoError(t, err)
	assert.True(t, r.IsActive)

	require.NoError(t, h.store.ToggleRoutineActive(r.ID))
	assert.False(t, h.store.Snapshot().Routines[0].IsActive)

	links := []models.HabitLink{
		{Type: models.LinkTrigger, Name: "Tea", Points: 2},
		{Type: models.LinkHabit, Name: "Read", Points: 10},
	}
	require.NoError(t, h.store.UpdateRoutine(r.ID, RoutinePatch{HabitLinks: &links}))
	got := h.store.Snapshot().Routines[0]
	require.Len(t, got.HabitLinks, 2)
	assert.NotEmpty(t, got.HabitLinks[0].ID)
	assert.Equal(t, 12, got.TotalPoints())

	_, err = h.store.CompleteRoutine(r.ID, []string{got.HabitLinks[0].ID, got.HabitLinks[1].ID})
	require.NoError(t, err)
	require.NoError(t, h.store.DeleteRoutine(r.ID))
	assert.Empty(t, h.store.Snapshot().Routines)
	assert.Len(t, h.store.Snapshot().RoutineCompletions, 1)
}

func TestVisionBoards(t *testing.T) {
	h := newHarness(t, time.Hour)
	h.load(t)

	board, err := h.store.AddVisionBoard(models.VisionBoard{Name: "2027"})
	require.NoError(t, err)
	el, err := h.store.AddVisionElement(board.ID, models.VisionElement{Title: "Cabin by a lake", Achieved: true})
	require.NoError(t, err)
	assert.False(t, el.Achieved, "new elements start unachieved")
	assert.Equal(t, "text", el.Type)

	content := "Pine trees"
	require.NoError(t, h.store.UpdateVisionElement(board.ID, el.ID, VisionElementPatch{
		Content:  &content,
		Position: &models.Position{X: 10, Y: 20},
	}))
	empty := " "
	assert.ErrorIs(t, h.store.UpdateVisionElement(board.ID, el.ID, VisionElementPatch{Title: &empty}), ErrInvalidInput)

	require.NoError(t, h.store.MarkElementAchieved(board.ID, el.ID))
	first := h.store.Snapshot().VisionBoards[0].Elements[0]
	require.True(t, first.Achieved)
	require.NotNil(t, first.AchievedDate)
	assert.Equal(t, "Pine trees", first.Content)
	assert.Equal(t, 10.0, first.Position.X)
	assert.Equal(t, constants.PointsPerAchievedVision, h.store.Points())

	h.clock.Set(baseTime.Add(time.Hour))
	require.NoError(t, h.store.MarkElementAchieved(board.ID, el.ID))
	again := h.store.Snapshot().VisionBoards[0].Elements[0]
	assert.True(t, again.AchievedDate.Equal(*first.AchievedDate))

	assert.ErrorIs(t, h.store.MarkElementAchieved(board.ID, "missing"), ErrNotFound)
	assert.ErrorIs(t, h.store.MarkElementAchieved("missing", el.ID), ErrNotFound)

	require.NoError(t, h.store.DeleteVisionElement(board.ID, el.ID))
	require.NoError(t, h.store.DeleteVisionBoard(board.ID))
	assert.Empty(t, h.store.Snapshot().VisionBoards)
}

func TestAffirmationsAndDreamLife(t *testing.T) {
	h := newHarness(t, time.Hour)
	h.load(t)

	a, err := h.store.AddAffirmation("I rise every morning", "growth")
	require.NoError(t, err)
	assert.True(t, a.IsCustom)
	require.NoError(t, h.store.UseAffirmation(a.ID))
	require.NoError(t, h.store.UseAffirmation(a.ID))
	assert.Equal(t, 2, h.store.Snapshot().Affirmations[0].TimesUsed)
	require.NoError(t, h.store.DeleteAffirmation(a.ID))
	assert.ErrorIs(t, h.store.UseAffirmation(a.ID), ErrNotFound)

	require.NoError(t, h.store.SaveDreamLifeScript(models.DreamLifeScript{Health: "Strong"}))
	script := h.store.Snapshot().DreamLifeScript
	require.NotNil(t, script)
	assert.Equal(t, "Strong", script.Health)
	assert.True(t, script.LastUpdated.Equal(baseTime))
}

func TestVisualizationStreak(t *testing.T) {
	h := newHarness(t, time.Hour)
	h.load(t)

	add := func(at time.Time) {
		t.Helper()
		h.clock.Set(at)
		_, err := h.store.AddVisualizationSession(models.VisualizationSession{Duration: 300, Mood: 8})
		require.NoError(t, err)
	}

	add(baseTime)
	assert.Equal(t, 1, h.store.Snapshot().VisualizationStreak)
	add(baseTime.Add(time.Hour))
	assert.Equal(t, 1, h.store.Snapshot().VisualizationStreak)
	add(baseTime.AddDate(0, 0, 1))
	assert.Equal(t, 2, h.store.Snapshot().VisualizationStreak)
	add(baseTime.AddDate(0, 0, 4))
	assert.Equal(t, 1, h.store.Snapshot().VisualizationStreak)

	_, err := h.store.AddVisualizationSession(models.VisualizationSession{Mood: 11})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorContains(t, err, "0 (unset) or 1-10")

	unrated, err := h.store.AddVisualizationSession(models.VisualizationSession{Duration: 60})
	require.NoError(t, err)
	assert.Equal(t, 0, unrated.Mood)
}

func TestMeditationDay(t *testing.T) {
	h := newHarness(t, time.Hour)
	h.load(t)

	_, err := h.store.AddMeditationSession(20, 120)
	require.NoError(t, err)
	_, err = h.store.AddMeditationSession(10, 60)
	require.NoError(t, err)
	m := h.store.Snapshot().Meditation
	assert.Equal(t, 30, m.TotalBreaths)
	assert.Len(t, m.Sessions, 2)
	assert.False(t, m.TodayCompleted)

	require.NoError(t, h.store.CompleteMeditationDay())
	require.NoError(t, h.store.CompleteMeditationDay())
	m = h.store.Snapshot().Meditation
	assert.True(t, m.TodayCompleted)
	assert.Equal(t, 1, m.DaysStreak)

	h.clock.Set(baseTime.AddDate(0, 0, 1))
	require.True(t, h.store.Rollover(h.clock.Now()))
	assert.False(t, h.store.Snapshot().Meditation.TodayCompleted)
	require.NoError(t, h.store.CompleteMeditationDay())
	assert.Equal(t, 2, h.store.Snapshot().Meditation.DaysStreak)

	h.clock.Set(baseTime.AddDate(0, 0, 5))
	require.NoError(t, h.store.CompleteMeditationDay())
	assert.Equal(t, 1, h.store.Snapshot().Meditation.DaysStreak)

	_, err = h.store.AddMeditationSession(-1, 10)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestProfileThemeAndChat(t *testing.T) {
	h := newHarness(t, time.Hour)
	h.load(t)

	require.NoError(t, h.store.SaveUserProfile(models.UserProfile{Name: " Sam ", Age: 34, Motivation: "energy"}))
	assert.Equal(t, "Sam", h.store.Snapshot().UserProfile.Name)
	assert.ErrorIs(t, h.store.SaveUserProfile(models.UserProfile{Name: "Sam", Age: -1}), ErrInvalidInput)

	theme := models.DefaultTheme()
	theme.Name = "Ocean"
	theme.Primary = "#0077BE"
	require.NoError(t, h.store.SetTheme(theme))
	assert.Equal(t, "Ocean", h.store.Snapshot().Theme.Name)

	theme.Accent = ""
	assert.ErrorIs(t, h.store.SetTheme(theme), ErrInvalidInput)
	require.NoError(t, h.store.ResetTheme())
	assert.Equal(t, models.DefaultTheme(), h.store.Snapshot().Theme)

	msg, err := h.store.AddChatMessage(models.ChatMessage{Text: "Hello", IsUser: true})
	require.NoError(t, err)
	assert.True(t, msg.Timestamp.Equal(baseTime))
	_, err = h.store.AddChatMessage(models.ChatMessage{Text: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)
	require.Len(t, h.store.Snapshot().ChatMessages, 1)

	require.NoError(t, h.store.ClearChatHistory())
	assert.Empty(t, h.store.Snapshot().ChatMessages)
}

func TestImport(t *testing.T) {
	h := newHarness(t, time.Hour)
	h.load(t)
	ctx := context.Background()

	src := models.DefaultWellnessData(baseTime)
	src.Goals = []models.Goal{{ID: "g1", Title: "Imported", Priority: models.PriorityHigh, Milestones: []models.Milestone{}, Progress: 100, Completed: true, CreatedAt: baseTime}}
	src.VoiceSettings.ElevenLabsAPIKey = "imported-key"
	src.VoiceSettings.WakeWordEnabled = false
	raw, err := backup.Export(src, backup.FormatJSON, baseTime)
	require.NoError(t, err)

	require.NoError(t, h.store.Import(ctx, raw))

	snap := h.store.Snapshot()
	require.Len(t, snap.Goals, 1)
	assert.Equal(t, "Imported", snap.Goals[0].Title)
	assert.Equal(t, constants.PointsPerCompletedGoal, snap.PhoenixPoints)
	assert.False(t, h.loop.Listening())

	v, err := h.mirror.Get(ctx, constants.KeyElevenLabsAPIKey)
	require.NoError(t, err)
	assert.Equal(t, "imported-key", v)
	assert.Len(t, h.persisted(t).Goals, 1)
}

func TestImportRejectsInvalidDocument(t *testing.T) {
	h := newHarness(t, time.Hour)
	h.load(t)
	_, err := h.store.AddAddiction("Caffeine")
	require.NoError(t, err)
	before := h.store.Snapshot()

	for _, raw := range []string{"not json", `{"meals":42}`, `{"format":"phoenix-rise-export","version":7,"data":{}}`} {
		assert.ErrorIs(t, h.store.Import(context.Background(), []byte(raw)), ErrInvalidInput, raw)
	}
	assert.Equal(t, before, h.store.Snapshot())
}

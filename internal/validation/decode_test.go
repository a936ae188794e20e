package validation

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/julianstephens/phoenix-rise/internal/models"
)

func TestDecodeSnapshotHydratesDates(t *testing.T) {
	data, err := DecodeSnapshot([]byte(validSnapshot))
	require.NoError(t, err)

	assert.True(t, data.Meals[0].Date.Equal(time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)))
	// numeric epoch millis become real times too
	assert.Equal(t, int64(1772928000), data.Addictions[0].LastReset.Unix())
	assert.True(t, data.LastUpdated.Equal(time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)))
	require.NotNil(t, data.DreamLifeScript)
	assert.Equal(t, "strong", data.DreamLifeScript.Health)
	assert.Equal(t, [7]bool{false, true}, data.Supplements[0].WeeklyHistory)
}

func TestDecodeSnapshotBackfillsDefaults(t *testing.T) {
	raw := `{"meals": [], "supplements": [{"id": "s1", "name": "Fish oil", "dosage": "1g", "takenToday": false}],
		"addictions": [], "goals": [], "journalEntries": [], "chatMessages": [],
		"routines": [{"id": "r1", "name": "Evening", "habitLinks": [], "isActive": true, "streak": 4}],
		"phoenixPoints": 0, "lastUpdated": "2026-03-10T08:00:00Z"}`

	data, err := DecodeSnapshot([]byte(raw))
	require.NoError(t, err)

	assert.True(t, data.VoiceSettings.WakeWordEnabled)
	assert.Equal(t, 1.0, data.VoiceSettings.TTSSpeed)
	assert.Equal(t, [7]bool{}, data.Supplements[0].WeeklyHistory)
	assert.Equal(t, models.DefaultTheme(), data.Theme)
	assert.Equal(t, 4, data.Routines[0].BestStreak)
	assert.NotNil(t, data.VisionBoards)
	assert.NotNil(t, data.Meditation.Sessions)
	assert.Nil(t, data.UserProfile)
}

func TestDecodeSnapshotMigratesLegacySettings(t *testing.T) {
	raw := `{"meals": [], "supplements": [], "addictions": [], "goals": [], "journalEntries": [], "chatMessages": [],
		"phoenixPoints": 0, "lastUpdated": "2026-03-10", "wakeWordEnabled": false, "assemblyAiApiKey": "aai-123"}`

	data, err := DecodeSnapshot([]byte(raw))
	require.NoError(t, err)

	assert.False(t, data.VoiceSettings.WakeWordEnabled)
	assert.Equal(t, "aai-123", data.VoiceSettings.AssemblyAIAPIKey)
}

func TestDecodeSnapshotRoundsFractionalIntegers(t *testing.T) {
	raw := `{"meals": [{"id": "m1", "type": "lunch", "name": "Soup", "calories": 350.5, "completed": false, "date": "2026-03-10"}],
		"supplements": [], "addictions": [], "journalEntries": [], "chatMessages": [],
		"goals": [{"id": "g1", "title": "Swim", "category": "health", "progress": 42.5, "completed": false, "createdAt": "2026-03-01"}],
		"routines": [{"id": "r1", "name": "Night", "habitLinks": [{"id": "l1", "type": "habit", "name": "Read", "points": 4.2, "timeEstimate": 9.7}], "isActive": true, "streak": 1.4}],
		"visualizationSessions": [{"id": "v1", "duration": 299.6, "mood": 7.49, "date": "2026-03-09"}],
		"meditation": {"totalBreaths": 10.5, "daysStreak": 2, "sessions": [], "todayCompleted": false},
		"userProfile": {"name": "Ada", "age": 1e30},
		"phoenixPoints": 12.9, "lastUpdated": "2026-03-10"}`

	require.True(t, IsWellnessData(gjson.Parse(raw)))
	data, err := DecodeSnapshot([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, 351, data.Meals[0].Calories)
	assert.Equal(t, 43, data.Goals[0].Progress)
	assert.Equal(t, 4, data.Routines[0].HabitLinks[0].Points)
	assert.Equal(t, 10, data.Routines[0].HabitLinks[0].TimeEstimate)
	assert.Equal(t, 1, data.Routines[0].Streak)
	assert.Equal(t, 300, data.VisualizationSessions[0].Duration)
	assert.Equal(t, 7, data.VisualizationSessions[0].Mood)
	assert.Equal(t, 11, data.Meditation.TotalBreaths)
	assert.Equal(t, 1<<53, data.UserProfile.Age)
	assert.Equal(t, 13, data.PhoenixPoints)
}

func TestDecodeSnapshotErrors(t *testing.T) {
	_, err := DecodeSnapshot([]byte(`{"meals": [`))
	assert.ErrorIs(t, err, ErrMalformedJSON)

	_, err = DecodeSnapshot([]byte(`{"meals": []}`))
	assert.ErrorIs(t, err, ErrInvalidShape)
	var shapeErr *ShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "snapshot", shapeErr.Kind)
}

func TestSnapshotRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 15, 30, 0, time.UTC)
	target := now.AddDate(0, 2, 0)

	in := models.DefaultWellnessData(now)
	in.Meals = []models.Meal{{ID: "m1", Type: models.MealLunch, Name: "Salad", Calories: 420, Completed: true, Date: now}}
	in.Goals = []models.Goal{{ID: "g1", Title: "Read 12 books", Category: "growth", Progress: 25, TargetDate: &target, CreatedAt: now, Milestones: []models.Milestone{}}}
	in.Routines = []models.Routine{{ID: "r1", Name: "Morning", HabitLinks: []models.HabitLink{{ID: "l1", Type: models.LinkHabit, Name: "Stretch", Points: 5}}, IsActive: true, CreatedAt: now}}
	in.Supplements = []models.Supplement{{ID: "s1", Name: "Magnesium", Dosage: "200mg", TakenToday: true, LastTaken: &now, WeeklyHistory: [7]bool{2: true}}}
	in.UserProfile = &models.UserProfile{Name: "Ada", Age: 34}
	in.PhoenixPoints = 12

	raw, err := json.Marshal(in)
	require.NoError(t, err)

	out, err := DecodeSnapshot(raw)
	require.NoError(t, err)

	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeGoal(t *testing.T) {
	g, err := DecodeGoal([]byte(`{"id": "g", "title": "Swim", "category": "health", "progress": 10, "completed": false, "createdAt": 1772928000000}`))
	require.NoError(t, err)
	assert.Equal(t, "Swim", g.Title)
	assert.Equal(t, int64(1772928000), g.CreatedAt.Unix())

	_, err = DecodeGoal([]byte(`{"id": "g"}`))
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestDecodeRoutine(t *testing.T) {
	r, err := DecodeRoutine([]byte(`{"id": "r", "name": "Night", "habitLinks": [{"id": "l", "type": "habit", "name": "Read", "points": 4}], "isActive": false, "streak": 0}`))
	require.NoError(t, err)
	require.Len(t, r.HabitLinks, 1)
	assert.Equal(t, models.LinkHabit, r.HabitLinks[0].Type)
}

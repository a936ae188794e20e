package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultWellnessData(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	d := DefaultWellnessData(now)

	assert.NotNil(t, d.Meals)
	assert.NotNil(t, d.Meditation.Sessions)
	assert.Equal(t, now, d.LastUpdated)
	assert.Equal(t, DefaultTheme(), d.Theme)
	assert.True(t, d.VoiceSettings.WakeWordEnabled)
	assert.Equal(t, 1.0, d.VoiceSettings.TTSSpeed)
	assert.Nil(t, d.UserProfile)
}

func TestCloneIsDeep(t *testing.T) {
	now := time.Now()
	d := DefaultWellnessData(now)
	d.Routines = []Routine{{ID: "r1", HabitLinks: []HabitLink{{ID: "l1", Name: "Water"}}}}
	d.Goals = []Goal{{ID: "g1", Milestones: []Milestone{{ID: "m1"}}, CompletedAt: &now}}
	d.VisionBoards = []VisionBoard{{ID: "b1", Elements: []VisionElement{{ID: "e1"}}}}
	d.UserProfile = &UserProfile{Name: "Ada"}
	d.Supplements = []Supplement{{ID: "s1"}}

	c := d.Clone()
	c.Routines[0].HabitLinks[0].Name = "Coffee"
	c.Goals[0].Milestones[0].Completed = true
	*c.Goals[0].CompletedAt = now.Add(time.Hour)
	c.VisionBoards[0].Elements[0].Achieved = true
	c.UserProfile.Name = "Grace"
	c.Supplements[0].WeeklyHistory[2] = true

	assert.Equal(t, "Water", d.Routines[0].HabitLinks[0].Name)
	assert.False(t, d.Goals[0].Milestones[0].Completed)
	assert.Equal(t, now, *d.Goals[0].CompletedAt)
	assert.False(t, d.VisionBoards[0].Elements[0].Achieved)
	assert.Equal(t, "Ada", d.UserProfile.Name)
	assert.False(t, d.Supplements[0].WeeklyHistory[2])
}

func TestCloneKeepsNilSlices(t *testing.T) {
	var d WellnessData
	c := d.Clone()
	assert.Nil(t, c.Routines)
	assert.Nil(t, c.DreamLifeScript)
}

func TestAddictionStreakDays(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	a := Addiction{LastReset: now.Add(-3*24*time.Hour - time.Minute)}
	assert.Equal(t, 3, a.StreakDays(now))

	a.LastReset = now.Add(time.Hour)
	assert.Equal(t, 0, a.StreakDays(now))
}

func TestRoutineTotalPoints(t *testing.T) {
	r := Routine{HabitLinks: []HabitLink{{Points: 5}, {Points: 10}, {Points: 3}}}
	assert.Equal(t, 18, r.TotalPoints())
}

func TestVisionBoardAchievedCount(t *testing.T) {
	b := VisionBoard{Elements: []VisionElement{{Achieved: true}, {}, {Achieved: true}}}
	require.Equal(t, 2, b.AchievedCount())
}

func TestMoodAndLinkTypeValid(t *testing.T) {
	assert.True(t, MoodGreat.Valid())
	assert.False(t, Mood("ecstatic").Valid())
	assert.True(t, LinkReward.Valid())
	assert.False(t, LinkType("bonus").Valid())
}

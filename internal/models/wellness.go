package models

import (
	"slices"
	"time"
)

// WellnessData is the aggregate snapshot persisted as a single document.
type WellnessData struct {
	Meals                 []Meal                 `json:"meals"`
	MealArchive           []Meal                 `json:"mealArchive"`
	ExtendedMeals         []ExtendedMeal         `json:"extendedMeals"`
	Addictions            []Addiction            `json:"addictions"`
	Supplements           []Supplement           `json:"supplements"`
	Goals                 []Goal                 `json:"goals"`
	JournalEntries        []JournalEntry         `json:"journalEntries"`
	ChatMessages          []ChatMessage          `json:"chatMessages"`
	Routines              []Routine              `json:"routines"`
	RoutineCompletions    []RoutineCompletion    `json:"routineCompletions"`
	VisionBoards          []VisionBoard          `json:"visionBoards"`
	Affirmations          []Affirmation          `json:"affirmations"`
	VisualizationSessions []VisualizationSession `json:"visualizationSessions"`
	VisualizationStreak   int                    `json:"visualizationStreak"`
	DreamLifeScript       *DreamLifeScript       `json:"dreamLifeScript"`
	Meditation            MeditationData         `json:"meditation"`
	UserProfile           *UserProfile           `json:"userProfile"`
	Theme                 Theme                  `json:"theme"`
	VoiceSettings         VoiceSettings          `json:"voiceSettings"`
	PhoenixPoints         int                    `json:"phoenixPoints"`
	LastUpdated           time.Time              `json:"lastUpdated"`
}

// DefaultWellnessData is the empty snapshot a fresh install (or a discarded
// corrupt one) starts from.
func DefaultWellnessData(now time.Time) WellnessData {
	return WellnessData{
		Meals:                 []Meal{},
		MealArchive:           []Meal{},
		ExtendedMeals:         []ExtendedMeal{},
		Addictions:            []Addiction{},
		Supplements:           []Supplement{},
		Goals:                 []Goal{},
		JournalEntries:        []JournalEntry{},
		ChatMessages:          []ChatMessage{},
		Routines:              []Routine{},
		RoutineCompletions:    []RoutineCompletion{},
		VisionBoards:          []VisionBoard{},
		Affirmations:          []Affirmation{},
		VisualizationSessions: []VisualizationSession{},
		Meditation:            MeditationData{Sessions: []MeditationSession{}},
		Theme:                 DefaultTheme(),
		VoiceSettings:         DefaultVoiceSettings(),
		LastUpdated:           now,
	}
}

// Clone returns a deep copy so a mutation can be applied without the
// in-flight state being visible to readers.
func (d WellnessData) Clone() WellnessData {
	c := d
	c.Meals = slices.Clone(d.Meals)
	c.MealArchive = slices.Clone(d.MealArchive)
	c.Addictions = slices.Clone(d.Addictions)
	c.JournalEntries = slices.Clone(d.JournalEntries)
	c.Affirmations = slices.Clone(d.Affirmations)

	c.ExtendedMeals = cloneEach(d.ExtendedMeals, func(m ExtendedMeal) ExtendedMeal {
		m.Ingredients = slices.Clone(m.Ingredients)
		return m
	})
	c.Supplements = cloneEach(d.Supplements, func(s Supplement) Supplement {
		s.LastTaken = clonePtr(s.LastTaken)
		return s
	})
	c.Goals = cloneEach(d.Goals, func(g Goal) Goal {
		g.Milestones = slices.Clone(g.Milestones)
		g.TargetDate = clonePtr(g.TargetDate)
		g.CompletedAt = clonePtr(g.CompletedAt)
		return g
	})
	c.ChatMessages = cloneEach(d.ChatMessages, func(m ChatMessage) ChatMessage {
		m.QuickActions = slices.Clone(m.QuickActions)
		return m
	})
	c.Routines = cloneEach(d.Routines, func(r Routine) Routine {
		r.HabitLinks = slices.Clone(r.HabitLinks)
		r.LastCompleted = clonePtr(r.LastCompleted)
		return r
	})
	c.RoutineCompletions = cloneEach(d.RoutineCompletions, func(rc RoutineCompletion) RoutineCompletion {
		rc.CompletedLinks = slices.Clone(rc.CompletedLinks)
		return rc
	})
	c.VisionBoards = cloneEach(d.VisionBoards, func(b VisionBoard) VisionBoard {
		b.Elements = cloneEach(b.Elements, func(el VisionElement) VisionElement {
			el.TargetDate = clonePtr(el.TargetDate)
			el.AchievedDate = clonePtr(el.AchievedDate)
			return el
		})
		return b
	})
	c.VisualizationSessions = cloneEach(d.VisualizationSessions, func(v VisualizationSession) VisualizationSession {
		v.FocusGoals = slices.Clone(v.FocusGoals)
		return v
	})
	c.DreamLifeScript = clonePtr(d.DreamLifeScript)
	c.UserProfile = clonePtr(d.UserProfile)
	c.Meditation.LastMeditationDate = clonePtr(d.Meditation.LastMeditationDate)
	c.Meditation.Sessions = slices.Clone(d.Meditation.Sessions)
	return c
}

func cloneEach[T any](in []T, copyFn func(T) T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = copyFn(v)
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

package models

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Milestone struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Goal progress is always kept within [0,100].
type Goal struct {
	ID                string      `json:"id"`
	Title             string      `json:"title"`
	Description       string      `json:"description,omitempty"`
	Category          string      `json:"category"`
	TargetDate        *time.Time  `json:"targetDate,omitempty"`
	MeasurementMethod string      `json:"measurementMethod"`
	Priority          Priority    `json:"priority"`
	Milestones        []Milestone `json:"milestones"`
	Progress          int         `json:"progress"`
	Completed         bool        `json:"completed"`
	CompletedAt       *time.Time  `json:"completedAt,omitempty"`
	CreatedAt         time.Time   `json:"createdAt"`
}

type Mood string

const (
	MoodGreat    Mood = "great"
	MoodGood     Mood = "good"
	MoodOkay     Mood = "okay"
	MoodBad      Mood = "bad"
	MoodTerrible Mood = "terrible"
)

// Moods lists the accepted journal moods.
var Moods = []Mood{MoodGreat, MoodGood, MoodOkay, MoodBad, MoodTerrible}

// Valid reports whether m is one of Moods.
func (m Mood) Valid() bool {
	for _, known := range Moods {
		if m == known {
			return true
		}
	}
	return false
}

type JournalEntry struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Mood          Mood      `json:"mood"`
	Gratitude     string    `json:"gratitude"`
	Challenges    string    `json:"challenges"`
	Wins          string    `json:"wins"`
	TomorrowFocus string    `json:"tomorrowFocus"`
	Content       string    `json:"content"`
	Date          time.Time `json:"date"`
}

package models

import "time"

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type ElementStyle struct {
	Color           string `json:"color,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	FontSize        int    `json:"fontSize,omitempty"`
}

// VisionElement's Achieved flag is one-way: once set it is never cleared.
type VisionElement struct {
	ID           string       `json:"id"`
	Type         string       `json:"type"`
	Title        string       `json:"title"`
	Content      string       `json:"content"`
	Category     string       `json:"category"`
	TargetDate   *time.Time   `json:"targetDate,omitempty"`
	Achieved     bool         `json:"achieved"`
	AchievedDate *time.Time   `json:"achievedDate,omitempty"`
	Position     Position     `json:"position"`
	Size         Size         `json:"size"`
	Style        ElementStyle `json:"style"`
}

type VisionBoard struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Elements        []VisionElement `json:"elements"`
	BackgroundColor string          `json:"backgroundColor"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// AchievedCount counts the board's achieved elements.
func (b VisionBoard) AchievedCount() int {
	n := 0
	for _, el := range b.Elements {
		if el.Achieved {
			n++
		}
	}
	return n
}

type Affirmation struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Category  string    `json:"category"`
	IsCustom  bool      `json:"isCustom"`
	TimesUsed int       `json:"timesUsed"`
	CreatedAt time.Time `json:"createdAt"`
}

type VisualizationSession struct {
	ID         string    `json:"id"`
	Duration   int       `json:"duration"` // seconds
	FocusGoals []string  `json:"focusGoals"`
	Notes      string    `json:"notes"`
	Mood       int       `json:"mood"` // 1-10
	Date       time.Time `json:"date"`
}

// DreamLifeScript is a singleton that is only ever overwritten wholesale.
type DreamLifeScript struct {
	Health         string    `json:"health"`
	Relationships  string    `json:"relationships"`
	Career         string    `json:"career"`
	Finances       string    `json:"finances"`
	PersonalGrowth string    `json:"personalGrowth"`
	Lifestyle      string    `json:"lifestyle"`
	LastUpdated    time.Time `json:"lastUpdated"`
}

package models

import "time"

type MeditationSession struct {
	ID       string    `json:"id"`
	Breaths  int       `json:"breaths"`
	Duration int       `json:"duration"` // seconds
	Date     time.Time `json:"date"`
}

type MeditationData struct {
	TotalBreaths       int                 `json:"totalBreaths"`
	DaysStreak         int                 `json:"daysStreak"`
	LastMeditationDate *time.Time          `json:"lastMeditationDate,omitempty"`
	Sessions           []MeditationSession `json:"sessions"`
	TodayCompleted     bool                `json:"todayCompleted"`
}

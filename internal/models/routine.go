package models

import "time"

// LinkType is the role a habit plays in a routine's trigger/habit/reward chain.
type LinkType string

const (
	LinkTrigger LinkType = "trigger"
	LinkHabit   LinkType = "habit"
	LinkReward  LinkType = "reward"
)

// Valid reports whether t is a known link type.
func (t LinkType) Valid() bool {
	return t == LinkTrigger || t == LinkHabit || t == LinkReward
}

type HabitLink struct {
	ID           string   `json:"id"`
	Type         LinkType `json:"type"`
	Name         string   `json:"name"`
	Points       int      `json:"points"`
	Completed    bool     `json:"completed"`
	TimeEstimate int      `json:"timeEstimate"` // minutes
	IsKeystone   bool     `json:"isKeystone"`
}

// Routine is an ordered chain of habit links with running completion stats.
type Routine struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Type             string      `json:"type"`
	HabitLinks       []HabitLink `json:"habitLinks"`
	IsActive         bool        `json:"isActive"`
	Streak           int         `json:"streak"`
	BestStreak       int         `json:"bestStreak"`
	LastCompleted    *time.Time  `json:"lastCompleted,omitempty"`
	CompletionRate   float64     `json:"completionRate"`
	TotalCompletions int         `json:"totalCompletions"`
	CreatedAt        time.Time   `json:"createdAt"`
}

// TotalPoints sums the points of every link in the routine.
func (r Routine) TotalPoints() int {
	total := 0
	for _, link := range r.HabitLinks {
		total += link.Points
	}
	return total
}

// RoutineCompletion records one completion event. It is immutable once created.
type RoutineCompletion struct {
	ID                   string    `json:"id"`
	RoutineID            string    `json:"routineId"`
	Date                 time.Time `json:"date"`
	CompletedLinks       []string  `json:"completedLinks"`
	PartialCompletion    bool      `json:"partialCompletion"`
	CompletionPercentage float64   `json:"completionPercentage"`
}

package models

import (
	"time"

	"github.com/julianstephens/phoenix-rise/internal/utils"
)

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// Meal is an entry in the daily meal log.
type Meal struct {
	ID        string    `json:"id"`
	Type      MealType  `json:"type"`
	Name      string    `json:"name"`
	Calories  int       `json:"calories"`
	Completed bool      `json:"completed"`
	Date      time.Time `json:"date"`
}

// Macros is a per-meal macronutrient breakdown in grams.
type Macros struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

// ExtendedMeal is a planned meal with nutrition detail. It is not pruned on rollover.
type ExtendedMeal struct {
	ID          string    `json:"id"`
	Type        MealType  `json:"type"`
	Name        string    `json:"name"`
	Calories    int       `json:"calories"`
	Macros      Macros    `json:"macros"`
	Ingredients []string  `json:"ingredients"`
	Completed   bool      `json:"completed"`
	Date        time.Time `json:"date"`
}

// Addiction tracks time since a habit was last relapsed into.
type Addiction struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	LastReset time.Time `json:"lastReset"`
	CreatedAt time.Time `json:"createdAt"`
}

// StreakDays is derived on every read and never stored.
func (a Addiction) StreakDays(now time.Time) int {
	return utils.WholeDaysSince(a.LastReset, now)
}

// Supplement is a daily supplement with a Sunday-indexed weekly history.
type Supplement struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Dosage        string     `json:"dosage"`
	TimeOfDay     string     `json:"time"`
	TakenToday    bool       `json:"takenToday"`
	LastTaken     *time.Time `json:"lastTaken,omitempty"`
	WeeklyHistory [7]bool    `json:"weeklyHistory"`
}

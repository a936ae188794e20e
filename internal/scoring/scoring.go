// Package scoring computes Phoenix points from a wellness snapshot.
package scoring

import (
	"math"
	"time"

	"github.com/julianstephens/phoenix-rise/internal/constants"
	"github.com/julianstephens/phoenix-rise/internal/logger"
	"github.com/julianstephens/phoenix-rise/internal/models"
	"github.com/julianstephens/phoenix-rise/internal/utils"
)

// Breakdown itemizes every term of the score.
type Breakdown struct {
	Meals               int `json:"meals"`
	Addictions          int `json:"addictions"`
	Supplements         int `json:"supplements"`
	Goals               int `json:"goals"`
	Journal             int `json:"journal"`
	Routines            int `json:"routines"`
	Visualizations      int `json:"visualizations"`
	Vision              int `json:"vision"`
	VisualizationStreak int `json:"visualizationStreak"`
	MeditationSessions  int `json:"meditationSessions"`
	MeditationStreak    int `json:"meditationStreak"`
	MeditationToday     int `json:"meditationToday"`
}

// Total sums every term.
func (b Breakdown) Total() int {
	return b.Meals + b.Addictions + b.Supplements + b.Goals + b.Journal + b.Routines +
		b.Visualizations + b.Vision + b.VisualizationStreak +
		b.MeditationSessions + b.MeditationStreak + b.MeditationToday
}

// Score returns the total points for data as of now. It never panics; an
// unexpected failure while scoring yields 0.
func Score(data models.WellnessData, now time.Time) (total int) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Scoring failed, reporting zero points", "panic", r)
			total = 0
		}
	}()
	return Compute(data, now).Total()
}

// Compute builds the itemized breakdown. Unlike Score it does not recover.
func Compute(data models.WellnessData, now time.Time) Breakdown {
	var b Breakdown

	for _, meal := range data.Meals {
		if meal.Completed {
			b.Meals += constants.PointsPerCompletedMeal
		}
	}

	for _, a := range data.Addictions {
		b.Addictions += a.StreakDays(now) * constants.PointsPerAddictionDay
	}

	for _, s := range data.Supplements {
		if s.TakenToday {
			b.Supplements += constants.PointsPerSupplementTaken
		}
	}

	for _, g := range data.Goals {
		if g.Completed {
			b.Goals += constants.PointsPerCompletedGoal
		}
	}

	b.Journal = len(data.JournalEntries) * constants.PointsPerJournalEntry

	routinePoints := make(map[string]int, len(data.Routines))
	for _, r := range data.Routines {
		routinePoints[r.ID] = r.TotalPoints()
	}
	for _, c := range data.RoutineCompletions {
		if !utils.IsToday(c.Date, now) {
			continue
		}
		b.Routines += int(math.Floor(float64(routinePoints[c.RoutineID]) * c.CompletionPercentage / 100))
	}

	b.Visualizations = len(data.VisualizationSessions) * constants.PointsPerVisualization
	for _, board := range data.VisionBoards {
		b.Vision += board.AchievedCount() * constants.PointsPerAchievedVision
	}
	b.VisualizationStreak = data.VisualizationStreak * constants.PointsPerVisualizationStreak

	b.MeditationSessions = len(data.Meditation.Sessions) * constants.PointsPerMeditationSession
	b.MeditationStreak = data.Meditation.DaysStreak * constants.PointsPerMeditationStreakDay
	if data.Meditation.TodayCompleted {
		b.MeditationToday = constants.PointsForMeditationCompletion
	}

	return b
}

package constants

// Phoenix point weights.
const (
	PointsPerCompletedMeal        = 10
	PointsPerAddictionDay         = 5
	PointsPerSupplementTaken      = 2
	PointsPerCompletedGoal        = 50
	PointsPerJournalEntry         = 15
	PointsPerVisualization        = 5
	PointsPerAchievedVision       = 25
	PointsPerVisualizationStreak  = 3
	PointsPerMeditationSession    = 5
	PointsPerMeditationStreakDay  = 2
	PointsForMeditationCompletion = 10
)

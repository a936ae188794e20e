package store

import (
	"strings"
	"time"

	"github.com/julianstephens/phoenix-rise/internal/models"
)

// GoalPatch carries optional edits; nil fields are left unchanged.
type GoalPatch struct {
	Title             *string
	Description       *string
	Category          *string
	TargetDate        *time.Time
	MeasurementMethod *string
	Priority          *models.Priority
}

func validPriority(p models.Priority) bool {
	return p == models.PriorityLow || p == models.PriorityMedium || p == models.PriorityHigh
}

func clampProgress(p int) int {
	return min(max(p, 0), 100)
}

// AddGoal creates a goal. Milestones without an ID are assigned one.
func (s *Store) AddGoal(goal models.Goal) (models.Goal, error) {
	goal.Title = strings.TrimSpace(goal.Title)
	if goal.Title == "" {
		return models.Goal{}, invalid("goal title is required")
	}
	if goal.Priority == "" {
		goal.Priority = models.PriorityMedium
	}
	if !validPriority(goal.Priority) {
		return models.Goal{}, invalid("unknown priority %q", goal.Priority)
	}
	goal.Progress = clampProgress(goal.Progress)
	goal.Completed = false
	goal.CompletedAt = nil
	if goal.Milestones == nil {
		goal.Milestones = []models.Milestone{}
	}

	err := s.update(func(d *models.WellnessData, now time.Time) error {
		goal.ID = s.newID()
		goal.CreatedAt = now
		for i := range goal.Milestones {
			if goal.Milestones[i].ID == "" {
				goal.Milestones[i].ID = s.newID()
			}
		}
		d.Goals = append(d.Goals, goal)
		return nil
	})
	return goal, err
}

func (s *Store) withGoal(id string, fn func(g *models.Goal, now time.Time) error) error {
	return s.update(func(d *models.WellnessData, now time.Time) error {
		for i := range d.Goals {
			if d.Goals[i].ID == id {
				return fn(&d.Goals[i], now)
			}
		}
		return notFound("goal", id)
	})
}

func (s *Store) UpdateGoal(id string, patch GoalPatch) error {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return invalid("goal title cannot be empty")
	}
	if patch.Priority != nil && !validPriority(*patch.Priority) {
		return invalid("unknown priority %q", *patch.Priority)
	}
	return s.withGoal(id, func(g *models.Goal, _ time.Time) error {
		if patch.Title != nil {
			g.Title = strings.TrimSpace(*patch.Title)
		}
		if patch.Description != nil {
			g.Description = *patch.Description
		}
		if patch.Category != nil {
			g.Category = *patch.Category
		}
		if patch.TargetDate != nil {
			target := *patch.TargetDate
			g.TargetDate = &target
		}
		if patch.MeasurementMethod != nil {
			g.MeasurementMethod = *patch.MeasurementMethod
		}
		if patch.Priority != nil {
			g.Priority = *patch.Priority
		}
		return nil
	})
}

// UpdateGoalProgress clamps progress to [0,100]. Reaching 100 completes the
// goal; dropping below it reopens the goal.
func (s *Store) UpdateGoalProgress(id string, progress int) error {
	return s.withGoal(id, func(g *models.Goal, now time.Time) error {
		g.Progress = clampProgress(progress)
		if g.Progress == 100 {
			if !g.Completed {
				done := now
				g.CompletedAt = &done
			}
			g.Completed = true
		} else {
			g.Completed = false
			g.CompletedAt = nil
		}
		return nil
	})
}

func (s *Store) CompleteGoal(id string) error {
	return s.UpdateGoalProgress(id, 100)
}

func (s *Store) DeleteGoal(id string) error {
	return s.update(func(d *models.WellnessData, _ time.Time) error {
		var ok bool
		if d.Goals, ok = remove(d.Goals, func(g models.Goal) bool { return g.ID == id }); !ok {
			return notFound("goal", id)
		}
		return nil
	})
}

// AddMilestone appends a milestone to an existing goal.
func (s *Store) AddMilestone(goalID, title string) (models.Milestone, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Milestone{}, invalid("milestone title is required")
	}
	m := models.Milestone{Title: title}
	err := s.withGoal(goalID, func(g *models.Goal, _ time.Time) error {
		m.ID = s.newID()
		g.Milestones = append(g.Milestones, m)
		return nil
	})
	return m, err
}

func (s *Store) ToggleMilestone(goalID, milestoneID string) error {
	return s.withGoal(goalID, func(g *models.Goal, _ time.Time) error {
		for i := range g.Milestones {
			if g.Milestones[i].ID == milestoneID {
				g.Milestones[i].Completed = !g.Milestones[i].Completed
				return nil
			}
		}
		return notFound("milestone", milestoneID)
	})
}

// JournalPatch carries optional edits; nil fields are left unchanged.
type JournalPatch struct {
	Title         *string
	Mood          *models.Mood
	Gratitude     *string
	Challenges    *string
	Wins          *string
	TomorrowFocus *string
	Content       *string
}

// AddJournalEntry puts the newest entry first.
func (s *Store) AddJournalEntry(entry models.JournalEntry) (models.JournalEntry, error) {
	if !entry.Mood.Valid() {
		return models.JournalEntry{}, invalid("unknown mood %q", entry.Mood)
	}
	if strings.TrimSpace(entry.Content) == "" && strings.TrimSpace(entry.Gratitude) == "" &&
		strings.TrimSpace(entry.Wins) == "" && strings.TrimSpace(entry.Challenges) == "" {
		return models.JournalEntry{}, invalid("journal entry is empty")
	}

	err := s.update(func(d *models.WellnessData, now time.Time) error {
		entry.ID = s.newID()
		if entry.Date.IsZero() {
			entry.Date = now
		}
		d.JournalEntries = append([]models.JournalEntry{entry}, d.JournalEntries...)
		return nil
	})
	return entry, err
}

func (s *Store) UpdateJournalEntry(id string, patch JournalPatch) error {
	if patch.Mood != nil && !patch.Mood.Valid() {
		return invalid("unknown mood %q", *patch.Mood)
	}
	return s.update(func(d *models.WellnessData, _ time.Time) error {
		for i := range d.JournalEntries {
			e := &d.JournalEntries[i]
			if e.ID != id {
				continue
			}
			setIf(&e.Title, patch.Title)
			setIf(&e.Mood, patch.Mood)
			setIf(&e.Gratitude, patch.Gratitude)
			setIf(&e.Challenges, patch.Challenges)
			setIf(&e.Wins, patch.Wins)
			setIf(&e.TomorrowFocus, patch.TomorrowFocus)
			setIf(&e.Content, patch.Content)
			return nil
		}
		return notFound("journal entry", id)
	})
}

func (s *Store) DeleteJournalEntry(id string) error {
	return s.update(func(d *models.WellnessData, _ time.Time) error {
		var ok bool
		if d.JournalEntries, ok = remove(d.JournalEntries, func(e models.JournalEntry) bool { return e.ID == id }); !ok {
			return notFound("journal entry", id)
		}
		return nil
	})
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

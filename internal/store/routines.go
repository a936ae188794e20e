package store

import (
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/phoenix-rise/internal/models"
)

// RoutinePatch carries optional edits; nil fields are left unchanged.
// Replacing HabitLinks keeps the routine's streak statistics.
type RoutinePatch struct {
	Name       *string
	Type       *string
	HabitLinks *[]models.HabitLink
}

func (s *Store) prepareLinks(links []models.HabitLink) ([]models.HabitLink, error) {
	out := make([]models.HabitLink, len(links))
	for i, link := range links {
		link.Name = strings.TrimSpace(link.Name)
		if link.Name == "" {
			return nil, invalid("habit link %d has no name", i+1)
		}
		if !link.Type.Valid() {
			return nil, invalid("habit link %q has unknown type %q", link.Name, link.Type)
		}
		if link.Points < 0 {
			return nil, invalid("habit link %q has negative points", link.Name)
		}
		if link.ID == "" {
			link.ID = s.newID()
		}
		out[i] = link
	}
	return out, nil
}

func (s *Store) AddRoutine(r models.Routine) (models.Routine, error) {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return models.Routine{}, invalid("routine name is required")
	}
	links, err := s.prepareLinks(r.HabitLinks)
	if err != nil {
		return models.Routine{}, err
	}

	routine := models.Routine{
		Name:       r.Name,
		Type:       r.Type,
		HabitLinks: links,
		IsActive:   true,
	}
	err = s.update(func(d *models.WellnessData, now time.Time) error {
		routine.ID = s.newID()
		routine.CreatedAt = now
		d.Routines = append(d.Routines, routine)
		return nil
	})
	return routine, err
}

func (s *Store) withRoutine(id string, fn func(r *models.Routine, d *models.WellnessData, now time.Time) error) error {
	return s.update(func(d *models.WellnessData, now time.Time) error {
		for i := range d.Routines {
			if d.Routines[i].ID == id {
				return fn(&d.Routines[i], d, now)
			}
		}
		return notFound("routine", id)
	})
}

func (s *Store) UpdateRoutine(id string, patch RoutinePatch) error {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return invalid("routine name cannot be empty")
	}
	var links []models.HabitLink
	if patch.HabitLinks != nil {
		var err error
		if links, err = s.prepareLinks(*patch.HabitLinks); err != nil {
			return err
		}
	}
	return s.withRoutine(id, func(r *models.Routine, _ *models.WellnessData, _ time.Time) error {
		if patch.Name != nil {
			r.Name = strings.TrimSpace(*patch.Name)
		}
		setIf(&r.Type, patch.Type)
		if patch.HabitLinks != nil {
			r.HabitLinks = links
		}
		return nil
	})
}

func (s *Store) ToggleRoutineActive(id string) error {
	return s.withRoutine(id, func(r *models.Routine, _ *models.WellnessData, _ time.Time) error {
		r.IsActive = !r.IsActive
		return nil
	})
}

// DeleteRoutine removes the routine. Its completion records stay as history.
func (s *Store) DeleteRoutine(id string) error {
	return s.update(func(d *models.WellnessData, _ time.Time) error {
		var ok bool
		if d.Routines, ok = remove(d.Routines, func(r models.Routine) bool { return r.ID == id }); !ok {
			return notFound("routine", id)
		}
		return nil
	})
}

// CompleteRoutine records one completion of a routine with the given links
// done. Unknown and duplicate link IDs are ignored.
//
// A full completion extends the streak and may raise bestStreak; anything
// less resets the streak to zero. completionRate is the running mean of
// every completion's percentage.
func (s *Store) CompleteRoutine(id string, completedLinkIDs []string) (models.RoutineCompletion, error) {
	var completion models.RoutineCompletion
	err := s.withRoutine(id, func(r *models.Routine, d *models.WellnessData, now time.Time) error {
		done := make(map[string]bool, len(completedLinkIDs))
		for _, linkID := range completedLinkIDs {
			done[linkID] = true
		}

		completed := make([]string, 0, len(r.HabitLinks))
		for i := range r.HabitLinks {
			link := &r.HabitLinks[i]
			link.Completed = done[link.ID]
			if link.Completed {
				completed = append(completed, link.ID)
			}
		}

		pct := 0.0
		if len(r.HabitLinks) > 0 {
			pct = float64(len(completed)) / float64(len(r.HabitLinks)) * 100
		}

		if pct == 100 {
			r.Streak++
			r.BestStreak = max(r.BestStreak, r.Streak)
		} else {
			r.Streak = 0
		}
		r.CompletionRate = (r.CompletionRate*float64(r.TotalCompletions) + pct) / float64(r.TotalCompletions+1)
		r.TotalCompletions++
		last := now
		r.LastCompleted = &last

		completion = models.RoutineCompletion{
			ID:                   s.newID(),
			RoutineID:            r.ID,
			Date:                 now,
			CompletedLinks:       completed,
			PartialCompletion:    pct < 100,
			CompletionPercentage: pct,
		}
		d.RoutineCompletions = append(d.RoutineCompletions, completion)
		return nil
	})
	completion.CompletedLinks = slices.Clone(completion.CompletedLinks)
	return completion, err
}

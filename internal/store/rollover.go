package store

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/phoenix-rise/internal/constants"
	"github.com/julianstephens/phoenix-rise/internal/logger"
	"github.com/julianstephens/phoenix-rise/internal/models"
	"github.com/julianstephens/phoenix-rise/internal/utils"
)

// rollover resets the per-day state of d for a new calendar day.
//
// Meals not dated today leave the live list. Under the archive retention
// they move to MealArchive; under prune they are dropped.
func rollover(d *models.WellnessData, now time.Time, retention string) {
	for i := range d.Supplements {
		d.Supplements[i].TakenToday = false
	}

	today := make([]models.Meal, 0, len(d.Meals))
	for _, m := range d.Meals {
		if utils.IsToday(m.Date, now) {
			today = append(today, m)
			continue
		}
		if retention == constants.MealRetentionArchive {
			d.MealArchive = append(d.MealArchive, m)
		}
	}
	d.Meals = today

	for i := range d.Routines {
		for j := range d.Routines[i].HabitLinks {
			d.Routines[i].HabitLinks[j].Completed = false
		}
	}

	last := d.Meditation.LastMeditationDate
	if last == nil || !utils.IsToday(*last, now) {
		d.Meditation.TodayCompleted = false
	}

	d.LastUpdated = now
}

// RolloverJob applies the daily rollover at local midnight while a
// long-running command (voice listen) keeps the store open across days.
type RolloverJob struct {
	store *Store
	cron  *cron.Cron
}

func NewRolloverJob(s *Store, loc *time.Location) (*RolloverJob, error) {
	if loc == nil {
		loc = time.Local
	}
	j := &RolloverJob{
		store: s,
		cron:  cron.New(cron.WithLocation(loc)),
	}
	if _, err := j.cron.AddJob("0 0 * * *", j); err != nil {
		return nil, fmt.Errorf("failed to schedule rollover: %w", err)
	}
	return j, nil
}

// Run implements cron.Job.
func (j *RolloverJob) Run() {
	if j.store.Rollover(j.store.now()) {
		logger.Debug("Midnight rollover ran")
	}
}

func (j *RolloverJob) Start() {
	j.cron.Start()
}

// Stop waits for a running rollover to finish.
func (j *RolloverJob) Stop(ctx context.Context) {
	done := j.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// Next reports when the job fires next; zero before Start.
func (j *RolloverJob) Next() time.Time {
	entries := j.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

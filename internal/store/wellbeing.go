package store

import (
	"strings"
	"time"

	"github.com/julianstephens/phoenix-rise/internal/models"
	"github.com/julianstephens/phoenix-rise/internal/utils"
)

// AddMeditationSession records a breathing session and adds its breaths to
// the running total. It does not complete the day on its own.
func (s *Store) AddMeditationSession(breaths, durationSeconds int) (models.MeditationSession, error) {
	if breaths < 0 || durationSeconds < 0 {
		return models.MeditationSession{}, invalid("breaths and duration cannot be negative")
	}
	var session models.MeditationSession
	err := s.update(func(d *models.WellnessData, now time.Time) error {
		session = models.MeditationSession{
			ID:       s.newID(),
			Breaths:  breaths,
			Duration: durationSeconds,
			Date:     now,
		}
		d.Meditation.TotalBreaths += breaths
		d.Meditation.Sessions = append(d.Meditation.Sessions, session)
		return nil
	})
	return session, err
}

// CompleteMeditationDay marks today done. The streak continues when the
// previous completion was yesterday and restarts at one after a gap.
// Completing twice in one day changes nothing.
func (s *Store) CompleteMeditationDay() error {
	return s.update(func(d *models.WellnessData, now time.Time) error {
		m := &d.Meditation
		last := m.LastMeditationDate
		switch {
		case last != nil && utils.IsToday(*last, now):
			m.TodayCompleted = true
			return nil
		case last != nil && utils.IsYesterday(*last, now):
			m.DaysStreak++
		default:
			m.DaysStreak = 1
		}
		at := now
		m.LastMeditationDate = &at
		m.TodayCompleted = true
		return nil
	})
}

// SaveUserProfile replaces the profile.
func (s *Store) SaveUserProfile(p models.UserProfile) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return invalid("profile name is required")
	}
	if p.Age < 0 || p.Age > 150 {
		return invalid("age %d is out of range", p.Age)
	}
	return s.update(func(d *models.WellnessData, _ time.Time) error {
		d.UserProfile = &p
		return nil
	})
}

func (s *Store) SetTheme(t models.Theme) error {
	for field, v := range map[string]string{
		"name":       t.Name,
		"primary":    t.Primary,
		"secondary":  t.Secondary,
		"accent":     t.Accent,
		"background": t.Background,
		"text":       t.Text,
	} {
		if strings.TrimSpace(v) == "" {
			return invalid("theme %s is required", field)
		}
	}
	return s.update(func(d *models.WellnessData, _ time.Time) error {
		d.Theme = t
		return nil
	})
}

// ResetTheme restores the phoenix palette.
func (s *Store) ResetTheme() error {
	return s.SetTheme(models.DefaultTheme())
}

func (s *Store) AddChatMessage(msg models.ChatMessage) (models.ChatMessage, error) {
	if strings.TrimSpace(msg.Text) == "" {
		return models.ChatMessage{}, invalid("message text is required")
	}
	err := s.update(func(d *models.WellnessData, now time.Time) error {
		msg.ID = s.newID()
		if msg.Timestamp.IsZero() {
			msg.Timestamp = now
		}
		d.ChatMessages = append(d.ChatMessages, msg)
		return nil
	})
	return msg, err
}

func (s *Store) ClearChatHistory() error {
	return s.update(func(d *models.WellnessData, _ time.Time) error {
		d.ChatMessages = []models.ChatMessage{}
		return nil
	})
}

package store

import (
	"strings"
	"time"

	"github.com/julianstephens/phoenix-rise/internal/models"
	"github.com/julianstephens/phoenix-rise/internal/utils"
)

// VisionElementPatch carries optional edits; nil fields are left unchanged.
type VisionElementPatch struct {
	Title      *string
	Content    *string
	Category   *string
	TargetDate *time.Time
	Position   *models.Position
	Size       *models.Size
	Style      *models.ElementStyle
}

func (s *Store) AddVisionBoard(board models.VisionBoard) (models.VisionBoard, error) {
	board.Name = strings.TrimSpace(board.Name)
	if board.Name == "" {
		return models.VisionBoard{}, invalid("vision board name is required")
	}
	board.Elements = []models.VisionElement{}

	err := s.update(func(d *models.WellnessData, now time.Time) error {
		board.ID = s.newID()
		board.CreatedAt = now
		d.VisionBoards = append(d.VisionBoards, board)
		return nil
	})
	return board, err
}

func (s *Store) DeleteVisionBoard(id string) error {
	return s.update(func(d *models.WellnessData, _ time.Time) error {
		var ok bool
		if d.VisionBoards, ok = remove(d.VisionBoards, func(b models.VisionBoard) bool { return b.ID == id }); !ok {
			return notFound("vision board", id)
		}
		return nil
	})
}

func (s *Store) withBoard(id string, fn func(b *models.VisionBoard, now time.Time) error) error {
	return s.update(func(d *models.WellnessData, now time.Time) error {
		for i := range d.VisionBoards {
			if d.VisionBoards[i].ID == id {
				return fn(&d.VisionBoards[i], now)
			}
		}
		return notFound("vision board", id)
	})
}

func (s *Store) withElement(boardID, elementID string, fn func(el *models.VisionElement, now time.Time)) error {
	return s.withBoard(boardID, func(b *models.VisionBoard, now time.Time) error {
		for i := range b.Elements {
			if b.Elements[i].ID == elementID {
				fn(&b.Elements[i], now)
				return nil
			}
		}
		return notFound("vision element", elementID)
	})
}

// AddVisionElement adds an unachieved element to a board.
func (s *Store) AddVisionElement(boardID string, el models.VisionElement) (models.VisionElement, error) {
	el.Title = strings.TrimSpace(el.Title)
	if el.Title == "" {
		return models.VisionElement{}, invalid("vision element title is required")
	}
	if el.Type == "" {
		el.Type = "text"
	}
	el.Achieved = false
	el.AchievedDate = nil

	err := s.withBoard(boardID, func(b *models.VisionBoard, _ time.Time) error {
		el.ID = s.newID()
		b.Elements = append(b.Elements, el)
		return nil
	})
	return el, err
}

func (s *Store) UpdateVisionElement(boardID, elementID string, patch VisionElementPatch) error {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return invalid("vision element title cannot be empty")
	}
	return s.withElement(boardID, elementID, func(el *models.VisionElement, _ time.Time) {
		if patch.Title != nil {
			el.Title = strings.TrimSpace(*patch.Title)
		}
		setIf(&el.Content, patch.Content)
		setIf(&el.Category, patch.Category)
		if patch.TargetDate != nil {
			target := *patch.TargetDate
			el.TargetDate = &target
		}
		setIf(&el.Position, patch.Position)
		setIf(&el.Size, patch.Size)
		setIf(&el.Style, patch.Style)
	})
}

// MarkElementAchieved is one-way; marking an achieved element again keeps
// its original achievement date.
func (s *Store) MarkElementAchieved(boardID, elementID string) error {
	return s.withElement(boardID, elementID, func(el *models.VisionElement, now time.Time) {
		if el.Achieved {
			return
		}
		el.Achieved = true
		at := now
		el.AchievedDate = &at
	})
}

func (s *Store) DeleteVisionElement(boardID, elementID string) error {
	return s.withBoard(boardID, func(b *models.VisionBoard, _ time.Time) error {
		var ok bool
		if b.Elements, ok = remove(b.Elements, func(el models.VisionElement) bool { return el.ID == elementID }); !ok {
			return notFound("vision element", elementID)
		}
		return nil
	})
}

func (s *Store) AddAffirmation(text, category string) (models.Affirmation, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Affirmation{}, invalid("affirmation text is required")
	}
	var a models.Affirmation
	err := s.update(func(d *models.WellnessData, now time.Time) error {
		a = models.Affirmation{
			ID:        s.newID(),
			Text:      text,
			Category:  category,
			IsCustom:  true,
			CreatedAt: now,
		}
		d.Affirmations = append(d.Affirmations, a)
		return nil
	})
	return a, err
}

// UseAffirmation counts one more recital.
func (s *Store) UseAffirmation(id string) error {
	return s.update(func(d *models.WellnessData, _ time.Time) error {
		for i := range d.Affirmations {
			if d.Affirmations[i].ID == id {
				d.Affirmations[i].TimesUsed++
				return nil
			}
		}
		return notFound("affirmation", id)
	})
}

func (s *Store) DeleteAffirmation(id string) error {
	return s.update(func(d *models.WellnessData, _ time.Time) error {
		var ok bool
		if d.Affirmations, ok = remove(d.Affirmations, func(a models.Affirmation) bool { return a.ID == id }); !ok {
			return notFound("affirmation", id)
		}
		return nil
	})
}

// AddVisualizationSession logs a session and advances the streak: a session
// on the day after (or the same day as) the previous one keeps it going,
// any gap restarts it at one.
func (s *Store) AddVisualizationSession(v models.VisualizationSession) (models.VisualizationSession, error) {
	if v.Duration < 0 {
		return models.VisualizationSession{}, invalid("duration cannot be negative")
	}
	if v.Mood < 0 || v.Mood > 10 {
		return models.VisualizationSession{}, invalid("mood must be 0 (unset) or 1-10")
	}
	if v.FocusGoals == nil {
		v.FocusGoals = []string{}
	}

	err := s.update(func(d *models.WellnessData, now time.Time) error {
		v.ID = s.newID()
		v.Date = now

		switch {
		case len(d.VisualizationSessions) == 0:
			d.VisualizationStreak = 1
		default:
			last := d.VisualizationSessions[len(d.VisualizationSessions)-1].Date
			switch {
			case utils.IsToday(last, now):
				d.VisualizationStreak = max(d.VisualizationStreak, 1)
			case utils.IsYesterday(last, now):
				d.VisualizationStreak++
			default:
				d.VisualizationStreak = 1
			}
		}
		d.VisualizationSessions = append(d.VisualizationSessions, v)
		return nil
	})
	return v, err
}

// SaveDreamLifeScript overwrites the script wholesale.
func (s *Store) SaveDreamLifeScript(script models.DreamLifeScript) error {
	return s.update(func(d *models.WellnessData, now time.Time) error {
		script.LastUpdated = now
		d.DreamLifeScript = &script
		return nil
	})
}

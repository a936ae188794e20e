package store

import (
	"strings"
	"time"

	"github.com/julianstephens/phoenix-rise/internal/models"
)

func validMealType(t models.MealType) bool {
	switch t {
	case models.MealBreakfast, models.MealLunch, models.MealDinner, models.MealSnack:
		return true
	}
	return false
}

// AddMeal logs a meal. An empty date means now.
func (s *Store) AddMeal(meal models.Meal) (models.Meal, error) {
	meal.Name = strings.TrimSpace(meal.Name)
	if meal.Name == "" {
		return models.Meal{}, invalid("meal name is required")
	}
	if !validMealType(meal.Type) {
		return models.Meal{}, invalid("unknown meal type %q", meal.Type)
	}
	if meal.Calories < 0 {
		return models.Meal{}, invalid("calories cannot be negative")
	}

	err := s.update(func(d *models.WellnessData, now time.Time) error {
		meal.ID = s.newID()
		if meal.Date.IsZero() {
			meal.Date = now
		}
		d.Meals = append(d.Meals, meal)
		return nil
	})
	return meal, err
}

func (s *Store) ToggleMealCompleted(id string) error {
	return s.update(func(d *models.WellnessData, _ time.Time) error {
		for i := range d.Meals {
			if d.Meals[i].ID == id {
				d.Meals[i].Completed = !d.Meals[i].Completed
				return nil
			}
		}
		return notFound("meal", id)
	})
}

func (s *Store) DeleteMeal(id string) error {
	return s.update(func(d *models.WellnessData, _ time.Time) error {
		var ok bool
		if d.Meals, ok = remove(d.Meals, func(m models.Meal) bool { return m.ID == id }); !ok {
			return notFound("meal", id)
		}
		return nil
	})
}

func (s *Store) AddExtendedMeal(meal models.ExtendedMeal) (models.ExtendedMeal, error) {
	meal.Name = strings.TrimSpace(meal.Name)
	if meal.Name == "" {
		return models.ExtendedMeal{}, invalid("meal name is required")
	}
	if !validMealType(meal.Type) {
		return models.ExtendedMeal{}, invalid("unknown meal type %q", meal.Type)
	}
	if meal.Calories < 0 || meal.Macros.Protein < 0 || meal.Macros.Carbs < 0 || meal.Macros.Fat < 0 {
		return models.ExtendedMeal{}, invalid("calories and macros cannot be negative")
	}
	if meal.Ingredients == nil {
		meal.Ingredients = []string{}
	}

	err := s.update(func(d *models.WellnessData, now time.Time) error {
		meal.ID = s.newID()
		if meal.Date.IsZero() {
			meal.Date = now
		}
		d.ExtendedMeals = append(d.ExtendedMeals, meal)
		return nil
	})
	return meal, err
}

func (s *Store) ToggleExtendedMealCompleted(id string) error {
	return s.update(func(d *models.WellnessData, _ time.Time) error {
		for i := range d.ExtendedMeals {
			if d.ExtendedMeals[i].ID == id {
				d.ExtendedMeals[i].Completed = !d.ExtendedMeals[i].Completed
				return nil
			}
		}
		return notFound("meal", id)
	})
}

func (s *Store) DeleteExtendedMeal(id string) error {
	return s.update(func(d *models.WellnessData, _ time.Time) error {
		var ok bool
		if d.ExtendedMeals, ok = remove(d.ExtendedMeals, func(m models.ExtendedMeal) bool { return m.ID == id }); !ok {
			return notFound("meal", id)
		}
		return nil
	})
}

// AddAddiction starts tracking a streak from now.
func (s *Store) AddAddiction(name string) (models.Addiction, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Addiction{}, invalid("addiction name is required")
	}
	var a models.Addiction
	err := s.update(func(d *models.WellnessData, now time.Time) error {
		a = models.Addiction{ID: s.newID(), Name: name, LastReset: now, CreatedAt: now}
		d.Addictions = append(d.Addictions, a)
		return nil
	})
	return a, err
}

// ResetAddiction restarts the streak at zero days.
func (s *Store) ResetAddiction(id string) error {
	return s.update(func(d *models.WellnessData, now time.Time) error {
		for i := range d.Addictions {
			if d.Addictions[i].ID == id {
				d.Addictions[i].LastReset = now
				return nil
			}
		}
		return notFound("addiction", id)
	})
}

func (s *Store) DeleteAddiction(id string) error {
	return s.update(func(d *models.WellnessData, _ time.Time) error {
		var ok bool
		if d.Addictions, ok = remove(d.Addictions, func(a models.Addiction) bool { return a.ID == id }); !ok {
			return notFound("addiction", id)
		}
		return nil
	})
}

func (s *Store) AddSupplement(supp models.Supplement) (models.Supplement, error) {
	supp.Name = strings.TrimSpace(supp.Name)
	if supp.Name == "" {
		return models.Supplement{}, invalid("supplement name is required")
	}
	supp.TakenToday = false
	supp.LastTaken = nil
	supp.WeeklyHistory = [7]bool{}

	err := s.update(func(d *models.WellnessData, _ time.Time) error {
		supp.ID = s.newID()
		d.Supplements = append(d.Supplements, supp)
		return nil
	})
	return supp, err
}

// ToggleSupplementTaken flips today's flag and mirrors it into the weekly
// history slot for today's weekday.
func (s *Store) ToggleSupplementTaken(id string) error {
	return s.update(func(d *models.WellnessData, now time.Time) error {
		for i := range d.Supplements {
			supp := &d.Supplements[i]
			if supp.ID != id {
				continue
			}
			supp.TakenToday = !supp.TakenToday
			if supp.TakenToday {
				taken := now
				supp.LastTaken = &taken
			}
			supp.WeeklyHistory[now.Weekday()] = supp.TakenToday
			return nil
		}
		return notFound("supplement", id)
	})
}

func (s *Store) DeleteSupplement(id string) error {
	return s.update(func(d *models.WellnessData, _ time.Time) error {
		var ok bool
		if d.Supplements, ok = remove(d.Supplements, func(x models.Supplement) bool { return x.ID == id }); !ok {
			return notFound("supplement", id)
		}
		return nil
	})
}

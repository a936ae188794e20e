package utils

import (
	"time"

	"github.com/julianstephens/phoenix-rise/internal/constants"
)

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day in now's
// location. Both are converted first so persisted UTC stamps compare by local date.
func SameDay(a, b time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.Local
	}
	a, b = a.In(loc), b.In(loc)
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// IsToday reports whether t falls on now's calendar day.
func IsToday(t, now time.Time) bool {
	return !t.IsZero() && SameDay(t, now, now.Location())
}

// IsYesterday reports whether t falls on the calendar day before now.
func IsYesterday(t, now time.Time) bool {
	if t.IsZero() {
		return false
	}
	return SameDay(t, now.AddDate(0, 0, -1), now.Location())
}

// WholeDaysSince returns floor((now - t) / 24h). It is never negative.
func WholeDaysSince(t, now time.Time) int {
	if t.IsZero() || t.After(now) {
		return 0
	}
	return int(now.Sub(t).Hours() / 24)
}

// CalendarDaysBetween counts day boundaries crossed from a to b in b's location.
func CalendarDaysBetween(a, b time.Time) int {
	loc := b.Location()
	start := StartOfDay(a.In(loc))
	end := StartOfDay(b)
	return int(end.Sub(start).Round(time.Hour).Hours() / 24)
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) in the specified timezone.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// dateLayouts are the ISO-ish layouts accepted for persisted dates.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	constants.DateFormat,
}

// ParseDateLike parses an ISO-ish date string in any of the accepted layouts.
func ParseDateLike(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FromEpochMillis converts a JavaScript-style millisecond timestamp.
func FromEpochMillis(ms float64) time.Time {
	return time.UnixMilli(int64(ms)).UTC()
}

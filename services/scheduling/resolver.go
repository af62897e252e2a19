package scheduling

import (
	"time"

	"servio/models"
)

// DayBounds returns [midnight, next midnight) of t's UTC calendar day.
func DayBounds(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// ResolveDay returns the working windows of date's UTC weekday. An unknown day, an
// unavailable day or a day without windows all yield no windows.
func ResolveDay(wa *models.WeeklyAvailability, date time.Time) []models.TimeRange {
	ds, ok := wa.Day(models.DayOfWeekOf(date))
	if !ok || !ds.IsAvailable || len(ds.Windows) == 0 {
		return nil
	}
	out := make([]models.TimeRange, len(ds.Windows))
	copy(out, ds.Windows)
	return out
}

// ClosingTime is the latest window end of the day.
func ClosingTime(windows []models.TimeRange) (models.TimeOfDay, bool) {
	if len(windows) == 0 {
		return 0, false
	}
	closing := windows[0].End
	for _, w := range windows[1:] {
		if w.End > closing {
			closing = w.End
		}
	}
	return closing, true
}

// WithinWindows reports whether [start, start+duration) fits inside one window of start's day.
func WithinWindows(windows []models.TimeRange, start time.Time, durationMinutes int) bool {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	for _, w := range windows {
		if !start.Before(w.Start.On(start)) && !end.After(w.End.On(start)) {
			return true
		}
	}
	return false
}

package scheduling

import (
	"sort"
	"time"

	"servio/models"
)

// SlotStep is the spacing between candidate start times. It is part of the API contract.
const SlotStep = 30 * time.Minute

// EffectiveDuration picks the longer of the service duration and a caller override.
// Overrides shorter than models.MinBookingMinutes are ignored.
func EffectiveDuration(serviceMinutes int, override *int) int {
	if override == nil || *override < models.MinBookingMinutes {
		return serviceMinutes
	}
	if *override > serviceMinutes {
		return *override
	}
	return serviceMinutes
}

// SlotQuery carries everything slot generation needs. Now is injected so results are
// reproducible.
type SlotQuery struct {
	Date            time.Time
	Windows         []models.TimeRange
	DurationMinutes int
	BufferMinutes   int
	Bookings        []models.Booking
	Now             time.Time
}

// GenerateSlots walks each window in SlotStep increments and returns the starts that are in
// the future, fit inside the window, and clear every active booking including buffer.
func GenerateSlots(q SlotQuery) []models.Slot {
	if q.DurationMinutes <= 0 {
		return nil
	}
	duration := time.Duration(q.DurationMinutes) * time.Minute
	slots := make([]models.Slot, 0)

	for _, w := range q.Windows {
		windowEnd := w.End.On(q.Date)
		for cursor := w.Start.On(q.Date); cursor.Before(windowEnd); cursor = cursor.Add(SlotStep) {
			if !cursor.After(q.Now) {
				continue
			}
			// later starts in this window only end later
			if cursor.Add(duration).After(windowEnd) {
				break
			}
			if HasConflict(q.Bookings, cursor, q.DurationMinutes, q.BufferMinutes, "") {
				continue
			}
			slots = append(slots, models.Slot{
				StartTime: models.TimeOfDayOf(cursor).String(),
				Instant:   cursor,
			})
		}
	}

	sort.SliceStable(slots, func(i, j int) bool { return slots[i].Instant.Before(slots[j].Instant) })
	return slots
}

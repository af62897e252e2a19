// Package scheduling holds the availability and booking-conflict engine. Everything here is
// pure: callers pass in schedules, bookings and the current time, and nothing is persisted.
package scheduling

import (
	"time"

	"servio/models"
)

// Interval is a half-open span [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// OccupiedInterval is the span a booking blocks: [start, start+duration+buffer).
// Inflating only the end of every interval enforces a gap of at least buffer on both sides.
func OccupiedInterval(start time.Time, durationMinutes, bufferMinutes int) Interval {
	return Interval{
		Start: start,
		End:   start.Add(time.Duration(durationMinutes+bufferMinutes) * time.Minute),
	}
}

// OccupiedBy returns the occupied interval of an existing booking.
func OccupiedBy(b models.Booking, bufferMinutes int) Interval {
	return OccupiedInterval(b.ScheduledAt, b.DurationMinutes, bufferMinutes)
}

// Overlaps is the one overlap test shared by slot generation and conflict detection.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

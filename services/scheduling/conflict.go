package scheduling

import (
	"time"

	"servio/models"
)

// FindConflict returns the first active booking whose occupied interval overlaps the
// candidate's, or nil. excludeID skips one booking, typically the one being moved.
func FindConflict(bookings []models.Booking, start time.Time, durationMinutes, bufferMinutes int, excludeID string) *models.Booking {
	candidate := OccupiedInterval(start, durationMinutes, bufferMinutes)
	for i := range bookings {
		b := &bookings[i]
		if !b.Status.Active() {
			continue
		}
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if candidate.Overlaps(OccupiedBy(*b, bufferMinutes)) {
			return b
		}
	}
	return nil
}

// HasConflict reports whether FindConflict finds anything.
func HasConflict(bookings []models.Booking, start time.Time, durationMinutes, bufferMinutes int, excludeID string) bool {
	return FindConflict(bookings, start, durationMinutes, bufferMinutes, excludeID) != nil
}

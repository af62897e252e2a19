package models

import "time"

// Slot is a bookable start time, e.g. {"time": "09:30", "scheduledAt": "2025-06-02T09:30:00Z"}.
type Slot struct {
	StartTime string    `json:"time"`
	Instant   time.Time `json:"scheduledAt"`
}

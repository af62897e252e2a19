package models

import "time"

// Notification is an inbox entry stored on the user document.
type Notification struct {
	ID        string         `bson:"id" json:"id"`
	Type      string         `bson:"type" json:"type"`
	Title     string         `bson:"title" json:"title"`
	Message   string         `bson:"message" json:"message"`
	Data      map[string]any `bson:"data,omitempty" json:"data,omitempty"`
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`
	Read      bool           `bson:"read" json:"read"`
}

// RescheduleNotice is emitted once per booking moved by a cascade.
type RescheduleNotice struct {
	BookingID      string    `json:"bookingId"`
	UserID         string    `json:"userId"`
	ProviderID     string    `json:"providerId"`
	OldScheduledAt time.Time `json:"oldScheduledAt"`
	NewScheduledAt time.Time `json:"newScheduledAt"`
	DelayMinutes   int       `json:"delayMinutes"`
}

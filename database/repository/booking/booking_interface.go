package bookingRepo

import (
	"context"
	"time"

	"servio/models"
)

// Reschedule is one downstream booking moved by a cascade.
type Reschedule struct {
	BookingID string
	From      time.Time
	To        time.Time
}

// CascadeWrite is the committed form of a simulated cascade.
type CascadeWrite struct {
	TargetID           string
	OldDurationMinutes int
	NewDurationMinutes int
	Reschedules        []Reschedule
	At                 time.Time
}

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// Create inserts a new booking.
	Create(ctx context.Context, booking *models.Booking) error
	// GetByID retrieves a booking by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// ListActiveByProvider returns pending and confirmed bookings starting in [from, to), oldest first.
	ListActiveByProvider(ctx context.Context, providerID string, from, to time.Time) ([]models.Booking, error)
	// ListByProvider returns bookings of any status starting in [from, to), oldest first.
	ListByProvider(ctx context.Context, providerID string, from, to time.Time) ([]models.Booking, error)
	// UpdateStatus moves a booking from one status to another. It fails with
	// models.ErrInvalidTransition if the stored status is no longer from.
	UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus, at time.Time) (*models.Booking, error)
	// ApplyCascade writes an extension and all of its shifts in one transaction.
	ApplyCascade(ctx context.Context, w CascadeWrite) error
	// EnsureIndexes creates the indexes the queries above rely on.
	EnsureIndexes(ctx context.Context) error
}

package booking

import (
	"context"
	"time"

	"servio/models"
)

// BookingService is the booking surface used by the handlers.
type BookingService interface {
	// GetAvailableSlots lists bookable start times of a provider on the UTC date of date.
	GetAvailableSlots(ctx context.Context, providerID string, date time.Time, serviceID string, durationOverride *int) ([]models.Slot, error)
	// CreateBooking books a slot for userID as a pending, unpaid booking.
	CreateBooking(ctx context.Context, userID string, req models.CreateBookingRequest) (*models.Booking, error)
	// ExtendBooking grows a booking by the configured increment and shifts every later booking of the day.
	ExtendBooking(ctx context.Context, providerID, bookingID string) (*models.ExtendBookingResponse, error)
	// UpdateStatus moves a booking along its lifecycle on behalf of actor.
	UpdateStatus(ctx context.Context, actor models.Actor, bookingID string, status models.BookingStatus) (*models.Booking, error)
	// GetBooking returns a booking visible to actor.
	GetBooking(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error)
	// ListProviderDay returns all bookings of a provider starting on the UTC date of date.
	ListProviderDay(ctx context.Context, providerID string, date time.Time) ([]models.Booking, error)
}

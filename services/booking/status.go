package booking

import (
	"context"
	"fmt"
	"time"

	"servio/models"
	"servio/services/scheduling"

	"go.uber.org/zap"
)

var transitions = map[models.BookingStatus][]models.BookingStatus{
	models.StatusPending:   {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed: {models.StatusCompleted, models.StatusCancelled},
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to models.BookingStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s *DefaultBookingService) UpdateStatus(ctx context.Context, actor models.Actor, bookingID string, status models.BookingStatus) (*models.Booking, error) {
	switch status {
	case models.StatusConfirmed, models.StatusCompleted, models.StatusCancelled:
	default:
		return nil, models.NewValidationError("status", fmt.Sprintf("cannot set status %q", status))
	}

	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, storageErr("get booking", err)
	}

	switch actor.Role {
	case models.RoleUser:
		if b.UserID != actor.ID {
			return nil, models.NewForbiddenError("booking belongs to another customer")
		}
		if status != models.StatusCancelled {
			return nil, models.NewForbiddenError("customers may only cancel a booking")
		}
	case models.RoleProvider:
		if b.ProviderID != actor.ID {
			return nil, models.NewForbiddenError("booking belongs to another provider")
		}
	default:
		return nil, models.NewForbiddenError("unknown role")
	}

	if !CanTransition(b.Status, status) {
		return nil, models.ErrInvalidTransition.With(
			fmt.Sprintf("cannot move booking from %s to %s", b.Status, status),
			map[string]string{"from": string(b.Status), "to": string(status)})
	}

	updated, err := s.Bookings.UpdateStatus(ctx, b.ID, b.Status, status, s.now())
	if err != nil {
		return nil, storageErr("update booking status", err)
	}

	s.Logger.Info("booking status updated",
		zap.String("bookingId", b.ID),
		zap.String("from", string(b.Status)),
		zap.String("to", string(status)),
		zap.String("actorRole", actor.Role),
	)
	return updated, nil
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, storageErr("get booking", err)
	}
	if (actor.Role == models.RoleUser && b.UserID == actor.ID) ||
		(actor.Role == models.RoleProvider && b.ProviderID == actor.ID) {
		return b, nil
	}
	// hide existence from other callers
	return nil, models.NewNotFoundError("booking", bookingID)
}

func (s *DefaultBookingService) ListProviderDay(ctx context.Context, providerID string, date time.Time) ([]models.Booking, error) {
	dayStart, dayEnd := scheduling.DayBounds(date)
	bookings, err := s.Bookings.ListByProvider(ctx, providerID, dayStart, dayEnd)
	if err != nil {
		return nil, storageErr("list bookings", err)
	}
	return bookings, nil
}

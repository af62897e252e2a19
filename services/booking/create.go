package booking

import (
	"context"
	"fmt"

	"servio/models"
	"servio/services/scheduling"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultBookingService) CreateBooking(ctx context.Context, userID string, req models.CreateBookingRequest) (*models.Booking, error) {
	if req.DurationMinutes != nil && *req.DurationMinutes < models.MinBookingMinutes {
		return nil, models.NewValidationError("durationMinutes",
			fmt.Sprintf("must be at least %d minutes", models.MinBookingMinutes))
	}

	now := s.now()
	start := req.ScheduledAt.UTC()
	if !start.After(now) {
		return nil, models.NewValidationError("scheduledAt", "must be in the future")
	}

	svc, err := s.activeService(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}
	providerID := svc.ProviderID
	duration := scheduling.EffectiveDuration(svc.DurationMinutes, req.DurationMinutes)

	wa, err := s.Providers.GetAvailability(ctx, providerID)
	if err != nil {
		return nil, storageErr("get availability", err)
	}

	day := models.DayOfWeekOf(start)
	windows := scheduling.ResolveDay(wa, start)
	if len(windows) == 0 {
		return nil, models.ErrInvalidDay.With(fmt.Sprintf("provider is not available on %s", day),
			map[string]string{"dayOfWeek": day.String()})
	}
	if !scheduling.WithinWindows(windows, start, duration) {
		return nil, models.ErrOutsideWorkingHours.With(
			fmt.Sprintf("%s for %d minutes is outside working hours", models.TimeOfDayOf(start), duration), nil)
	}

	booking := &models.Booking{
		ID:              uuid.New().String(),
		ProviderID:      providerID,
		ServiceID:       svc.ID,
		UserID:          userID,
		ScheduledAt:     start,
		DurationMinutes: duration,
		Status:          models.StatusPending,
		PaymentStatus:   models.PaymentUnpaid,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = s.Locker.WithProviderLock(ctx, providerID, func(ctx context.Context) error {
		dayStart, dayEnd := scheduling.DayBounds(start)
		existing, err := s.Bookings.ListActiveByProvider(ctx, providerID, dayStart.Add(-bookingSpan), dayEnd.Add(bookingSpan))
		if err != nil {
			return storageErr("list bookings", err)
		}
		if clash := scheduling.FindConflict(existing, start, duration, wa.BufferTimeMinutes, ""); clash != nil {
			s.Logger.Info("booking rejected, slot taken",
				zap.String("providerId", providerID),
				zap.Time("scheduledAt", start),
				zap.String("conflictsWith", clash.ID),
			)
			return models.ErrSlotTaken.With("the requested time overlaps an existing booking", nil)
		}
		if err := s.Bookings.Create(ctx, booking); err != nil {
			return storageErr("create booking", err)
		}
		return nil
	})
	if err != nil {
		return nil, lockErr(providerID, err)
	}

	s.Logger.Info("booking created",
		zap.String("bookingId", booking.ID),
		zap.String("providerId", providerID),
		zap.String("userId", userID),
		zap.Time("scheduledAt", start),
		zap.Int("durationMinutes", duration),
	)
	return booking, nil
}

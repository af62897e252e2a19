package booking

import (
	"context"
	"time"

	"servio/models"
	"servio/services/scheduling"

	"go.uber.org/zap"
)

// bookingSpan bounds how far a booking can reach into the next day; reads around a day are
// widened by it so spill-over from the previous day still blocks time.
const bookingSpan = 24 * time.Hour

func (s *DefaultBookingService) GetAvailableSlots(
	ctx context.Context,
	providerID string,
	date time.Time,
	serviceID string,
	durationOverride *int,
) ([]models.Slot, error) {
	svc, err := s.activeService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if svc.ProviderID != providerID {
		return nil, models.NewNotFoundError("service", serviceID)
	}

	wa, err := s.Providers.GetAvailability(ctx, providerID)
	if err != nil {
		return nil, storageErr("get availability", err)
	}

	windows := scheduling.ResolveDay(wa, date)
	if len(windows) == 0 {
		return []models.Slot{}, nil
	}

	dayStart, dayEnd := scheduling.DayBounds(date)
	existing, err := s.Bookings.ListActiveByProvider(ctx, providerID, dayStart.Add(-bookingSpan), dayEnd.Add(bookingSpan))
	if err != nil {
		return nil, storageErr("list bookings", err)
	}

	slots := scheduling.GenerateSlots(scheduling.SlotQuery{
		Date:            dayStart,
		Windows:         windows,
		DurationMinutes: scheduling.EffectiveDuration(svc.DurationMinutes, durationOverride),
		BufferMinutes:   wa.BufferTimeMinutes,
		Bookings:        existing,
		Now:             s.now(),
	})

	s.Logger.Debug("slots generated",
		zap.String("providerId", providerID),
		zap.String("date", dayStart.Format("2006-01-02")),
		zap.Int("count", len(slots)),
	)
	return slots, nil
}

// activeService treats an inactive service the same as a missing one.
func (s *DefaultBookingService) activeService(ctx context.Context, serviceID string) (*models.Service, error) {
	svc, err := s.Services.GetByID(ctx, serviceID)
	if err != nil {
		return nil, storageErr("get service", err)
	}
	if !svc.Active {
		return nil, models.NewNotFoundError("service", serviceID)
	}
	return svc, nil
}

package provider

import (
	"context"
	"errors"

	"servio/models"
	"servio/services/scheduling"

	"go.uber.org/zap"
)

// SetWeeklyAvailability validates the payload before touching storage, then replaces the
// stored template. Existing bookings are not re-checked against the new hours.
func (s *DefaultAvailabilityService) SetWeeklyAvailability(
	ctx context.Context,
	providerID string,
	input models.WeeklyAvailabilityInput,
) (*models.WeeklyAvailability, error) {
	wa, err := scheduling.ParseWeeklyAvailability(input)
	if err != nil {
		return nil, err
	}
	wa.UpdatedAt = s.Clock().UTC()

	if err := s.Repo.UpdateAvailability(ctx, providerID, wa); err != nil {
		return nil, classify("update availability", err)
	}

	s.Logger.Info("weekly availability updated",
		zap.String("providerId", providerID),
		zap.Int("days", len(wa.Days)),
		zap.Int("bufferTimeMinutes", wa.BufferTimeMinutes),
	)
	return wa, nil
}

// GetWeeklyAvailability returns an empty template for a provider that never set one.
func (s *DefaultAvailabilityService) GetWeeklyAvailability(ctx context.Context, providerID string) (*models.WeeklyAvailability, error) {
	wa, err := s.Repo.GetAvailability(ctx, providerID)
	if err != nil {
		return nil, classify("get availability", err)
	}
	if wa == nil {
		return &models.WeeklyAvailability{Days: []models.DaySchedule{}}, nil
	}
	return wa, nil
}

func classify(op string, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return models.NewCollaboratorError(op, err)
}

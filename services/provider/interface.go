package provider

import (
	"context"
	"fmt"
	"time"

	providerRepo "servio/database/repository/provider"
	"servio/models"

	"go.uber.org/zap"
)

// AvailabilityService manages a provider's weekly template.
type AvailabilityService interface {
	SetWeeklyAvailability(ctx context.Context, providerID string, input models.WeeklyAvailabilityInput) (*models.WeeklyAvailability, error)
	GetWeeklyAvailability(ctx context.Context, providerID string) (*models.WeeklyAvailability, error)
}

// DefaultAvailabilityService is the production implementation.
type DefaultAvailabilityService struct {
	Repo   providerRepo.ProviderRepository
	Logger *zap.Logger
	Clock  func() time.Time
}

func NewDefaultAvailabilityService(repo providerRepo.ProviderRepository, logger *zap.Logger) (*DefaultAvailabilityService, error) {
	if repo == nil {
		return nil, fmt.Errorf("availability service initialization error: provider repository is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultAvailabilityService{Repo: repo, Logger: logger, Clock: time.Now}, nil
}

package booking

import (
	"errors"
	"time"

	bookingRepo "servio/database/repository/booking"
	providerRepo "servio/database/repository/provider"
	serviceRepo "servio/database/repository/service"
	"servio/models"
	"servio/services/notification"
	"servio/utils"

	"go.uber.org/zap"
)

// DefaultExtendIncrement applies when no increment is configured.
const DefaultExtendIncrement = 30 * time.Minute

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Providers       providerRepo.ProviderRepository
	Services        serviceRepo.ServiceRepository
	Bookings        bookingRepo.BookingRepository
	Locker          utils.Locker
	Publisher       notification.Publisher
	Logger          *zap.Logger
	Clock           func() time.Time
	ExtendIncrement time.Duration
}

func NewDefaultBookingService(
	providers providerRepo.ProviderRepository,
	services serviceRepo.ServiceRepository,
	bookings bookingRepo.BookingRepository,
	locker utils.Locker,
	publisher notification.Publisher,
	logger *zap.Logger,
	extendIncrement time.Duration,
) *DefaultBookingService {
	if extendIncrement <= 0 {
		extendIncrement = DefaultExtendIncrement
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultBookingService{
		Providers:       providers,
		Services:        services,
		Bookings:        bookings,
		Locker:          locker,
		Publisher:       publisher,
		Logger:          logger,
		Clock:           time.Now,
		ExtendIncrement: extendIncrement,
	}
}

func (s *DefaultBookingService) now() time.Time {
	return s.Clock().UTC()
}

// storageErr leaves classified errors alone and marks everything else as a storage failure.
func storageErr(op string, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return models.NewCollaboratorError(op, err)
}

// lockErr turns a busy provider lock into a retryable conflict.
func lockErr(providerID string, err error) error {
	if errors.Is(err, utils.ErrLockNotAcquired) {
		return models.ErrProviderBusy.With("another booking change for this provider is in progress, retry shortly",
			map[string]string{"providerId": providerID})
	}
	return storageErr("provider lock", err)
}

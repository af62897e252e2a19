package providerRepo

import (
	"context"

	"servio/models"
)

// ProviderRepository defines methods for provider data access.
type ProviderRepository interface {
	// GetByID retrieves a provider by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	// GetAvailability returns only the weekly template of a provider. A provider that never
	// set one yields nil without error.
	GetAvailability(ctx context.Context, id string) (*models.WeeklyAvailability, error)
	// UpdateAvailability replaces the weekly template.
	UpdateAvailability(ctx context.Context, id string, availability *models.WeeklyAvailability) error
	// EnsureIndexes creates indexes for frequently used fields in queries.
	EnsureIndexes(ctx context.Context) error
}

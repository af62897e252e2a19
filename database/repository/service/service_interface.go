package serviceRepo

import (
	"context"

	"servio/models"
)

// ServiceRepository defines read access to a provider's service catalogue.
type ServiceRepository interface {
	GetByID(ctx context.Context, id string) (*models.Service, error)
	EnsureIndexes(ctx context.Context) error
}

package userRepo

import (
	"context"

	"servio/models"
)

// UserRepository defines the user operations this service needs.
type UserRepository interface {
	// PushNotification appends n to the user's inbox.
	PushNotification(ctx context.Context, userID string, n models.Notification) error
	EnsureIndexes(ctx context.Context) error
}

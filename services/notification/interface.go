package notification

import (
	"context"

	"servio/models"
)

// Publisher emits reschedule events after a cascade commits.
type Publisher interface {
	PublishRescheduled(ctx context.Context, notice models.RescheduleNotice) error
}

// Sender delivers a reschedule notice to the customer.
type Sender interface {
	SendRescheduleNotice(ctx context.Context, notice models.RescheduleNotice) error
}

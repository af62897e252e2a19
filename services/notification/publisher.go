package notification

import (
	"context"
	"errors"
	"fmt"

	"servio/models"
	"servio/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// AsynqPublisher enqueues notices on the Redis-backed task queue.
type AsynqPublisher struct {
	client *asynq.Client
	logger *zap.Logger
}

func NewAsynqPublisher(client *asynq.Client, logger *zap.Logger) *AsynqPublisher {
	return &AsynqPublisher{client: client, logger: logger}
}

func (p *AsynqPublisher) PublishRescheduled(ctx context.Context, notice models.RescheduleNotice) error {
	task, opts, err := tasks.NewRescheduleTask(notice)
	if err != nil {
		return fmt.Errorf("build reschedule task: %w", err)
	}

	info, err := p.client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		p.logger.Debug("reschedule notice already queued", zap.String("bookingId", notice.BookingID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("enqueue reschedule task: %w", err)
	}

	p.logger.Info("reschedule notice queued",
		zap.String("taskId", info.ID),
		zap.String("bookingId", notice.BookingID),
		zap.String("userId", notice.UserID),
	)
	return nil
}

func (p *AsynqPublisher) Close() error {
	return p.client.Close()
}

package cron

import (
	"context"
	"fmt"
	"time"

	"servio/config"
	"servio/services/notification"
	"servio/services/tasks"
	"servio/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RedisOpt is the asynq connection for the notification queue.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitNotificationWorker runs the notification worker in the background and returns the
// server so the caller can shut it down.
func InitNotificationWorker(ctx context.Context, sender notification.Sender, logger *zap.Logger) *asynq.Server {
	concurrency := config.AppConfig.NotifyWorkerConcurrency
	if concurrency <= 0 {
		concurrency = 5
	}

	srv := asynq.NewServer(
		RedisOpt(),
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				tasks.NotificationsQueue: 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := NewMux(sender, logger)

	// Start Redis health monitor
	go monitorRedisConnection(ctx, logger)

	// Start async worker with retry logic
	go func() {
		logger.Info("starting notification worker", zap.Int("concurrency", concurrency))
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Error("notification worker failed to start",
				zap.Int("attempt", attempts),
				zap.Int("maxAttempts", maxAttempts),
				zap.Error(err),
			)
			if attempts == maxAttempts {
				logger.Error("notification worker gave up; reschedule notices will queue until restart")
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempts*2) * time.Second):
			}
		}
	}()

	return srv
}

// NewMux routes task types to their handlers.
func NewMux(sender notification.Sender, logger *zap.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingRescheduled, HandleRescheduleTask(sender, logger))
	return mux
}

// HandleRescheduleTask delivers one notice. A malformed payload is skipped rather than retried.
func HandleRescheduleTask(sender notification.Sender, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		notice, err := tasks.ParseRescheduleTask(task)
		if err != nil {
			logger.Error("dropping reschedule task", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		if err := sender.SendRescheduleNotice(ctx, notice); err != nil {
			logger.Warn("reschedule notice delivery failed",
				zap.String("bookingId", notice.BookingID),
				zap.String("userId", notice.UserID),
				zap.Error(err),
			)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection(ctx context.Context, logger *zap.Logger) {
	client := utils.NewRedisClient(config.AppConfig.RedisQueueDB)
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("notification queue redis unreachable", zap.Error(err))
			}
		}
	}
}

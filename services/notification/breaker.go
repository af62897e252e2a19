package notification

import (
	"context"
	"time"

	"servio/models"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// BreakerConfig configures the delivery circuit breaker.
type BreakerConfig struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// BreakerSender stops calling next after repeated failures; asynq retries the task later.
type BreakerSender struct {
	next    Sender
	breaker *gobreaker.CircuitBreaker[struct{}]
}

func NewBreakerSender(next Sender, cfg BreakerConfig, logger *zap.Logger) *BreakerSender {
	settings := gobreaker.Settings{
		Name:        "notification-delivery",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}
	return &BreakerSender{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker[struct{}](settings),
	}
}

func (s *BreakerSender) SendRescheduleNotice(ctx context.Context, notice models.RescheduleNotice) error {
	_, err := s.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, s.next.SendRescheduleNotice(ctx, notice)
	})
	return err
}

func (s *BreakerSender) State() gobreaker.State {
	return s.breaker.State()
}

package notification

import (
	"context"
	"fmt"
	"time"

	userRepo "servio/database/repository/user"
	"servio/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const TypeBookingRescheduled = "booking_rescheduled"

// InboxSender stores the notice as an in-app notification on the user document.
type InboxSender struct {
	users  userRepo.UserRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewInboxSender(users userRepo.UserRepository, logger *zap.Logger) *InboxSender {
	return &InboxSender{users: users, logger: logger, now: time.Now}
}

func (s *InboxSender) SendRescheduleNotice(ctx context.Context, notice models.RescheduleNotice) error {
	n := BuildRescheduleNotification(notice, s.now().UTC())
	if err := s.users.PushNotification(ctx, notice.UserID, n); err != nil {
		return fmt.Errorf("deliver reschedule notice for booking %s: %w", notice.BookingID, err)
	}

	s.logger.Info("reschedule notice delivered",
		zap.String("userId", notice.UserID),
		zap.String("bookingId", notice.BookingID),
		zap.Int("delayMinutes", notice.DelayMinutes),
	)
	return nil
}

// BuildRescheduleNotification renders the inbox entry for a notice.
func BuildRescheduleNotification(notice models.RescheduleNotice, at time.Time) models.Notification {
	newAt := notice.NewScheduledAt.UTC()
	return models.Notification{
		ID:    uuid.NewString(),
		Type:  TypeBookingRescheduled,
		Title: "Your appointment has moved",
		Message: fmt.Sprintf("An earlier appointment ran long, so yours now starts %d minutes later at %s UTC on %s.",
			notice.DelayMinutes, newAt.Format("15:04"), newAt.Format("Mon 2 Jan")),
		Data: map[string]any{
			"bookingId":      notice.BookingID,
			"providerId":     notice.ProviderID,
			"oldScheduledAt": notice.OldScheduledAt.UTC().Format(time.RFC3339),
			"newScheduledAt": newAt.Format(time.RFC3339),
			"delayMinutes":   notice.DelayMinutes,
		},
		CreatedAt: at,
	}
}

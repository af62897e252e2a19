package tasks

import (
	"encoding/json"
	"fmt"

	"servio/models"

	"github.com/hibiken/asynq"
)

const (
	TypeBookingRescheduled = "booking:rescheduled"
	NotificationsQueue     = "notifications"
)

// NewRescheduleTask wraps a notice for the notification worker. The task id makes a
// re-published notice for the same move a no-op.
func NewRescheduleTask(notice models.RescheduleNotice) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(notice)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingRescheduled, b)
	opts := []asynq.Option{
		asynq.Queue(NotificationsQueue),
		asynq.MaxRetry(5),
		asynq.TaskID(fmt.Sprintf("%s:%s:%d", TypeBookingRescheduled, notice.BookingID, notice.NewScheduledAt.Unix())),
	}
	return task, opts, nil
}

// ParseRescheduleTask is the inverse of NewRescheduleTask.
func ParseRescheduleTask(task *asynq.Task) (models.RescheduleNotice, error) {
	var notice models.RescheduleNotice
	if err := json.Unmarshal(task.Payload(), &notice); err != nil {
		return notice, fmt.Errorf("invalid %s payload: %w", TypeBookingRescheduled, err)
	}
	if notice.BookingID == "" || notice.UserID == "" {
		return notice, fmt.Errorf("invalid %s payload: missing booking or user id", TypeBookingRescheduled)
	}
	return notice, nil
}

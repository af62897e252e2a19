package cron_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"servio/cron"
	"servio/models"
	"servio/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSender struct {
	got []models.RescheduleNotice
	err error
}

func (r *recordingSender) SendRescheduleNotice(_ context.Context, n models.RescheduleNotice) error {
	r.got = append(r.got, n)
	return r.err
}

func rescheduleTask(t *testing.T) *asynq.Task {
	t.Helper()
	task, _, err := tasks.NewRescheduleTask(models.RescheduleNotice{
		BookingID:      "b1",
		UserID:         "u1",
		ProviderID:     "p1",
		OldScheduledAt: time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC),
		NewScheduledAt: time.Date(2025, 6, 2, 11, 30, 0, 0, time.UTC),
		DelayMinutes:   30,
	})
	require.NoError(t, err)
	return task
}

func TestHandleRescheduleTask_Delivers(t *testing.T) {
	sender := &recordingSender{}
	handler := cron.HandleRescheduleTask(sender, zap.NewNop())

	require.NoError(t, handler.ProcessTask(context.Background(), rescheduleTask(t)))
	require.Len(t, sender.got, 1)
	assert.Equal(t, "u1", sender.got[0].UserID)
}

func TestHandleRescheduleTask_RetriesDeliveryFailure(t *testing.T) {
	sender := &recordingSender{err: errors.New("inbox unavailable")}
	handler := cron.HandleRescheduleTask(sender, zap.NewNop())

	err := handler.ProcessTask(context.Background(), rescheduleTask(t))
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleRescheduleTask_SkipsBadPayload(t *testing.T) {
	sender := &recordingSender{}
	handler := cron.HandleRescheduleTask(sender, zap.NewNop())

	err := handler.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeBookingRescheduled, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Empty(t, sender.got)
}

func TestNewMux_RoutesRescheduleTasks(t *testing.T) {
	sender := &recordingSender{}
	mux := cron.NewMux(sender, zap.NewNop())

	require.NoError(t, mux.ProcessTask(context.Background(), rescheduleTask(t)))
	assert.Len(t, sender.got, 1)
}

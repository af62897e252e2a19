package booking

import (
	"context"
	"fmt"
	"time"

	bookingRepo "servio/database/repository/booking"
	"servio/models"
	"servio/services/scheduling"

	"go.uber.org/zap"
)

// ExtendBooking plans the whole cascade before writing anything, then commits it in one
// transaction. Customers of shifted bookings are notified after the commit.
func (s *DefaultBookingService) ExtendBooking(ctx context.Context, providerID, bookingID string) (*models.ExtendBookingResponse, error) {
	var (
		plan    *scheduling.CascadePlan
		updated *models.Booking
	)

	err := s.Locker.WithProviderLock(ctx, providerID, func(ctx context.Context) error {
		target, err := s.Bookings.GetByID(ctx, bookingID)
		if err != nil {
			return storageErr("get booking", err)
		}
		if target.ProviderID != providerID {
			return models.NewForbiddenError("booking belongs to another provider")
		}
		if !target.Status.Active() {
			return models.ErrBookingNotActive.With(
				fmt.Sprintf("booking %s is %s and cannot be extended", target.ID, target.Status), nil)
		}

		wa, err := s.Providers.GetAvailability(ctx, providerID)
		if err != nil {
			return storageErr("get availability", err)
		}
		closing, ok := scheduling.ClosingTime(scheduling.ResolveDay(wa, target.ScheduledAt))
		if !ok {
			return models.ErrScheduleMissing.With(
				fmt.Sprintf("no working hours on %s for live booking %s", models.DayOfWeekOf(target.ScheduledAt), target.ID), nil)
		}

		dayStart, dayEnd := scheduling.DayBounds(target.ScheduledAt)
		sameDay, err := s.Bookings.ListActiveByProvider(ctx, providerID, dayStart, dayEnd)
		if err != nil {
			return storageErr("list bookings", err)
		}

		plan, err = scheduling.PlanCascade(*target, sameDay, closing.On(dayStart), s.ExtendIncrement)
		if err != nil {
			s.Logger.Info("extension rejected",
				zap.String("bookingId", target.ID),
				zap.String("providerId", providerID),
				zap.Error(err),
			)
			return err
		}

		now := s.now()
		if err := s.Bookings.ApplyCascade(ctx, toCascadeWrite(plan, now)); err != nil {
			return storageErr("apply cascade", err)
		}

		extended := *target
		extended.DurationMinutes = plan.NewDurationMinutes
		extended.UpdatedAt = now
		updated = &extended
		return nil
	})
	if err != nil {
		return nil, lockErr(providerID, err)
	}

	s.Logger.Info("booking extended",
		zap.String("bookingId", bookingID),
		zap.String("providerId", providerID),
		zap.Int("durationMinutes", plan.NewDurationMinutes),
		zap.Int("rescheduled", len(plan.Shifts)),
	)

	if len(plan.Shifts) > 0 {
		go s.publishShifts(context.WithoutCancel(ctx), plan)
	}

	return &models.ExtendBookingResponse{
		Booking:          updated,
		RescheduledCount: len(plan.Shifts),
	}, nil
}

func toCascadeWrite(plan *scheduling.CascadePlan, at time.Time) bookingRepo.CascadeWrite {
	w := bookingRepo.CascadeWrite{
		TargetID:           plan.Target.ID,
		OldDurationMinutes: plan.Target.DurationMinutes,
		NewDurationMinutes: plan.NewDurationMinutes,
		Reschedules:        make([]bookingRepo.Reschedule, 0, len(plan.Shifts)),
		At:                 at,
	}
	for _, sh := range plan.Shifts {
		w.Reschedules = append(w.Reschedules, bookingRepo.Reschedule{BookingID: sh.BookingID, From: sh.From, To: sh.To})
	}
	return w
}

// publishShifts emits one event per shifted booking. Failures are logged only; the cascade
// is already committed.
func (s *DefaultBookingService) publishShifts(ctx context.Context, plan *scheduling.CascadePlan) {
	if s.Publisher == nil {
		return
	}
	delay := int(plan.Delta / time.Minute)
	for _, sh := range plan.Shifts {
		notice := models.RescheduleNotice{
			BookingID:      sh.BookingID,
			UserID:         sh.UserID,
			ProviderID:     sh.ProviderID,
			OldScheduledAt: sh.From,
			NewScheduledAt: sh.To,
			DelayMinutes:   delay,
		}
		if err := s.Publisher.PublishRescheduled(ctx, notice); err != nil {
			s.Logger.Error("failed to publish reschedule notice",
				zap.String("bookingId", sh.BookingID),
				zap.String("userId", sh.UserID),
				zap.Error(err),
			)
		}
	}
}

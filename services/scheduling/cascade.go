package scheduling

import (
	"fmt"
	"sort"
	"time"

	"servio/models"
)

// Shift moves one downstream booking forward.
type Shift struct {
	BookingID  string
	UserID     string
	ProviderID string
	From       time.Time
	To         time.Time
}

// CascadePlan is the fully simulated outcome of extending a booking. Nothing is applied
// until the caller commits it.
type CascadePlan struct {
	Target             models.Booking
	NewDurationMinutes int
	Delta              time.Duration
	Shifts             []Shift
	FinalEnd           time.Time
}

// PlanCascade extends target by delta and ripples every later active booking of the same
// day forward by the same delta. It fails with ErrCascadeBreachesDay when the last booking
// would end after closing.
func PlanCascade(target models.Booking, sameDay []models.Booking, closing time.Time, delta time.Duration) (*CascadePlan, error) {
	if !target.Status.Active() {
		return nil, models.ErrBookingNotActive.With(
			fmt.Sprintf("booking %s is %s and cannot be extended", target.ID, target.Status), nil)
	}
	if delta <= 0 || delta%time.Minute != 0 {
		return nil, models.NewValidationError("delta", "extension must be a positive whole number of minutes")
	}

	downstream := make([]models.Booking, 0, len(sameDay))
	for _, b := range sameDay {
		if b.ID == target.ID || !b.Status.Active() {
			continue
		}
		if !b.ScheduledAt.After(target.ScheduledAt) {
			continue
		}
		downstream = append(downstream, b)
	}
	sort.SliceStable(downstream, func(i, j int) bool {
		return downstream[i].ScheduledAt.Before(downstream[j].ScheduledAt)
	})

	plan := &CascadePlan{
		Target:             target,
		NewDurationMinutes: target.DurationMinutes + int(delta/time.Minute),
		Delta:              delta,
		Shifts:             make([]Shift, 0, len(downstream)),
	}
	plan.FinalEnd = target.EndsAt().Add(delta)

	for _, b := range downstream {
		to := b.ScheduledAt.Add(delta)
		plan.Shifts = append(plan.Shifts, Shift{
			BookingID:  b.ID,
			UserID:     b.UserID,
			ProviderID: b.ProviderID,
			From:       b.ScheduledAt,
			To:         to,
		})
		if end := b.EndsAt().Add(delta); end.After(plan.FinalEnd) {
			plan.FinalEnd = end
		}
	}

	if plan.FinalEnd.After(closing) {
		dayStart, _ := DayBounds(target.ScheduledAt)
		closingAt := models.TimeOfDay(closing.Sub(dayStart) / time.Minute).String()
		return nil, models.ErrCascadeBreachesDay.With(
			fmt.Sprintf("extending by %d minutes would push bookings past closing time %s; resolve manually",
				int(delta/time.Minute), closingAt),
			map[string]string{"closingTime": closingAt},
		)
	}
	return plan, nil
}

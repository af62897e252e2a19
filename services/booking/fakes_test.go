package booking_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	bookingRepo "servio/database/repository/booking"
	"servio/models"
	"servio/utils"
)

type fakeProviders struct {
	availability map[string]*models.WeeklyAvailability
}

func (f *fakeProviders) GetByID(_ context.Context, id string) (*models.Provider, error) {
	wa, ok := f.availability[id]
	if !ok {
		return nil, models.NewNotFoundError("provider", id)
	}
	return &models.Provider{ID: id, Availability: wa}, nil
}

func (f *fakeProviders) GetAvailability(ctx context.Context, id string) (*models.WeeklyAvailability, error) {
	p, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return p.Availability, nil
}

func (f *fakeProviders) UpdateAvailability(_ context.Context, id string, wa *models.WeeklyAvailability) error {
	f.availability[id] = wa
	return nil
}

func (f *fakeProviders) EnsureIndexes(context.Context) error { return nil }

type fakeServices struct {
	byID map[string]models.Service
}

func (f *fakeServices) GetByID(_ context.Context, id string) (*models.Service, error) {
	svc, ok := f.byID[id]
	if !ok {
		return nil, models.NewNotFoundError("service", id)
	}
	return &svc, nil
}

func (f *fakeServices) EnsureIndexes(context.Context) error { return nil }

type fakeBookings struct {
	mu         sync.Mutex
	byID       map[string]models.Booking
	cascadeErr error
	listErr    error
}

func newFakeBookings(bookings ...models.Booking) *fakeBookings {
	f := &fakeBookings{byID: make(map[string]models.Booking)}
	for _, b := range bookings {
		f.byID[b.ID] = b
	}
	return f
}

func (f *fakeBookings) Create(_ context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[b.ID] = *b
	return nil
}

func (f *fakeBookings) GetByID(_ context.Context, id string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.byID[id]
	if !ok {
		return nil, models.NewNotFoundError("booking", id)
	}
	return &b, nil
}

func (f *fakeBookings) ListActiveByProvider(ctx context.Context, providerID string, from, to time.Time) ([]models.Booking, error) {
	all, err := f.ListByProvider(ctx, providerID, from, to)
	if err != nil {
		return nil, err
	}
	active := make([]models.Booking, 0, len(all))
	for _, b := range all {
		if b.Status.Active() {
			active = append(active, b)
		}
	}
	return active, nil
}

func (f *fakeBookings) ListByProvider(_ context.Context, providerID string, from, to time.Time) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Booking, 0)
	for _, b := range f.byID {
		if b.ProviderID == providerID && !b.ScheduledAt.Before(from) && b.ScheduledAt.Before(to) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })
	return out, nil
}

func (f *fakeBookings) UpdateStatus(_ context.Context, id string, from, to models.BookingStatus, at time.Time) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.byID[id]
	if !ok || b.Status != from {
		return nil, models.ErrInvalidTransition.With("stale status", nil)
	}
	b.Status = to
	b.UpdatedAt = at
	f.byID[id] = b
	return &b, nil
}

func (f *fakeBookings) ApplyCascade(_ context.Context, w bookingRepo.CascadeWrite) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cascadeErr != nil {
		return f.cascadeErr
	}
	next := make(map[string]models.Booking, len(f.byID))
	for k, v := range f.byID {
		next[k] = v
	}
	target := next[w.TargetID]
	if target.DurationMinutes != w.OldDurationMinutes {
		return errors.New("target changed")
	}
	target.DurationMinutes = w.NewDurationMinutes
	next[w.TargetID] = target
	for _, r := range w.Reschedules {
		b := next[r.BookingID]
		if !b.ScheduledAt.Equal(r.From) {
			return errors.New("shift source changed")
		}
		from := b.ScheduledAt
		b.PreviousScheduledAt = &from
		b.ScheduledAt = r.To
		b.RescheduleCount++
		next[r.BookingID] = b
	}
	f.byID = next
	return nil
}

func (f *fakeBookings) EnsureIndexes(context.Context) error { return nil }

func (f *fakeBookings) get(id string) models.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byID[id]
}

type fakeLocker struct {
	busy  bool
	calls int
}

func (l *fakeLocker) WithProviderLock(ctx context.Context, _ string, fn func(ctx context.Context) error) error {
	l.calls++
	if l.busy {
		return utils.ErrLockNotAcquired
	}
	return fn(ctx)
}

type fakePublisher struct {
	mu      sync.Mutex
	notices []models.RescheduleNotice
	err     error
}

func (p *fakePublisher) PublishRescheduled(_ context.Context, n models.RescheduleNotice) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notices = append(p.notices, n)
	return p.err
}

func (p *fakePublisher) published() []models.RescheduleNotice {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.RescheduleNotice, len(p.notices))
	copy(out, p.notices)
	return out
}

package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"servio/config"
	"servio/handlers"
	"servio/models"
	"servio/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.AppConfig.JWTSecret = "test-secret"
	config.AppConfig.MaxRequestsPerMin = 1000
}

type fakeBookings struct {
	slots      []models.Slot
	booking    *models.Booking
	extended   *models.ExtendBookingResponse
	err        error
	lastUser   string
	lastActor  models.Actor
	lastDate   time.Time
	lastDurOvr *int
}

func (f *fakeBookings) GetAvailableSlots(_ context.Context, _ string, date time.Time, _ string, d *int) ([]models.Slot, error) {
	f.lastDate, f.lastDurOvr = date, d
	return f.slots, f.err
}

func (f *fakeBookings) CreateBooking(_ context.Context, userID string, _ models.CreateBookingRequest) (*models.Booking, error) {
	f.lastUser = userID
	return f.booking, f.err
}

func (f *fakeBookings) ExtendBooking(_ context.Context, _, _ string) (*models.ExtendBookingResponse, error) {
	return f.extended, f.err
}

func (f *fakeBookings) UpdateStatus(_ context.Context, actor models.Actor, _ string, _ models.BookingStatus) (*models.Booking, error) {
	f.lastActor = actor
	return f.booking, f.err
}

func (f *fakeBookings) GetBooking(_ context.Context, actor models.Actor, _ string) (*models.Booking, error) {
	f.lastActor = actor
	return f.booking, f.err
}

func (f *fakeBookings) ListProviderDay(_ context.Context, _ string, _ time.Time) ([]models.Booking, error) {
	if f.booking == nil {
		return nil, f.err
	}
	return []models.Booking{*f.booking}, f.err
}

type fakeSchedules struct {
	schedule *models.WeeklyAvailability
	err      error
}

func (f *fakeSchedules) SetWeeklyAvailability(_ context.Context, _ string, _ models.WeeklyAvailabilityInput) (*models.WeeklyAvailability, error) {
	return f.schedule, f.err
}

func (f *fakeSchedules) GetWeeklyAvailability(_ context.Context, _ string) (*models.WeeklyAvailability, error) {
	return f.schedule, f.err
}

func newTestRouter(b *fakeBookings, s *fakeSchedules) *gin.Engine {
	return NewRouter(handlers.NewHandlerBundle(b, s))
}

func token(t *testing.T, subject, role string) string {
	t.Helper()
	tok, err := utils.GenerateToken(subject, role, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func do(r *gin.Engine, method, path, auth string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sampleBooking() *models.Booking {
	return &models.Booking{
		ID:              "b1",
		ProviderID:      "p1",
		ServiceID:       "s1",
		UserID:          "u1",
		ScheduledAt:     time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Status:          models.StatusPending,
		PaymentStatus:   models.PaymentUnpaid,
	}
}

func TestAvailabilityIsPublicAndReturnsSlots(t *testing.T) {
	at := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	b := &fakeBookings{slots: []models.Slot{{StartTime: "09:00", Instant: at}}}
	r := newTestRouter(b, &fakeSchedules{})

	w := do(r, http.MethodGet, "/api/providers/p1/availability?date=2025-06-02&serviceId=s1&duration=45", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Slots []map[string]string `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "09:00", resp.Slots[0]["time"])
	assert.Equal(t, "2025-06-02T09:00:00Z", resp.Slots[0]["scheduledAt"])

	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), b.lastDate)
	require.NotNil(t, b.lastDurOvr)
	assert.Equal(t, 45, *b.lastDurOvr)
}

func TestAvailabilityRejectsBadQuery(t *testing.T) {
	r := newTestRouter(&fakeBookings{}, &fakeSchedules{})

	cases := map[string]string{
		"missing date":     "/api/providers/p1/availability?serviceId=s1",
		"bad date":         "/api/providers/p1/availability?date=02-06-2025&serviceId=s1",
		"missing service":  "/api/providers/p1/availability?date=2025-06-02",
		"non-int duration": "/api/providers/p1/availability?date=2025-06-02&serviceId=s1&duration=abc",
	}
	for name, path := range cases {
		t.Run(name, func(t *testing.T) {
			w := do(r, http.MethodGet, path, "", nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestErrorKindsMapToStatus(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", models.NewValidationError("date", "bad"), http.StatusBadRequest, "invalid_input"},
		{"invalid day", models.ErrInvalidDay.With("provider does not work on Sunday", nil), http.StatusBadRequest, "invalid_day"},
		{"not found", models.NewNotFoundError("provider", "p1"), http.StatusNotFound, "provider_not_found"},
		{"conflict", models.ErrSlotTaken.With("slot taken", nil), http.StatusConflict, "slot_taken"},
		{"busy", models.ErrProviderBusy.With("busy", nil), http.StatusConflict, "provider_busy"},
		{"lost race", fmt.Errorf("cascade transaction failed: %w", models.ErrBookingChanged.With("booking changed", nil)), http.StatusConflict, "booking_changed"},
		{"collaborator", models.NewCollaboratorError("load bookings", assert.AnError), http.StatusBadGateway, "storage_failure"},
		{"precondition", models.ErrScheduleMissing.With("no schedule", nil), http.StatusInternalServerError, "schedule_missing"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&fakeBookings{err: tc.err}, &fakeSchedules{})
			w := do(r, http.MethodGet, "/api/providers/p1/availability?date=2025-06-02&serviceId=s1", "", nil)
			require.Equal(t, tc.status, w.Code)

			var resp utils.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.code, resp.Code)
		})
	}
}

func TestCollaboratorErrorsHideDriverDetails(t *testing.T) {
	r := newTestRouter(&fakeBookings{err: models.NewCollaboratorError("load bookings", assert.AnError)}, &fakeSchedules{})
	w := do(r, http.MethodGet, "/api/providers/p1/availability?date=2025-06-02&serviceId=s1", "", nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}

func TestCascadeConflictCarriesMeta(t *testing.T) {
	err := models.ErrCascadeBreachesDay.With("extension would run past closing", map[string]string{"closingTime": "17:00"})
	r := newTestRouter(&fakeBookings{err: err}, &fakeSchedules{})

	w := do(r, http.MethodPut, "/api/bookings/b1/extend", token(t, "p1", models.RoleProvider), nil)
	require.Equal(t, http.StatusConflict, w.Code)

	var resp utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "cascade_exceeds_working_hours", resp.Code)
	assert.Equal(t, "17:00", resp.Meta["closingTime"])
}

func TestCreateBookingRequiresUserRole(t *testing.T) {
	b := &fakeBookings{booking: sampleBooking()}
	r := newTestRouter(b, &fakeSchedules{})
	body := map[string]any{"serviceId": "s1", "scheduledAt": "2025-06-02T10:00:00Z"}

	w := do(r, http.MethodPost, "/api/bookings", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodPost, "/api/bookings", token(t, "p1", models.RoleProvider), body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, http.MethodPost, "/api/bookings", token(t, "u1", models.RoleUser), body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "u1", b.lastUser)

	var got models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "b1", got.ID)
	assert.Equal(t, models.StatusPending, got.Status)
}

func TestCreateBookingRejectsMalformedBody(t *testing.T) {
	r := newTestRouter(&fakeBookings{booking: sampleBooking()}, &fakeSchedules{})

	w := do(r, http.MethodPost, "/api/bookings", token(t, "u1", models.RoleUser), map[string]any{"notes": "hi"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExtendBookingIsProviderOnly(t *testing.T) {
	b := &fakeBookings{extended: &models.ExtendBookingResponse{Booking: sampleBooking(), RescheduledCount: 2}}
	r := newTestRouter(b, &fakeSchedules{})

	w := do(r, http.MethodPut, "/api/bookings/b1/extend", token(t, "u1", models.RoleUser), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, http.MethodPut, "/api/bookings/b1/extend", token(t, "p1", models.RoleProvider), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ExtendBookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.RescheduledCount)
	assert.Equal(t, "b1", resp.Booking.ID)
}

func TestStatusAndGetPassTheActor(t *testing.T) {
	b := &fakeBookings{booking: sampleBooking()}
	r := newTestRouter(b, &fakeSchedules{})

	w := do(r, http.MethodPatch, "/api/bookings/b1/status", token(t, "p1", models.RoleProvider), map[string]string{"status": "confirmed"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.Actor{ID: "p1", Role: models.RoleProvider}, b.lastActor)

	w = do(r, http.MethodGet, "/api/bookings/b1", token(t, "u1", models.RoleUser), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.Actor{ID: "u1", Role: models.RoleUser}, b.lastActor)
}

func TestInvalidTransitionIsConflict(t *testing.T) {
	b := &fakeBookings{err: models.ErrInvalidTransition.With("cannot move completed to pending", nil)}
	r := newTestRouter(b, &fakeSchedules{})

	w := do(r, http.MethodPatch, "/api/bookings/b1/status", token(t, "p1", models.RoleProvider), map[string]string{"status": "pending"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestProviderListsOnlyOwnBookings(t *testing.T) {
	r := newTestRouter(&fakeBookings{booking: sampleBooking()}, &fakeSchedules{})

	w := do(r, http.MethodGet, "/api/providers/p2/bookings?date=2025-06-02", token(t, "p1", models.RoleProvider), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, http.MethodGet, "/api/providers/p1/bookings?date=2025-06-02", token(t, "p1", models.RoleProvider), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Bookings []models.Booking `json:"bookings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "b1", resp.Bookings[0].ID)
}

func TestScheduleRoutes(t *testing.T) {
	wa := &models.WeeklyAvailability{
		BufferTimeMinutes: 15,
		Days: []models.DaySchedule{{
			DayOfWeek:   models.Monday,
			IsAvailable: true,
			Windows:     []models.TimeRange{{Start: models.MustTimeOfDay("09:00"), End: models.MustTimeOfDay("12:00")}},
		}},
	}
	r := newTestRouter(&fakeBookings{}, &fakeSchedules{schedule: wa})

	w := do(r, http.MethodGet, "/api/providers/p1/schedule", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"dayOfWeek":"Monday"`)
	assert.Contains(t, w.Body.String(), `"start":"09:00"`)

	payload := map[string]any{
		"bufferTimeMinutes": 15,
		"days": []map[string]any{{
			"dayOfWeek":   1,
			"isAvailable": true,
			"windows":     []map[string]string{{"start": "09:00", "end": "12:00"}},
		}},
	}
	w = do(r, http.MethodPut, "/api/providers/schedule", token(t, "u1", models.RoleUser), payload)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, http.MethodPut, "/api/providers/schedule", token(t, "p1", models.RoleProvider), payload)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestScheduleValidationNamesField(t *testing.T) {
	r := newTestRouter(&fakeBookings{}, &fakeSchedules{err: models.NewValidationError("days[0].windows[0].end", "time \"25:00\" is out of range")})

	w := do(r, http.MethodPut, "/api/providers/schedule", token(t, "p1", models.RoleProvider), map[string]any{"days": []any{}})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "days[0].windows[0].end", resp.Field)
}

func TestRequestIDIsEchoed(t *testing.T) {
	r := newTestRouter(&fakeBookings{}, &fakeSchedules{})

	req := httptest.NewRequest(http.MethodGet, "/api/providers/p1/availability?date=2025-06-02&serviceId=s1", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}

package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending     BookingStatus = "pending"
	StatusConfirmed   BookingStatus = "confirmed"
	StatusCompleted   BookingStatus = "completed"
	StatusCancelled   BookingStatus = "cancelled"
	StatusRescheduled BookingStatus = "rescheduled"
)

// Active reports whether a booking in this status occupies provider time.
func (s BookingStatus) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

// ActiveStatuses are the statuses that block a provider's time.
var ActiveStatuses = []BookingStatus{StatusPending, StatusConfirmed}

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// MinBookingMinutes is the shortest bookable duration.
const MinBookingMinutes = 10

// Booking represents a customer's reservation of a provider's time.
type Booking struct {
	ID                  string        `bson:"id" json:"id"`
	ProviderID          string        `bson:"providerId" json:"providerId"`
	ServiceID           string        `bson:"serviceId" json:"serviceId"`
	UserID              string        `bson:"userId" json:"userId"`
	ScheduledAt         time.Time     `bson:"scheduledAt" json:"scheduledAt"`
	DurationMinutes     int           `bson:"durationMinutes" json:"durationMinutes"`
	Status              BookingStatus `bson:"status" json:"status"`
	PaymentStatus       PaymentStatus `bson:"paymentStatus" json:"paymentStatus"`
	Notes               string        `bson:"notes,omitempty" json:"notes,omitempty"`
	PreviousScheduledAt *time.Time    `bson:"previousScheduledAt,omitempty" json:"previousScheduledAt,omitempty"`
	RescheduleCount     int           `bson:"rescheduleCount,omitempty" json:"rescheduleCount,omitempty"`
	CreatedAt           time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// EndsAt is the end of the booked time, without buffer.
func (b Booking) EndsAt() time.Time {
	return b.ScheduledAt.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// CreateBookingRequest is the customer's booking payload.
type CreateBookingRequest struct {
	ServiceID       string    `json:"serviceId" binding:"required"`
	ScheduledAt     time.Time `json:"scheduledAt" binding:"required"`
	DurationMinutes *int      `json:"durationMinutes,omitempty"`
	Notes           string    `json:"notes,omitempty"`
}

// UpdateStatusRequest moves a booking along its lifecycle.
type UpdateStatusRequest struct {
	Status BookingStatus `json:"status" binding:"required"`
}

// ExtendBookingResponse is returned after a successful cascade.
type ExtendBookingResponse struct {
	Booking          *Booking `json:"booking"`
	RescheduledCount int      `json:"rescheduledCount"`
}

// Actor identifies the authenticated caller.
type Actor struct {
	ID   string
	Role string
}

const (
	RoleUser     = "user"
	RoleProvider = "provider"
)

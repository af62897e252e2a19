// File: servio/handlers/bundle.go
package handlers

import (
	"servio/services/booking"
	"servio/services/provider"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Availability endpoints
	GetAvailableSlotsHandler gin.HandlerFunc
	GetScheduleHandler       gin.HandlerFunc
	SetScheduleHandler       gin.HandlerFunc

	// Booking endpoints
	CreateBookingHandler        gin.HandlerFunc
	ExtendBookingHandler        gin.HandlerFunc
	UpdateBookingStatusHandler  gin.HandlerFunc
	GetBookingHandler           gin.HandlerFunc
	ListProviderBookingsHandler gin.HandlerFunc

	HealthHandler gin.HandlerFunc
}

// NewHandlerBundle wires handlers to their services.
func NewHandlerBundle(bookings booking.BookingService, availability provider.AvailabilityService) *HandlerBundle {
	ah := NewAvailabilityHandler(bookings)
	bh := NewBookingHandler(bookings)
	sh := NewScheduleHandler(availability)

	return &HandlerBundle{
		GetAvailableSlotsHandler: ah.GetAvailableSlotsHandler,
		GetScheduleHandler:       sh.GetScheduleHandler,
		SetScheduleHandler:       sh.SetScheduleHandler,

		CreateBookingHandler:        bh.CreateBookingHandler,
		ExtendBookingHandler:        bh.ExtendBookingHandler,
		UpdateBookingStatusHandler:  bh.UpdateStatusHandler,
		GetBookingHandler:           bh.GetBookingHandler,
		ListProviderBookingsHandler: bh.ListProviderBookingsHandler,

		HealthHandler: HealthHandler,
	}
}

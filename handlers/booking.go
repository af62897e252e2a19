package handlers

import (
	"net/http"

	"servio/middleware"
	"servio/models"
	"servio/services/booking"
	"servio/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// CreateBookingHandler serves POST /api/bookings for customers.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	userID := c.GetString(utils.CtxUserID)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, bindError(err))
		return
	}

	b, err := h.Service.CreateBooking(c.Request.Context(), userID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	getLogger(c).Info("booking request accepted", zap.String("bookingId", b.ID))
	c.JSON(http.StatusCreated, b)
}

// ExtendBookingHandler serves PUT /api/bookings/:id/extend for the owning provider.
func (h *BookingHandler) ExtendBookingHandler(c *gin.Context) {
	providerID := c.GetString(utils.CtxProviderID)
	if providerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Provider not authenticated"})
		return
	}

	resp, err := h.Service.ExtendBooking(c.Request.Context(), providerID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateStatusHandler serves PATCH /api/bookings/:id/status.
func (h *BookingHandler) UpdateStatusHandler(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, bindError(err))
		return
	}

	b, err := h.Service.UpdateStatus(c.Request.Context(), actor, c.Param("id"), req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetBookingHandler serves GET /api/bookings/:id.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	b, err := h.Service.GetBooking(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListProviderBookingsHandler serves GET /api/providers/:id/bookings?date= for the provider itself.
func (h *BookingHandler) ListProviderBookingsHandler(c *gin.Context) {
	providerID := c.Param("id")
	if c.GetString(utils.CtxProviderID) != providerID {
		utils.RespondError(c, models.NewForbiddenError("providers may only list their own bookings"))
		return
	}

	date, err := dateQuery(c, "date")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	bookings, err := h.Service.ListProviderDay(c.Request.Context(), providerID, date)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

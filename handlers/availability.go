package handlers

import (
	"net/http"

	"servio/models"
	"servio/services/booking"
	"servio/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	Service booking.BookingService
}

func NewAvailabilityHandler(svc booking.BookingService) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

// GetAvailableSlotsHandler serves GET /api/providers/:id/availability?date=&serviceId=&duration=
func (h *AvailabilityHandler) GetAvailableSlotsHandler(c *gin.Context) {
	providerID := c.Param("id")

	date, err := dateQuery(c, "date")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	serviceID := c.Query("serviceId")
	if serviceID == "" {
		utils.RespondError(c, models.NewValidationError("serviceId", "is required"))
		return
	}
	duration, err := optionalIntQuery(c, "duration")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	slots, err := h.Service.GetAvailableSlots(c.Request.Context(), providerID, date, serviceID, duration)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	getLogger(c).Debug("availability served", zap.String("providerId", providerID), zap.Int("slots", len(slots)))
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

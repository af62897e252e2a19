package handlers

import (
	"net/http"

	"servio/models"
	"servio/services/provider"
	"servio/utils"

	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	Service provider.AvailabilityService
}

func NewScheduleHandler(svc provider.AvailabilityService) *ScheduleHandler {
	return &ScheduleHandler{Service: svc}
}

// SetScheduleHandler serves PUT /api/providers/schedule for the authenticated provider.
func (h *ScheduleHandler) SetScheduleHandler(c *gin.Context) {
	providerID := c.GetString(utils.CtxProviderID)
	if providerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Provider not authenticated"})
		return
	}

	var input models.WeeklyAvailabilityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, bindError(err))
		return
	}

	wa, err := h.Service.SetWeeklyAvailability(c.Request.Context(), providerID, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wa)
}

// GetScheduleHandler serves GET /api/providers/:id/schedule.
func (h *ScheduleHandler) GetScheduleHandler(c *gin.Context) {
	wa, err := h.Service.GetWeeklyAvailability(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wa)
}

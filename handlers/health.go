package handlers

import (
	"net/http"

	"servio/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last dependency check.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.OK() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}

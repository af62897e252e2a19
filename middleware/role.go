package middleware

import (
	"net/http"

	"servio/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole rejects callers whose token role is not one of roles. It must run after
// JWTAuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(utils.CtxRole)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "This endpoint is not available for role '" + role + "'",
		})
	}
}

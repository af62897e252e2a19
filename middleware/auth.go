// middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"servio/models"
	"servio/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware verifies the bearer token and stores the caller's id and role in the
// context. Tokens are issued by the auth service; only the signature, expiry, sub and role
// are trusted here.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.ExtractClaims(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		switch claims.Role {
		case models.RoleUser:
			c.Set(utils.CtxUserID, claims.Subject)
		case models.RoleProvider:
			c.Set(utils.CtxProviderID, claims.Subject)
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unknown role in token"})
			return
		}
		c.Set(utils.CtxRole, claims.Role)
		c.Next()
	}
}

// ActorFromContext returns the caller set by JWTAuthMiddleware.
func ActorFromContext(c *gin.Context) (models.Actor, bool) {
	role := c.GetString(utils.CtxRole)
	switch role {
	case models.RoleUser:
		return models.Actor{ID: c.GetString(utils.CtxUserID), Role: role}, true
	case models.RoleProvider:
		return models.Actor{ID: c.GetString(utils.CtxProviderID), Role: role}, true
	}
	return models.Actor{}, false
}

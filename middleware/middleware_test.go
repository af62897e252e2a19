package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"servio/config"
	"servio/models"
	"servio/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.AppConfig.JWTSecret = "test-secret"
}

func authRouter() *gin.Engine {
	r := gin.New()
	r.GET("/whoami", JWTAuthMiddleware(), func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": actor.ID, "role": actor.Role})
	})
	r.GET("/providers-only", JWTAuthMiddleware(), RequireRole(models.RoleProvider), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func get(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := authRouter()

	userToken, err := utils.GenerateToken("u1", models.RoleUser, time.Hour)
	require.NoError(t, err)
	w := get(r, "/whoami", userToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"u1","role":"user"}`, w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, get(r, "/whoami", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/whoami", "garbage").Code)

	expired, err := utils.GenerateToken("u1", models.RoleUser, -time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/whoami", expired).Code)

	admin, err := utils.GenerateToken("a1", "admin", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/whoami", admin).Code)
}

func TestRequireRole(t *testing.T) {
	r := authRouter()

	userToken, _ := utils.GenerateToken("u1", models.RoleUser, time.Hour)
	providerToken, _ := utils.GenerateToken("p1", models.RoleProvider, time.Hour)

	assert.Equal(t, http.StatusForbidden, get(r, "/providers-only", userToken).Code)
	assert.Equal(t, http.StatusNoContent, get(r, "/providers-only", providerToken).Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Forwarded-For", ip)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1"))
	assert.Equal(t, http.StatusOK, call("10.0.0.2"))
}

func TestGetClientIP(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "192.168.1.5:4312"
	assert.Equal(t, "192.168.1.5", getClientIP(c))

	c.Request.Header.Set("X-Real-IP", " 172.16.0.9 ")
	assert.Equal(t, "172.16.0.9", getClientIP(c))

	c.Request.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", getClientIP(c))
}

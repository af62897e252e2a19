package routes

import (
	"time"

	"servio/config"
	"servio/handlers"
	"servio/middleware"
	"servio/models"
	"servio/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterProviderRoutes sets up the availability and schedule endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	providerGroup := r.Group("/api/providers")
	{
		// Public endpoints.
		providerGroup.GET("/:id/availability", hb.GetAvailableSlotsHandler)
		providerGroup.GET("/:id/schedule", hb.GetScheduleHandler)
	}

	protected := providerGroup.Group("")
	protected.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleProvider))
	{
		protected.PUT("/schedule", hb.SetScheduleHandler)
		protected.GET("/:id/bookings", hb.ListProviderBookingsHandler)
	}
}

// RegisterBookingRoutes sets up endpoints for booking creation and lifecycle.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/bookings")
	bookingGroup.Use(middleware.JWTAuthMiddleware())
	{
		bookingGroup.POST("", middleware.RequireRole(models.RoleUser), hb.CreateBookingHandler)
		bookingGroup.PUT("/:id/extend", middleware.RequireRole(models.RoleProvider), hb.ExtendBookingHandler)
		bookingGroup.PATCH("/:id/status", middleware.RequireRole(models.RoleUser, models.RoleProvider), hb.UpdateBookingStatusHandler)
		bookingGroup.GET("/:id", middleware.RequireRole(models.RoleUser, models.RoleProvider), hb.GetBookingHandler)
	}
}

// RegisterHealthRoute sets up the health check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
}

// NewRouter builds the engine with the global middleware chain and all routes.
func NewRouter(hb *handlers.HandlerBundle) *gin.Engine {
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	RegisterRoutes(router, hb)
	return router
}

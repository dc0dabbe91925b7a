package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"fleetflow/internal/handler"
	"fleetflow/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	VehicleHandler     *handler.VehicleHandler
	DriverHandler      *handler.DriverHandler
	TripHandler        *handler.TripHandler
	MaintenanceHandler *handler.MaintenanceHandler
	AnalyticsHandler   *handler.AnalyticsHandler
	UserHandler        *handler.UserHandler
	RedisClient        *redis.Client
	NewRelicApp        *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Vehicle registry, maintenance and fuel logging.
		vehicles := v1.Group("/vehicles")
		{
			vehicles.POST("/register", deps.VehicleHandler.Register)
			vehicles.GET("", deps.VehicleHandler.GetAll)
			vehicles.GET("/:id", deps.VehicleHandler.GetVehicle)
			vehicles.POST("/:id/maintenance", deps.MaintenanceHandler.LogMaintenance)
			vehicles.POST("/:id/fuel", deps.MaintenanceHandler.LogFuel)
			vehicles.POST("/:id/return", deps.MaintenanceHandler.ReturnToService)
		}

		// Driver registry.
		drivers := v1.Group("/drivers")
		{
			drivers.POST("/register", deps.DriverHandler.Register)
			drivers.GET("", deps.DriverHandler.GetAll)
		}

		// Trip lifecycle.
		trips := v1.Group("/trips")
		{
			trips.POST("/dispatch", deps.TripHandler.Dispatch)
			trips.GET("", deps.TripHandler.GetAll)
			trips.GET("/active", deps.TripHandler.GetActive)
			trips.GET("/:id", deps.TripHandler.GetTrip)
			trips.POST("/:id/complete", deps.TripHandler.Complete)
		}

		// Maintenance feed.
		maintenance := v1.Group("/maintenance")
		{
			maintenance.GET("/recent", deps.MaintenanceHandler.RecentServices)
		}

		// Dashboard analytics.
		analytics := v1.Group("/analytics")
		{
			analytics.GET("/summary", deps.AnalyticsHandler.Summary)
			analytics.GET("/roi", deps.AnalyticsHandler.Financials)
		}

		// Dashboard users.
		users := v1.Group("/users")
		{
			users.POST("/register", deps.UserHandler.Register)
			users.GET("", deps.UserHandler.GetAll)
		}
	}

	return router
}

package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"dispatch/internal/handler"
	"dispatch/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	TripHandler    *handler.TripHandler
	DriverHandler  *handler.DriverHandler
	VehicleHandler *handler.VehicleHandler
	RedisClient    *redis.Client
	NewRelicApp    *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORS())

	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.Idempotency(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Trip routes.
		trips := v1.Group("/trips")
		{
			trips.POST("", deps.TripHandler.CreateTrip)
			trips.GET("", deps.TripHandler.GetAll)
			trips.GET("/:id", deps.TripHandler.GetTrip)
			trips.GET("/:id/eligible", deps.TripHandler.ListEligibleResources)
			trips.GET("/:id/estimate", deps.TripHandler.EstimateCost)
			trips.POST("/:id/confirm", deps.TripHandler.ConfirmAssignment)
			trips.POST("/:id/transition", deps.TripHandler.Transition)
		}

		// Driver routes.
		drivers := v1.Group("/drivers")
		{
			drivers.POST("/register", deps.DriverHandler.Register)
			drivers.GET("", deps.DriverHandler.GetAll)
			drivers.POST("/:id/availability", deps.DriverHandler.SetAvailability)
			drivers.POST("/:id/deactivate", deps.DriverHandler.Deactivate)
		}

		// Vehicle routes.
		vehicles := v1.Group("/vehicles")
		{
			vehicles.POST("/register", deps.VehicleHandler.Register)
			vehicles.GET("", deps.VehicleHandler.GetAll)
			vehicles.POST("/:id/availability", deps.VehicleHandler.SetAvailability)
		}
	}

	return router
}

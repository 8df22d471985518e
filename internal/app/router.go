package app

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"ridebooking/internal/handler"
	"ridebooking/internal/middleware"
	"ridebooking/internal/service"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler *handler.AuthHandler
	RideHandler *handler.RideHandler
	UserHandler *handler.UserHandler
	AuthService *service.AuthService
	RedisClient *redis.Client
	NewRelicApp *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(cors.Default())
	router.Use(middleware.Metrics())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.Idempotency(deps.RedisClient))

	// Health check and metrics.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authRequired := middleware.Auth(deps.AuthService)

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Auth routes.
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", deps.AuthHandler.SignUp)
			auth.POST("/signin", deps.AuthHandler.SignIn)
			auth.POST("/signout", authRequired, deps.AuthHandler.SignOut)
		}

		// User directory routes.
		users := v1.Group("/users", authRequired)
		{
			users.GET("", deps.UserHandler.GetAll)
			users.GET("/:id", deps.UserHandler.GetByID)
		}

		// Ride routes.
		rides := v1.Group("/rides", authRequired)
		{
			rides.POST("", deps.RideHandler.CreateRide)
			rides.POST("/:id/accept", deps.RideHandler.AcceptRide)
			rides.PUT("/:id/status", deps.RideHandler.UpdateStatus)
			rides.POST("/:id/cancel", deps.RideHandler.CancelRide)
			rides.PUT("/:id/feedback", deps.RideHandler.ProvideFeedback)
			rides.GET("/customer/:customerId", deps.RideHandler.ListForCustomer)
			rides.GET("/customer/:customerId/history", deps.RideHandler.CompletedHistory)
			rides.GET("/driver/:driverId", deps.RideHandler.ListForDriver)
			rides.GET("/feedback", deps.RideHandler.ListFeedback)
		}
	}

	return router
}

package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"rideauth/internal/handler"
	"rideauth/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler    *handler.AuthHandler
	TokenVerifier  middleware.TokenVerifier
	AllowedOrigins []string
	RedisClient    *redis.Client
	NewRelicApp    *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware(deps.AllowedOrigins))

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	if deps.RedisClient != nil {
		router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "Server is running"})
	})

	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/signup", deps.AuthHandler.Signup)
			authRoutes.POST("/signin", deps.AuthHandler.Signin)

			// Any authenticated role may read and edit its own profile.
			protected := authRoutes.Group("")
			protected.Use(middleware.AuthMiddleware(deps.TokenVerifier))
			protected.Use(middleware.NewRelicIdentityMiddleware())
			{
				protected.GET("/profile", deps.AuthHandler.GetProfile)
				protected.PATCH("/profile", deps.AuthHandler.UpdateProfile)
			}
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handler.ErrorResponse{Error: "Route not found"})
	})

	return router
}

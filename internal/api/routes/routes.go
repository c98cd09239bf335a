package routes

import (
	"component-inventory-backend/internal/api/handlers"
	"component-inventory-backend/internal/api/middleware"
	"component-inventory-backend/internal/bridge"
	"component-inventory-backend/internal/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(cfg *config.Config, dispatcher *bridge.Dispatcher, healthHandler *handlers.HealthHandler) *gin.Engine {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg))

	bridgeHandler := handlers.NewBridgeHandler(dispatcher, cfg.AllowedOrigins)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		b := v1.Group("/bridge")
		{
			b.GET("/operations", bridgeHandler.Operations)
			b.GET("/ws", bridgeHandler.WebSocket)
			b.POST("/:operation", bridgeHandler.Invoke)
		}
	}

	// Catch-all route for undefined endpoints
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":      "Endpoint not found",
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": c.GetString("request_id"),
		})
	})

	return router
}

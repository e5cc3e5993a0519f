package http

import (
	"github.com/gin-gonic/gin"

	"github.com/cartlist/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		checklist := v1.Group("/checklist")
		{
			checklist.GET("", handler.ListItems)
			checklist.POST("", handler.CreateItem)
			checklist.PUT("/:uid", handler.UpdateItem)
			checklist.DELETE("/:uid", handler.DeleteItem)
		}

		products := v1.Group("/products")
		{
			products.GET("/search", handler.SearchProducts)
		}
	}

	return router
}

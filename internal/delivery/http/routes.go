package http

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dinetrack/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, log *zap.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(ZapLogger(log))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		menu := v1.Group("/menu")
		{
			menu.GET("/categories", handler.Categories)
			menu.GET("/items", handler.ItemsByCategory)
			menu.GET("/items/:id", handler.RecipeDetail)
			menu.GET("/search", handler.SearchItems)
		}

		v1.GET("/menus", handler.Menus)
		v1.GET("/menus/:id", handler.MenuDetail)
		v1.GET("/nutrients", handler.NutrientNames)

		cartGroup := v1.Group("/cart")
		{
			cartGroup.POST("/items", handler.AddToCart)
			cartGroup.GET("", handler.Cart)
			cartGroup.GET("/totals", handler.CartTotals)
		}
	}

	return router
}

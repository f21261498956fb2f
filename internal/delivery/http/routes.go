package http

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/grocerlens/backend/config"
	"github.com/grocerlens/backend/internal/infrastructure/ratelimit"
	"github.com/sirupsen/logrus"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, limiter *ratelimit.Registry, logger *logrus.Logger) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/healthz", handler.HealthCheck)

	// Front end
	webDir := cfg.Server.WebDir
	router.GET("/", func(c *gin.Context) {
		c.File(filepath.Join(webDir, "templates", "index.html"))
	})
	router.Static("/static", filepath.Join(webDir, "static"))

	api := router.Group("/api")
	api.Use(RateLimitMiddleware(limiter))
	{
		api.POST("/search", handler.Search)
	}

	router.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "Not Found")
	})

	return router
}

package router

import (
	"github.com/gin-gonic/gin"

	"encomendas/internal/handler"
	"encomendas/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	parseH *handler.ParseHandler,
	cacheH *handler.CacheHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	packages := v1.Group("/packages")
	packages.POST("/parse-pdf", parseH.ParsePDF)
	packages.POST("/export", parseH.Export)

	cache := v1.Group("/cache")
	cache.GET("/stats", cacheH.Stats)
	cache.POST("/sweep", cacheH.Sweep)

	return r
}

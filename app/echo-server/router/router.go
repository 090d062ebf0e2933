package router

import (
	"ecoEats/internal/rest"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRecommendationRoutes mounts the dish endpoints on every group given,
// so the same handlers serve both the root and the versioned prefix.
func SetupRecommendationRoutes(handler *rest.RecommendationHandler, groups ...*echo.Group) {
	for _, g := range groups {
		g.GET("/health", handler.Health)
		g.POST("/recommend", handler.Recommend)
		g.GET("/search", handler.Search)
		g.POST("/compare", handler.Compare)
		g.GET("/stats", handler.Stats)
	}
}

func SetupMetricsRoutes(e *echo.Echo) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

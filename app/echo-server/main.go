package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpMetrics "ecoEats/app/echo-server/metrics"
	"ecoEats/app/echo-server/router"
	"ecoEats/internal/bootstrap"
	"ecoEats/internal/middleware"
	"ecoEats/internal/rest"
	"ecoEats/pkg/config"
	"ecoEats/pkg/logger"
	"ecoEats/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting EcoEats", "version", cfg.App.Version, "env", cfg.App.Environment)

	// Init metrics
	metrics.Init()
	httpMetrics.Init()

	// Load dataset and build the engine
	engine, err := bootstrap.NewEngine(context.Background(), cfg)
	if err != nil {
		logger.Fatal("Failed to initialize recommender", "error", err)
	}
	logger.Info("Recommender ready", "items", engine.Len(), "source", cfg.Dataset.Source)

	// Init handler
	recommendationHandler := rest.NewRecommendationHandler(engine, rest.HandlerDefaults{
		K:                   cfg.Recommender.DefaultK,
		SimilarityThreshold: cfg.Recommender.DefaultThreshold,
		SearchLimit:         cfg.Recommender.SearchLimit,
		Timeout:             cfg.Server.RequestTimeout,
	})

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = rest.JSONSerializer{}

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceID())
	e.Use(middleware.RequestLogger())
	e.Use(httpMetrics.Middleware())
	e.Use(echomiddleware.BodyLimit(cfg.Server.RequestBodyLimit))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
	}))
	if cfg.Server.RateLimitPerSec > 0 {
		e.Use(echomiddleware.RateLimiter(echomiddleware.NewRateLimiterMemoryStore(rate.Limit(cfg.Server.RateLimitPerSec))))
	}
	if cfg.Server.StaticDir != "" {
		e.Use(echomiddleware.StaticWithConfig(echomiddleware.StaticConfig{
			Root:  cfg.Server.StaticDir,
			Index: "index.html",
		}))
	}

	// Setup routes
	router.SetupRecommendationRoutes(recommendationHandler, e.Group(""), e.Group("/api/v1"))
	router.SetupMetricsRoutes(e)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}

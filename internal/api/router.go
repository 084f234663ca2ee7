// Package api assembles the HTTP surface: operational endpoints, the
// webhook that feeds the bot pipeline, and the Prometheus scrape target.
package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/zosai/marketplace-bot/internal/api/handler"
	"github.com/zosai/marketplace-bot/internal/api/middleware"
	"github.com/zosai/marketplace-bot/internal/core/ports"
)

// Deps carries everything the router wires into handlers. The nilable
// fields reflect optional backends.
type Deps struct {
	Enqueuer   handler.EventEnqueuer
	Authorizer ports.Authorizer
	APILimiter ports.RateLimiter
	Mongo      *mongo.Database // nil when persistence is disabled
	Redis      *redis.Client   // nil in memory-only mode
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// --- Public endpoints ---
	infoHandler := handler.NewInfoHandler()
	healthHandler := handler.NewHealthHandler()
	readyHandler := handler.NewReadinessHandler(d.Mongo, d.Redis)

	e.GET("/", infoHandler.Info)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readyHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// --- Restricted endpoints ---
	adminHandler := handler.NewAdminHandler(d.Authorizer)
	e.GET("/admin/status", adminHandler.Status)

	// --- Webhook, behind the API limiter ---
	webhookHandler := handler.NewWebhookHandler(d.Enqueuer)
	rateLimited := middleware.RateLimit(d.APILimiter, d.Authorizer, 900)
	e.POST("/webhook", webhookHandler.Receive, rateLimited)

	return e
}

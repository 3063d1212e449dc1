package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotes-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotes-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotes-service/internal/platform/config"
	"github.com/jsamuelsen/quotes-service/internal/platform/telemetry"
)

// RouterConfig contains everything the router wires together.
type RouterConfig struct {
	Logger     *slog.Logger
	AppConfig  *config.AppConfig
	AuthConfig *config.AuthConfig

	HealthHandler    *handlers.HealthHandler
	QuoteHandler     *handlers.QuoteHandler
	FavoritesHandler *handlers.FavoritesHandler

	// RequestTimeout bounds each /api/v1 request. Zero disables it.
	RequestTimeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Global middleware, first to last:
//  1. ContextLogger - seed the request logger
//  2. Recovery - catch panics
//  3. RequestID, CorrelationID - extract or generate, propagate downstream
//  4. OpenTelemetry - otelgin span, server metrics, X-Trace-ID
//  5. Logging - request logging (skips /-/ endpoints)
//
// The /api/v1 group adds the request timeout and caller authentication;
// the favorites operations additionally require a caller.
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	serviceName := "quotes-service"
	if cfg.AppConfig != nil && cfg.AppConfig.Name != "" {
		serviceName = cfg.AppConfig.Name
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	engine.Use(
		middleware.ContextLogger(logger),
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)
	engine.Use(telemetry.Middleware(serviceName)...)
	engine.Use(middleware.Logging())

	engine.NoRoute(notFound)

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterRoutes(engine)
	}

	api := engine.Group("/api/v1",
		middleware.Timeout(cfg.RequestTimeout),
		middleware.Authenticate(cfg.AuthConfig),
	)

	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterRoutes(api)
	}

	if cfg.FavoritesHandler != nil {
		cfg.FavoritesHandler.RegisterRoutes(api.Group("", middleware.RequireAuth()))
	}
}

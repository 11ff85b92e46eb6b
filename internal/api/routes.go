// routes.go - Route registration helpers
// This file provides a clean way to register all API routes
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/bdo-activity/backend/internal/config"
	"github.com/bdo-activity/backend/internal/export"
	"github.com/bdo-activity/backend/internal/logging"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Sessions SessionManager
	Exporter *export.Exporter
	Metrics  http.Handler // nil disables /metrics
	Logger   zerolog.Logger
	Version  string
}

// Handlers holds all handler instances
type Handlers struct {
	Health  HealthHandler
	Forms   FormHandler
	Wizard  WizardHandler
	Ledger  LedgerHandler
	Events  EventsHandler
	metrics http.Handler
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) (*Handlers, error) {
	bodies, err := NewBodyValidator()
	if err != nil {
		return nil, err
	}
	return &Handlers{
		Health:  NewHealthHandler(deps.Version, deps.Sessions),
		Forms:   NewFormHandler(),
		Wizard:  NewWizardHandler(deps.Sessions, bodies, deps.Logger),
		Ledger:  NewLedgerHandler(deps.Sessions, deps.Exporter),
		Events:  NewWebSocketHandler(deps.Sessions, deps.Logger),
		metrics: deps.Metrics,
	}, nil
}

// RegisterRoutes registers all API routes with the Echo instance.
// limiter, when not nil, guards the state-changing session routes.
func RegisterRoutes(e *echo.Echo, handlers *Handlers, limiter echo.MiddlewareFunc) {
	// Health check
	e.GET("/api/health", handlers.Health.HandleHealth)

	if handlers.metrics != nil {
		e.GET("/metrics", echo.WrapHandler(handlers.metrics))
	}

	// Step schemas
	formGroup := e.Group("/api/forms")
	formGroup.GET("", handlers.Forms.HandleListForms)
	formGroup.GET("/:step", handlers.Forms.HandleGetForm)
	formGroup.GET("/:step/schema", handlers.Forms.HandleGetFormSchema)

	// Wizard session routes
	var guard []echo.MiddlewareFunc
	if limiter != nil {
		guard = append(guard, limiter)
	}
	sessionGroup := e.Group("/api/sessions")
	sessionGroup.POST("", handlers.Wizard.HandleCreateSession, guard...)
	sessionGroup.GET("/:id", handlers.Wizard.HandleGetSession)
	sessionGroup.DELETE("/:id", handlers.Wizard.HandleDeleteSession)
	sessionGroup.POST("/:id/form", handlers.Wizard.HandleOpenForm, guard...)
	sessionGroup.POST("/:id/general-info", handlers.Wizard.HandleSubmitGeneralInfo, guard...)
	sessionGroup.POST("/:id/activity", handlers.Wizard.HandleCommitActivity, guard...)
	sessionGroup.POST("/:id/history", handlers.Wizard.HandleBrowse, guard...)
	sessionGroup.POST("/:id/history/:index", handlers.Wizard.HandleSelectRecord, guard...)
	sessionGroup.POST("/:id/back", handlers.Wizard.HandleBack, guard...)
	sessionGroup.GET("/:id/ledger", handlers.Ledger.HandleExportLedger)

	// WebSocket routes
	sessionGroup.GET("/:id/events", handlers.Events.HandleEvents)
}

// NewRateLimiter returns a per-client limiter, or nil when perSecond is 0.
func NewRateLimiter(perSecond float64, burst int) echo.MiddlewareFunc {
	if perSecond <= 0 {
		return nil
	}
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSecond),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return NewBadRequestError("could not identify client", err)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return &APIError{
				Status:  http.StatusTooManyRequests,
				Code:    "RATE_LIMITED",
				Message: "too many requests",
			}
		},
	})
}

// SetupMiddleware configures common middleware
func SetupMiddleware(e *echo.Echo, server config.ServerConfig, logs config.LoggingConfig, logger zerolog.Logger) {
	// Use custom error handler
	e.HTTPErrorHandler = ErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	if logs.RequestLogging {
		e.Use(logging.RequestLogger(logger))
	}

	if server.EnableCORS {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: splitOrigins(server.AllowOrigins),
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		}))
	}

	if server.BodyLimit != "" {
		e.Use(middleware.BodyLimit(server.BodyLimit))
	}

	if d := server.RequestTimeoutDuration(); d > 0 {
		e.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
			Timeout: d,
			Skipper: func(c echo.Context) bool {
				return strings.HasSuffix(c.Path(), "/events")
			},
		}))
	}
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		out = []string{"*"}
	}
	return out
}

package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	_ "github.com/esgview/admin-gateway/docs"
	"github.com/esgview/admin-gateway/internal/api/handler"
	"github.com/esgview/admin-gateway/internal/api/middleware"
	"github.com/esgview/admin-gateway/internal/core/domain"
	"github.com/esgview/admin-gateway/internal/core/ports"
)

// RouterConfig carries the wired services the HTTP surface depends on.
type RouterConfig struct {
	Sessions        ports.SessionService
	Analytics       ports.AnalyticsService
	Panels          ports.PanelSource
	Logger          zerolog.Logger
	ReadinessChecks []handler.ReadinessCheck
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("esggw"))

	// --- Handlers ---
	sessionHandler := handler.NewSessionHandler(cfg.Sessions)
	analyticsHandler := handler.NewAnalyticsHandler(cfg.Analytics, cfg.Panels)

	// --- Session routes ---
	e.POST("/session/login", sessionHandler.Login)
	e.POST("/session/signup", sessionHandler.Signup)
	e.POST("/session/logout", sessionHandler.Logout)
	e.GET("/session", sessionHandler.Current)

	gated := e.Group("", middleware.SessionGate(cfg.Sessions))
	gated.POST("/session/refresh", sessionHandler.Refresh)
	gated.GET("/session/clients", sessionHandler.Clients)
	gated.GET("/session/roster", sessionHandler.Roster,
		middleware.RoleGate(domain.RoleAdmin))

	// --- Analytics routes (all require a session) ---
	analytics := e.Group("/analytics", middleware.SessionGate(cfg.Sessions))
	analytics.POST("/predictions", analyticsHandler.Predictions)
	analytics.POST("/risks", analyticsHandler.Risks)
	analytics.POST("/carbon", analyticsHandler.Carbon)
	analytics.POST("/recommendations", analyticsHandler.Recommendations)
	analytics.POST("/document", analyticsHandler.Document)
	analytics.POST("/report", analyticsHandler.Report)
	analytics.GET("/panels/:client_id", analyticsHandler.Panels)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(cfg.ReadinessChecks...)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

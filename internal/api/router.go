package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/brandbook/entries-api/docs"
	"github.com/brandbook/entries-api/internal/api/handler"
	"github.com/brandbook/entries-api/internal/api/middleware"
	"github.com/brandbook/entries-api/internal/core/ports"
)

const (
	imageRoute = "/image"
	// imageBodyLimit leaves room for multipart framing around a 5 MiB file.
	imageBodyLimit = "6M"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Auth    ports.AuthService
	Entries ports.EntryService
	Images  ports.ImageService
	Checks  []handler.ReadinessCheck
	Log     zerolog.Logger

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "brandbook",
		Registerer: d.Registerer,
	}))

	authHandler := handler.NewAuthHandler(d.Auth)
	entryHandler := handler.NewEntryHandler(d.Entries)
	imageHandler := handler.NewImageHandler(d.Images)
	healthHandler := handler.NewHealthHandler(d.Checks...)
	requireAuth := middleware.Auth(d.Auth)

	// --- Auth routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.GET("/me", authHandler.Me, requireAuth)
	e.POST("/change-password", authHandler.ChangePassword, requireAuth)

	// --- Entry routes ---
	e.GET("/entries", entryHandler.List, requireAuth)
	e.POST("/create-entry", entryHandler.Create, requireAuth)
	e.POST("/update-entry", entryHandler.Update, requireAuth)
	e.POST("/delete-entry", entryHandler.Delete, requireAuth)

	// --- Images ---
	e.POST(imageRoute, imageHandler.Upload, echomiddleware.BodyLimit(imageBodyLimit))

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	// --- Ops ---
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

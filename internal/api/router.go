// Package api provides the HTTP API for Shiori.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/shiori-app/shiori/internal/api/handler"
	"github.com/shiori-app/shiori/internal/api/middleware"
	"github.com/shiori-app/shiori/internal/itinerary"
	"github.com/shiori-app/shiori/internal/odpt"
	"github.com/shiori-app/shiori/internal/provider/resilience"
	"github.com/shiori-app/shiori/internal/route"
	"github.com/shiori-app/shiori/internal/station"
	"github.com/shiori-app/shiori/internal/trip"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	MapRenderer string
	Metrics     *middleware.Metrics

	Parser      *itinerary.Parser
	Finder      *station.Finder
	Catalog     *station.Catalog
	Composer    *route.Composer
	TripService *trip.Service
	StationData *odpt.Service
	Registry    *resilience.Registry
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "shiori-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(handler.OpsConfig{
		Version:     cfg.Version,
		BuildTime:   cfg.BuildTime,
		MapRenderer: cfg.MapRenderer,
		Registry:    cfg.Registry,
		StationData: cfg.StationData,
		Catalog:     cfg.Catalog,
	})
	itineraryHandler := handler.NewItineraryHandler(cfg.Parser, cfg.TripService)
	stationHandler := handler.NewStationHandler(cfg.Finder)
	routeHandler := handler.NewRouteHandler(cfg.Composer, cfg.Finder)
	tripHandler := handler.NewTripHandler(cfg.TripService)

	// Create rate limit middleware for different endpoint categories
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})

		// Itinerary endpoints
		r.Route("/itinerary", func(r chi.Router) {
			r.With(expensiveRateLimit).Post("/parse", itineraryHandler.Parse)
			r.With(standardRateLimit).Put("/", itineraryHandler.Save)
			r.With(standardRateLimit).Get("/", itineraryHandler.Load)
		})

		// Station catalog endpoints
		r.Route("/stations", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/nearby", stationHandler.Nearby)
			r.Get("/nearest", stationHandler.Nearest)
			r.Get("/search", stationHandler.Search)
			r.Get("/line/{line}", stationHandler.ByLine)
			r.Get("/areas", stationHandler.Areas)
		})

		// Route composition - expensive compute, strict rate limiting
		r.Route("/routes", func(r chi.Router) {
			r.Use(expensiveRateLimit)
			r.Get("/options", routeHandler.Options)
			r.Get("/directions", routeHandler.Directions)
		})

		// Location override
		r.Route("/location/override", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Put("/", tripHandler.SetLocationOverride)
			r.Get("/", tripHandler.GetLocationOverride)
			r.Delete("/", tripHandler.ClearLocationOverride)
		})

		// Preferences
		r.Route("/preferences/theme", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Put("/", tripHandler.SetTheme)
			r.Get("/", tripHandler.GetTheme)
		})

		// Saved places from the shared map
		r.With(standardRateLimit).Get("/places", tripHandler.Places)

		// Sync history
		r.With(standardRateLimit).Get("/sync/history", tripHandler.SyncHistory)
	})

	return r
}

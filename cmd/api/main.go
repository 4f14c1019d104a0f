// Package main provides the entrypoint for the Shiori API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/shiori-app/shiori/internal/api"
	"github.com/shiori-app/shiori/internal/api/middleware"
	"github.com/shiori-app/shiori/internal/database"
	"github.com/shiori-app/shiori/internal/itinerary"
	"github.com/shiori-app/shiori/internal/odpt"
	"github.com/shiori-app/shiori/internal/provider/resilience"
	"github.com/shiori-app/shiori/internal/route"
	"github.com/shiori-app/shiori/internal/station"
	"github.com/shiori-app/shiori/internal/storage"
	"github.com/shiori-app/shiori/internal/telemetry"
	"github.com/shiori-app/shiori/internal/trip"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "shiori-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting Shiori API")

	// Get configuration from environment
	port := getEnvOrDefault("APP_PORT", "8080")
	env := getEnvOrDefault("APP_ENV", "development")
	otlpEndpoint := getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")

	// Map rendering capability is decided once at startup: interactive
	// Google tiles when a browser key is configured, static OSM otherwise.
	mapRenderer := "osm"
	if os.Getenv("GOOGLE_MAPS_BROWSER_KEY") != "" {
		mapRenderer = "google"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Choose the blob store backend
	var repo storage.Repository
	switch backend := getEnvOrDefault("STORAGE_BACKEND", "memory"); backend {
	case "postgres":
		dbConfig := database.ConfigFromEnv()
		pool, connErr := database.Connect(ctx, dbConfig)
		if connErr != nil {
			log.Fatal().Err(connErr).Msg("failed to connect to database")
		}
		defer pool.Close()
		log.Info().
			Str("host", dbConfig.Host).
			Int("port", dbConfig.Port).
			Str("database", dbConfig.Database).
			Msg("database connected")
		repo = storage.NewPostgresRepository(pool)
	case "memory":
		log.Warn().Msg("using in-memory storage - data is lost on restart")
		repo = storage.NewInMemoryRepository()
	default:
		log.Fatal().Str("backend", backend).Msg("unknown storage backend")
	}

	// Core domain services
	catalog := station.NewCatalog()
	catalog.LoadExtendedData()
	finder := station.NewFinder(catalog)
	composer := route.NewComposer(route.ComposerConfig{
		Catalog: catalog,
		Finder:  finder,
		Logger:  log,
	})
	parser := itinerary.NewParser()
	tripService := trip.NewService(trip.ServiceConfig{
		Repository: repo,
		Logger:     log,
	})
	log.Info().
		Int("stations", catalog.Len()).
		Msg("station catalog loaded")

	// Station open-data provider with health tracking
	registry := resilience.NewRegistry()

	odptKey := os.Getenv("ODPT_CONSUMER_KEY")
	if odptKey == "" {
		log.Warn().Msg("ODPT_CONSUMER_KEY not set - station data refresh will fail")
	}
	odptHTTPConfig := resilience.DefaultClientConfig(odpt.ProviderName)
	odptHTTPConfig.Registry = registry
	odptClient := odpt.NewClient(odpt.ClientConfig{
		ConsumerKey: odptKey,
		BaseURL:     getEnvOrDefault("ODPT_BASE_URL", odpt.DefaultBaseURL),
		HTTPClient:  resilience.NewClient(odptHTTPConfig),
		Logger:      log,
	})
	stationData := odpt.NewService(odpt.ServiceConfig{
		Provider: odptClient,
		Logger:   log,
	})
	log.Info().Msg("station data service initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:     Version,
		BuildTime:   BuildTime,
		Logger:      log,
		ServiceName: serviceName,
		MapRenderer: mapRenderer,
		Metrics:     metrics,
		Parser:      parser,
		Finder:      finder,
		Catalog:     catalog,
		Composer:    composer,
		TripService: tripService,
		StationData: stationData,
		Registry:    registry,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Str("map_renderer", mapRenderer).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Package main provides the entrypoint for the Shiori sync worker.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/shiori-app/shiori/internal/database"
	"github.com/shiori-app/shiori/internal/mymaps"
	"github.com/shiori-app/shiori/internal/odpt"
	"github.com/shiori-app/shiori/internal/provider/resilience"
	"github.com/shiori-app/shiori/internal/station"
	"github.com/shiori-app/shiori/internal/storage"
	"github.com/shiori-app/shiori/internal/trip"
	"github.com/shiori-app/shiori/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "shiori-worker"

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting Shiori worker")

	// Worker also exposes a health endpoint for Cloud Run
	port := getEnvOrDefault("APP_PORT", "8080")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

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
		repo = storage.NewPostgresRepository(pool)
		log.Info().
			Str("host", dbConfig.Host).
			Str("database", dbConfig.Database).
			Msg("database connected")
	case "memory":
		log.Warn().Msg("using in-memory storage - data is lost on restart")
		repo = storage.NewInMemoryRepository()
	default:
		log.Fatal().Str("backend", backend).Msg("unknown storage backend")
	}

	catalog := station.NewCatalog()
	catalog.LoadExtendedData()
	tripService := trip.NewService(trip.ServiceConfig{
		Repository: repo,
		Logger:     log,
	})

	registry := resilience.NewRegistry()

	odptKey := os.Getenv("ODPT_CONSUMER_KEY")
	if odptKey == "" {
		log.Warn().Msg("ODPT_CONSUMER_KEY not set - station refresh will fail")
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

	refreshConfig := worker.DefaultRefreshConfig()

	var places worker.PlacesProvider
	proxyURL := os.Getenv("MYMAPS_PROXY_URL")
	if proxyURL != "" {
		mymapsHTTPConfig := resilience.DefaultClientConfig(mymaps.ProviderName)
		mymapsHTTPConfig.Registry = registry
		places = mymaps.NewClient(mymaps.ClientConfig{
			ProxyURL:   proxyURL,
			HTTPClient: resilience.NewClient(mymapsHTTPConfig),
			Logger:     log,
		})
	} else {
		log.Warn().Msg("MYMAPS_PROXY_URL not set - saved places refresh disabled")
		refreshConfig.RefreshPlaces = false
	}

	refreshJob := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config:      refreshConfig,
		Logger:      log,
		StationData: stationData,
		Catalog:     catalog,
		Places:      places,
		TripService: tripService,
	})

	// Pub/Sub is optional: without a subscription the worker runs on its
	// interval ticker only.
	projectID := os.Getenv("PUBSUB_PROJECT_ID")
	subscription := os.Getenv("PUBSUB_SUBSCRIPTION")
	if projectID != "" && subscription != "" {
		pubsubHandler, err := worker.NewPubSubHandler(ctx, worker.PubSubConfig{
			ProjectID:        projectID,
			SubscriptionName: subscription,
			RefreshJob:       refreshJob,
			Logger:           log,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create pubsub handler")
		}
		defer pubsubHandler.Close()

		go func() {
			if err := pubsubHandler.Start(ctx); err != nil {
				log.Error().Err(err).Msg("pubsub handler stopped")
			}
		}()
		log.Info().
			Str("subscription", subscription).
			Msg("pubsub handler started")
	} else {
		log.Info().Msg("pubsub not configured - running on interval only")
	}

	go refreshJob.Start(ctx)

	// Health check server
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","version":"%s"}`, Version)
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("health server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("health server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

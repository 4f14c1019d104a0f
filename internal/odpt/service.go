package odpt

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/shiori-app/shiori/internal/station"
)

// ServiceConfig holds configuration for the station data service.
type ServiceConfig struct {
	// Provider is the station metadata provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// CacheTTL is how long to cache station records (default: 24 hours).
	// Station metadata rarely changes.
	CacheTTL time.Duration

	// StaleIfErrorTTL allows serving stale data on provider errors
	// (default: 7 days).
	StaleIfErrorTTL time.Duration
}

// Service provides station enrichment records with caching.
type Service struct {
	provider        Provider
	logger          zerolog.Logger
	cacheTTL        time.Duration
	staleIfErrorTTL time.Duration

	mu    sync.RWMutex
	cache *cachedRecords
}

type cachedRecords struct {
	records   []station.Enrichment
	fetchedAt time.Time
	expiresAt time.Time
}

// NewService creates a new station data service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	staleIfErrorTTL := cfg.StaleIfErrorTTL
	if staleIfErrorTTL == 0 {
		staleIfErrorTTL = 7 * 24 * time.Hour
	}

	return &Service{
		provider:        cfg.Provider,
		logger:          cfg.Logger,
		cacheTTL:        cacheTTL,
		staleIfErrorTTL: staleIfErrorTTL,
	}
}

// StationRecords returns the cached enrichment records, fetching from the
// provider when the cache is missing or expired.
func (s *Service) StationRecords(ctx context.Context) ([]station.Enrichment, error) {
	s.mu.RLock()
	if s.cache != nil && time.Now().Before(s.cache.expiresAt) {
		records := s.cache.records
		s.mu.RUnlock()
		return records, nil
	}
	s.mu.RUnlock()

	return s.fetchRecords(ctx, false)
}

// Refresh fetches fresh records from the provider regardless of cache
// freshness. Used by the background refresh worker.
func (s *Service) Refresh(ctx context.Context) ([]station.Enrichment, error) {
	return s.fetchRecords(ctx, true)
}

// fetchRecords fetches from the provider and updates the cache.
func (s *Service) fetchRecords(ctx context.Context, force bool) ([]station.Enrichment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check cache
	if !force && s.cache != nil && time.Now().Before(s.cache.expiresAt) {
		return s.cache.records, nil
	}

	s.logger.Debug().
		Str("provider", s.provider.Name()).
		Msg("fetching station records from provider")

	records, err := s.provider.StationRecords(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch station records")

		// Check for stale data
		if s.cache != nil {
			if time.Now().Before(s.cache.fetchedAt.Add(s.staleIfErrorTTL)) {
				s.logger.Warn().
					Time("fetched_at", s.cache.fetchedAt).
					Msg("serving stale station records due to provider error")
				return s.cache.records, nil
			}
		}

		return nil, ErrProviderUnavailable
	}

	// Update cache
	now := time.Now()
	s.cache = &cachedRecords{
		records:   records,
		fetchedAt: now,
		expiresAt: now.Add(s.cacheTTL),
	}

	s.logger.Info().
		Int("stations", len(records)).
		Msg("station records cache refreshed")

	return records, nil
}

// InvalidateCache clears the cached records.
func (s *Service) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = nil
}

// CacheStats contains cache statistics for the ops status endpoint.
type CacheStats struct {
	Provider    string
	HasCache    bool
	CacheFresh  bool
	RecordCount int
	FetchedAt   time.Time
}

// CacheStats returns the current cache state.
func (s *Service) CacheStats() CacheStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := CacheStats{Provider: s.provider.Name()}
	if s.cache != nil {
		stats.HasCache = true
		stats.CacheFresh = time.Now().Before(s.cache.expiresAt)
		stats.RecordCount = len(s.cache.records)
		stats.FetchedAt = s.cache.fetchedAt
	}
	return stats
}

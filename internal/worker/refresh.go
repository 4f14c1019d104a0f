package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/shiori-app/shiori/internal/mymaps"
	"github.com/shiori-app/shiori/internal/odpt"
	"github.com/shiori-app/shiori/internal/station"
	"github.com/shiori-app/shiori/internal/trip"
)

// PlacesProvider fetches saved places from the shared map.
type PlacesProvider interface {
	Places(ctx context.Context) ([]mymaps.Place, error)
	Name() string
}

// RefreshJob pulls fresh data from the external sources, applies it, and
// records the outcome in the sync history.
type RefreshJob struct {
	config      RefreshConfig
	logger      zerolog.Logger
	stationData *odpt.Service
	catalog     *station.Catalog
	places      PlacesProvider
	trips       *trip.Service

	metricsMu sync.RWMutex
	metrics   RefreshMetrics
}

// RefreshMetrics tracks refresh job statistics.
type RefreshMetrics struct {
	TotalRuns        int64
	StationRefreshes int64
	PlaceRefreshes   int64
	Failures         int64

	LastRunAt       time.Time
	LastRunDuration time.Duration
}

// RefreshJobConfig holds configuration for creating a RefreshJob.
type RefreshJobConfig struct {
	Config      RefreshConfig
	Logger      zerolog.Logger
	StationData *odpt.Service
	Catalog     *station.Catalog
	Places      PlacesProvider
	TripService *trip.Service
}

// NewRefreshJob creates a new refresh job processor.
func NewRefreshJob(cfg RefreshJobConfig) *RefreshJob {
	config := cfg.Config
	if config.Timeout == 0 {
		config.Timeout = DefaultRefreshConfig().Timeout
	}
	if config.Interval == 0 {
		config.Interval = DefaultRefreshConfig().Interval
	}

	return &RefreshJob{
		config:      config,
		logger:      cfg.Logger,
		stationData: cfg.StationData,
		catalog:     cfg.Catalog,
		places:      cfg.Places,
		trips:       cfg.TripService,
	}
}

// RefreshResult contains the outcome of one refresh run.
type RefreshResult struct {
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	Successful int
	Failed     int
	Records    []trip.SyncRecord
}

// Run executes one refresh of every configured source. Each source gets a
// sync record regardless of outcome; one failing source does not stop the
// others.
func (j *RefreshJob) Run(ctx context.Context) *RefreshResult {
	startTime := time.Now()
	result := &RefreshResult{StartTime: startTime}

	j.logger.Info().Msg("starting sync refresh job")

	if j.config.RefreshStations && j.stationData != nil {
		j.refreshStations(ctx, result)
	}
	if j.config.RefreshPlaces && j.places != nil {
		j.refreshPlaces(ctx, result)
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(startTime)

	j.updateMetrics(result)

	j.logger.Info().
		Dur("duration", result.Duration).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Msg("sync refresh job completed")

	return result
}

// Start runs the job on its configured interval until the context is
// cancelled. The first run happens immediately.
func (j *RefreshJob) Start(ctx context.Context) {
	j.Run(ctx)

	ticker := time.NewTicker(j.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Info().Msg("sync refresh loop stopped")
			return
		case <-ticker.C:
			j.Run(ctx)
		}
	}
}

func (j *RefreshJob) refreshStations(ctx context.Context, result *RefreshResult) {
	refreshCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	records, err := j.stationData.Refresh(refreshCtx)
	if err != nil {
		j.logger.Error().Err(err).Msg("station refresh failed")
		j.recordSync(ctx, result, odpt.ProviderName, trip.SyncFailed, err.Error())
		return
	}

	j.catalog.Apply(records)
	j.metricsMu.Lock()
	j.metrics.StationRefreshes++
	j.metricsMu.Unlock()

	j.logger.Info().
		Int("records", len(records)).
		Int("catalog_size", j.catalog.Len()).
		Msg("station catalog refreshed")

	j.recordSync(ctx, result, odpt.ProviderName, trip.SyncOK, "")
}

func (j *RefreshJob) refreshPlaces(ctx context.Context, result *RefreshResult) {
	refreshCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	places, err := j.places.Places(refreshCtx)
	if err != nil {
		j.logger.Error().Err(err).Msg("saved places refresh failed")
		j.recordSync(ctx, result, j.places.Name(), trip.SyncFailed, err.Error())
		return
	}

	if err := j.trips.SavePlaces(ctx, places); err != nil {
		j.logger.Error().Err(err).Msg("storing saved places failed")
		j.recordSync(ctx, result, j.places.Name(), trip.SyncFailed, err.Error())
		return
	}

	j.metricsMu.Lock()
	j.metrics.PlaceRefreshes++
	j.metricsMu.Unlock()

	j.logger.Info().
		Int("places", len(places)).
		Msg("saved places refreshed")

	j.recordSync(ctx, result, j.places.Name(), trip.SyncOK, "")
}

// recordSync appends a sync record and tallies the run outcome.
func (j *RefreshJob) recordSync(ctx context.Context, result *RefreshResult, source string, status trip.SyncStatus, detail string) {
	if status == trip.SyncOK {
		result.Successful++
	} else {
		result.Failed++
	}

	if j.trips == nil {
		return
	}

	rec, err := j.trips.RecordSync(ctx, source, status, detail)
	if err != nil {
		j.logger.Error().Err(err).Str("source", source).Msg("recording sync outcome failed")
		return
	}
	result.Records = append(result.Records, *rec)
}

func (j *RefreshJob) updateMetrics(result *RefreshResult) {
	j.metricsMu.Lock()
	defer j.metricsMu.Unlock()

	j.metrics.TotalRuns++
	j.metrics.Failures += int64(result.Failed)
	j.metrics.LastRunAt = result.EndTime
	j.metrics.LastRunDuration = result.Duration
}

// GetMetrics returns a copy of the current metrics.
func (j *RefreshJob) GetMetrics() RefreshMetrics {
	j.metricsMu.RLock()
	defer j.metricsMu.RUnlock()
	return j.metrics
}

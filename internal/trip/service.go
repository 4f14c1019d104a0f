package trip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/shiori-app/shiori/internal/geo"
	"github.com/shiori-app/shiori/internal/itinerary"
	"github.com/shiori-app/shiori/internal/mymaps"
	"github.com/shiori-app/shiori/internal/storage"
)

// DefaultMaxSyncHistory caps the sync history length.
const DefaultMaxSyncHistory = 20

// ServiceConfig holds configuration for the trip service.
type ServiceConfig struct {
	// Repository is the blob store. Injected, not owned.
	Repository storage.Repository

	// Logger for service operations.
	Logger zerolog.Logger

	// MaxSyncHistory bounds the sync history (default: 20 records).
	MaxSyncHistory int
}

// Service persists trip documents through the storage adapter. Validation
// failures abort the single operation and never touch stored state.
type Service struct {
	repo           storage.Repository
	logger         zerolog.Logger
	maxSyncHistory int
}

// NewService creates a new trip service.
func NewService(cfg ServiceConfig) *Service {
	maxHistory := cfg.MaxSyncHistory
	if maxHistory <= 0 {
		maxHistory = DefaultMaxSyncHistory
	}

	return &Service{
		repo:           cfg.Repository,
		logger:         cfg.Logger,
		maxSyncHistory: maxHistory,
	}
}

// SaveItinerary stores the parsed day schedules.
func (s *Service) SaveItinerary(ctx context.Context, schedules []itinerary.DaySchedule) error {
	if err := s.setJSON(ctx, keyItinerary, schedules); err != nil {
		return err
	}
	s.logger.Debug().Int("days", len(schedules)).Msg("itinerary saved")
	return nil
}

// LoadItinerary returns the stored day schedules, or nil when none are
// saved. Absence is an expected outcome, not an error.
func (s *Service) LoadItinerary(ctx context.Context) ([]itinerary.DaySchedule, error) {
	var schedules []itinerary.DaySchedule
	found, err := s.getJSON(ctx, keyItinerary, &schedules)
	if err != nil || !found {
		return nil, err
	}
	return schedules, nil
}

// SavePlaces stores the saved places pulled from the shared map.
func (s *Service) SavePlaces(ctx context.Context, places []mymaps.Place) error {
	if err := s.setJSON(ctx, keyPlaces, places); err != nil {
		return err
	}
	s.logger.Debug().Int("places", len(places)).Msg("saved places stored")
	return nil
}

// LoadPlaces returns the stored saved places, or nil when none are stored.
func (s *Service) LoadPlaces(ctx context.Context) ([]mymaps.Place, error) {
	var places []mymaps.Place
	found, err := s.getJSON(ctx, keyPlaces, &places)
	if err != nil || !found {
		return nil, err
	}
	return places, nil
}

// SaveTheme stores the theme preference, rejecting unrecognized values.
func (s *Service) SaveTheme(ctx context.Context, theme Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, theme)
	}
	return s.setJSON(ctx, keyTheme, theme)
}

// LoadTheme returns the stored theme, defaulting to system.
func (s *Service) LoadTheme(ctx context.Context) (Theme, error) {
	var theme Theme
	found, err := s.getJSON(ctx, keyTheme, &theme)
	if err != nil {
		return "", err
	}
	if !found {
		return ThemeSystem, nil
	}
	return theme, nil
}

// SetLocationOverride stores a manual location after validating the
// coordinate ranges and the Japan bounding box. Invalid locations are
// rejected, never clamped, and leave any stored override untouched.
func (s *Service) SetLocationOverride(ctx context.Context, lat, lon float64) (*OverrideLocation, error) {
	if err := geo.Validate(lat, lon); err != nil {
		return nil, err
	}
	if !geo.InJapan(lat, lon) {
		return nil, fmt.Errorf("%w: (%f, %f)", ErrOutsideJapan, lat, lon)
	}

	override := &OverrideLocation{Lat: lat, Lon: lon, SetAt: time.Now().UTC()}
	if err := s.setJSON(ctx, keyOverride, override); err != nil {
		return nil, err
	}

	s.logger.Info().
		Float64("lat", lat).
		Float64("lon", lon).
		Msg("location override set")

	return override, nil
}

// LocationOverride returns the stored override, or nil when none is set.
func (s *Service) LocationOverride(ctx context.Context) (*OverrideLocation, error) {
	var override OverrideLocation
	found, err := s.getJSON(ctx, keyOverride, &override)
	if err != nil || !found {
		return nil, err
	}
	return &override, nil
}

// ClearLocationOverride removes the stored override.
func (s *Service) ClearLocationOverride(ctx context.Context) error {
	return s.repo.RemoveItem(ctx, keyOverride)
}

// RecordSync appends a sync record, newest first, trimming the history to
// its configured cap.
func (s *Service) RecordSync(ctx context.Context, source string, status SyncStatus, detail string) (*SyncRecord, error) {
	history, err := s.SyncHistory(ctx)
	if err != nil {
		return nil, err
	}

	record := SyncRecord{
		ID:     "sync_" + uuid.New().String()[:22],
		Source: source,
		Status: status,
		Detail: detail,
		At:     time.Now().UTC(),
	}

	history = append([]SyncRecord{record}, history...)
	if len(history) > s.maxSyncHistory {
		history = history[:s.maxSyncHistory]
	}

	if err := s.setJSON(ctx, keySyncHistory, history); err != nil {
		return nil, err
	}

	return &record, nil
}

// SyncHistory returns the stored sync records, newest first.
func (s *Service) SyncHistory(ctx context.Context) ([]SyncRecord, error) {
	var history []SyncRecord
	found, err := s.getJSON(ctx, keySyncHistory, &history)
	if err != nil || !found {
		return nil, err
	}
	return history, nil
}

// setJSON marshals v and stores it under key.
func (s *Service) setJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.repo.SetItem(ctx, key, data); err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}

// getJSON loads and unmarshals the blob under key. The bool reports whether
// the key existed.
func (s *Service) getJSON(ctx context.Context, key string, v any) (bool, error) {
	data, err := s.repo.GetItem(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

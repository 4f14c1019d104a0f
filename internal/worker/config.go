// Package worker provides background sync processing for Shiori.
package worker

import "time"

// RefreshConfig holds configuration for the sync refresh job.
type RefreshConfig struct {
	// Timeout is the timeout for each refresh operation.
	// Default: 30 seconds
	Timeout time.Duration

	// Interval is the periodic refresh interval used by Start.
	// Default: 6 hours
	Interval time.Duration

	// RefreshStations enables the station metadata refresh.
	// Default: true
	RefreshStations bool

	// RefreshPlaces enables the saved-places refresh.
	// Default: true
	RefreshPlaces bool
}

// DefaultRefreshConfig returns the default refresh configuration.
func DefaultRefreshConfig() RefreshConfig {
	return RefreshConfig{
		Timeout:         30 * time.Second,
		Interval:        6 * time.Hour,
		RefreshStations: true,
		RefreshPlaces:   true,
	}
}

// Package odpt fetches station metadata from the ODPT (Open Data for Public
// Transportation) Tokyo feed and serves it through a caching service.
package odpt

import (
	"context"
	"errors"

	"github.com/shiori-app/shiori/internal/station"
)

// ErrProviderUnavailable indicates the upstream feed could not be reached
// and no cached data was fresh enough to serve.
var ErrProviderUnavailable = errors.New("station data provider unavailable")

// Provider defines the interface for station metadata providers.
type Provider interface {
	// StationRecords fetches enrichment records for the station catalog.
	StationRecords(ctx context.Context) ([]station.Enrichment, error)

	// Name returns the provider name for logging.
	Name() string
}

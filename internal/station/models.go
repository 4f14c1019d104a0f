// Package station provides the in-memory subway station catalog and
// geographic queries over it.
package station

import "strings"

// Station is a named, geolocated subway station with its line memberships.
type Station struct {
	// Name uniquely identifies the station within the catalog.
	Name string `json:"name"`

	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`

	// Lines the station sits on. Always non-empty for seeded stations.
	Lines []string `json:"lines"`

	// Amenities tags, populated by extended data loading.
	Amenities []string `json:"amenities,omitempty"`

	// TransferLines reachable by transfer, populated by extended data loading.
	TransferLines []string `json:"transferLines,omitempty"`
}

// HasLine reports whether any of the station's lines contains the given
// name as a case-sensitive substring.
func (s *Station) HasLine(line string) bool {
	for _, l := range s.Lines {
		if strings.Contains(l, line) {
			return true
		}
	}
	return false
}

// WithDistance pairs a station with its computed distance from a query
// point. Ephemeral: built per query, never persisted. DistanceKm keeps full
// float precision; presentation layers round for display.
type WithDistance struct {
	Station
	DistanceKm float64 `json:"distanceKm"`
}

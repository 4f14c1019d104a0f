// Package geo provides great-circle distance math and coordinate validation.
package geo

import (
	"fmt"
	"math"
)

// earthRadiusKm is the mean Earth radius used by the Haversine formula.
const earthRadiusKm = 6371

// Japan bounding box. Coarse by intent: it admits some non-Japan points
// (parts of Korea and coastal China) and may exclude the remotest islands.
// Treat it as a heuristic, not an authoritative geofence.
const (
	japanMinLat = 24
	japanMaxLat = 46
	japanMinLon = 123
	japanMaxLon = 146
)

// Coordinate represents a validated geographic point.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Validate checks that lat is within [-90, 90] and lon within [-180, 180].
// The returned error names the violated bound. Values are never clamped.
func Validate(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %f out of range [-90, 90]", lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("longitude %f out of range [-180, 180]", lon)
	}
	return nil
}

// Distance returns the Haversine great-circle distance in kilometers between
// two points. It is symmetric and returns 0 for identical points. Callers are
// expected to validate coordinates first; no validation happens here.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// InJapan reports whether the point falls inside the coarse Japan bounding
// box. See the box comment above for the accuracy caveats.
func InJapan(lat, lon float64) bool {
	return lat >= japanMinLat && lat <= japanMaxLat &&
		lon >= japanMinLon && lon <= japanMaxLon
}

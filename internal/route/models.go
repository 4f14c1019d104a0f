// Package route composes subway route options and human-readable directions
// between a user location and a destination station.
package route

import (
	"math"

	"github.com/shiori-app/shiori/internal/geo"
	"github.com/shiori-app/shiori/internal/station"
)

// Segment is one ride on a single line between two stations.
type Segment struct {
	From string `json:"fromStation"`
	To   string `json:"toStation"`
	Line string `json:"line"`

	// DurationMin is the ride time in whole minutes.
	DurationMin int `json:"duration"`

	// DistanceKm keeps full precision; round only for display.
	DistanceKm float64 `json:"distanceKm"`
}

// Route is an ordered sequence of segments with aggregate metrics.
type Route struct {
	Segments []Segment `json:"segments"`

	// TotalDurationMin sums segment ride times plus transfer penalties.
	TotalDurationMin int `json:"totalDuration"`

	// TotalDistanceKm is the full-precision sum of segment distances,
	// retained for sorting. Use RoundKm for display.
	TotalDistanceKm float64 `json:"totalDistance"`
}

// TransferCount is the number of line changes, floored at zero.
func (r *Route) TransferCount() int {
	if len(r.Segments) <= 1 {
		return 0
	}
	return len(r.Segments) - 1
}

// Option wraps a candidate route with its presentation rank and the walk
// context needed to expand it into directions. Rank 1 is the fastest.
type Option struct {
	Rank int `json:"rank"`

	Route Route `json:"route"`

	// Origin is the user location the option starts from.
	Origin geo.Coordinate `json:"origin"`

	// Boarding is the first station reached on foot.
	Boarding station.WithDistance `json:"boarding"`

	// Destination is the ultimate target station.
	Destination station.Station `json:"destination"`

	// WalkMin is the initial walk time in whole minutes.
	WalkMin int `json:"walkMinutes"`

	// TotalMin is walk plus ride plus transfer time, the sort key.
	TotalMin int `json:"totalMinutes"`
}

// StepKind categorizes a direction step.
type StepKind string

const (
	StepWalk     StepKind = "walk"
	StepTransit  StepKind = "transit"
	StepTransfer StepKind = "transfer"
)

// DirectionStep is one human-readable instruction in a journey.
type DirectionStep struct {
	Kind        StepKind `json:"type"`
	Instruction string   `json:"instruction"`
	DurationMin int      `json:"duration,omitempty"`
	Line        string   `json:"line,omitempty"`
	From        string   `json:"fromStation,omitempty"`
	To          string   `json:"toStation,omitempty"`
}

// RoundKm rounds a distance to one decimal for display.
func RoundKm(km float64) float64 {
	return math.Round(km*10) / 10
}

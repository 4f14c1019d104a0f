package models

import "github.com/shiori-app/shiori/internal/route"

// SegmentResponse is the API shape of one transit leg.
type SegmentResponse struct {
	From        string  `json:"fromStation"`
	To          string  `json:"toStation"`
	Line        string  `json:"line"`
	DurationMin int     `json:"duration"`
	DistanceKm  float64 `json:"distanceKm"`
}

// RouteOptionResponse is one ranked way of reaching the destination.
type RouteOptionResponse struct {
	Rank          int                         `json:"rank"`
	Boarding      StationWithDistanceResponse `json:"boarding"`
	Destination   StationResponse             `json:"destination"`
	Segments      []SegmentResponse           `json:"segments"`
	Transfers     int                         `json:"transfers"`
	WalkMin       int                         `json:"walkMin"`
	TotalMin      int                         `json:"totalMin"`
	TotalDistance float64                     `json:"totalDistanceKm"`
}

// RouteOptionsResponse wraps the ranked options.
type RouteOptionsResponse struct {
	Origin  Point                 `json:"origin"`
	Options []RouteOptionResponse `json:"options"`
}

// DirectionStepResponse is one step of turn-by-turn directions.
type DirectionStepResponse struct {
	Kind        string `json:"kind"`
	Instruction string `json:"instruction"`
	DurationMin int    `json:"durationMin"`
	Line        string `json:"line,omitempty"`
	From        string `json:"from,omitempty"`
	To          string `json:"to,omitempty"`
}

// DirectionsResponse wraps the steps for the fastest option.
type DirectionsResponse struct {
	Destination string                  `json:"destination"`
	TotalMin    int                     `json:"totalMin"`
	Steps       []DirectionStepResponse `json:"steps"`
}

// NewRouteOptionResponse maps a ranked route option to its API shape.
func NewRouteOptionResponse(opt route.Option) RouteOptionResponse {
	segments := make([]SegmentResponse, 0, len(opt.Route.Segments))
	for _, seg := range opt.Route.Segments {
		segments = append(segments, SegmentResponse{
			From:        seg.From,
			To:          seg.To,
			Line:        seg.Line,
			DurationMin: seg.DurationMin,
			DistanceKm:  route.RoundKm(seg.DistanceKm),
		})
	}

	return RouteOptionResponse{
		Rank:          opt.Rank,
		Boarding:      NewStationWithDistanceResponse(opt.Boarding),
		Destination:   NewStationResponse(opt.Destination),
		Segments:      segments,
		Transfers:     opt.Route.TransferCount(),
		WalkMin:       opt.WalkMin,
		TotalMin:      opt.TotalMin,
		TotalDistance: route.RoundKm(opt.Route.TotalDistanceKm),
	}
}

// NewRouteOptionsResponse maps the ranked options for one origin.
func NewRouteOptionsResponse(lat, lon float64, options []route.Option) RouteOptionsResponse {
	out := make([]RouteOptionResponse, 0, len(options))
	for _, opt := range options {
		out = append(out, NewRouteOptionResponse(opt))
	}
	return RouteOptionsResponse{
		Origin:  Point{Lat: lat, Lon: lon},
		Options: out,
	}
}

// NewDirectionsResponse maps direction steps for the fastest option.
func NewDirectionsResponse(opt route.Option, steps []route.DirectionStep) DirectionsResponse {
	out := make([]DirectionStepResponse, 0, len(steps))
	for _, step := range steps {
		out = append(out, DirectionStepResponse{
			Kind:        string(step.Kind),
			Instruction: step.Instruction,
			DurationMin: step.DurationMin,
			Line:        step.Line,
			From:        step.From,
			To:          step.To,
		})
	}
	return DirectionsResponse{
		Destination: opt.Destination.Name,
		TotalMin:    opt.TotalMin,
		Steps:       out,
	}
}

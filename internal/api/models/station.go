package models

import (
	"github.com/shiori-app/shiori/internal/route"
	"github.com/shiori-app/shiori/internal/station"
)

// StationResponse is the API shape of a catalog station.
type StationResponse struct {
	Name          string   `json:"name"`
	Lat           float64  `json:"lat"`
	Lon           float64  `json:"lon"`
	Lines         []string `json:"lines"`
	Amenities     []string `json:"amenities,omitempty"`
	TransferLines []string `json:"transferLines,omitempty"`
}

// StationWithDistanceResponse adds the distance from the query point,
// rounded to one decimal for presentation.
type StationWithDistanceResponse struct {
	StationResponse
	DistanceKm float64 `json:"distanceKm"`
}

// StationListResponse wraps a station list.
type StationListResponse struct {
	Stations []StationResponse `json:"stations"`
}

// NearbyStationsResponse wraps a distance-annotated station list.
type NearbyStationsResponse struct {
	Stations []StationWithDistanceResponse `json:"stations"`
}

// AreasResponse groups stations by area bucket.
type AreasResponse struct {
	Areas map[string][]StationResponse `json:"areas"`
}

// NewStationResponse maps a catalog station to its API shape.
func NewStationResponse(s station.Station) StationResponse {
	return StationResponse{
		Name:          s.Name,
		Lat:           s.Lat,
		Lon:           s.Lon,
		Lines:         s.Lines,
		Amenities:     s.Amenities,
		TransferLines: s.TransferLines,
	}
}

// NewStationListResponse maps a station slice to its API shape.
func NewStationListResponse(stations []station.Station) StationListResponse {
	out := make([]StationResponse, 0, len(stations))
	for _, s := range stations {
		out = append(out, NewStationResponse(s))
	}
	return StationListResponse{Stations: out}
}

// NewStationWithDistanceResponse maps a distance-annotated station,
// rounding the distance for presentation.
func NewStationWithDistanceResponse(s station.WithDistance) StationWithDistanceResponse {
	return StationWithDistanceResponse{
		StationResponse: NewStationResponse(s.Station),
		DistanceKm:      route.RoundKm(s.DistanceKm),
	}
}

// NewNearbyStationsResponse maps a distance-annotated station slice.
func NewNearbyStationsResponse(stations []station.WithDistance) NearbyStationsResponse {
	out := make([]StationWithDistanceResponse, 0, len(stations))
	for _, s := range stations {
		out = append(out, NewStationWithDistanceResponse(s))
	}
	return NearbyStationsResponse{Stations: out}
}

// NewAreasResponse maps the area partition to its API shape.
func NewAreasResponse(areas map[string][]station.Station) AreasResponse {
	out := make(map[string][]StationResponse, len(areas))
	for name, stations := range areas {
		out[name] = NewStationListResponse(stations).Stations
	}
	return AreasResponse{Areas: out}
}

package models

import (
	"github.com/shiori-app/shiori/internal/mymaps"
	"github.com/shiori-app/shiori/internal/trip"
)

// PlacesResponse wraps the saved places pulled from the shared map.
type PlacesResponse struct {
	Places []mymaps.Place `json:"places"`
}

// LocationOverrideRequest is the body for PUT /v1/location/override.
type LocationOverrideRequest struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// LocationOverrideResponse is the stored override.
type LocationOverrideResponse struct {
	Lat   float64   `json:"lat"`
	Lon   float64   `json:"lon"`
	SetAt Timestamp `json:"setAt"`
}

// NewLocationOverrideResponse maps a stored override to its API shape.
func NewLocationOverrideResponse(o *trip.OverrideLocation) LocationOverrideResponse {
	return LocationOverrideResponse{
		Lat:   o.Lat,
		Lon:   o.Lon,
		SetAt: Timestamp(o.SetAt),
	}
}

// ThemeRequest is the body for PUT /v1/preferences/theme.
type ThemeRequest struct {
	Theme string `json:"theme"`
}

// ThemeResponse is the stored theme preference.
type ThemeResponse struct {
	Theme string `json:"theme"`
}

// SyncRecordResponse is one sync history entry.
type SyncRecordResponse struct {
	ID     string    `json:"id"`
	Source string    `json:"source"`
	Status string    `json:"status"`
	Detail string    `json:"detail,omitempty"`
	At     Timestamp `json:"at"`
}

// SyncHistoryResponse wraps the sync history, newest first.
type SyncHistoryResponse struct {
	History []SyncRecordResponse `json:"history"`
}

// NewSyncHistoryResponse maps sync records to their API shape.
func NewSyncHistoryResponse(records []trip.SyncRecord) SyncHistoryResponse {
	out := make([]SyncRecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, SyncRecordResponse{
			ID:     rec.ID,
			Source: rec.Source,
			Status: string(rec.Status),
			Detail: rec.Detail,
			At:     Timestamp(rec.At),
		})
	}
	return SyncHistoryResponse{History: out}
}

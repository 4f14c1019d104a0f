package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shiori-app/shiori/internal/api/models"
	"github.com/shiori-app/shiori/internal/api/response"
	"github.com/shiori-app/shiori/internal/mymaps"
	"github.com/shiori-app/shiori/internal/trip"
)

// TripHandler handles trip preference and location endpoints.
type TripHandler struct {
	trips *trip.Service
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(trips *trip.Service) *TripHandler {
	return &TripHandler{trips: trips}
}

// SetLocationOverride handles PUT /v1/location/override.
func (h *TripHandler) SetLocationOverride(w http.ResponseWriter, r *http.Request) {
	var input models.LocationOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	override, err := h.trips.SetLocationOverride(r.Context(), input.Lat, input.Lon)
	if err != nil {
		if errors.Is(err, trip.ErrOutsideJapan) {
			response.BadRequest(w, r, "validation failed", []models.FieldError{
				{Field: "lat", Message: "location is outside Japan", Code: "out_of_bounds"},
			})
			return
		}
		response.BadRequest(w, r, err.Error(), nil)
		return
	}

	response.JSON(w, r, http.StatusOK, models.NewLocationOverrideResponse(override))
}

// GetLocationOverride handles GET /v1/location/override.
func (h *TripHandler) GetLocationOverride(w http.ResponseWriter, r *http.Request) {
	override, err := h.trips.LocationOverride(r.Context())
	if err != nil {
		response.InternalError(w, r, "failed to load location override")
		return
	}
	if override == nil {
		response.NotFound(w, r, "no location override set")
		return
	}

	response.JSON(w, r, http.StatusOK, models.NewLocationOverrideResponse(override))
}

// ClearLocationOverride handles DELETE /v1/location/override.
func (h *TripHandler) ClearLocationOverride(w http.ResponseWriter, r *http.Request) {
	if err := h.trips.ClearLocationOverride(r.Context()); err != nil {
		response.InternalError(w, r, "failed to clear location override")
		return
	}

	response.NoContent(w, r)
}

// SetTheme handles PUT /v1/preferences/theme.
func (h *TripHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var input models.ThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if err := h.trips.SaveTheme(r.Context(), trip.Theme(input.Theme)); err != nil {
		if errors.Is(err, trip.ErrInvalidTheme) {
			response.BadRequest(w, r, "validation failed", []models.FieldError{
				{Field: "theme", Message: "theme must be light, dark, or system", Code: "invalid"},
			})
			return
		}
		response.InternalError(w, r, "failed to save theme")
		return
	}

	response.JSON(w, r, http.StatusOK, models.ThemeResponse{Theme: input.Theme})
}

// GetTheme handles GET /v1/preferences/theme.
func (h *TripHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := h.trips.LoadTheme(r.Context())
	if err != nil {
		response.InternalError(w, r, "failed to load theme")
		return
	}

	response.JSON(w, r, http.StatusOK, models.ThemeResponse{Theme: string(theme)})
}

// Places handles GET /v1/places - saved places from the shared map, as of
// the last background sync. Never synced comes back as an empty list.
func (h *TripHandler) Places(w http.ResponseWriter, r *http.Request) {
	places, err := h.trips.LoadPlaces(r.Context())
	if err != nil {
		response.InternalError(w, r, "failed to load saved places")
		return
	}
	if places == nil {
		places = []mymaps.Place{}
	}

	response.JSON(w, r, http.StatusOK, models.PlacesResponse{Places: places})
}

// SyncHistory handles GET /v1/sync/history.
func (h *TripHandler) SyncHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.trips.SyncHistory(r.Context())
	if err != nil {
		response.InternalError(w, r, "failed to load sync history")
		return
	}

	response.JSON(w, r, http.StatusOK, models.NewSyncHistoryResponse(history))
}

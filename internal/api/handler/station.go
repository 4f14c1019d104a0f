package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shiori-app/shiori/internal/api/models"
	"github.com/shiori-app/shiori/internal/api/response"
	"github.com/shiori-app/shiori/internal/geo"
	"github.com/shiori-app/shiori/internal/station"
)

// DefaultNearbyRadiusKm bounds station searches when the client does not
// pass a radius.
const DefaultNearbyRadiusKm = 2.0

// StationHandler handles station catalog endpoints.
type StationHandler struct {
	finder *station.Finder
}

// NewStationHandler creates a new StationHandler.
func NewStationHandler(finder *station.Finder) *StationHandler {
	return &StationHandler{finder: finder}
}

// Nearby handles GET /v1/stations/nearby?lat&lon&radiusKm.
func (h *StationHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	lat, lon, ok := coordinateParams(w, r)
	if !ok {
		return
	}

	radiusKm := DefaultNearbyRadiusKm
	if raw := r.URL.Query().Get("radiusKm"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			response.BadRequest(w, r, "validation failed", []models.FieldError{
				{Field: "radiusKm", Message: "radiusKm must be a positive number", Code: "invalid"},
			})
			return
		}
		radiusKm = parsed
	}

	stations := h.finder.InRadius(lat, lon, radiusKm)
	response.JSON(w, r, http.StatusOK, models.NewNearbyStationsResponse(stations))
}

// Nearest handles GET /v1/stations/nearest?lat&lon.
func (h *StationHandler) Nearest(w http.ResponseWriter, r *http.Request) {
	lat, lon, ok := coordinateParams(w, r)
	if !ok {
		return
	}

	nearest := h.finder.Nearest(lat, lon)
	if nearest == nil {
		response.NotFound(w, r, "no stations in catalog")
		return
	}

	response.JSON(w, r, http.StatusOK, models.NewStationWithDistanceResponse(*nearest))
}

// Search handles GET /v1/stations/search?q.
func (h *StationHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		response.BadRequest(w, r, "validation failed", []models.FieldError{
			{Field: "q", Message: "q is required", Code: "required"},
		})
		return
	}

	stations := h.finder.Search(query)
	response.JSON(w, r, http.StatusOK, models.NewStationListResponse(stations))
}

// ByLine handles GET /v1/stations/line/{line}.
func (h *StationHandler) ByLine(w http.ResponseWriter, r *http.Request) {
	line := chi.URLParam(r, "line")
	if line == "" {
		response.BadRequest(w, r, "line is required", nil)
		return
	}

	stations := h.finder.ByLine(line)
	response.JSON(w, r, http.StatusOK, models.NewStationListResponse(stations))
}

// Areas handles GET /v1/stations/areas.
func (h *StationHandler) Areas(w http.ResponseWriter, r *http.Request) {
	areas := h.finder.ByArea()
	response.JSON(w, r, http.StatusOK, models.NewAreasResponse(areas))
}

// coordinateParams parses and validates the lat/lon query parameters,
// writing the problem response itself on failure.
func coordinateParams(w http.ResponseWriter, r *http.Request) (lat, lon float64, ok bool) {
	var fieldErrors []models.FieldError

	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		fieldErrors = append(fieldErrors, models.FieldError{
			Field: "lat", Message: "lat must be a number", Code: "invalid",
		})
	}
	lon, err = strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil {
		fieldErrors = append(fieldErrors, models.FieldError{
			Field: "lon", Message: "lon must be a number", Code: "invalid",
		})
	}
	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation failed", fieldErrors)
		return 0, 0, false
	}

	if err := geo.Validate(lat, lon); err != nil {
		response.BadRequest(w, r, err.Error(), nil)
		return 0, 0, false
	}

	return lat, lon, true
}

package handler

import (
	"net/http"

	"github.com/shiori-app/shiori/internal/api/models"
	"github.com/shiori-app/shiori/internal/api/response"
	"github.com/shiori-app/shiori/internal/route"
	"github.com/shiori-app/shiori/internal/station"
)

// RouteHandler handles route composition endpoints.
type RouteHandler struct {
	composer *route.Composer
	finder   *station.Finder
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(composer *route.Composer, finder *station.Finder) *RouteHandler {
	return &RouteHandler{
		composer: composer,
		finder:   finder,
	}
}

// Options handles GET /v1/routes/options?lat&lon&station - ranked route
// options from the origin to the named station.
func (h *RouteHandler) Options(w http.ResponseWriter, r *http.Request) {
	lat, lon, dest, ok := h.routeParams(w, r)
	if !ok {
		return
	}

	options := h.composer.Options(lat, lon, *dest)
	response.JSON(w, r, http.StatusOK, models.NewRouteOptionsResponse(lat, lon, options))
}

// Directions handles GET /v1/routes/directions?lat&lon&station -
// turn-by-turn steps for the fastest option.
func (h *RouteHandler) Directions(w http.ResponseWriter, r *http.Request) {
	lat, lon, dest, ok := h.routeParams(w, r)
	if !ok {
		return
	}

	fastest := h.composer.Fastest(lat, lon, *dest)
	if fastest == nil {
		response.NotFound(w, r, "no route to "+dest.Name)
		return
	}

	steps := h.composer.Directions(*fastest)
	response.JSON(w, r, http.StatusOK, models.NewDirectionsResponse(*fastest, steps))
}

// routeParams parses the origin coordinates and resolves the destination
// station, writing the problem response itself on failure.
func (h *RouteHandler) routeParams(w http.ResponseWriter, r *http.Request) (lat, lon float64, dest *station.Station, ok bool) {
	lat, lon, ok = coordinateParams(w, r)
	if !ok {
		return 0, 0, nil, false
	}

	name := r.URL.Query().Get("station")
	if name == "" {
		response.BadRequest(w, r, "validation failed", []models.FieldError{
			{Field: "station", Message: "station is required", Code: "required"},
		})
		return 0, 0, nil, false
	}

	dest = h.finder.ByName(name)
	if dest == nil {
		response.NotFound(w, r, "unknown station: "+name)
		return 0, 0, nil, false
	}

	return lat, lon, dest, true
}

// Package handler provides HTTP handlers for the Shiori API.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shiori-app/shiori/internal/api/models"
	"github.com/shiori-app/shiori/internal/api/response"
	"github.com/shiori-app/shiori/internal/itinerary"
	"github.com/shiori-app/shiori/internal/trip"
)

// ItineraryHandler handles itinerary parsing and persistence endpoints.
type ItineraryHandler struct {
	parser *itinerary.Parser
	trips  *trip.Service
}

// NewItineraryHandler creates a new ItineraryHandler.
func NewItineraryHandler(parser *itinerary.Parser, trips *trip.Service) *ItineraryHandler {
	return &ItineraryHandler{
		parser: parser,
		trips:  trips,
	}
}

// Parse handles POST /v1/itinerary/parse - parse raw itinerary text.
func (h *ItineraryHandler) Parse(w http.ResponseWriter, r *http.Request) {
	var input models.ParseItineraryRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if input.Text == "" {
		response.BadRequest(w, r, "validation failed", []models.FieldError{
			{Field: "text", Message: "text is required", Code: "required"},
		})
		return
	}

	parser := h.parser
	if input.DefaultYear != 0 {
		parser = &itinerary.Parser{DefaultYear: input.DefaultYear}
	}

	days := parser.Parse(input.Text)
	response.JSON(w, r, http.StatusOK, models.ItineraryResponse{Days: days})
}

// Save handles PUT /v1/itinerary - persist the parsed itinerary.
func (h *ItineraryHandler) Save(w http.ResponseWriter, r *http.Request) {
	var input models.SaveItineraryRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if err := h.trips.SaveItinerary(r.Context(), input.Days); err != nil {
		response.InternalError(w, r, "failed to save itinerary")
		return
	}

	response.NoContent(w, r)
}

// Load handles GET /v1/itinerary - return the persisted itinerary. An
// itinerary that was never saved comes back as an empty day list.
func (h *ItineraryHandler) Load(w http.ResponseWriter, r *http.Request) {
	days, err := h.trips.LoadItinerary(r.Context())
	if err != nil {
		response.InternalError(w, r, "failed to load itinerary")
		return
	}
	if days == nil {
		days = []itinerary.DaySchedule{}
	}

	response.JSON(w, r, http.StatusOK, models.ItineraryResponse{Days: days})
}

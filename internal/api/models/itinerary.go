package models

import "github.com/shiori-app/shiori/internal/itinerary"

// ParseItineraryRequest is the body for POST /v1/itinerary/parse.
type ParseItineraryRequest struct {
	// Text is the raw free-text itinerary.
	Text string `json:"text"`

	// DefaultYear completes short dates without a year (optional).
	DefaultYear int `json:"defaultYear,omitempty"`
}

// ItineraryResponse wraps the parsed day schedules.
type ItineraryResponse struct {
	Days []itinerary.DaySchedule `json:"days"`
}

// SaveItineraryRequest is the body for PUT /v1/itinerary.
type SaveItineraryRequest struct {
	Days []itinerary.DaySchedule `json:"days"`
}

// Package itinerary parses free-text trip schedules into structured day plans.
package itinerary

// EntryKind categorizes a parsed itinerary entry.
type EntryKind string

const (
	KindArrival       EntryKind = "arrival"
	KindTransport     EntryKind = "transport"
	KindEvent         EntryKind = "event"
	KindAccommodation EntryKind = "accommodation"
	KindDeparture     EntryKind = "departure"
	KindUnknown       EntryKind = "unknown"
)

// Entry is a single itinerary line within a day.
type Entry struct {
	// Time is the clock time captured verbatim from the line ("2:20pm"),
	// empty when the line carries no time.
	Time string `json:"time,omitempty"`

	// Kind is inferred from keywords in the description.
	Kind EntryKind `json:"type"`

	// Location is the free-text origin tag for arrivals.
	Location string `json:"location,omitempty"`

	// Destination is the free-text destination tag for transport and event entries.
	Destination string `json:"destination,omitempty"`

	// Description is the full original line text with the leading marker stripped.
	Description string `json:"description"`
}

// DaySchedule holds one calendar day's worth of entries, in source line order.
type DaySchedule struct {
	// Date is an ISO-8601 calendar date (YYYY-MM-DD).
	Date string `json:"date"`

	// Entries preserves the order the lines appeared in the source text.
	Entries []Entry `json:"entries"`
}

// Package trip persists the traveller's small JSON documents (parsed
// itinerary, theme preference, location override, and sync history) through
// the storage adapter.
package trip

import (
	"errors"
	"time"
)

// Service errors.
var (
	// ErrInvalidTheme indicates an unrecognized theme value.
	ErrInvalidTheme = errors.New("invalid theme")

	// ErrOutsideJapan indicates an override location outside the Japan
	// bounding box.
	ErrOutsideJapan = errors.New("override location outside Japan")
)

// Storage keys for the persisted documents.
const (
	keyItinerary   = "itinerary"
	keyTheme       = "preferences.theme"
	keyOverride    = "location.override"
	keySyncHistory = "sync.history"
	keyPlaces      = "places.saved"
)

// Theme is the UI theme preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Valid reports whether the theme is one of the recognized values.
func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}

// OverrideLocation is a manually set substitute for the GPS-derived user
// location, used for testing and development.
type OverrideLocation struct {
	Lat   float64   `json:"lat"`
	Lon   float64   `json:"lon"`
	SetAt time.Time `json:"setAt"`
}

// SyncStatus is the outcome of a sync run.
type SyncStatus string

const (
	SyncOK     SyncStatus = "ok"
	SyncFailed SyncStatus = "failed"
)

// SyncRecord is one entry in the sync history, newest first.
type SyncRecord struct {
	ID     string     `json:"id"`
	Source string     `json:"source"`
	Status SyncStatus `json:"status"`
	Detail string     `json:"detail,omitempty"`
	At     time.Time  `json:"at"`
}

package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiori-app/shiori/internal/api"
	"github.com/shiori-app/shiori/internal/api/models"
	"github.com/shiori-app/shiori/internal/itinerary"
	"github.com/shiori-app/shiori/internal/route"
	"github.com/shiori-app/shiori/internal/station"
	"github.com/shiori-app/shiori/internal/storage"
	"github.com/shiori-app/shiori/internal/trip"
)

func newTestRouter() http.Handler {
	logger := zerolog.New(io.Discard)

	catalog := station.NewCatalog()
	catalog.LoadExtendedData()
	finder := station.NewFinder(catalog)

	composer := route.NewComposer(route.ComposerConfig{
		Catalog: catalog,
		Finder:  finder,
		Logger:  logger,
	})

	trips := trip.NewService(trip.ServiceConfig{
		Repository: storage.NewInMemoryRepository(),
		Logger:     logger,
	})

	return api.NewRouter(api.RouterConfig{
		Version:     "test",
		BuildTime:   "2026-01-01T00:00:00Z",
		Logger:      logger,
		MapRenderer: "osm",
		Parser:      itinerary.NewParser(),
		Finder:      finder,
		Catalog:     catalog,
		Composer:    composer,
		TripService: trips,
	})
}

func TestRouter_HealthCheck(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	var health models.Health
	err := json.Unmarshal(w.Body.Bytes(), &health)
	require.NoError(t, err)

	assert.Equal(t, models.HealthStatusOK, health.Status)
}

func TestRouter_SystemStatus(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/status", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var status models.SystemStatus
	err := json.Unmarshal(w.Body.Bytes(), &status)
	require.NoError(t, err)

	assert.Equal(t, "osm", status.Capabilities.MapRenderer)
	require.NotEmpty(t, status.Subsystems)
	assert.Equal(t, "station-catalog", status.Subsystems[0].Name)
	assert.Equal(t, models.HealthStatusOK, status.Subsystems[0].Status)
}

func TestRouter_ParseItinerary(t *testing.T) {
	router := newTestRouter()

	body, _ := json.Marshal(models.ParseItineraryRequest{
		Text: "9/9/2025\n- Arrive air HDN at 2:20pm local time\n- Subway to apartment: COCO Nakameguro 202",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/itinerary/parse", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var parsed models.ItineraryResponse
	err := json.Unmarshal(w.Body.Bytes(), &parsed)
	require.NoError(t, err)

	require.Len(t, parsed.Days, 1)
	assert.Equal(t, "2025-09-09", parsed.Days[0].Date)
	require.Len(t, parsed.Days[0].Entries, 2)
	assert.Equal(t, itinerary.KindArrival, parsed.Days[0].Entries[0].Kind)
}

func TestRouter_ParseItinerary_EmptyText(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/v1/itinerary/parse",
		bytes.NewReader([]byte(`{"text":""}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `"field":"text"`)
}

func TestRouter_ItinerarySaveAndLoad(t *testing.T) {
	router := newTestRouter()

	days := itinerary.NewParser().Parse("9/10/2025\n- See Ghibli Museum at 10:00am")
	body, _ := json.Marshal(models.SaveItineraryRequest{Days: days})

	req := httptest.NewRequest(http.MethodPut, "/v1/itinerary", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/itinerary", http.NoBody)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var loaded models.ItineraryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loaded))
	assert.Equal(t, days, loaded.Days)
}

func TestRouter_ItineraryLoadEmpty(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/itinerary", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var loaded models.ItineraryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loaded))
	assert.Empty(t, loaded.Days)
}

func TestRouter_StationsNearby(t *testing.T) {
	router := newTestRouter()

	// Nakameguro apartment coordinates.
	req := httptest.NewRequest(http.MethodGet,
		"/v1/stations/nearby?lat=35.6440&lon=139.6982&radiusKm=2", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var nearby models.NearbyStationsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &nearby))
	require.NotEmpty(t, nearby.Stations)
	assert.Equal(t, "Nakameguro", nearby.Stations[0].Name)
	assert.Equal(t, 0.0, nearby.Stations[0].DistanceKm)
}

func TestRouter_StationsNearby_InvalidCoordinates(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet,
		"/v1/stations/nearby?lat=95&lon=139.7", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "latitude")
}

func TestRouter_StationsNearest(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet,
		"/v1/stations/nearest?lat=35.6812&lon=139.7671", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var nearest models.StationWithDistanceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &nearest))
	assert.Equal(t, "Tokyo", nearest.Name)
}

func TestRouter_StationsSearch(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/stations/search?q=shinkansen", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var results models.StationListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.NotEmpty(t, results.Stations)
	for _, s := range results.Stations {
		assert.NotEmpty(t, s.Name)
	}
}

func TestRouter_StationsByLine(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/stations/line/Hibiya", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var results models.StationListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.NotEmpty(t, results.Stations)
	for _, s := range results.Stations {
		assert.Contains(t, s.Lines, "Hibiya")
	}
}

func TestRouter_StationsAreas(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/stations/areas", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var areas models.AreasResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &areas))
	assert.Contains(t, areas.Areas, "Central Tokyo")
}

func TestRouter_RouteOptions(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet,
		"/v1/routes/options?lat=35.6440&lon=139.6982&station=Tokyo", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var options models.RouteOptionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &options))
	require.NotEmpty(t, options.Options)
	assert.Equal(t, 1, options.Options[0].Rank)
	assert.Equal(t, "Tokyo", options.Options[0].Destination.Name)
}

func TestRouter_RouteOptions_UnknownStation(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet,
		"/v1/routes/options?lat=35.6440&lon=139.6982&station=Narnia", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
}

func TestRouter_RouteDirections(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet,
		"/v1/routes/directions?lat=35.6440&lon=139.6982&station=Ebisu", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var directions models.DirectionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &directions))
	assert.Equal(t, "Ebisu", directions.Destination)
	require.NotEmpty(t, directions.Steps)
	assert.Equal(t, "walk", directions.Steps[0].Kind)
}

func TestRouter_LocationOverrideLifecycle(t *testing.T) {
	router := newTestRouter()

	// No override set yet.
	req := httptest.NewRequest(http.MethodGet, "/v1/location/override", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Set one.
	body, _ := json.Marshal(models.LocationOverrideRequest{Lat: 35.6812, Lon: 139.7671})
	req = httptest.NewRequest(http.MethodPut, "/v1/location/override", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Read it back.
	req = httptest.NewRequest(http.MethodGet, "/v1/location/override", http.NoBody)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var override models.LocationOverrideResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &override))
	assert.Equal(t, 35.6812, override.Lat)

	// Clear it.
	req = httptest.NewRequest(http.MethodDelete, "/v1/location/override", http.NoBody)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/location/override", http.NoBody)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_LocationOverride_OutsideJapan(t *testing.T) {
	router := newTestRouter()

	body, _ := json.Marshal(models.LocationOverrideRequest{Lat: 51.5074, Lon: -0.1278})
	req := httptest.NewRequest(http.MethodPut, "/v1/location/override", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "outside Japan")
}

func TestRouter_ThemeDefaultAndUpdate(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/preferences/theme", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var theme models.ThemeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &theme))
	assert.Equal(t, "system", theme.Theme)

	body, _ := json.Marshal(models.ThemeRequest{Theme: "dark"})
	req = httptest.NewRequest(http.MethodPut, "/v1/preferences/theme", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/preferences/theme", http.NoBody)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &theme))
	assert.Equal(t, "dark", theme.Theme)
}

func TestRouter_ThemeRejectsInvalid(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPut, "/v1/preferences/theme",
		bytes.NewReader([]byte(`{"theme":"neon"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"theme"`)
}

func TestRouter_SyncHistoryEmpty(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/sync/history", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var history models.SyncHistoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	assert.Empty(t, history.History)
}

func TestRouter_SecurityHeaders(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, w.Header().Get("Content-Security-Policy"))
}

// Package mymaps fetches a shared Google My Maps export through a proxy
// endpoint and parses its saved places.
package mymaps

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shiori-app/shiori/internal/provider/resilience"
)

// ProviderName identifies this saved-places provider.
const ProviderName = "mymaps"

// Place is one saved place from the map export.
type Place struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Note string  `json:"note,omitempty"`
}

// ClientConfig holds configuration for the My Maps client.
type ClientConfig struct {
	// ProxyURL is the proxy endpoint that serves the KML export
	// (required). The map identifier is baked into the proxy.
	ProxyURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client fetches and parses the My Maps KML export.
type Client struct {
	proxyURL   string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new My Maps client.
func NewClient(cfg ClientConfig) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	return &Client{
		proxyURL:   cfg.ProxyURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// Places fetches the map export and returns its saved places. Placemarks
// without usable coordinates are skipped.
func (c *Client) Places(ctx context.Context) ([]Place, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.proxyURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.google-earth.kml+xml, application/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var doc kmlDocument
	if err := xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding export: %w", err)
	}

	places := make([]Place, 0, len(doc.Placemarks()))
	for _, pm := range doc.Placemarks() {
		place, ok := toPlace(pm)
		if !ok {
			continue
		}
		places = append(places, place)
	}

	c.logger.Debug().
		Int("places", len(places)).
		Msg("map export fetched")

	return places, nil
}

// toPlace converts a placemark to a Place, false when the coordinates are
// absent or malformed.
func toPlace(pm kmlPlacemark) (Place, bool) {
	lat, lon, ok := parseCoordinates(pm.Point.Coordinates)
	if !ok {
		return Place{}, false
	}

	return Place{
		Name: strings.TrimSpace(pm.Name),
		Lat:  lat,
		Lon:  lon,
		Note: strings.TrimSpace(pm.Description),
	}, true
}

// parseCoordinates parses a KML coordinate tuple, which is lon,lat[,alt].
func parseCoordinates(raw string) (lat, lon float64, ok bool) {
	parts := strings.Split(strings.TrimSpace(raw), ",")
	if len(parts) < 2 {
		return 0, 0, false
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, false
	}
	lat, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, false
	}

	return lat, lon, true
}

// KML export structure. Placemarks appear either directly under Document or
// grouped into layer folders.
type kmlDocument struct {
	XMLName  xml.Name `xml:"kml"`
	Document struct {
		Placemarks []kmlPlacemark `xml:"Placemark"`
		Folders    []struct {
			Placemarks []kmlPlacemark `xml:"Placemark"`
		} `xml:"Folder"`
	} `xml:"Document"`
}

type kmlPlacemark struct {
	Name        string `xml:"name"`
	Description string `xml:"description"`
	Point       struct {
		Coordinates string `xml:"coordinates"`
	} `xml:"Point"`
}

// Placemarks returns all placemarks, flattening layer folders.
func (d *kmlDocument) Placemarks() []kmlPlacemark {
	out := make([]kmlPlacemark, 0, len(d.Document.Placemarks))
	out = append(out, d.Document.Placemarks...)
	for _, f := range d.Document.Folders {
		out = append(out, f.Placemarks...)
	}
	return out
}

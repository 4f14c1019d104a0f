package odpt

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shiori-app/shiori/internal/provider/resilience"
	"github.com/shiori-app/shiori/internal/station"
)

const (
	// ProviderName identifies this station data provider.
	ProviderName = "odpt"

	// DefaultBaseURL is the ODPT API base URL.
	DefaultBaseURL = "https://api.odpt.org/api/v4"
)

// ClientConfig holds configuration for the ODPT client.
type ClientConfig struct {
	// ConsumerKey is the ODPT API consumer key (required).
	ConsumerKey string

	// BaseURL is the API base URL (optional, defaults to the public API).
	BaseURL string

	// Operator filters the station feed to one operator (optional,
	// defaults to Tokyo Metro).
	Operator string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an ODPT API client for station metadata.
type Client struct {
	consumerKey string
	baseURL     string
	operator    string
	httpClient  *resilience.Client
	logger      zerolog.Logger
}

// NewClient creates a new ODPT client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	operator := cfg.Operator
	if operator == "" {
		operator = "odpt.Operator:TokyoMetro"
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	return &Client{
		consumerKey: cfg.ConsumerKey,
		baseURL:     baseURL,
		operator:    operator,
		httpClient:  httpClient,
		logger:      cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// StationRecords fetches the operator's station list and maps it to catalog
// enrichment records.
func (c *Client) StationRecords(ctx context.Context) ([]station.Enrichment, error) {
	q := url.Values{}
	q.Set("acl:consumerKey", c.consumerKey)
	q.Set("odpt:operator", c.operator)

	reqURL := fmt.Sprintf("%s/odpt:Station?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var feed []odptStation
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	records := make([]station.Enrichment, 0, len(feed))
	for i := range feed {
		rec, ok := c.toEnrichment(&feed[i])
		if !ok {
			continue
		}
		records = append(records, rec)
	}

	c.logger.Debug().
		Int("stations", len(records)).
		Msg("station feed fetched")

	return records, nil
}

// toEnrichment converts an ODPT station entry to a catalog enrichment
// record. Entries without an English title or coordinates are skipped.
func (c *Client) toEnrichment(s *odptStation) (station.Enrichment, bool) {
	name := s.StationTitle.En
	if name == "" {
		return station.Enrichment{}, false
	}
	if s.Lat == 0 && s.Lon == 0 {
		return station.Enrichment{}, false
	}

	rec := station.Enrichment{
		Station: station.Station{
			Name: name,
			Lat:  s.Lat,
			Lon:  s.Lon,
		},
	}

	if line := railwayLine(s.Railway); line != "" {
		rec.Station.Lines = []string{line}
	}
	for _, r := range s.ConnectingRailway {
		if line := railwayLine(r); line != "" {
			rec.TransferLines = append(rec.TransferLines, line)
		}
	}
	for _, f := range s.Facilities {
		if a := facilityTag(f); a != "" {
			rec.Amenities = append(rec.Amenities, a)
		}
	}

	return rec, true
}

// railwayLine extracts the human-readable line name from an ODPT railway
// identifier, e.g. "odpt.Railway:TokyoMetro.Ginza" -> "Ginza".
func railwayLine(id string) string {
	if id == "" {
		return ""
	}
	if i := strings.LastIndex(id, "."); i >= 0 && i < len(id)-1 {
		return id[i+1:]
	}
	return id
}

// facilityTag maps an ODPT station facility identifier to a catalog amenity
// tag, empty when the facility kind is not one we surface.
func facilityTag(id string) string {
	lower := strings.ToLower(id)
	switch {
	case strings.Contains(lower, "elevator"):
		return "elevator"
	case strings.Contains(lower, "locker"):
		return "lockers"
	case strings.Contains(lower, "toilet"):
		return "toilets"
	}
	return ""
}

// ODPT API response structure. Field names follow the feed's JSON-LD keys.
type odptStation struct {
	SameAs       string `json:"owl:sameAs"`
	Title        string `json:"dc:title"`
	StationTitle struct {
		Ja string `json:"ja"`
		En string `json:"en"`
	} `json:"odpt:stationTitle"`
	Lat               float64  `json:"geo:lat"`
	Lon               float64  `json:"geo:long"`
	Railway           string   `json:"odpt:railway"`
	Operator          string   `json:"odpt:operator"`
	ConnectingRailway []string `json:"odpt:connectingRailway"`
	Facilities        []string `json:"odpt:stationFacility"`
}

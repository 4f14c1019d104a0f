package odpt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `[
  {
    "owl:sameAs": "odpt.Station:TokyoMetro.Hibiya.NakaMeguro",
    "dc:title": "中目黒",
    "odpt:stationTitle": {"ja": "中目黒", "en": "Nakameguro"},
    "geo:lat": 35.6440,
    "geo:long": 139.6982,
    "odpt:railway": "odpt.Railway:TokyoMetro.Hibiya",
    "odpt:operator": "odpt.Operator:TokyoMetro",
    "odpt:connectingRailway": ["odpt.Railway:Tokyu.Toyoko"],
    "odpt:stationFacility": ["odpt.StationFacility:TokyoMetro.Elevator"]
  },
  {
    "owl:sameAs": "odpt.Station:TokyoMetro.Ginza.Ginza",
    "dc:title": "銀座",
    "odpt:stationTitle": {"ja": "銀座", "en": "Ginza"},
    "geo:lat": 35.6717,
    "geo:long": 139.7640,
    "odpt:railway": "odpt.Railway:TokyoMetro.Ginza"
  },
  {
    "owl:sameAs": "odpt.Station:TokyoMetro.Chiyoda.Unnamed",
    "dc:title": "無名",
    "odpt:stationTitle": {"ja": "無名"},
    "geo:lat": 35.0,
    "geo:long": 139.0
  }
]`

func TestClient_StationRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/odpt:Station", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("acl:consumerKey"))
		assert.Equal(t, "odpt.Operator:TokyoMetro", r.URL.Query().Get("odpt:operator"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		ConsumerKey: "test-key",
		BaseURL:     server.URL,
	})

	records, err := client.StationRecords(context.Background())
	require.NoError(t, err)

	// The entry without an English title is skipped.
	require.Len(t, records, 2)

	naka := records[0]
	assert.Equal(t, "Nakameguro", naka.Station.Name)
	assert.Equal(t, 35.6440, naka.Station.Lat)
	assert.Equal(t, []string{"Hibiya"}, naka.Station.Lines)
	assert.Equal(t, []string{"Toyoko"}, naka.TransferLines)
	assert.Equal(t, []string{"elevator"}, naka.Amenities)

	ginza := records[1]
	assert.Equal(t, "Ginza", ginza.Station.Name)
	assert.Equal(t, []string{"Ginza"}, ginza.Station.Lines)
	assert.Empty(t, ginza.TransferLines)
}

func TestClient_UnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{ConsumerKey: "bad-key", BaseURL: server.URL})

	_, err := client.StationRecords(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestRailwayLine(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"odpt.Railway:TokyoMetro.Ginza", "Ginza"},
		{"odpt.Railway:TokyoMetro.Hibiya", "Hibiya"},
		{"Yamanote", "Yamanote"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := railwayLine(tt.id); got != tt.want {
			t.Errorf("railwayLine(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestFacilityTag(t *testing.T) {
	assert.Equal(t, "elevator", facilityTag("odpt.StationFacility:TokyoMetro.Elevator"))
	assert.Equal(t, "lockers", facilityTag("odpt.StationFacility:TokyoMetro.CoinLocker"))
	assert.Equal(t, "toilets", facilityTag("odpt.StationFacility:TokyoMetro.Toilet"))
	assert.Equal(t, "", facilityTag("odpt.StationFacility:TokyoMetro.Escalator"))
}

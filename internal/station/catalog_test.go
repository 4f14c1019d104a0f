package station

import "testing"

func TestNewCatalog_SeedIsSane(t *testing.T) {
	c := NewCatalog()

	if c.Len() == 0 {
		t.Fatal("seed catalog is empty")
	}

	names := make(map[string]struct{})
	for _, s := range c.All() {
		if _, dup := names[s.Name]; dup {
			t.Errorf("duplicate station name %q", s.Name)
		}
		names[s.Name] = struct{}{}

		if len(s.Lines) == 0 {
			t.Errorf("station %q has no lines", s.Name)
		}
		if err := validSeedCoords(s); err != "" {
			t.Errorf("station %q: %s", s.Name, err)
		}
	}
}

func validSeedCoords(s Station) string {
	if s.Lat < 24 || s.Lat > 46 || s.Lon < 123 || s.Lon > 146 {
		return "coordinates outside Japan"
	}
	return ""
}

func TestClear(t *testing.T) {
	c := NewCatalog()
	c.Clear()

	if c.Len() != 0 {
		t.Errorf("catalog has %d stations after Clear", c.Len())
	}
	if got := c.All(); len(got) != 0 {
		t.Errorf("All returned %d stations after Clear", len(got))
	}
}

func TestLoadExtendedData_EnrichesAndAppends(t *testing.T) {
	c := NewCatalog()
	before := c.Len()

	c.LoadExtendedData()

	if c.Len() <= before {
		t.Errorf("expected new stations appended, len %d -> %d", before, c.Len())
	}

	byName := make(map[string]Station)
	for _, s := range c.All() {
		byName[s.Name] = s
	}

	tokyo, ok := byName["Tokyo"]
	if !ok {
		t.Fatal("Tokyo missing after enrichment")
	}
	if len(tokyo.Amenities) == 0 || len(tokyo.TransferLines) == 0 {
		t.Errorf("Tokyo not enriched: %+v", tokyo)
	}

	if _, ok := byName["Meguro"]; !ok {
		t.Error("appended station Meguro missing")
	}
}

func TestLoadExtendedData_Idempotent(t *testing.T) {
	c := NewCatalog()
	c.LoadExtendedData()
	lenOnce := c.Len()

	var amenitiesOnce int
	for _, s := range c.All() {
		amenitiesOnce += len(s.Amenities)
	}

	c.LoadExtendedData()

	if c.Len() != lenOnce {
		t.Errorf("second load changed station count: %d -> %d", lenOnce, c.Len())
	}
	var amenitiesTwice int
	for _, s := range c.All() {
		amenitiesTwice += len(s.Amenities)
	}
	if amenitiesTwice != amenitiesOnce {
		t.Errorf("second load duplicated amenities: %d -> %d", amenitiesOnce, amenitiesTwice)
	}
}

func TestApply_NeverRemoves(t *testing.T) {
	c := NewCatalog()
	before := c.Len()

	c.Apply([]Enrichment{{Station: Station{Name: "Tokyo"}, Amenities: []string{"wifi"}}})

	if c.Len() != before {
		t.Errorf("enriching an existing station changed count: %d -> %d", before, c.Len())
	}
}

package station

import "sync"

// seedStations is the fixed central-Tokyo catalog every Catalog starts from.
var seedStations = []Station{
	{Name: "Tokyo", Lat: 35.6812, Lon: 139.7671, Lines: []string{"Marunouchi", "Yamanote"}},
	{Name: "Ginza", Lat: 35.6717, Lon: 139.7640, Lines: []string{"Ginza", "Marunouchi", "Hibiya"}},
	{Name: "Shimbashi", Lat: 35.6664, Lon: 139.7583, Lines: []string{"Ginza", "Yamanote", "Asakusa"}},
	{Name: "Shibuya", Lat: 35.6580, Lon: 139.7016, Lines: []string{"Ginza", "Hanzomon", "Fukutoshin", "Yamanote"}},
	{Name: "Shinjuku", Lat: 35.6896, Lon: 139.7006, Lines: []string{"Marunouchi", "Shinjuku", "Oedo", "Yamanote"}},
	{Name: "Ikebukuro", Lat: 35.7295, Lon: 139.7109, Lines: []string{"Marunouchi", "Yurakucho", "Fukutoshin", "Yamanote"}},
	{Name: "Ueno", Lat: 35.7141, Lon: 139.7774, Lines: []string{"Ginza", "Hibiya", "Yamanote"}},
	{Name: "Asakusa", Lat: 35.7119, Lon: 139.7983, Lines: []string{"Ginza", "Asakusa"}},
	{Name: "Roppongi", Lat: 35.6627, Lon: 139.7313, Lines: []string{"Hibiya", "Oedo"}},
	{Name: "Nakameguro", Lat: 35.6440, Lon: 139.6982, Lines: []string{"Hibiya"}},
	{Name: "Ebisu", Lat: 35.6467, Lon: 139.7101, Lines: []string{"Hibiya", "Yamanote"}},
	{Name: "Akihabara", Lat: 35.6984, Lon: 139.7731, Lines: []string{"Hibiya", "Yamanote"}},
	{Name: "Otemachi", Lat: 35.6847, Lon: 139.7661, Lines: []string{"Marunouchi", "Tozai", "Chiyoda", "Hanzomon", "Mita"}},
	{Name: "Omotesando", Lat: 35.6652, Lon: 139.7126, Lines: []string{"Ginza", "Chiyoda", "Hanzomon"}},
	{Name: "Shinagawa", Lat: 35.6285, Lon: 139.7387, Lines: []string{"Yamanote", "Tokaido Shinkansen"}},
	{Name: "Harajuku", Lat: 35.6702, Lon: 139.7027, Lines: []string{"Yamanote"}},
}

// Enrichment carries extended attributes applied to a station by name, or a
// brand new station to append when no seeded station matches.
type Enrichment struct {
	Station       Station
	Amenities     []string
	TransferLines []string
}

// extendedData mirrors the richer metadata the open-data feed carries for
// the seeded stations, plus a couple of stations the seed list omits.
var extendedData = []Enrichment{
	{Station: Station{Name: "Tokyo"}, Amenities: []string{"lockers", "elevator", "shinkansen-gate"}, TransferLines: []string{"Tokaido Shinkansen", "Chuo", "Keiyo"}},
	{Station: Station{Name: "Shinjuku"}, Amenities: []string{"lockers", "elevator"}, TransferLines: []string{"Chuo", "Odakyu", "Keio"}},
	{Station: Station{Name: "Shibuya"}, Amenities: []string{"lockers"}, TransferLines: []string{"Den-en-toshi", "Toyoko", "Inokashira"}},
	{Station: Station{Name: "Ueno"}, Amenities: []string{"lockers", "elevator"}, TransferLines: []string{"Keisei", "Tohoku Shinkansen"}},
	{Station: Station{Name: "Nakameguro"}, Amenities: []string{"elevator"}, TransferLines: []string{"Toyoko"}},
	{
		Station:   Station{Name: "Meguro", Lat: 35.6340, Lon: 139.7157, Lines: []string{"Namboku", "Mita", "Yamanote"}},
		Amenities: []string{"lockers"},
	},
	{
		Station:   Station{Name: "Tsukiji", Lat: 35.6654, Lon: 139.7707, Lines: []string{"Hibiya"}},
		Amenities: []string{"toilets"},
	},
}

// Catalog holds the station list for the lifetime of a Finder. Mutated only
// by Clear and LoadExtendedData; every query is a read over current state.
type Catalog struct {
	mu       sync.RWMutex
	stations []Station
}

// NewCatalog returns a catalog populated with the fixed seed stations.
func NewCatalog() *Catalog {
	c := &Catalog{}
	c.stations = append(c.stations, seedStations...)
	return c
}

// All returns a copy of the current station list in catalog order.
func (c *Catalog) All() []Station {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Station, len(c.stations))
	copy(out, c.stations)
	return out
}

// Len returns the number of stations currently in the catalog.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.stations)
}

// Clear empties the catalog. Exists for edge-case testing; queries over an
// empty catalog return nil/empty results rather than errors.
func (c *Catalog) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stations = nil
}

// LoadExtendedData enriches the catalog with the built-in extended dataset.
// Equivalent to Apply over that dataset; safe to call repeatedly.
func (c *Catalog) LoadExtendedData() {
	c.Apply(extendedData)
}

// Apply merges enrichment records into the catalog, keyed on station name.
// Matching stations gain amenities and transfer lines; unmatched records
// append as new stations. Stations are never removed, and re-applying the
// same records does not duplicate anything.
func (c *Catalog) Apply(records []Enrichment) {
	c.mu.Lock()
	defer c.mu.Unlock()

	byName := make(map[string]int, len(c.stations))
	for i, s := range c.stations {
		byName[s.Name] = i
	}

	for _, rec := range records {
		idx, ok := byName[rec.Station.Name]
		if !ok {
			s := rec.Station
			s.Amenities = mergeTags(s.Amenities, rec.Amenities)
			s.TransferLines = mergeTags(s.TransferLines, rec.TransferLines)
			c.stations = append(c.stations, s)
			byName[s.Name] = len(c.stations) - 1
			continue
		}

		c.stations[idx].Amenities = mergeTags(c.stations[idx].Amenities, rec.Amenities)
		c.stations[idx].TransferLines = mergeTags(c.stations[idx].TransferLines, rec.TransferLines)
	}
}

// mergeTags appends tags not already present, preserving order.
func mergeTags(existing, incoming []string) []string {
	seen := make(map[string]struct{}, len(existing))
	for _, t := range existing {
		seen[t] = struct{}{}
	}
	for _, t := range incoming {
		if _, ok := seen[t]; ok {
			continue
		}
		existing = append(existing, t)
		seen[t] = struct{}{}
	}
	return existing
}

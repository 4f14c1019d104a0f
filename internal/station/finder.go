package station

import (
	"sort"
	"strings"

	"github.com/shiori-app/shiori/internal/geo"
)

// areaRule is a fixed Tokyo neighborhood bounding box. Rules are checked in
// order; the trailing catch-all guarantees every station lands in exactly
// one bucket, which keeps ByArea an exact partition of the catalog.
type areaRule struct {
	name                           string
	minLat, maxLat, minLon, maxLon float64
	catchAll                       bool
}

var areaRules = []areaRule{
	{name: "Shinjuku & West", minLat: 35.68, maxLat: 90, minLon: -180, maxLon: 139.72},
	{name: "Shibuya & Meguro", minLat: -90, maxLat: 35.68, minLon: -180, maxLon: 139.72},
	{name: "Ueno & Asakusa", minLat: 35.695, maxLat: 90, minLon: 139.72, maxLon: 180},
	{name: "Central Tokyo", catchAll: true},
}

func (r areaRule) contains(s *Station) bool {
	if r.catchAll {
		return true
	}
	return s.Lat >= r.minLat && s.Lat < r.maxLat &&
		s.Lon >= r.minLon && s.Lon < r.maxLon
}

// Finder answers geographic and textual queries over a station catalog.
// The catalog is injected, not owned: callers may share one catalog between
// a finder and the enrichment sync path.
type Finder struct {
	catalog *Catalog
}

// NewFinder creates a finder over the given catalog.
func NewFinder(catalog *Catalog) *Finder {
	return &Finder{catalog: catalog}
}

// Nearest returns the closest station to the point, or nil when the catalog
// is empty. On an exact distance tie the first station in catalog order
// wins; no further tie-breaking is applied.
func (f *Finder) Nearest(lat, lon float64) *WithDistance {
	stations := f.catalog.All()
	if len(stations) == 0 {
		return nil
	}

	best := WithDistance{Station: stations[0], DistanceKm: geo.Distance(lat, lon, stations[0].Lat, stations[0].Lon)}
	for _, s := range stations[1:] {
		d := geo.Distance(lat, lon, s.Lat, s.Lon)
		if d < best.DistanceKm {
			best = WithDistance{Station: s, DistanceKm: d}
		}
	}

	return &best
}

// InRadius returns stations within radiusKm of the point (inclusive bound),
// ascending by distance. No matches or an empty catalog yields an empty
// slice, never an error.
func (f *Finder) InRadius(lat, lon, radiusKm float64) []WithDistance {
	results := []WithDistance{}

	for _, s := range f.catalog.All() {
		d := geo.Distance(lat, lon, s.Lat, s.Lon)
		if d <= radiusKm {
			results = append(results, WithDistance{Station: s, DistanceKm: d})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DistanceKm < results[j].DistanceKm
	})

	return results
}

// ByLine returns stations whose line set contains lineName, matched
// case-sensitively as an exact name or substring.
func (f *Finder) ByLine(lineName string) []Station {
	results := []Station{}
	for _, s := range f.catalog.All() {
		if s.HasLine(lineName) {
			results = append(results, s)
		}
	}
	return results
}

// ByArea buckets every catalog station into a named Tokyo area. The sum of
// bucket sizes always equals the catalog size.
func (f *Finder) ByArea() map[string][]Station {
	buckets := make(map[string][]Station, len(areaRules))

	for _, s := range f.catalog.All() {
		for _, rule := range areaRules {
			if rule.contains(&s) {
				buckets[rule.name] = append(buckets[rule.name], s)
				break
			}
		}
	}

	return buckets
}

// ByName returns the station with the given name, case-insensitively, or
// nil when the catalog has no such station.
func (f *Finder) ByName(name string) *Station {
	for _, s := range f.catalog.All() {
		if strings.EqualFold(s.Name, name) {
			return &s
		}
	}
	return nil
}

// Search returns stations whose name or any line name contains the query,
// case-insensitively. A pure filter in catalog order; no ranking.
func (f *Finder) Search(query string) []Station {
	q := strings.ToLower(query)
	results := []Station{}

	for _, s := range f.catalog.All() {
		if strings.Contains(strings.ToLower(s.Name), q) {
			results = append(results, s)
			continue
		}
		for _, l := range s.Lines {
			if strings.Contains(strings.ToLower(l), q) {
				results = append(results, s)
				break
			}
		}
	}

	return results
}

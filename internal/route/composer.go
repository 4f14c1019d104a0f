package route

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/shiori-app/shiori/internal/geo"
	"github.com/shiori-app/shiori/internal/station"
)

// Pace and overhead defaults. Straight-line distances underestimate track
// length, so the per-km paces run a little slow to compensate.
const (
	defaultWalkMinPerKm    = 12.0
	defaultTransitMinPerKm = 3.0
	defaultSegmentOverhead = 2
	defaultTransferMin     = 4
)

// ComposerConfig holds configuration for the route composer.
type ComposerConfig struct {
	// Catalog supplies interchange candidates. Injected, not owned.
	Catalog *station.Catalog

	// Finder locates the boarding station. Injected, not owned.
	Finder *station.Finder

	// Logger for composer operations.
	Logger zerolog.Logger

	// WalkMinPerKm overrides the walking pace (default 12 min/km).
	WalkMinPerKm float64

	// TransitMinPerKm overrides the ride pace (default 3 min/km).
	TransitMinPerKm float64
}

// Composer builds route options and directions over the station catalog.
// Stateless between calls: every query reads current catalog state.
type Composer struct {
	catalog         *station.Catalog
	finder          *station.Finder
	logger          zerolog.Logger
	walkMinPerKm    float64
	transitMinPerKm float64
}

// NewComposer creates a composer with defaults applied.
func NewComposer(cfg ComposerConfig) *Composer {
	walk := cfg.WalkMinPerKm
	if walk == 0 {
		walk = defaultWalkMinPerKm
	}
	transit := cfg.TransitMinPerKm
	if transit == 0 {
		transit = defaultTransitMinPerKm
	}

	return &Composer{
		catalog:         cfg.Catalog,
		finder:          cfg.Finder,
		logger:          cfg.Logger,
		walkMinPerKm:    walk,
		transitMinPerKm: transit,
	}
}

// Options returns candidate routes from the origin point to the destination
// station, ascending by total duration; element 0 is the fastest. An empty
// catalog, or no reachable candidate, yields an empty slice.
func (c *Composer) Options(originLat, originLon float64, dest station.Station) []Option {
	boarding := c.finder.Nearest(originLat, originLon)
	if boarding == nil {
		return []Option{}
	}

	origin := geo.Coordinate{Lat: originLat, Lon: originLon}
	walkMin := c.minutes(boarding.DistanceKm * c.walkMinPerKm)

	var routes []Route

	if boarding.Name == dest.Name {
		// Already at the destination's station: a walk-only option.
		routes = append(routes, Route{Segments: []Segment{}})
	} else {
		if line := sharedLine(boarding.Station, dest); line != "" {
			routes = append(routes, c.directRoute(boarding.Station, dest, line))
		}
		routes = append(routes, c.transferRoutes(boarding.Station, dest)...)
	}

	options := make([]Option, 0, len(routes))
	for _, r := range routes {
		options = append(options, Option{
			Route:       r,
			Origin:      origin,
			Boarding:    *boarding,
			Destination: dest,
			WalkMin:     walkMin,
			TotalMin:    walkMin + r.TotalDurationMin,
		})
	}

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].TotalMin < options[j].TotalMin
	})
	for i := range options {
		options[i].Rank = i + 1
	}

	c.logger.Debug().
		Str("destination", dest.Name).
		Str("boarding", boarding.Name).
		Int("options", len(options)).
		Msg("composed route options")

	return options
}

// Fastest returns the quickest option, or nil when none exists.
func (c *Composer) Fastest(originLat, originLon float64, dest station.Station) *Option {
	options := c.Options(originLat, originLon, dest)
	if len(options) == 0 {
		return nil
	}
	return &options[0]
}

// Directions expands an option into ordered human-readable steps: the
// initial walk, one transit step per segment with a transfer step on each
// line change, and a final walk when the ride stops short of the
// destination station.
func (c *Composer) Directions(opt Option) []DirectionStep {
	steps := []DirectionStep{{
		Kind: StepWalk,
		Instruction: fmt.Sprintf("Walk %.1f km to %s Station",
			RoundKm(opt.Boarding.DistanceKm), opt.Boarding.Name),
		DurationMin: opt.WalkMin,
		To:          opt.Boarding.Name,
	}}

	prevLine := ""
	for _, seg := range opt.Route.Segments {
		if prevLine != "" && seg.Line != prevLine {
			steps = append(steps, DirectionStep{
				Kind: StepTransfer,
				Instruction: fmt.Sprintf("Transfer at %s from the %s Line to the %s Line",
					seg.From, prevLine, seg.Line),
				DurationMin: defaultTransferMin,
				Line:        seg.Line,
				From:        seg.From,
			})
		}

		steps = append(steps, DirectionStep{
			Kind: StepTransit,
			Instruction: fmt.Sprintf("Take the %s Line from %s to %s",
				seg.Line, seg.From, seg.To),
			DurationMin: seg.DurationMin,
			Line:        seg.Line,
			From:        seg.From,
			To:          seg.To,
		})
		prevLine = seg.Line
	}

	lastStop := opt.Boarding.Name
	if n := len(opt.Route.Segments); n > 0 {
		lastStop = opt.Route.Segments[n-1].To
	}
	if lastStop != opt.Destination.Name {
		steps = append(steps, DirectionStep{
			Kind:        StepWalk,
			Instruction: fmt.Sprintf("Walk to %s", opt.Destination.Name),
			From:        lastStop,
			To:          opt.Destination.Name,
		})
	}

	return steps
}

// directRoute builds a single-segment route on a shared line.
func (c *Composer) directRoute(from, to station.Station, line string) Route {
	seg := c.segment(from, to, line)
	return Route{
		Segments:         []Segment{seg},
		TotalDurationMin: seg.DurationMin,
		TotalDistanceKm:  seg.DistanceKm,
	}
}

// transferRoutes scans the catalog for one-transfer interchange candidates:
// a station sharing a line with the boarding station and a different line
// with the destination. Bounded at three candidates; the catalog holds tens
// of stations, so the quadratic scan stays trivial.
func (c *Composer) transferRoutes(from, to station.Station) []Route {
	const maxCandidates = 3

	var routes []Route
	for _, via := range c.catalog.All() {
		if via.Name == from.Name || via.Name == to.Name {
			continue
		}

		lineA := sharedLine(from, via)
		if lineA == "" {
			continue
		}
		lineB := sharedLine(via, to)
		if lineB == "" || lineB == lineA {
			continue
		}

		segA := c.segment(from, via, lineA)
		segB := c.segment(via, to, lineB)
		routes = append(routes, Route{
			Segments:         []Segment{segA, segB},
			TotalDurationMin: segA.DurationMin + segB.DurationMin + defaultTransferMin,
			TotalDistanceKm:  segA.DistanceKm + segB.DistanceKm,
		})

		if len(routes) == maxCandidates {
			break
		}
	}

	return routes
}

// segment builds one ride between two stations on a line.
func (c *Composer) segment(from, to station.Station, line string) Segment {
	d := geo.Distance(from.Lat, from.Lon, to.Lat, to.Lon)
	return Segment{
		From:        from.Name,
		To:          to.Name,
		Line:        line,
		DistanceKm:  d,
		DurationMin: c.minutes(d*c.transitMinPerKm) + defaultSegmentOverhead,
	}
}

// minutes rounds to whole minutes, never below one for a non-zero value.
func (c *Composer) minutes(v float64) int {
	if v <= 0 {
		return 0
	}
	m := int(math.Round(v))
	if m < 1 {
		return 1
	}
	return m
}

// sharedLine returns the first line both stations sit on, or empty.
func sharedLine(a, b station.Station) string {
	for _, la := range a.Lines {
		for _, lb := range b.Lines {
			if la == lb {
				return la
			}
		}
	}
	return ""
}

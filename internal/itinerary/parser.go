package itinerary

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultYear is assumed when a date line omits the year (the "9/9" short
// form). Trips spanning a year rollover need an explicit year in the text.
const DefaultYear = 2025

var (
	fullDateRegex  = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	shortDateRegex = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})$`)
	timeRegex      = regexp.MustCompile(`\d{1,2}:\d{2}[ap]m`)
)

// entryRule pairs a keyword predicate with the kind it implies and an
// extractor for the kind-specific location/destination fields. Rules are
// evaluated in declaration order and the first match wins.
type entryRule struct {
	matches func(desc string) bool
	kind    func(desc string) EntryKind
	extract func(desc string, e *Entry)
}

// transportKeywords trigger the transport classification. Matching is
// case-sensitive on purpose: the source text uses these exact phrases.
var transportKeywords = []string{"Subway to", "Move to", "Train to", "Nozomi Train", "Trains to"}

var entryRules = []entryRule{
	{
		matches: func(d string) bool { return strings.Contains(d, "Arrive air") },
		kind:    func(string) EntryKind { return KindArrival },
		extract: func(d string, e *Entry) {
			e.Location = tokenAfter(d, "Arrive air")
		},
	},
	{
		matches: func(d string) bool { return containsAny(d, transportKeywords) },
		kind:    func(string) EntryKind { return KindTransport },
		extract: func(d string, e *Entry) {
			e.Destination = afterColon(d)
		},
	},
	{
		matches: func(d string) bool {
			return strings.Contains(d, "See ") || strings.Contains(d, "show at")
		},
		kind: func(string) EntryKind { return KindEvent },
		extract: func(d string, e *Entry) {
			e.Destination = afterColon(d)
		},
	},
	{
		matches: func(d string) bool {
			return strings.Contains(d, "Stay at") || strings.Contains(d, "Flight at")
		},
		kind: func(d string) EntryKind {
			if strings.Contains(d, "Flight") {
				return KindDeparture
			}
			return KindAccommodation
		},
		extract: func(string, *Entry) {},
	},
}

// Parser converts loosely structured multi-line trip text into day schedules.
type Parser struct {
	// DefaultYear applies to short-form M/D date lines.
	DefaultYear int
}

// NewParser returns a parser with the default year applied to short dates.
func NewParser() *Parser {
	return &Parser{DefaultYear: DefaultYear}
}

// Parse runs a single line-oriented pass over the text. A date line opens a
// new DaySchedule; "- " lines inside an open day become entries. Lines before
// the first date line, and lines matching neither pattern, are skipped.
// Parse never fails: lenient parsing over strict validation.
func (p *Parser) Parse(text string) []DaySchedule {
	var schedules []DaySchedule
	var current *DaySchedule

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)

		if date, ok := p.parseDate(line); ok {
			if current != nil {
				schedules = append(schedules, *current)
			}
			current = &DaySchedule{Date: date, Entries: []Entry{}}
			continue
		}

		if current == nil || !strings.HasPrefix(line, "- ") {
			continue
		}

		current.Entries = append(current.Entries, parseEntry(strings.TrimSpace(line[2:])))
	}

	if current != nil {
		schedules = append(schedules, *current)
	}

	return schedules
}

// parseDate normalizes a date line to YYYY-MM-DD. Short M/D lines take the
// parser's default year.
func (p *Parser) parseDate(line string) (string, bool) {
	if m := fullDateRegex.FindStringSubmatch(line); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
	}

	if m := shortDateRegex.FindStringSubmatch(line); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year := p.DefaultYear
		if year == 0 {
			year = DefaultYear
		}
		return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
	}

	return "", false
}

// parseEntry classifies a single marker-stripped line.
func parseEntry(desc string) Entry {
	e := Entry{
		Kind:        KindUnknown,
		Description: desc,
		Time:        timeRegex.FindString(desc),
	}

	for _, rule := range entryRules {
		if rule.matches(desc) {
			e.Kind = rule.kind(desc)
			rule.extract(desc, &e)
			break
		}
	}

	return e
}

// tokenAfter returns the first whitespace-delimited token following the
// marker, or empty when the marker ends the string.
func tokenAfter(s, marker string) string {
	idx := strings.Index(s, marker)
	if idx < 0 {
		return ""
	}
	rest := strings.Fields(s[idx+len(marker):])
	if len(rest) == 0 {
		return ""
	}
	return rest[0]
}

// afterColon returns the substring after the first ": ", or empty when the
// separator is absent.
func afterColon(s string) string {
	if _, after, ok := strings.Cut(s, ": "); ok {
		return strings.TrimSpace(after)
	}
	return ""
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

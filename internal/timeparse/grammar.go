package timeparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Grammar is a precompiled matcher for one family of textual date layouts.
// A Grammar is immutable and safe for concurrent use.
type Grammar struct {
	name      string
	canonical string
	match     func(s string) (time.Time, bool)
}

// Name returns the grammar's short identifier (e.g. "rfc822").
func (g *Grammar) Name() string {
	return g.name
}

// Match reports whether the whole of s, ignoring surrounding whitespace,
// conforms to the grammar. The returned time is in UTC.
func (g *Grammar) Match(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	return g.match(s)
}

// Format writes t using the grammar's canonical layout. Match accepts
// everything Format produces.
func (g *Grammar) Format(t time.Time) string {
	return t.UTC().Format(g.canonical)
}

// newLayoutGrammar builds a grammar that accepts any of the given Go time
// layouts. Inputs without a zone are read as UTC. time.Parse is laxer than
// the layouts suggest (one-digit hours, comma fractions, +24:00 offsets), so
// input must first match shape.
func newLayoutGrammar(name, canonical string, shape *regexp.Regexp, layouts []string) *Grammar {
	return &Grammar{
		name:      name,
		canonical: canonical,
		match: func(s string) (time.Time, bool) {
			if !shape.MatchString(s) {
				return time.Time{}, false
			}
			for _, layout := range layouts {
				if t, err := time.Parse(layout, s); err == nil {
					return t.UTC(), true
				}
			}
			return time.Time{}, false
		},
	}
}

// RFC 822 section 5, plus the variants feeds actually emit: optional weekday,
// single-digit days, and missing seconds.
var rfc822Layouts = []string{
	"Mon, 2 Jan 2006 15:04:05",
	"Mon, 2 Jan 2006 15:04",
	"2 Jan 2006 15:04:05",
	"2 Jan 2006 15:04",
}

// rfc822Clock is the shape of the time-of-day token: two-digit fields and no
// fractional seconds.
var rfc822Clock = regexp.MustCompile(`^\d{2}:\d{2}(:\d{2})?$`)

// rfc822Zones holds the named zones in hours east of UTC.
var rfc822Zones = map[string]int{
	"UT":  0,
	"UTC": 0,
	"GMT": 0,
	"Z":   0,
	"EST": -5,
	"EDT": -4,
	"CST": -6,
	"CDT": -5,
	"MST": -7,
	"MDT": -6,
	"PST": -8,
	"PDT": -7,
}

func newRFC822Grammar() *Grammar {
	return &Grammar{
		name:      "rfc822",
		canonical: "Mon, 02 Jan 2006 15:04:05 -0700",
		match:     matchRFC822,
	}
}

// matchRFC822 resolves the zone token itself because time.Parse accepts any
// abbreviation and silently treats unknown ones as UTC.
func matchRFC822(s string) (time.Time, bool) {
	i := strings.LastIndexByte(s, ' ')
	if i < 0 {
		return time.Time{}, false
	}
	offset, ok := rfc822Offset(s[i+1:])
	if !ok {
		return time.Time{}, false
	}

	local := strings.TrimRight(s[:i], " ")
	if j := strings.LastIndexByte(local, ' '); !rfc822Clock.MatchString(local[j+1:]) {
		return time.Time{}, false
	}

	for _, layout := range rfc822Layouts {
		t, err := time.Parse(layout, local)
		if err != nil {
			continue
		}
		y, mo, d := t.Date()
		h, mi, sec := t.Clock()
		return time.Date(y, mo, d, h, mi, sec, 0, time.FixedZone("", offset)).UTC(), true
	}
	return time.Time{}, false
}

// rfc822Offset returns the zone offset in seconds east of UTC.
func rfc822Offset(zone string) (int, bool) {
	if hours, ok := rfc822Zones[strings.ToUpper(zone)]; ok {
		return hours * 3600, true
	}

	if len(zone) != 5 || (zone[0] != '+' && zone[0] != '-') {
		return 0, false
	}
	if strings.IndexFunc(zone[1:], func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return 0, false
	}
	hh, _ := strconv.Atoi(zone[1:3])
	mm, _ := strconv.Atoi(zone[3:5])
	if hh > 23 || mm > 59 {
		return 0, false
	}
	offset := hh*3600 + mm*60
	if zone[0] == '-' {
		offset = -offset
	}
	return offset, true
}

// Offset hours are limited to 00-23.
const isoOffsetHour = `[+-](?:[01]\d|2[0-3])`

var (
	rfc3339Shape = regexp.MustCompile(
		`^\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|` + isoOffsetHour + `:[0-5]\d)$`)
	iso8601Shape = regexp.MustCompile(
		`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}(?::\d{2}(?:\.\d+)?)?(?:Z|` + isoOffsetHour + `(?::?[0-5]\d)?)?$`)
	dateOnlyShape = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

func newRFC3339Grammar() *Grammar {
	return newLayoutGrammar("rfc3339", time.RFC3339Nano, rfc3339Shape, []string{
		time.RFC3339,
		"2006-01-02 15:04:05Z07:00",
	})
}

// newISO8601Grammar accepts extended-format date-times with optional seconds
// and an optional zone. iso8601Shape only allows a fraction after seconds.
func newISO8601Grammar() *Grammar {
	var layouts []string
	for _, clock := range []string{"15:04:05", "15:04"} {
		for _, zone := range []string{"Z07:00", "Z0700", "Z07", ""} {
			layouts = append(layouts, "2006-01-02T"+clock+zone)
		}
	}
	return newLayoutGrammar("iso8601", time.RFC3339Nano, iso8601Shape, layouts)
}

func newDateOnlyGrammar() *Grammar {
	return newLayoutGrammar("date", time.DateOnly, dateOnlyShape, []string{time.DateOnly})
}

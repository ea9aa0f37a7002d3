// Package timeparse recognizes the date encodings found in syndication feeds
// and provides related time and duration parsing utilities.
package timeparse

import (
	"strings"
	"time"
)

// Match is the result of a permissive parse.
type Match struct {
	Time    time.Time // UTC
	Grammar string    // name of the grammar that accepted the input
}

// Parse parses s with the grammar for spec. The whole string, minus
// surrounding whitespace, must conform. It reports false when s does not
// match; that is an ordinary outcome, not an error.
func Parse(s string, spec DateSpec) (time.Time, bool) {
	return defaultRegistry().Parse(s, spec)
}

// ParsePermissive parses s with the first grammar that accepts it, trying
// RFC 822, RFC 3339, ISO 8601 and finally a bare yyyy-MM-dd date.
func ParsePermissive(s string) (time.Time, bool) {
	m, ok := defaultRegistry().Recognize(s)
	return m.Time, ok
}

// Recognize is ParsePermissive but also reports which grammar matched.
func Recognize(s string) (Match, bool) {
	return defaultRegistry().Recognize(s)
}

// Parse is the package-level Parse using r's grammars.
func (r *Registry) Parse(s string, spec DateSpec) (time.Time, bool) {
	g := r.GrammarFor(spec)
	if g == nil {
		return time.Time{}, false
	}
	return g.Match(s)
}

// Recognize is the package-level Recognize using r's grammars. Later
// grammars are never tried once one matches.
func (r *Registry) Recognize(s string) (Match, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Match{}, false
	}

	for _, g := range r.fallback {
		if t, ok := g.match(s); ok {
			return Match{Time: t, Grammar: g.name}, true
		}
	}
	return Match{}, false
}

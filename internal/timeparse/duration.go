package timeparse

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	day  = 24 * time.Hour
	week = 7 * day
)

var units = map[string]time.Duration{
	"s":     time.Second,
	"m":     time.Minute,
	"h":     time.Hour,
	"d":     day,
	"day":   day,
	"days":  day,
	"w":     week,
	"week":  week,
	"weeks": week,
}

// ParseDuration parses a single-unit age such as "10h", "2d" or "3weeks".
// Units: s, m, h, d/day/days, w/week/weeks. Combined units ("1h30m") and
// fractions are not supported.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration string")
	}

	split := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	switch split {
	case 0:
		return 0, fmt.Errorf("invalid duration %q: missing number", s)
	case -1:
		return 0, fmt.Errorf("invalid duration %q: missing unit", s)
	}

	num, err := strconv.ParseInt(s[:split], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}

	unitStr := strings.TrimSpace(s[split:])
	unit, ok := units[unitStr]
	if !ok {
		return 0, fmt.Errorf("invalid duration %q: unknown unit %q", s, unitStr)
	}

	if num > math.MaxInt64/int64(unit) {
		return 0, fmt.Errorf("invalid duration %q: value too large", s)
	}

	return time.Duration(num) * unit, nil
}

// ParseCutoff resolves a point in time from either an age relative to now
// (anything ParseDuration accepts) or an absolute date (anything
// ParsePermissive accepts).
func ParseCutoff(s string, now time.Time) (time.Time, error) {
	if d, err := ParseDuration(s); err == nil {
		return now.Add(-d).UTC(), nil
	}
	if t, ok := ParsePermissive(s); ok {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid cutoff %q (expected an age like 2d or a date)", s)
}

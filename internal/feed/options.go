package feed

import "time"

// Options contains all scan parameters.
type Options struct {
	Patterns []string  // Feed file paths or doublestar globs
	Since    time.Time // Hide dates before this time (zero = no filter)
	Jobs     int       // Maximum concurrent feed parses
}

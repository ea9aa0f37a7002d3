package timeparse

import "fmt"

// DateSpec selects one of the explicitly supported date grammars.
type DateSpec int

const (
	// RFC822 is the email-style date used by RSS ("Mon, 02 Jan 2006 15:04:05 GMT").
	RFC822 DateSpec = iota
	// RFC3339 is the internet date-time profile used by Atom and JSON Feed.
	RFC3339
	// ISO8601 is the looser ISO 8601 extended date-time family (W3CDTF).
	ISO8601

	numSpecs = iota
)

var specNames = [numSpecs]string{
	RFC822:  "rfc822",
	RFC3339: "rfc3339",
	ISO8601: "iso8601",
}

// Specs returns every DateSpec in declaration order.
func Specs() []DateSpec {
	return []DateSpec{RFC822, RFC3339, ISO8601}
}

func (s DateSpec) valid() bool {
	return s >= 0 && s < numSpecs
}

func (s DateSpec) String() string {
	if !s.valid() {
		return fmt.Sprintf("DateSpec(%d)", int(s))
	}
	return specNames[s]
}

// ParseDateSpec returns the DateSpec with the given lowercase name.
func ParseDateSpec(name string) (DateSpec, error) {
	for spec, n := range specNames {
		if n == name {
			return DateSpec(spec), nil
		}
	}
	return 0, fmt.Errorf("unknown date spec %q: must be one of rfc822, rfc3339, or iso8601", name)
}

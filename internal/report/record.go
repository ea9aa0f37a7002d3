// Package report renders recognized dates as colored text, JSON or YAML.
package report

import (
	"fmt"
	"time"
)

// Mode records how a value was recognized.
type Mode string

const (
	// ModeExplicit means the value matched the grammar it was expected to use.
	ModeExplicit Mode = "explicit"
	// ModePermissive means the value was matched by the fallback sequence.
	ModePermissive Mode = "permissive"
)

// Record is one date value and what it parsed to. Time is nil when no
// grammar accepted Raw.
type Record struct {
	Source  string     `json:"source,omitempty" yaml:"source,omitempty"`
	Field   string     `json:"field,omitempty" yaml:"field,omitempty"`
	Raw     string     `json:"raw" yaml:"raw"`
	Time    *time.Time `json:"time,omitempty" yaml:"time,omitempty"`
	Grammar string     `json:"grammar,omitempty" yaml:"grammar,omitempty"`
	Mode    Mode       `json:"mode,omitempty" yaml:"mode,omitempty"`
}

// Matched reports whether the value parsed.
func (r Record) Matched() bool {
	return r.Time != nil
}

// OlderThan reports whether the value parsed to a time before cutoff. A zero
// cutoff disables the check.
func (r Record) OlderThan(cutoff time.Time) bool {
	return r.Time != nil && !cutoff.IsZero() && r.Time.Before(cutoff)
}

// Format is an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// String is used both by fmt.Print and by Cobra in help text.
func (f *Format) String() string {
	return string(*f)
}

// Set must have pointer receiver to validate and set the value.
func (f *Format) Set(v string) error {
	switch Format(v) {
	case FormatText, FormatJSON, FormatYAML:
		*f = Format(v)
		return nil
	default:
		return fmt.Errorf("must be one of \"text\", \"json\", or \"yaml\"")
	}
}

// Type is only used in help text.
func (f *Format) Type() string {
	return "format"
}

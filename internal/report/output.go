package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/mgutz/ansi"
	"gopkg.in/yaml.v3"
)

// Output writes records to stdout and diagnostics to stderr. Text records are
// written immediately; JSON and YAML records are buffered until Flush.
type Output struct {
	mu      sync.Mutex
	stdout  io.Writer
	stderr  io.Writer
	format  Format
	records []Record

	cyan   func(string) string
	green  func(string) string
	white  func(string) string
	yellow func(string) string
	red    func(string) string
}

// NewOutput creates a new Output. Color only applies to the text format.
func NewOutput(stdout, stderr io.Writer, format Format, colorize bool) *Output {
	color := func(name string) func(string) string {
		if colorize {
			return ansi.ColorFunc(name)
		}
		return ansi.ColorFunc("")
	}

	if format == "" {
		format = FormatText
	}

	return &Output{
		stdout: stdout,
		stderr: stderr,
		format: format,
		cyan:   color("cyan"),
		green:  color("green+b"),
		white:  color("white"),
		yellow: color("yellow"),
		red:    color("red+b"),
	}
}

// Record writes or buffers a single record.
func (o *Output) Record(r Record) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.format != FormatText {
		o.records = append(o.records, r)
		return
	}

	var prefix string
	switch {
	case r.Source != "" && r.Field != "":
		prefix = o.white(r.Source+":"+r.Field) + ": "
	case r.Source != "":
		prefix = o.white(r.Source) + ": "
	}

	if !r.Matched() {
		fmt.Fprintf(o.stdout, "%s%s %q\n", prefix, o.red("no match"), r.Raw)
		return
	}

	grammar := r.Grammar
	if r.Mode == ModePermissive && r.Field != "" {
		grammar += ", fallback"
	}
	fmt.Fprintf(o.stdout, "%s%s %s\n",
		prefix,
		o.green(r.Time.UTC().Format(time.RFC3339Nano)),
		o.cyan("("+grammar+")"))
}

// Flush encodes buffered records. It is a no-op for the text format.
func (o *Output) Flush() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	records := o.records
	if records == nil {
		records = []Record{}
	}
	o.records = nil

	switch o.format {
	case FormatJSON:
		enc := json.NewEncoder(o.stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(o.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
	}

	return nil
}

// Warningf writes a formatted warning message to stderr.
func (o *Output) Warningf(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.stderr, o.yellow("Warning: ")+format+"\n", args...)
}

// Infof writes a formatted informational message to stderr.
func (o *Output) Infof(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.stderr, format+"\n", args...)
}

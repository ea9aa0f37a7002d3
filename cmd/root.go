package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/jparise/feeddate/internal/report"
	"github.com/jparise/feeddate/internal/timeparse"
	"github.com/spf13/cobra"
)

// colorMode represents when to use colored output.
type colorMode string

const (
	colorAuto   colorMode = "auto"
	colorAlways colorMode = "always"
	colorNever  colorMode = "never"
)

// String is used both by fmt.Print and by Cobra in help text.
func (c *colorMode) String() string {
	return string(*c)
}

// Set must have pointer receiver to validate and set the value.
func (c *colorMode) Set(v string) error {
	switch v {
	case "auto", "always", "never":
		*c = colorMode(v)
		return nil
	default:
		return fmt.Errorf("must be one of \"auto\", \"always\", or \"never\"")
	}
}

// Type is only used in help text.
func (c *colorMode) Type() string {
	return "colorMode"
}

// specMode selects explicit parsing with one grammar or permissive parsing.
type specMode string

const specAuto specMode = "auto"

func (s *specMode) String() string {
	return string(*s)
}

func (s *specMode) Set(v string) error {
	if v == string(specAuto) {
		*s = specAuto
		return nil
	}
	if _, err := timeparse.ParseDateSpec(v); err != nil {
		return fmt.Errorf("must be one of \"auto\", \"rfc822\", \"rfc3339\", or \"iso8601\"")
	}
	*s = specMode(v)
	return nil
}

func (s *specMode) Type() string {
	return "spec"
}

var (
	version = "dev"

	// Flags.
	color  = colorAuto
	format = report.FormatText
	since  string
	spec   = specAuto
	strict bool
)

var rootCmd = &cobra.Command{
	Use:   "feeddate [<date>...]",
	Short: "Recognize the dates used in RSS, Atom and JSON feeds",
	Long: `feeddate recognizes the date encodings found in syndication feeds and
prints each value as a normalized UTC timestamp.

Each <date> argument is parsed in turn. With no arguments, each non-empty
line of standard input is parsed instead.

By default parsing is permissive: the following grammars are tried in order
and the first one that accepts the whole value wins:
  rfc822    Mon, 02 Jan 2006 15:04:05 GMT
  rfc3339   2006-01-02T15:04:05Z
  iso8601   2006-01-02T15:04+07:00
  date      2006-01-02

Use --spec to require a single grammar instead.

Examples:
  feeddate "Mon, 02 Jan 2006 15:04:05 GMT"
  feeddate --spec rfc3339 2000-01-01T12:00:00+00:00
  feeddate --since 2d --format json < dates.txt
  feeddate feed "feeds/**/*.xml"`,
	Version: version,
	Args:    cobra.ArbitraryArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if since != "" {
			if _, err := timeparse.ParseCutoff(since, time.Now()); err != nil {
				return fmt.Errorf("invalid --since: %w", err)
			}
		}
		return nil
	},
	RunE: run,
}

func init() {
	rootCmd.PersistentFlags().Var(&color, "color",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().Var(&format, "format",
		"output format: text, json, yaml")
	rootCmd.PersistentFlags().StringVar(&since, "since", "",
		"hide dates before this age or date (e.g., 2d, 12h, 2024-01-01)")
	rootCmd.Flags().Var(&spec, "spec",
		"date grammar: auto, rfc822, rfc3339, iso8601")
	rootCmd.Flags().BoolVar(&strict, "strict", false,
		"fail if any value is not a recognized date")

	rootCmd.AddCommand(feedCmd)
}

func Execute() error {
	return rootCmd.Execute()
}

// newOutput builds the report output for the selected format and color mode.
func newOutput(cmd *cobra.Command) *report.Output {
	var colorize bool
	switch color {
	case colorAlways:
		colorize = true
	case colorNever:
		colorize = false
	case colorAuto:
		terminal := term.FromEnv()
		colorize = terminal.IsColorEnabled()
	}

	return report.NewOutput(cmd.OutOrStdout(), cmd.ErrOrStderr(), format, colorize)
}

// cutoff resolves --since relative to now. The zero time disables filtering.
func cutoff(now time.Time) (time.Time, error) {
	if since == "" {
		return time.Time{}, nil
	}
	return timeparse.ParseCutoff(since, now)
}

// readInputs returns the values to parse: the arguments if there are any,
// otherwise the non-empty lines of r.
func readInputs(args []string, r io.Reader) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	var inputs []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			inputs = append(inputs, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return inputs, nil
}

// recognize parses s with the grammar selected by mode.
func recognize(s string, mode specMode) report.Record {
	r := report.Record{Raw: s}

	if mode == specAuto {
		if m, ok := timeparse.Recognize(s); ok {
			r.Time = &m.Time
			r.Grammar = m.Grammar
			r.Mode = report.ModePermissive
		}
		return r
	}

	ds, err := timeparse.ParseDateSpec(string(mode))
	if err != nil {
		return r
	}
	if t, ok := timeparse.Parse(s, ds); ok {
		r.Time = &t
		r.Grammar = ds.String()
		r.Mode = report.ModeExplicit
	}
	return r
}

func run(cmd *cobra.Command, args []string) error {
	inputs, err := readInputs(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	cut, err := cutoff(time.Now())
	if err != nil {
		return err
	}

	output := newOutput(cmd)

	var unmatched int
	for _, input := range inputs {
		r := recognize(input, spec)
		if !r.Matched() {
			unmatched++
		}
		if r.OlderThan(cut) {
			continue
		}
		output.Record(r)
	}

	if err := output.Flush(); err != nil {
		return err
	}

	if strict && unmatched > 0 {
		return fmt.Errorf("%d of %d values are not recognized dates", unmatched, len(inputs))
	}

	return nil
}

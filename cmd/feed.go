package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jparise/feeddate/internal/feed"
	"github.com/spf13/cobra"
)

var jobs int

var feedCmd = &cobra.Command{
	Use:   "feed <path>...",
	Short: "Recognize every date in RSS, Atom and JSON feed files",
	Long: `Parse feed documents and recognize each of their date values: the feed's
updated and published dates, the syndication module's sy:updateBase, and
every item's published and updated dates.

Each value is parsed with the grammar its feed format calls for (RFC 822 for
RSS, RFC 3339 for Atom and JSON Feed, ISO 8601 for sy:updateBase). Values that
don't conform are retried permissively and marked as a fallback.

<path> can be a file or a glob pattern:
  *              Match any characters (e.g., "*.xml")
  **             Match across directories (e.g., "feeds/**/*.xml")
  {...}          Match alternatives (e.g., "*.{xml,json}")

Examples:
  feeddate feed news.xml
  feeddate feed --since 1w "feeds/**/*.{xml,json}"
  feeddate feed --format yaml -j 4 a.xml b.xml`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if jobs < 1 || jobs > 100 {
			return fmt.Errorf("--jobs must be between 1 and 100, got %d", jobs)
		}
		return nil
	},
	RunE: runFeed,
}

func init() {
	feedCmd.Flags().IntVarP(&jobs, "jobs", "j", 10,
		"maximum concurrent feed parses")
}

func runFeed(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cut, err := cutoff(time.Now())
	if err != nil {
		return err
	}

	opts := &feed.Options{
		Patterns: args,
		Since:    cut,
		Jobs:     jobs,
	}

	output := newOutput(cmd)
	scanErr := feed.New(output).Scan(ctx, opts)
	if err := output.Flush(); err != nil {
		return err
	}
	return scanErr
}

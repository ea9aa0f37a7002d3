// Package feed extracts date values from feed documents and runs them
// through the date recognizer.
package feed

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/jparise/feeddate/internal/report"
	"golang.org/x/sync/semaphore"
)

// Scanner orchestrates scanning feed documents.
type Scanner struct {
	output *report.Output
}

// New creates a new Scanner that writes to output.
func New(output *report.Output) *Scanner {
	return &Scanner{output: output}
}

// Scan expands the patterns, parses every matching feed and reports each of
// its date fields. Files that fail to open or parse are reported as
// warnings; Scan only fails when every file fails.
func (s *Scanner) Scan(ctx context.Context, opts *Options) error {
	paths, err := s.expand(opts.Patterns)
	if err != nil {
		return err
	}

	if len(paths) == 0 {
		s.output.Warningf("No feed files match the given paths")
		return nil
	}

	// Records are collected per file and written in input order once all
	// files are done, so output is stable regardless of scheduling.
	results := make([][]report.Record, len(paths))

	var wg sync.WaitGroup
	var errorCount atomic.Int32
	sem := semaphore.NewWeighted(int64(max(opts.Jobs, 1)))

	for i, path := range paths {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return err
		}

		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			defer sem.Release(1)

			records, err := scanFile(path)
			if err != nil {
				errorCount.Add(1)
				s.output.Warningf("%s: %v", path, err)
				return
			}
			results[i] = records
		}(i, path)
	}

	wg.Wait()

	var dates, hidden int
	for _, records := range results {
		for _, r := range records {
			dates++
			if r.OlderThan(opts.Since) {
				hidden++
				continue
			}
			s.output.Record(r)
		}
	}

	failed := int(errorCount.Load())
	if failed == len(paths) {
		return fmt.Errorf("failed to scan all %d feeds", len(paths))
	}

	s.output.Infof("Scanned %d of %d feeds: %d dates, %d older than cutoff",
		len(paths)-failed, len(paths), dates, hidden)

	return nil
}

// expand resolves each pattern to file paths. The combined list is
// deduplicated while preserving input order.
func (s *Scanner) expand(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string

	for _, pattern := range patterns {
		if !doublestar.ValidatePathPattern(pattern) {
			return nil, fmt.Errorf("invalid pattern %q", pattern)
		}

		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("pattern %q failed to expand: %w", pattern, err)
		}
		if len(matches) == 0 {
			s.output.Warningf("%s: no such file", pattern)
			continue
		}

		for _, match := range matches {
			if !seen[match] {
				seen[match] = true
				paths = append(paths, match)
			}
		}
	}

	return paths, nil
}

func scanFile(path string) ([]report.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fields, err := parseDateFields(f)
	if err != nil {
		return nil, err
	}

	records := make([]report.Record, 0, len(fields))
	for _, field := range fields {
		r := field.recognize()
		r.Source = path
		records = append(records, r)
	}
	return records, nil
}

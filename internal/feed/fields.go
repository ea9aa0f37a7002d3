package feed

import (
	"fmt"
	"io"
	"strings"

	"github.com/jparise/feeddate/internal/report"
	"github.com/jparise/feeddate/internal/timeparse"
	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
)

// dateField is a raw date value taken from a feed document, along with the
// grammar the feed format says it should use.
type dateField struct {
	name string
	raw  string
	spec timeparse.DateSpec
}

// recognize parses the value with its expected grammar first and falls back
// to permissive parsing, since producers often ignore their format's rules.
func (f dateField) recognize() report.Record {
	r := report.Record{Field: f.name, Raw: f.raw}

	if t, ok := timeparse.Parse(f.raw, f.spec); ok {
		r.Time = &t
		r.Grammar = f.spec.String()
		r.Mode = report.ModeExplicit
		return r
	}

	if m, ok := timeparse.Recognize(f.raw); ok {
		r.Time = &m.Time
		r.Grammar = m.Grammar
		r.Mode = report.ModePermissive
	}
	return r
}

// expectedSpec returns the date grammar mandated by a gofeed feed type.
// RSS uses RFC 822; Atom and JSON Feed use RFC 3339.
func expectedSpec(feedType string) timeparse.DateSpec {
	if feedType == "rss" {
		return timeparse.RFC822
	}
	return timeparse.RFC3339
}

// parseDateFields parses a feed document and returns its non-empty date
// values in document order.
func parseDateFields(r io.Reader) ([]dateField, error) {
	// gofeed.Parser keeps per-parse state, so each call gets its own.
	feed, err := gofeed.NewParser().Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	spec := expectedSpec(feed.FeedType)

	var fields []dateField
	add := func(name, raw string, spec timeparse.DateSpec) {
		if strings.TrimSpace(raw) != "" {
			fields = append(fields, dateField{name: name, raw: raw, spec: spec})
		}
	}

	add("updated", feed.Updated, spec)
	add("published", feed.Published, spec)
	// The syndication module's updateBase is a W3CDTF date regardless of
	// the surrounding format.
	add("sy:updateBase", extensionValue(feed.Extensions, "sy", "updateBase"), timeparse.ISO8601)

	for i, item := range feed.Items {
		add(fmt.Sprintf("items[%d].published", i), item.Published, spec)
		add(fmt.Sprintf("items[%d].updated", i), item.Updated, spec)
	}

	return fields, nil
}

func extensionValue(exts ext.Extensions, prefix, name string) string {
	values := exts[prefix][name]
	if len(values) == 0 {
		return ""
	}
	return values[0].Value
}

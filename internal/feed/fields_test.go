package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/jparise/feeddate/internal/report"
	"github.com/jparise/feeddate/internal/timeparse"
)

const rssFeed = `<?xml version="1.0"?>
<rss version="2.0" xmlns:sy="http://purl.org/rss/1.0/modules/syndication/">
  <channel>
    <title>Test Feed</title>
    <link>https://example.com</link>
    <description>Test Description</description>
    <lastBuildDate>Mon, 03 Jul 2023 12:00:00 GMT</lastBuildDate>
    <sy:updatePeriod>hourly</sy:updatePeriod>
    <sy:updateFrequency>2</sy:updateFrequency>
    <sy:updateBase>2000-01-01T12:00+00:00</sy:updateBase>
    <item>
      <title>Item 1</title>
      <guid>item-1</guid>
      <pubDate>Mon, 03 Jul 2023 10:00:00 EDT</pubDate>
    </item>
    <item>
      <title>Item 2</title>
      <guid>item-2</guid>
      <pubDate>2023-07-03T11:00:00Z</pubDate>
    </item>
    <item>
      <title>Item 3</title>
      <guid>item-3</guid>
      <pubDate>yesterday</pubDate>
    </item>
  </channel>
</rss>`

const atomFeed = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Test Atom Feed</title>
  <id>https://example.com/feed</id>
  <updated>2023-07-03T12:00:00Z</updated>
  <entry>
    <title>Atom Entry 1</title>
    <id>atom-1</id>
    <updated>2023-07-03T10:00:00+02:00</updated>
    <published>2023-07-03</published>
  </entry>
</feed>`

const jsonFeed = `{
  "version": "https://jsonfeed.org/version/1.1",
  "title": "Test JSON Feed",
  "items": [
    {"id": "1", "title": "JSON Item", "date_published": "2023-07-03T10:00:00.5Z"}
  ]
}`

type wantField struct {
	raw     string
	time    time.Time
	grammar string
	mode    report.Mode
	matched bool
}

func recordsByField(t *testing.T, records []report.Record) map[string]report.Record {
	t.Helper()
	byField := make(map[string]report.Record, len(records))
	for _, r := range records {
		if _, dup := byField[r.Field]; dup {
			t.Fatalf("duplicate field %q", r.Field)
		}
		byField[r.Field] = r
	}
	return byField
}

func checkRecords(t *testing.T, records []report.Record, want map[string]wantField) {
	t.Helper()
	byField := recordsByField(t, records)

	for field, w := range want {
		r, ok := byField[field]
		if !ok {
			t.Errorf("missing field %q", field)
			continue
		}
		if strings.TrimSpace(r.Raw) != w.raw {
			t.Errorf("%s: raw = %q, want %q", field, r.Raw, w.raw)
		}
		if r.Matched() != w.matched {
			t.Errorf("%s: matched = %v, want %v", field, r.Matched(), w.matched)
			continue
		}
		if !w.matched {
			continue
		}
		if !r.Time.Equal(w.time) {
			t.Errorf("%s: time = %v, want %v", field, r.Time, w.time)
		}
		if r.Grammar != w.grammar {
			t.Errorf("%s: grammar = %q, want %q", field, r.Grammar, w.grammar)
		}
		if r.Mode != w.mode {
			t.Errorf("%s: mode = %q, want %q", field, r.Mode, w.mode)
		}
	}
}

func recognizeAll(fields []dateField) []report.Record {
	records := make([]report.Record, len(fields))
	for i, f := range fields {
		records[i] = f.recognize()
	}
	return records
}

func TestParseDateFieldsRSS(t *testing.T) {
	fields, err := parseDateFields(strings.NewReader(rssFeed))
	if err != nil {
		t.Fatal(err)
	}

	checkRecords(t, recognizeAll(fields), map[string]wantField{
		"updated": {
			raw:     "Mon, 03 Jul 2023 12:00:00 GMT",
			time:    time.Date(2023, 7, 3, 12, 0, 0, 0, time.UTC),
			grammar: "rfc822",
			mode:    report.ModeExplicit,
			matched: true,
		},
		"sy:updateBase": {
			raw:     "2000-01-01T12:00+00:00",
			time:    time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
			grammar: "iso8601",
			mode:    report.ModeExplicit,
			matched: true,
		},
		"items[0].published": {
			raw:     "Mon, 03 Jul 2023 10:00:00 EDT",
			time:    time.Date(2023, 7, 3, 14, 0, 0, 0, time.UTC),
			grammar: "rfc822",
			mode:    report.ModeExplicit,
			matched: true,
		},
		"items[1].published": {
			raw:     "2023-07-03T11:00:00Z",
			time:    time.Date(2023, 7, 3, 11, 0, 0, 0, time.UTC),
			grammar: "rfc3339",
			mode:    report.ModePermissive,
			matched: true,
		},
		"items[2].published": {
			raw:     "yesterday",
			matched: false,
		},
	})
}

func TestParseDateFieldsAtom(t *testing.T) {
	fields, err := parseDateFields(strings.NewReader(atomFeed))
	if err != nil {
		t.Fatal(err)
	}

	checkRecords(t, recognizeAll(fields), map[string]wantField{
		"updated": {
			raw:     "2023-07-03T12:00:00Z",
			time:    time.Date(2023, 7, 3, 12, 0, 0, 0, time.UTC),
			grammar: "rfc3339",
			mode:    report.ModeExplicit,
			matched: true,
		},
		"items[0].updated": {
			raw:     "2023-07-03T10:00:00+02:00",
			time:    time.Date(2023, 7, 3, 8, 0, 0, 0, time.UTC),
			grammar: "rfc3339",
			mode:    report.ModeExplicit,
			matched: true,
		},
		"items[0].published": {
			raw:     "2023-07-03",
			time:    time.Date(2023, 7, 3, 0, 0, 0, 0, time.UTC),
			grammar: "date",
			mode:    report.ModePermissive,
			matched: true,
		},
	})
}

func TestParseDateFieldsJSON(t *testing.T) {
	fields, err := parseDateFields(strings.NewReader(jsonFeed))
	if err != nil {
		t.Fatal(err)
	}

	checkRecords(t, recognizeAll(fields), map[string]wantField{
		"items[0].published": {
			raw:     "2023-07-03T10:00:00.5Z",
			time:    time.Date(2023, 7, 3, 10, 0, 0, 500000000, time.UTC),
			grammar: "rfc3339",
			mode:    report.ModeExplicit,
			matched: true,
		},
	})
}

func TestParseDateFieldsInvalid(t *testing.T) {
	_, err := parseDateFields(strings.NewReader(`<html><body>This is not a feed</body></html>`))
	if err == nil {
		t.Error("Expected error for invalid feed data")
	}
}

func TestExpectedSpec(t *testing.T) {
	tests := []struct {
		feedType string
		want     timeparse.DateSpec
	}{
		{"rss", timeparse.RFC822},
		{"atom", timeparse.RFC3339},
		{"json", timeparse.RFC3339},
	}

	for _, tt := range tests {
		t.Run(tt.feedType, func(t *testing.T) {
			if got := expectedSpec(tt.feedType); got != tt.want {
				t.Errorf("expectedSpec(%q) = %v, want %v", tt.feedType, got, tt.want)
			}
		})
	}
}

func TestDateFieldRecognize(t *testing.T) {
	tests := []struct {
		name        string
		field       dateField
		wantGrammar string
		wantMode    report.Mode
		wantMatched bool
	}{
		{
			name:        "expected grammar",
			field:       dateField{name: "updated", raw: "Mon, 02 Jan 2006 15:04:05 GMT", spec: timeparse.RFC822},
			wantGrammar: "rfc822",
			wantMode:    report.ModeExplicit,
			wantMatched: true,
		},
		{
			name:        "falls back",
			field:       dateField{name: "updated", raw: "Mon, 02 Jan 2006 15:04:05 GMT", spec: timeparse.RFC3339},
			wantGrammar: "rfc822",
			wantMode:    report.ModePermissive,
			wantMatched: true,
		},
		{
			name:        "no match",
			field:       dateField{name: "updated", raw: "soon", spec: timeparse.RFC3339},
			wantMatched: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.field.recognize()
			if r.Field != tt.field.name || r.Raw != tt.field.raw {
				t.Errorf("recognize() = %+v, want field %q and raw %q", r, tt.field.name, tt.field.raw)
			}
			if r.Matched() != tt.wantMatched {
				t.Fatalf("recognize() matched = %v, want %v", r.Matched(), tt.wantMatched)
			}
			if r.Grammar != tt.wantGrammar || r.Mode != tt.wantMode {
				t.Errorf("recognize() = (%q, %q), want (%q, %q)", r.Grammar, r.Mode, tt.wantGrammar, tt.wantMode)
			}
		})
	}
}

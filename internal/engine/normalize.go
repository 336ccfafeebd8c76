package engine

import (
	"strconv"
	"strings"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/devtimehq/devtime/internal/domain"
)

// Timestamps before this are assumed to be clock garbage (unset RTCs,
// zero values run through a formatter).
var sanityFloor = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Layouts tried in order when the timestamp is not a unix integer.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// normalize converts raw records into ActivityEvents inside [from, to].
// Bad records are dropped and counted, never fatal: one malformed line
// must not abort the batch.
func normalize(records []domain.RawRecord, from, to time.Time, clk clock.Clock, skipped *domain.SkipCounts) []domain.ActivityEvent {
	ceiling := clk.Now().UTC().Add(24 * time.Hour)
	events := make([]domain.ActivityEvent, 0, len(records))
	for _, rec := range records {
		ts, ok := parseTimestamp(rec.Timestamp)
		if !ok {
			skipped.MalformedTimestamps++
			continue
		}
		if ts.Before(sanityFloor) || ts.After(ceiling) {
			skipped.ImplausibleTimes++
			continue
		}
		if ts.Before(from) || ts.After(to) {
			skipped.OutOfRange++
			continue
		}
		events = append(events, domain.ActivityEvent{
			Timestamp: ts,
			Project:   CanonicalProject(rec.ProjectHint),
			Source:    rec.Source,
			Backup:    rec.Backup,
		})
	}
	return events
}

// parseTimestamp accepts RFC3339 variants, a few bare layouts, and unix
// seconds or milliseconds. All results are UTC.
func parseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		switch {
		case len(raw) >= 13: // milliseconds
			return time.UnixMilli(n).UTC(), true
		case len(raw) >= 10: // seconds
			return time.Unix(n, 0).UTC(), true
		default:
			return time.Time{}, false
		}
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}

// CanonicalProject normalizes a project hint: surrounding whitespace is
// trimmed, inner runs collapse to single spaces, and any casing of
// "unknown" maps to the canonical Unknown bucket. An empty hint stays
// empty: that marks a general observation with no attribution at all,
// which the deduplicator treats specially.
func CanonicalProject(hint string) string {
	fields := strings.Fields(hint)
	if len(fields) == 0 {
		return ""
	}
	name := strings.Join(fields, " ")
	if strings.EqualFold(name, domain.UnknownProject) {
		return domain.UnknownProject
	}
	return name
}

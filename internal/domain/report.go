package domain

import "time"

// Report is the engine's output for one reconciliation run: the
// chronological session list plus the roll-ups downstream renderers
// need. It is owned by the caller; the engine keeps no state between
// runs.
type Report struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`

	// Sessions in chronological order, annotated with correlated commits.
	Sessions []Session `json:"sessions"`

	// Projects sorted by total hours, descending. The Unknown bucket is
	// always present when it has sessions.
	Projects []ProjectSummary `json:"projects"`

	// Services sorted by total hours, descending.
	Services []ServiceSummary `json:"services"`

	// Days in reverse-chronological order.
	Days []DaySummary `json:"days"`

	Skipped SkipCounts `json:"skipped"`

	// UncorrelatedCommits counts commits in range that matched no session.
	UncorrelatedCommits int `json:"uncorrelated_commits"`
}

// ProjectSummary is one row of the per-project table.
type ProjectSummary struct {
	Project  string   `json:"project"`
	Hours    float64  `json:"hours"`
	Sessions int      `json:"sessions"`
	Services []string `json:"services"`
	Commits  int      `json:"commits"`
}

// ServiceSummary is one row of the per-service table.
type ServiceSummary struct {
	Service  Source  `json:"service"`
	Hours    float64 `json:"hours"`
	Sessions int     `json:"sessions"`
}

// DaySummary groups sessions by the calendar day of their start.
type DaySummary struct {
	Date     string    `json:"date"` // YYYY-MM-DD in the report range's zone
	Hours    float64   `json:"hours"`
	Sessions []Session `json:"sessions"`
}

// SkipCounts surfaces data-quality drops. None of these are errors; they
// exist so callers can audit what the heuristics threw away.
type SkipCounts struct {
	MalformedTimestamps int `json:"malformed_timestamps"`
	ImplausibleTimes    int `json:"implausible_times"`
	OutOfRange          int `json:"out_of_range"`
	Duplicates          int `json:"duplicates"`
}

package domain

import "time"

// Session is a contiguous unit of work attributed to one project and one
// source category. Sessions are built once and never mutated afterwards;
// the correlator annotates a copy and the aggregator only reads.
type Session struct {
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Project    string    `json:"project"`
	Service    Source    `json:"service"`
	EventCount int       `json:"event_count"`

	// Commits correlated with this session. Advisory annotation only:
	// the same commit may appear on several sessions.
	Commits []Commit `json:"commits,omitempty"`
}

// Duration returns End - Start.
func (s Session) Duration() time.Duration { return s.End.Sub(s.Start) }

// Hours returns the duration in fractional hours at full precision.
// Rounding happens at presentation time only.
func (s Session) Hours() float64 { return s.End.Sub(s.Start).Hours() }

// Commit is a point-in-time version-control event. Commits are owned by
// the caller; sessions only reference them.
type Commit struct {
	Timestamp time.Time `json:"timestamp"`
	Project   string    `json:"project"`
	Hash      string    `json:"hash"`
	Message   string    `json:"message"`
	Author    string    `json:"author"`
}

package engine

import (
	"fmt"
	"time"
)

// Options holds the reconciliation knobs. The zero value of any field
// means "use the default"; an explicitly negative value is a contract
// violation and rejected by New.
type Options struct {
	// DedupEpsilon is the window within which two same-project events
	// are considered one real-world instant.
	DedupEpsilon time.Duration

	// PointWidth is the assumed length of the work block ending at a
	// point event. A "last modified" signal is treated as the tail of
	// an unobserved block of this width. This is a heuristic
	// approximation, not a measured duration.
	PointWidth time.Duration

	// MergeThreshold is the maximum silence between two intervals that
	// still counts as one session. Gaps equal to the threshold merge.
	MergeThreshold time.Duration

	// CommitBurstWindow clusters consecutive commit timestamps on the
	// same project into one session instead of expanding each to
	// PointWidth.
	CommitBurstWindow time.Duration

	// CommitWidth is the duration assigned to a solitary commit-derived
	// session.
	CommitWidth time.Duration

	// CommitLookBack bounds how long after a session ends a commit may
	// still land and be correlated with it.
	CommitLookBack time.Duration

	// CommitLookForward bounds how far ahead of a session's start a
	// commit may land and be correlated with it (clock skew, staged or
	// squashed work committed before the recorded activity).
	CommitLookForward time.Duration
}

// Defaults per knob. Documented in the README; all overridable through
// configuration.
const (
	DefaultDedupEpsilon      = 5 * time.Second
	DefaultPointWidth        = time.Hour
	DefaultMergeThreshold    = 10 * time.Minute
	DefaultCommitBurstWindow = 5 * time.Minute
	DefaultCommitWidth       = time.Minute
	DefaultCommitLookBack    = 2 * time.Hour
	DefaultCommitLookForward = 12 * time.Hour
)

// DefaultOptions returns Options with every knob at its default.
func DefaultOptions() Options {
	return Options{
		DedupEpsilon:      DefaultDedupEpsilon,
		PointWidth:        DefaultPointWidth,
		MergeThreshold:    DefaultMergeThreshold,
		CommitBurstWindow: DefaultCommitBurstWindow,
		CommitWidth:       DefaultCommitWidth,
		CommitLookBack:    DefaultCommitLookBack,
		CommitLookForward: DefaultCommitLookForward,
	}
}

// withDefaults fills zero fields and validates the rest.
func (o Options) withDefaults() (Options, error) {
	def := DefaultOptions()
	fill := []struct {
		name string
		dst  *time.Duration
		def  time.Duration
	}{
		{"dedup_epsilon", &o.DedupEpsilon, def.DedupEpsilon},
		{"point_width", &o.PointWidth, def.PointWidth},
		{"merge_threshold", &o.MergeThreshold, def.MergeThreshold},
		{"commit_burst_window", &o.CommitBurstWindow, def.CommitBurstWindow},
		{"commit_width", &o.CommitWidth, def.CommitWidth},
		{"commit_lookback", &o.CommitLookBack, def.CommitLookBack},
		{"commit_lookforward", &o.CommitLookForward, def.CommitLookForward},
	}
	for _, f := range fill {
		if *f.dst == 0 {
			*f.dst = f.def
		}
		if *f.dst < 0 {
			return o, fmt.Errorf("engine: %s must be positive, got %s", f.name, *f.dst)
		}
	}
	return o, nil
}

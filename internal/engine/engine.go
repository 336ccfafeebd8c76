// Package engine reconciles noisy activity observations from multiple
// tools into a single set of non-overlapping, deduplicated work
// sessions: normalize, dedupe, build sessions under a gap tolerance,
// correlate commits, aggregate.
//
// The engine is pure and stateless per invocation: it performs no I/O,
// holds no state between runs, and is safe to call from parallel
// workers as long as each call owns its inputs. Results of partial runs
// over adjacent time ranges cannot simply be concatenated, because
// gap-merge decisions are not associative across partition edges;
// merging partial runs means re-running Reconcile over the unioned
// inputs.
package engine

import (
	"time"

	"github.com/benbjohnson/clock"

	"github.com/devtimehq/devtime/internal/domain"
)

// Engine runs the reconciliation pipeline with a fixed set of options.
type Engine struct {
	opts Options
	clk  clock.Clock
}

// New builds an Engine. Zero-valued option fields pick up defaults;
// negative values are rejected.
func New(opts Options) (*Engine, error) {
	resolved, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	return &Engine{opts: resolved, clk: clock.New()}, nil
}

// NewWithClock is New with an injectable clock, used by tests to pin
// the normalizer's plausibility ceiling.
func NewWithClock(opts Options, clk clock.Clock) (*Engine, error) {
	e, err := New(opts)
	if err != nil {
		return nil, err
	}
	e.clk = clk
	return e, nil
}

// Options returns the resolved options the engine runs with.
func (e *Engine) Options() Options { return e.opts }

// Reconcile runs the full pipeline over one batch. Data-quality
// problems (bad timestamps, duplicates, unattributable activity) are
// absorbed into the report's skip counters and the Unknown bucket;
// Reconcile itself only fails on contract violations, which New already
// screens for.
func (e *Engine) Reconcile(records []domain.RawRecord, commits []domain.Commit, from, to time.Time) *domain.Report {
	report := &domain.Report{From: from, To: to}

	events := normalize(records, from, to, e.clk, &report.Skipped)

	kept, dropped := dedupe(events, e.opts.DedupEpsilon)
	report.Skipped.Duplicates = dropped

	report.Sessions = buildSessions(kept, e.opts)

	inRange := filterCommits(commits, from, to)
	report.UncorrelatedCommits = correlate(report.Sessions, inRange, e.opts)

	aggregate(report, from.Location())
	return report
}

// filterCommits bounds the commit list strictly to the reconciliation
// range. Commits outside [from, to] are not part of this batch: they
// neither correlate nor count as uncorrelated.
func filterCommits(commits []domain.Commit, from, to time.Time) []domain.Commit {
	kept := make([]domain.Commit, 0, len(commits))
	for _, c := range commits {
		if c.Timestamp.Before(from) || c.Timestamp.After(to) {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

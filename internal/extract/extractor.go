// Package extract gathers raw activity observations from the local
// tools: AI agent interaction logs, the editor's state store, and git
// history. Extractors only observe and hand normalized-ish raw records
// to the engine; all reconciliation happens there.
package extract

import (
	"context"
	"fmt"
	"time"

	"github.com/devtimehq/devtime/internal/domain"
)

// Extractor reads one source of activity observations.
type Extractor interface {
	// Name identifies the source in logs and warnings.
	Name() string

	// Available reports whether the source's data exists on this
	// machine. An unavailable source is skipped, not an error.
	Available() bool

	// Extract returns raw records (and commits, for sources that have
	// them) observed between from and to.
	Extract(ctx context.Context, from, to time.Time) (Result, error)
}

// Result is one extractor's contribution to a batch.
type Result struct {
	Records []domain.RawRecord
	Commits []domain.Commit

	// Warnings are non-fatal issues hit while reading the source
	// (unreadable file, malformed line counts and the like).
	Warnings []string
}

// Run executes every available extractor sequentially and pools their
// output. A failing extractor degrades to a warning so one broken
// source cannot take down the whole batch.
func Run(ctx context.Context, extractors []Extractor, from, to time.Time) Result {
	var pooled Result
	for _, ex := range extractors {
		if !ex.Available() {
			pooled.Warnings = append(pooled.Warnings, fmt.Sprintf("%s: not available", ex.Name()))
			continue
		}
		res, err := ex.Extract(ctx, from, to)
		if err != nil {
			pooled.Warnings = append(pooled.Warnings, fmt.Sprintf("%s: %v", ex.Name(), err))
			continue
		}
		pooled.Records = append(pooled.Records, res.Records...)
		pooled.Commits = append(pooled.Commits, res.Commits...)
		for _, w := range res.Warnings {
			pooled.Warnings = append(pooled.Warnings, fmt.Sprintf("%s: %s", ex.Name(), w))
		}
	}
	return pooled
}

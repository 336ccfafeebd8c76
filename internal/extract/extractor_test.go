package extract

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devtimehq/devtime/internal/domain"
)

type fakeExtractor struct {
	name      string
	available bool
	result    Result
	err       error
}

func (f *fakeExtractor) Name() string    { return f.name }
func (f *fakeExtractor) Available() bool { return f.available }
func (f *fakeExtractor) Extract(context.Context, time.Time, time.Time) (Result, error) {
	return f.result, f.err
}

func TestRunPoolsResultsAndDegradesFailures(t *testing.T) {
	ok := &fakeExtractor{
		name:      "ok",
		available: true,
		result: Result{
			Records:  []domain.RawRecord{{Timestamp: "2024-03-01T09:00:00Z", Source: domain.SourceAgentLog}},
			Warnings: []string{"skipped 1 malformed lines"},
		},
	}
	broken := &fakeExtractor{name: "broken", available: true, err: errors.New("disk on fire")}
	missing := &fakeExtractor{name: "missing", available: false}

	res := Run(context.Background(), []Extractor{ok, broken, missing}, time.Now().Add(-time.Hour), time.Now())

	require.Len(t, res.Records, 1)
	assert.Contains(t, res.Warnings, "ok: skipped 1 malformed lines")
	assert.Contains(t, res.Warnings, "broken: disk on fire")
	assert.Contains(t, res.Warnings, "missing: not available")
}

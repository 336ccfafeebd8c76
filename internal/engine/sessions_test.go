package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devtimehq/devtime/internal/domain"
)

func logEvents(project string, stamps ...time.Time) []domain.ActivityEvent {
	events := make([]domain.ActivityEvent, len(stamps))
	for i, ts := range stamps {
		events[i] = domain.ActivityEvent{Timestamp: ts, Project: project, Source: domain.SourceAgentLog}
	}
	return events
}

func TestBuildSessionsSingleEvent(t *testing.T) {
	ts := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	sessions := buildSessions(logEvents("proj", ts), DefaultOptions())

	require.Len(t, sessions, 1)
	s := sessions[0]
	assert.True(t, s.Start.Equal(ts.Add(-time.Hour)), "session starts one width before the event")
	assert.True(t, s.End.Equal(ts), "session ends at the event timestamp")
	assert.Equal(t, 1, s.EventCount)
}

// Three point events at t, t+5m and t+9m with a 10 minute threshold
// collapse transitively into one session spanning the earliest expanded
// start to the latest timestamp.
func TestBuildSessionsMergeIsTransitive(t *testing.T) {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	sessions := buildSessions(
		logEvents("proj", base, base.Add(5*time.Minute), base.Add(9*time.Minute)),
		DefaultOptions(),
	)

	require.Len(t, sessions, 1)
	assert.True(t, sessions[0].Start.Equal(base.Add(-time.Hour)))
	assert.True(t, sessions[0].End.Equal(base.Add(9*time.Minute)))
	assert.Equal(t, 3, sessions[0].EventCount)
}

// Scenario from the tool's acceptance notes: events at 09:00, 09:05 and
// 09:20 yield exactly one session 08:00-09:20 because the one hour
// expansions overlap.
func TestBuildSessionsOverlappingExpansions(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	sessions := buildSessions(
		logEvents("proj",
			day.Add(9*time.Hour),
			day.Add(9*time.Hour+5*time.Minute),
			day.Add(9*time.Hour+20*time.Minute),
		),
		DefaultOptions(),
	)

	require.Len(t, sessions, 1)
	assert.True(t, sessions[0].Start.Equal(day.Add(8*time.Hour)))
	assert.True(t, sessions[0].End.Equal(day.Add(9*time.Hour+20*time.Minute)))
	assert.Equal(t, 3, sessions[0].EventCount)
}

func TestBuildSessionsGapBoundary(t *testing.T) {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("gap exactly at threshold merges", func(t *testing.T) {
		// Expanded intervals: [base-1h, base] and [base+10m, base+1h10m].
		sessions := buildSessions(
			logEvents("proj", base, base.Add(70*time.Minute)),
			DefaultOptions(),
		)
		require.Len(t, sessions, 1)
	})

	t.Run("gap just past threshold does not merge", func(t *testing.T) {
		sessions := buildSessions(
			logEvents("proj", base, base.Add(70*time.Minute+time.Second)),
			DefaultOptions(),
		)
		require.Len(t, sessions, 2)
	})
}

func TestBuildSessionsCrossProjectIsolation(t *testing.T) {
	ts := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	events := append(logEvents("A", ts), logEvents("B", ts)...)

	sessions := buildSessions(events, DefaultOptions())
	require.Len(t, sessions, 2, "identical timestamps on different projects must not share a session")
	assert.NotEqual(t, sessions[0].Project, sessions[1].Project)
}

func TestBuildSessionsDefensivelySorts(t *testing.T) {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	// Deliberately out of order; a caller bug must not break merging.
	sessions := buildSessions(
		logEvents("proj", base.Add(9*time.Minute), base, base.Add(5*time.Minute)),
		DefaultOptions(),
	)
	require.Len(t, sessions, 1)
	assert.Equal(t, 3, sessions[0].EventCount)
}

func TestBuildSessionsCommitBursts(t *testing.T) {
	base := time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC)

	commitEvent := func(offset time.Duration) domain.ActivityEvent {
		return domain.ActivityEvent{Timestamp: base.Add(offset), Project: "proj", Source: domain.SourceVersionControl}
	}

	t.Run("dense commits form one burst not one hour each", func(t *testing.T) {
		sessions := buildSessions([]domain.ActivityEvent{
			commitEvent(0), commitEvent(3 * time.Minute), commitEvent(7 * time.Minute),
		}, DefaultOptions())

		require.Len(t, sessions, 1)
		assert.True(t, sessions[0].Start.Equal(base))
		assert.True(t, sessions[0].End.Equal(base.Add(7*time.Minute)))
		assert.Equal(t, 3, sessions[0].EventCount)
	})

	t.Run("solitary commit gets the short commit width", func(t *testing.T) {
		sessions := buildSessions([]domain.ActivityEvent{commitEvent(0)}, DefaultOptions())

		require.Len(t, sessions, 1)
		assert.True(t, sessions[0].End.Equal(base.Add(DefaultCommitWidth)),
			"a lone commit must not claim the full point width")
	})

	t.Run("separate bursts stay separate", func(t *testing.T) {
		sessions := buildSessions([]domain.ActivityEvent{
			commitEvent(0), commitEvent(2 * time.Minute),
			commitEvent(40 * time.Minute), commitEvent(43 * time.Minute),
		}, DefaultOptions())

		require.Len(t, sessions, 2)
		assert.Equal(t, 2, sessions[0].EventCount)
		assert.Equal(t, 2, sessions[1].EventCount)
	})
}

func TestBuildSessionsKeepsSourceCategoriesApart(t *testing.T) {
	ts := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	events := []domain.ActivityEvent{
		{Timestamp: ts, Project: "proj", Source: domain.SourceAgentLog},
		{Timestamp: ts.Add(time.Minute), Project: "proj", Source: domain.SourceEditorState},
	}

	sessions := buildSessions(events, DefaultOptions())
	require.Len(t, sessions, 2, "sessions keep their originating service even when time overlaps")
}

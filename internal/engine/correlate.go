package engine

import (
	"time"

	"github.com/devtimehq/devtime/internal/domain"
)

// correlate annotates sessions with same-project commits that fall
// inside their correlation window and reports how many commits matched
// nothing. Correlation is advisory: a commit may land on several
// sessions and no session owns a commit.
//
// The window is asymmetric. Commits typically land shortly AFTER the
// work that produced them, so CommitLookBack bounds how long past a
// session's end a commit may trail it. Occasionally a commit precedes
// the recorded activity (clock skew, staged or squashed work), which
// CommitLookForward tolerates ahead of the session start. Both bounds
// are inclusive: a commit exactly at end+lookBack correlates, one
// minute beyond does not.
func correlate(sessions []domain.Session, commits []domain.Commit, opts Options) (uncorrelated int) {
	matched := make([]bool, len(commits))
	for i := range sessions {
		s := &sessions[i]
		windowStart := s.Start.Add(-opts.CommitLookForward)
		windowEnd := s.End.Add(opts.CommitLookBack)
		for j, c := range commits {
			if c.Project != s.Project {
				continue
			}
			if inWindow(c.Timestamp, windowStart, windowEnd) {
				s.Commits = append(s.Commits, c)
				matched[j] = true
			}
		}
	}
	for _, m := range matched {
		if !m {
			uncorrelated++
		}
	}
	return uncorrelated
}

func inWindow(ts, start, end time.Time) bool {
	return !ts.Before(start) && !ts.After(end)
}

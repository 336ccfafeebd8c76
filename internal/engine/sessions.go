package engine

import (
	"sort"
	"time"

	"github.com/devtimehq/devtime/internal/domain"
)

// interval is a candidate session before gap merging.
type interval struct {
	start, end time.Time
	count      int
}

// buildSessions turns deduplicated events into sessions, per project and
// source category.
//
// Point events carry no duration of their own; a "last modified" signal
// is read as the tail of a work block, so each expands to a window of
// PointWidth ending at the event. Commit-origin events cluster tightly
// and must not each claim a full block: consecutive commits within
// CommitBurstWindow collapse into one burst, and a solitary commit gets
// only CommitWidth.
//
// Expanded intervals are then merged whenever the gap between them is at
// most MergeThreshold (overlap included). Merging is transitive and a
// merged session is never split again; later stages only read.
func buildSessions(events []domain.ActivityEvent, opts Options) []domain.Session {
	type key struct {
		project string
		source  domain.Source
	}
	groups := make(map[key][]time.Time)
	for _, ev := range events {
		project := ev.Project
		if project == "" {
			project = domain.UnknownProject
		}
		k := key{project, ev.Source}
		groups[k] = append(groups[k], ev.Timestamp)
	}

	var sessions []domain.Session
	for k, stamps := range groups {
		// Defensive: upstream bugs must not corrupt merge decisions, so
		// never assume the order we were handed.
		sort.Slice(stamps, func(i, j int) bool { return stamps[i].Before(stamps[j]) })

		var intervals []interval
		if k.source == domain.SourceVersionControl {
			intervals = commitBursts(stamps, opts)
		} else {
			intervals = expandPoints(stamps, opts.PointWidth)
		}

		for _, iv := range mergeIntervals(intervals, opts.MergeThreshold) {
			sessions = append(sessions, domain.Session{
				Start:      iv.start,
				End:        iv.end,
				Project:    k.project,
				Service:    k.source,
				EventCount: iv.count,
			})
		}
	}

	sort.Slice(sessions, func(i, j int) bool {
		a, b := sessions[i], sessions[j]
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		if a.Project != b.Project {
			return a.Project < b.Project
		}
		return a.Service.Priority() < b.Service.Priority()
	})
	return sessions
}

// expandPoints gives each sorted point event a window of width ending at
// the event itself.
func expandPoints(stamps []time.Time, width time.Duration) []interval {
	intervals := make([]interval, len(stamps))
	for i, ts := range stamps {
		intervals[i] = interval{start: ts.Add(-width), end: ts, count: 1}
	}
	return intervals
}

// commitBursts clusters sorted commit timestamps: consecutive commits
// within the burst window form one interval spanning first to last. A
// burst of one commit gets CommitWidth instead of the full point width.
func commitBursts(stamps []time.Time, opts Options) []interval {
	var intervals []interval
	for i := 0; i < len(stamps); {
		j := i + 1
		for j < len(stamps) && stamps[j].Sub(stamps[j-1]) <= opts.CommitBurstWindow {
			j++
		}
		iv := interval{start: stamps[i], end: stamps[j-1], count: j - i}
		if iv.count == 1 {
			iv.end = iv.start.Add(opts.CommitWidth)
		}
		intervals = append(intervals, iv)
		i = j
	}
	return intervals
}

// mergeIntervals collapses sorted-by-start intervals whose gap is at
// most threshold. A gap exactly at the threshold merges; anything
// larger does not.
func mergeIntervals(intervals []interval, threshold time.Duration) []interval {
	if len(intervals) == 0 {
		return nil
	}
	sort.Slice(intervals, func(i, j int) bool { return intervals[i].start.Before(intervals[j].start) })

	merged := []interval{intervals[0]}
	for _, iv := range intervals[1:] {
		last := &merged[len(merged)-1]
		if iv.start.Sub(last.end) <= threshold {
			if iv.end.After(last.end) {
				last.end = iv.end
			}
			last.count += iv.count
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

package engine

import (
	"sort"
	"time"

	"github.com/devtimehq/devtime/internal/domain"
)

// dedupe collapses events that describe the same real-world instant.
// Multiple sources (and primary/backup copies of the same store) echo a
// single moment of activity; within a project, events closer than
// epsilon are one observation and the most trustworthy representative
// survives. Unattributed ("general") events are a lower-fidelity echo of
// whatever was going on anywhere, so they are tested against the kept
// timestamps of every project and only survive, filed under the
// Unknown bucket, when nothing else explains them.
//
// The input is fully re-sorted under a total order first, so the
// surviving set does not depend on the order extractors were enumerated
// in. Running dedupe on its own output is a no-op.
func dedupe(events []domain.ActivityEvent, epsilon time.Duration) (kept []domain.ActivityEvent, dropped int) {
	var attributed, general []domain.ActivityEvent
	for _, ev := range events {
		if ev.Project == "" {
			general = append(general, ev)
		} else {
			attributed = append(attributed, ev)
		}
	}

	sortEvents(attributed)
	sortEvents(general)

	// Tier 1-3: collapse within each project group. anchors[p] is the
	// last kept event per project; anchors only ever move forward in
	// time, so consecutive survivors in a group end up >= epsilon apart,
	// which is what makes the pass idempotent.
	anchors := make(map[string]int) // project -> index into kept
	for _, ev := range attributed {
		idx, ok := anchors[ev.Project]
		if ok && ev.Timestamp.Sub(kept[idx].Timestamp) < epsilon {
			// Same instant. Keep the better representative: a primary
			// beats a backup, then source priority, then the earlier
			// timestamp (i.e. the incumbent).
			if betterRepresentative(ev, kept[idx]) {
				kept[idx] = ev
			}
			dropped++
			continue
		}
		kept = append(kept, ev)
		anchors[ev.Project] = len(kept) - 1
	}

	// Tier 4: general events dedupe against ALL kept timestamps via one
	// flat sorted index, O(log n) per candidate. Survivors join the
	// index so close-together general events also collapse.
	index := make([]time.Time, len(kept))
	for i, ev := range kept {
		index[i] = ev.Timestamp
	}
	sort.Slice(index, func(i, j int) bool { return index[i].Before(index[j]) })

	for _, ev := range general {
		if withinEpsilon(index, ev.Timestamp, epsilon) {
			dropped++
			continue
		}
		ev.Project = domain.UnknownProject
		kept = append(kept, ev)
		index = insertSorted(index, ev.Timestamp)
	}

	sortEvents(kept)
	return kept, dropped
}

// sortEvents applies the total order that makes dedup reproducible:
// timestamp, then primary before backup, then source priority, then
// project name.
func sortEvents(events []domain.ActivityEvent) {
	sort.Slice(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.Before(b.Timestamp)
		}
		if a.Backup != b.Backup {
			return !a.Backup
		}
		if a.Source.Priority() != b.Source.Priority() {
			return a.Source.Priority() < b.Source.Priority()
		}
		return a.Project < b.Project
	})
}

// betterRepresentative reports whether candidate should replace the
// incumbent survivor of a duplicate cluster.
func betterRepresentative(candidate, incumbent domain.ActivityEvent) bool {
	if candidate.Backup != incumbent.Backup {
		return !candidate.Backup
	}
	if candidate.Source.Priority() != incumbent.Source.Priority() {
		return candidate.Source.Priority() < incumbent.Source.Priority()
	}
	// Two equally trustworthy observations: the earlier one stands.
	return false
}

// withinEpsilon reports whether ts is closer than epsilon to any entry
// of the sorted index.
func withinEpsilon(index []time.Time, ts time.Time, epsilon time.Duration) bool {
	i := sort.Search(len(index), func(i int) bool { return !index[i].Before(ts) })
	if i < len(index) && index[i].Sub(ts) < epsilon {
		return true
	}
	if i > 0 && ts.Sub(index[i-1]) < epsilon {
		return true
	}
	return false
}

func insertSorted(index []time.Time, ts time.Time) []time.Time {
	i := sort.Search(len(index), func(i int) bool { return !index[i].Before(ts) })
	index = append(index, time.Time{})
	copy(index[i+1:], index[i:])
	index[i] = ts
	return index
}

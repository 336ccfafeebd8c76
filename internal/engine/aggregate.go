package engine

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/devtimehq/devtime/internal/domain"
)

// aggregate rolls the final session list up into the per-project table,
// the per-service table and the daily breakdown. Durations stay at full
// precision here; only renderers round, so merges and sums cannot
// compound rounding error. Per-project and per-service hours are
// derived from the same session set and therefore always reconcile.
func aggregate(report *domain.Report, loc *time.Location) {
	sessions := report.Sessions

	byProject := lo.GroupBy(sessions, func(s domain.Session) string { return s.Project })
	report.Projects = make([]domain.ProjectSummary, 0, len(byProject))
	for project, group := range byProject {
		services := lo.Uniq(lo.Map(group, func(s domain.Session, _ int) string { return s.Service.String() }))
		sort.Strings(services)

		// Distinct commits: one commit correlated with several sessions
		// of this project still counts once.
		hashes := make(map[string]struct{})
		for _, s := range group {
			for _, c := range s.Commits {
				hashes[c.Hash] = struct{}{}
			}
		}

		report.Projects = append(report.Projects, domain.ProjectSummary{
			Project:  project,
			Hours:    lo.SumBy(group, domain.Session.Hours),
			Sessions: len(group),
			Services: services,
			Commits:  len(hashes),
		})
	}
	sort.Slice(report.Projects, func(i, j int) bool {
		a, b := report.Projects[i], report.Projects[j]
		if a.Hours != b.Hours {
			return a.Hours > b.Hours
		}
		return a.Project < b.Project
	})

	byService := lo.GroupBy(sessions, func(s domain.Session) domain.Source { return s.Service })
	report.Services = make([]domain.ServiceSummary, 0, len(byService))
	for service, group := range byService {
		report.Services = append(report.Services, domain.ServiceSummary{
			Service:  service,
			Hours:    lo.SumBy(group, domain.Session.Hours),
			Sessions: len(group),
		})
	}
	sort.Slice(report.Services, func(i, j int) bool {
		a, b := report.Services[i], report.Services[j]
		if a.Hours != b.Hours {
			return a.Hours > b.Hours
		}
		return a.Service < b.Service
	})

	// Daily breakdown, bucketed by the calendar day of the session
	// start in the reporting range's zone, newest day first. Sessions
	// arrive chronological and stay that way within a day.
	byDay := lo.GroupBy(sessions, func(s domain.Session) string {
		return s.Start.In(loc).Format("2006-01-02")
	})
	report.Days = make([]domain.DaySummary, 0, len(byDay))
	for date, group := range byDay {
		report.Days = append(report.Days, domain.DaySummary{
			Date:     date,
			Hours:    lo.SumBy(group, domain.Session.Hours),
			Sessions: group,
		})
	}
	sort.Slice(report.Days, func(i, j int) bool { return report.Days[i].Date > report.Days[j].Date })
}

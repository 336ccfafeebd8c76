package report

import (
	"fmt"
	"hash/fnv"
	"html/template"
	"io"
	"time"

	"github.com/samber/lo"

	"github.com/devtimehq/devtime/internal/domain"
)

// WriteHTML emits a self-contained static dashboard: stat cards,
// per-project summary, and a daily breakdown with a bar per day. No
// external assets, so the file can be opened or mailed as-is.
func WriteHTML(w io.Writer, report *domain.Report) error {
	return dashboardTemplate.Execute(w, buildDashboard(report))
}

type dashboard struct {
	From, To      string
	TotalHours    string
	TotalSessions int
	ProjectCount  int
	Projects      []dashboardProject
	Days          []dashboardDay
	Skipped       domain.SkipCounts
	SkippedTotal  int
	Uncorrelated  int
	GeneratedAt   string
}

type dashboardProject struct {
	Name     string
	Color    template.CSS
	Hours    string
	Sessions int
	Services string
	Commits  int
}

type dashboardDay struct {
	Label    string
	Hours    string
	BarWidth int // percent of the busiest day
	Sessions []dashboardSession
}

type dashboardSession struct {
	Start   string
	End     string
	Project string
	Color   template.CSS
	Service string
	Hours   string
	Commits string
}

func buildDashboard(report *domain.Report) dashboard {
	d := dashboard{
		From:          report.From.Format("2006-01-02"),
		To:            report.To.Format("2006-01-02"),
		TotalHours:    fmt.Sprintf("%.1f", lo.SumBy(report.Sessions, domain.Session.Hours)),
		TotalSessions: len(report.Sessions),
		ProjectCount:  len(report.Projects),
		Skipped:       report.Skipped,
		Uncorrelated:  report.UncorrelatedCommits,
		GeneratedAt:   time.Now().Format("2006-01-02 15:04"),
	}
	d.SkippedTotal = report.Skipped.MalformedTimestamps + report.Skipped.ImplausibleTimes + report.Skipped.Duplicates

	for _, p := range report.Projects {
		services := ""
		for i, s := range p.Services {
			if i > 0 {
				services += ", "
			}
			services += s
		}
		d.Projects = append(d.Projects, dashboardProject{
			Name:     p.Project,
			Color:    projectColor(p.Project),
			Hours:    fmt.Sprintf("%.1f", p.Hours),
			Sessions: p.Sessions,
			Services: services,
			Commits:  p.Commits,
		})
	}

	maxHours := 0.0
	for _, day := range report.Days {
		if day.Hours > maxHours {
			maxHours = day.Hours
		}
	}
	for _, day := range report.Days {
		width := 0
		if maxHours > 0 {
			width = int(day.Hours / maxHours * 100)
		}
		dd := dashboardDay{
			Label:    dayLabel(day.Date),
			Hours:    fmt.Sprintf("%.1f", day.Hours),
			BarWidth: width,
		}
		for _, s := range day.Sessions {
			hashes := ""
			for i, c := range s.Commits {
				if i > 0 {
					hashes += ", "
				}
				hashes += c.Hash
			}
			dd.Sessions = append(dd.Sessions, dashboardSession{
				Start:   s.Start.Format("15:04"),
				End:     s.End.Format("15:04"),
				Project: s.Project,
				Color:   projectColor(s.Project),
				Service: s.Service.String(),
				Hours:   fmt.Sprintf("%.1f", s.Hours()),
				Commits: hashes,
			})
		}
		d.Days = append(d.Days, dd)
	}
	return d
}

func dayLabel(date string) string {
	if parsed, err := time.Parse("2006-01-02", date); err == nil {
		return parsed.Format("Monday, January 2, 2006")
	}
	return date
}

// projectColor derives a stable per-project accent color. The Unknown
// bucket is always gray so unattributed time reads as such at a glance.
// The value is generated entirely here, never from input, so it is safe
// to mark as trusted CSS.
func projectColor(project string) template.CSS {
	if project == domain.UnknownProject {
		return "#95a5a6"
	}
	h := fnv.New32a()
	h.Write([]byte(project))
	return template.CSS(fmt.Sprintf("hsl(%d, 70%%, 50%%)", h.Sum32()%360))
}

var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>devtime report {{.From}} to {{.To}}</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; margin: 0; background: #f5f7fa; color: #2c3e50; }
.container { max-width: 1000px; margin: 0 auto; padding: 20px; }
h1 { margin-bottom: 10px; }
.range { color: #7f8c8d; margin-bottom: 30px; }
.stats { display: grid; grid-template-columns: repeat(auto-fit, minmax(200px, 1fr)); gap: 20px; margin-bottom: 30px; }
.stat-card { background: white; padding: 25px; border-radius: 10px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); text-align: center; }
.stat-value { font-size: 2.5em; font-weight: bold; color: #3498db; }
.stat-label { color: #7f8c8d; margin-top: 10px; }
.panel { background: white; padding: 25px; border-radius: 10px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); margin-bottom: 20px; }
.project-card { background: #f8f9fa; padding: 15px; border-radius: 8px; margin-bottom: 10px; border-left: 4px solid #3498db; }
.project-name { font-weight: bold; margin-bottom: 6px; }
.project-stats { font-size: 0.9em; color: #666; }
.day { margin-bottom: 20px; }
.day-label { font-weight: bold; margin-bottom: 6px; }
.bar-track { background: #ecf0f1; border-radius: 4px; height: 14px; margin-bottom: 8px; }
.bar { background: #3498db; border-radius: 4px; height: 14px; }
.session { font-size: 0.9em; color: #444; padding: 2px 0; }
.dot { display: inline-block; width: 10px; height: 10px; border-radius: 50%; margin-right: 6px; }
.service { color: #7f8c8d; }
.commits { color: #27ae60; }
.footer { text-align: center; color: #999; margin-top: 30px; font-size: 0.9em; }
</style>
</head>
<body>
<div class="container">
<h1>Time tracking report</h1>
<div class="range">{{.From}} to {{.To}}</div>

<div class="stats">
<div class="stat-card"><div class="stat-value">{{.TotalHours}}</div><div class="stat-label">Total hours</div></div>
<div class="stat-card"><div class="stat-value">{{.TotalSessions}}</div><div class="stat-label">Sessions</div></div>
<div class="stat-card"><div class="stat-value">{{.ProjectCount}}</div><div class="stat-label">Projects</div></div>
</div>

<div class="panel">
<h2>By project</h2>
{{range .Projects}}<div class="project-card" style="border-left-color: {{.Color}}">
<div class="project-name">{{.Name}}</div>
<div class="project-stats">{{.Hours}} hours &middot; {{.Sessions}} sessions &middot; {{.Services}}{{if .Commits}} &middot; {{.Commits}} commits{{end}}</div>
</div>
{{end}}</div>

<div class="panel">
<h2>Daily breakdown</h2>
{{range .Days}}<div class="day">
<div class="day-label">{{.Label}} &mdash; {{.Hours}} hours</div>
<div class="bar-track"><div class="bar" style="width: {{.BarWidth}}%"></div></div>
{{range .Sessions}}<div class="session"><span class="dot" style="background: {{.Color}}"></span>{{.Start}} - {{.End}} &nbsp;{{.Project}} <span class="service">[{{.Service}}]</span> {{.Hours}}h{{if .Commits}} <span class="commits">({{.Commits}})</span>{{end}}</div>
{{end}}</div>
{{end}}</div>

{{if or .SkippedTotal .Uncorrelated}}<div class="panel">
{{if .SkippedTotal}}<div>Skipped: {{.Skipped.MalformedTimestamps}} malformed, {{.Skipped.ImplausibleTimes}} implausible, {{.Skipped.Duplicates}} duplicates</div>{{end}}
{{if .Uncorrelated}}<div>Uncorrelated commits: {{.Uncorrelated}}</div>{{end}}
</div>{{end}}

<div class="footer">Generated by devtime on {{.GeneratedAt}}</div>
</div>
</body>
</html>
`))

// Package report renders a reconciliation report for humans and
// machines. All presentation concerns live here: rounding of hours,
// styles, colors. The engine hands over full-precision data and is
// never aware of any of this.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"github.com/devtimehq/devtime/internal/domain"
)

// TableRenderer writes the per-project and per-service summary tables
// and the daily breakdown as styled terminal output.
type TableRenderer struct {
	w      io.Writer
	styled bool

	// MaxDays limits the daily breakdown; 0 means all days.
	MaxDays int
}

// NewTableRenderer builds a renderer for w. Styling is enabled only
// when w is a real terminal.
func NewTableRenderer(w io.Writer) *TableRenderer {
	styled := false
	if f, ok := w.(*os.File); ok {
		styled = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &TableRenderer{w: w, styled: styled, MaxDays: 7}
}

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))

func (r *TableRenderer) heading(text string) string {
	if r.styled {
		return headerStyle.Render(text)
	}
	return text
}

// Render writes the full report.
func (r *TableRenderer) Render(report *domain.Report) error {
	fmt.Fprintf(r.w, "Time tracking report  %s — %s\n",
		report.From.Format("2006-01-02"), report.To.Format("2006-01-02"))

	fmt.Fprintf(r.w, "\n%s\n", r.heading("By project"))
	if err := r.projectTable(report.Projects); err != nil {
		return err
	}

	fmt.Fprintf(r.w, "\n%s\n", r.heading("By service"))
	if err := r.serviceTable(report.Services); err != nil {
		return err
	}

	fmt.Fprintf(r.w, "\n%s\n", r.heading("Daily breakdown"))
	r.daily(report.Days)

	if c := report.Skipped; c.MalformedTimestamps+c.ImplausibleTimes+c.Duplicates > 0 {
		fmt.Fprintf(r.w, "\nSkipped: %d malformed, %d implausible, %d duplicates\n",
			c.MalformedTimestamps, c.ImplausibleTimes, c.Duplicates)
	}
	if report.UncorrelatedCommits > 0 {
		fmt.Fprintf(r.w, "Uncorrelated commits: %d\n", report.UncorrelatedCommits)
	}
	return nil
}

func (r *TableRenderer) projectTable(projects []domain.ProjectSummary) error {
	table := tablewriter.NewTable(r.w)
	table.Header("Project", "Hours", "Sessions", "Services", "Commits")
	for _, p := range projects {
		if err := table.Append([]string{
			p.Project,
			fmt.Sprintf("%.1f", p.Hours),
			fmt.Sprintf("%d", p.Sessions),
			strings.Join(p.Services, ", "),
			fmt.Sprintf("%d", p.Commits),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

func (r *TableRenderer) serviceTable(services []domain.ServiceSummary) error {
	table := tablewriter.NewTable(r.w)
	table.Header("Service", "Hours", "Sessions")
	for _, s := range services {
		if err := table.Append([]string{
			s.Service.String(),
			fmt.Sprintf("%.1f", s.Hours),
			fmt.Sprintf("%d", s.Sessions),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

func (r *TableRenderer) daily(days []domain.DaySummary) {
	if r.MaxDays > 0 && len(days) > r.MaxDays {
		days = days[:r.MaxDays]
	}
	for _, day := range days {
		date, err := time.Parse("2006-01-02", day.Date)
		label := day.Date
		if err == nil {
			label = date.Format("Monday, January 2, 2006")
		}
		fmt.Fprintf(r.w, "\n%s — %.1f hours\n", label, day.Hours)
		for _, s := range day.Sessions {
			line := fmt.Sprintf("  %s - %s  [%s] %s",
				s.Start.Format("15:04"), s.End.Format("15:04"), s.Service, s.Project)
			if len(s.Commits) > 0 {
				hashes := lo.Map(s.Commits, func(c domain.Commit, _ int) string { return c.Hash })
				line += fmt.Sprintf("  (%s)", strings.Join(hashes, ", "))
			}
			fmt.Fprintln(r.w, line)
		}
	}
}

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devtimehq/devtime/internal/engine"
	"github.com/devtimehq/devtime/internal/extract"
	"github.com/devtimehq/devtime/internal/report"
)

// ReportCmd runs the full batch: extract every configured source,
// reconcile, render.
type ReportCmd struct {
	Days int    `short:"d" default:"7" help:"Number of days to analyze, ending now"`
	From string `help:"Start date (YYYY-MM-DD), overrides --days"`
	To   string `help:"End date (YYYY-MM-DD), inclusive; defaults to now"`
}

// Run executes the report command.
func (c *ReportCmd) Run(globals *Globals) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		cancel()
	}()

	from, to, err := c.resolveRange(time.Now().UTC())
	if err != nil {
		return outputError(globals, "INVALID_RANGE", err.Error())
	}
	globals.Debug("reconciling range %s - %s", from, to)

	pooled := extract.Run(ctx, buildExtractors(globals), from, to)
	for _, w := range pooled.Warnings {
		globals.Warn("%s", w)
	}
	globals.Debug("extracted %d records, %d commits", len(pooled.Records), len(pooled.Commits))

	eng, err := engine.New(globals.Config.Analysis.Options())
	if err != nil {
		return outputError(globals, "INVALID_CONFIG", err.Error())
	}
	result := eng.Reconcile(pooled.Records, pooled.Commits, from, to)

	switch globals.Format {
	case "csv":
		return report.WriteCSV(globals.Stdout, result)
	case "json":
		return report.WriteJSON(globals.Stdout, result)
	case "html":
		return report.WriteHTML(globals.Stdout, result)
	default:
		return report.NewTableRenderer(globals.Stdout).Render(result)
	}
}

// resolveRange turns the --days / --from / --to flags into a concrete
// half-open-at-neither [from, to] range.
func (c *ReportCmd) resolveRange(now time.Time) (from, to time.Time, err error) {
	to = now
	if c.To != "" {
		day, perr := time.Parse("2006-01-02", c.To)
		if perr != nil {
			return from, to, fmt.Errorf("invalid --to date %q: %w", c.To, perr)
		}
		// Inclusive end date: extend to the end of that day.
		to = day.Add(24*time.Hour - time.Nanosecond)
	}

	if c.From != "" {
		from, err = time.Parse("2006-01-02", c.From)
		if err != nil {
			return from, to, fmt.Errorf("invalid --from date %q: %w", c.From, err)
		}
	} else {
		days := c.Days
		if days <= 0 {
			days = 7
		}
		from = to.AddDate(0, 0, -days)
	}

	if to.Before(from) {
		return from, to, fmt.Errorf("range end %s precedes start %s", to.Format("2006-01-02"), from.Format("2006-01-02"))
	}
	return from, to, nil
}

// buildExtractors wires the configured sources. Unavailable sources are
// reported by Run as warnings, not errors.
func buildExtractors(globals *Globals) []extract.Extractor {
	src := globals.Config.Sources
	return []extract.Extractor{
		extract.NewAgentLog(src.AgentLogDir),
		extract.NewEditorState(src.EditorStateDir),
		extract.NewGit(src.Repos),
	}
}

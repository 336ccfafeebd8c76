package cli

import (
	"encoding/json"
	"fmt"
)

// ConfigCmd groups configuration subcommands.
type ConfigCmd struct {
	Show ConfigShowCmd `cmd:"" default:"1" help:"Print the effective configuration"`
}

// ConfigShowCmd prints the effective configuration after defaults, file
// and environment have been merged.
type ConfigShowCmd struct{}

// Run executes the config show command.
func (c *ConfigShowCmd) Run(globals *Globals) error {
	cfg := globals.Config

	if globals.Format == "json" {
		enc := json.NewEncoder(globals.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	}

	fmt.Fprintln(globals.Stdout, "Current Configuration:")
	fmt.Fprintf(globals.Stdout, "  format: %s\n", cfg.Format)
	fmt.Fprintf(globals.Stdout, "  quiet: %t\n", cfg.Quiet)
	fmt.Fprintf(globals.Stdout, "  verbose: %t\n", cfg.Verbose)
	fmt.Fprintln(globals.Stdout, "Sources:")
	fmt.Fprintf(globals.Stdout, "  agent_log_dir: %s\n", cfg.Sources.AgentLogDir)
	fmt.Fprintf(globals.Stdout, "  editor_state_dir: %s\n", cfg.Sources.EditorStateDir)
	for name, path := range cfg.Sources.Repos {
		fmt.Fprintf(globals.Stdout, "  repo %s: %s\n", name, path)
	}
	fmt.Fprintln(globals.Stdout, "Analysis:")
	fmt.Fprintf(globals.Stdout, "  dedup_epsilon_seconds: %d\n", cfg.Analysis.DedupEpsilonSeconds)
	fmt.Fprintf(globals.Stdout, "  point_event_width_minutes: %d\n", cfg.Analysis.PointEventWidthMinutes)
	fmt.Fprintf(globals.Stdout, "  merge_threshold_minutes: %d\n", cfg.Analysis.MergeThresholdMinutes)
	fmt.Fprintf(globals.Stdout, "  commit_burst_window_minutes: %d\n", cfg.Analysis.CommitBurstWindowMinutes)
	fmt.Fprintf(globals.Stdout, "  commit_duration_minutes: %d\n", cfg.Analysis.CommitDurationMinutes)
	fmt.Fprintf(globals.Stdout, "  commit_lookback_hours: %d\n", cfg.Analysis.CommitLookbackHours)
	fmt.Fprintf(globals.Stdout, "  commit_lookforward_hours: %d\n", cfg.Analysis.CommitLookforwardHours)
	return nil
}

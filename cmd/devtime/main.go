package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/devtimehq/devtime/internal/cli"
	"github.com/devtimehq/devtime/internal/config"
)

const quickStart = `devtime - reconcile coding activity into a time tracking report

Quick start:
  devtime sources                     Check which activity sources exist
  devtime report                      Report on the last 7 days
  devtime report --days 30            Report on the last 30 days
  devtime report --format json        Machine-readable output

For help:
  devtime --help                      All commands and flags
`

func main() {
	// Show quick start if no args provided
	if len(os.Args) == 1 {
		fmt.Print(quickStart)
		return
	}

	// Load configuration from files/environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
	}

	var c cli.CLI

	// Apply config defaults before parsing; CLI flags override them.
	vars := kong.Vars{
		"config_format": cfg.Format,
	}

	ctx := kong.Parse(&c,
		kong.Name("devtime"),
		kong.Description("devtime: reconstruct a coding-activity timeline from agent logs, editor state and git history"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		vars,
	)

	globals := cli.NewGlobalsWithConfig(&c, cfg)
	if err := ctx.Run(globals); err != nil {
		os.Exit(1)
	}
}

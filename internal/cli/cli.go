package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/devtimehq/devtime/internal/config"
)

// CLI is the top-level command structure parsed by kong.
type CLI struct {
	Format  string `help:"Output format (${enum})" enum:"table,csv,json,html" default:"${config_format}"`
	Quiet   bool   `short:"q" help:"Suppress warnings and progress output"`
	Verbose bool   `short:"v" help:"Enable verbose debug logging"`

	Report  ReportCmd  `cmd:"" help:"Reconcile activity sources into a time tracking report"`
	Sources SourcesCmd `cmd:"" help:"List configured activity sources and their availability"`
	Config  ConfigCmd  `cmd:"" help:"Show effective configuration"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// Globals carries shared flags, streams and configuration into command
// Run methods. Stdout/Stderr are injected so tests can capture output.
type Globals struct {
	Format  string
	Quiet   bool
	Verbose bool
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *config.Config
	logger  *debugLogger
}

// NewGlobalsWithConfig builds Globals from parsed flags with config
// fallbacks applied.
func NewGlobalsWithConfig(c *CLI, cfg *config.Config) *Globals {
	g := &Globals{
		Format:  c.Format,
		Quiet:   c.Quiet || cfg.Quiet,
		Verbose: c.Verbose || cfg.Verbose,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  cfg,
	}
	g.logger = newDebugLogger(g)
	return g
}

// Debug logs a debug message when --verbose is set.
func (g *Globals) Debug(format string, args ...interface{}) {
	if g.logger == nil {
		return
	}
	g.logger.Debug(format, args...)
}

// Warn prints a non-fatal warning unless --quiet is set.
func (g *Globals) Warn(format string, args ...interface{}) {
	if g.Quiet {
		return
	}
	fmt.Fprintf(g.Stderr, "warning: "+format+"\n", args...)
}

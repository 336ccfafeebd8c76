package cli

import (
	"encoding/json"
	"fmt"
	"runtime"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// VersionCmd prints version information.
type VersionCmd struct{}

// Run executes the version command.
func (c *VersionCmd) Run(globals *Globals) error {
	if globals.Format == "json" {
		return json.NewEncoder(globals.Stdout).Encode(map[string]string{
			"version": Version,
			"go":      runtime.Version(),
		})
	}
	fmt.Fprintf(globals.Stdout, "devtime %s (%s)\n", Version, runtime.Version())
	return nil
}

package cli

import (
	"encoding/json"
	"fmt"
)

// SourcesCmd lists the configured activity sources and whether their
// data is present on this machine.
type SourcesCmd struct{}

// Run executes the sources command.
func (c *SourcesCmd) Run(globals *Globals) error {
	type sourceStatus struct {
		Name      string `json:"name"`
		Available bool   `json:"available"`
	}

	var statuses []sourceStatus
	for _, ex := range buildExtractors(globals) {
		statuses = append(statuses, sourceStatus{Name: ex.Name(), Available: ex.Available()})
	}

	if globals.Format == "json" {
		return json.NewEncoder(globals.Stdout).Encode(statuses)
	}

	for _, s := range statuses {
		state := "available"
		if !s.Available {
			state = "not available"
		}
		fmt.Fprintf(globals.Stdout, "%-14s %s\n", s.Name, state)
	}
	return nil
}

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
)

// outputError normalizes error emission across commands: the json
// format gets a machine-readable line, everything else a readable
// message on stderr.
func outputError(globals *Globals, code, message string) error {
	if globals != nil && globals.Format == "json" {
		json.NewEncoder(globals.Stdout).Encode(map[string]string{
			"error":   code,
			"message": message,
		})
	} else if globals != nil {
		fmt.Fprintf(globals.Stderr, "Error [%s]: %s\n", code, message)
	}
	return errors.New(message)
}

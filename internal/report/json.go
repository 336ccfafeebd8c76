package report

import (
	"encoding/json"
	"io"

	"github.com/devtimehq/devtime/internal/domain"
)

// WriteJSON emits the whole report, sessions and roll-ups included, as
// indented JSON for downstream tooling.
func WriteJSON(w io.Writer, report *domain.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

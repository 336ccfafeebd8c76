package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/devtimehq/devtime/internal/domain"
)

// WriteCSV emits the per-project summary as CSV rows, one per project,
// in the report's order (hours descending). The Unknown bucket is a row
// like any other so totals stay auditable.
func WriteCSV(w io.Writer, report *domain.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"project", "hours", "sessions", "services", "commits"}); err != nil {
		return err
	}
	for _, p := range report.Projects {
		row := []string{
			p.Project,
			fmt.Sprintf("%.2f", p.Hours),
			fmt.Sprintf("%d", p.Sessions),
			strings.Join(p.Services, ";"),
			fmt.Sprintf("%d", p.Commits),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

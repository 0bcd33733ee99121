package report

import (
	"fmt"
	"io"

	"github.com/JonMunkholm/dqaudit/internal/core"
)

// PrintLoaded writes the record count line shown right after loading.
func PrintLoaded(w io.Writer, count int) {
	fmt.Fprintf(w, "Loaded records: %d\n", count)
}

// PrintSummary writes the totals and the per-severity breakdown.
func PrintSummary(w io.Writer, s core.Summary) {
	fmt.Fprintf(w, "Total records: %d\n", s.TotalRecords)
	fmt.Fprintf(w, "Total issues: %d\n", s.TotalIssues)
	fmt.Fprintln(w, "Severity breakdown:")
	for _, sev := range core.Severities {
		fmt.Fprintf(w, "  %s: %d\n", sev, s.SeverityCounts.Get(sev))
	}
}

package core

import (
	"fmt"
	"strings"
)

// severityRank orders the levels. Anything else ranks 0.
var severityRank = map[Severity]int{
	SeverityInfo:    1,
	SeverityWarning: 2,
	SeverityError:   3,
}

// Rank returns the ordinal rank of s. An empty severity is treated as
// warning; unknown values rank 0.
func (s Severity) Rank() int {
	if s == "" {
		return severityRank[SeverityWarning]
	}
	return severityRank[s]
}

// Valid reports whether s is one of the three known levels.
func (s Severity) Valid() bool {
	_, ok := severityRank[s]
	return ok
}

// ParseSeverity parses a threshold name, case-insensitively.
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(strings.ToLower(strings.TrimSpace(s)))
	if !sev.Valid() {
		return "", fmt.Errorf("invalid severity %q: must be one of info, warning, error", s)
	}
	return sev, nil
}

// FilterBySeverity keeps issues whose rank is at least the threshold's.
// Order and row numbers are preserved.
func FilterBySeverity(issues []Issue, threshold Severity) []Issue {
	min := threshold.Rank()
	out := []Issue{}
	for _, issue := range issues {
		if issue.Severity.Rank() >= min {
			out = append(out, issue)
		}
	}
	return out
}

// CountBySeverity tallies issues per level. Unknown or unset severities
// count as warning.
func CountBySeverity(issues []Issue) SeverityCounts {
	var c SeverityCounts
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityInfo:
			c.Info++
		case SeverityError:
			c.Error++
		default:
			c.Warning++
		}
	}
	return c
}

// BuildSummary builds the run summary. all is every issue produced;
// reported is the threshold-filtered list that gets exported.
func BuildSummary(recordCount int, all, reported []Issue) Summary {
	return Summary{
		TotalRecords:   recordCount,
		TotalIssues:    len(all),
		SeverityCounts: CountBySeverity(reported),
	}
}

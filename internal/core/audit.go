package core

import (
	"log/slog"
	"time"
)

// Options controls one audit run.
type Options struct {
	Threshold     Severity     // Minimum severity that is reported and blocks
	FailOnWarning bool         // Blocking issues exit with WARNING instead of ISSUES_FOUND
	Today         time.Time    // Reference date for the future-date check; zero means now
	Logger        *slog.Logger // Optional; defaults to slog.Default()
}

// Result is the outcome of an audit run.
//
// AllIssues and Reported are kept apart on purpose: Summary.TotalIssues
// counts AllIssues, while the severity breakdown, the exports and the exit
// code all work from Reported.
type Result struct {
	RecordCount int
	AllIssues   []Issue // Every issue, in validator then row order
	Reported    []Issue // AllIssues filtered by Options.Threshold
	Summary     Summary
	ExitCode    ExitCode
}

// Audit runs every validator over records, aggregates the issues and
// resolves the exit code.
func Audit(records []Record, opts Options) Result {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	threshold := opts.Threshold
	if threshold == "" {
		threshold = SeverityWarning
	}
	today := opts.Today
	if today.IsZero() {
		today = time.Now()
	}

	all := RunAllChecks(records, today)
	logger.Debug("checks completed", "checks", len(Checks(today)), "issues", len(all))

	reported := FilterBySeverity(all, threshold)
	summary := BuildSummary(len(records), all, reported)
	code := ResolveExitCode(summary, reported, threshold, opts.FailOnWarning)

	logger.Info("audit completed",
		"records", summary.TotalRecords,
		"issues", summary.TotalIssues,
		"reported", len(reported),
		"threshold", threshold,
		"exit_code", int(code),
	)

	return Result{
		RecordCount: len(records),
		AllIssues:   all,
		Reported:    reported,
		Summary:     summary,
		ExitCode:    code,
	}
}

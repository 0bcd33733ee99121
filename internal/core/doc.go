// Package core provides the data-quality audit pipeline.
//
// The pipeline is linear and runs once per process:
//
//  1. [LoadRecords] reads a CSV, JSON or YAML file into [Record] values with
//     normalized (trimmed, lowercased) field names.
//  2. The validators in [Checks] scan every record independently and each
//     returns its own [Issue] slice. Field rules are ordered chains; the
//     first failing rule produces the field's only issue for that record.
//  3. [Audit] concatenates the issues, filters them by the severity
//     threshold, builds the [Summary] and resolves the [ExitCode].
//
// # Severity
//
// Levels rank info (1) < warning (2) < error (3). [FilterBySeverity] keeps
// issues at or above the threshold; [CountBySeverity] tallies levels and
// counts anything unknown as warning.
//
// # Exit Codes
//
//	0  OK              no blocking issues, or no records at all
//	5  WARNING         blocking issues and fail-on-warning set
//	10 ISSUES_FOUND    blocking issues
//	20 INPUT_ERROR     the input could not be loaded, or bad invocation
//	30 INTERNAL_ERROR  anything else
//
// # Errors
//
// Loader failures are [*InputError]; export and other runtime failures are
// [*InternalError]. [MapError] turns either into a [UserMessage] with a
// support code.
package core

// Package report renders audit results: the console summary on stdout and
// the CSV, JSON and HTML export files.
//
// Export failures are returned as *core.InternalError so the caller maps
// them to exit code 30.
package report

// Command dqaudit audits a CSV, JSON or YAML file of user records for
// data-quality defects and exits with a severity-aware status code.
//
// Exit codes:
//
//	0  OK              no blocking issues, or no records
//	5  WARNING         blocking issues with --fail-on-warning
//	10 ISSUES_FOUND    blocking issues
//	20 INPUT_ERROR     input could not be loaded, or bad invocation
//	30 INTERNAL_ERROR  anything else
package main

import "os"

func main() {
	os.Exit(int(run(os.Args[1:], os.Stdout, os.Stderr)))
}

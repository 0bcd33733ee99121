package core

// ExitCode is a process exit status.
type ExitCode int

const (
	ExitOK            ExitCode = 0  // No blocking issues, or no records at all
	ExitWarning       ExitCode = 5  // Blocking issues with fail-on-warning set
	ExitIssuesFound   ExitCode = 10 // Blocking issues
	ExitInputError    ExitCode = 20 // Input could not be loaded or the invocation was invalid
	ExitInternalError ExitCode = 30 // Any other failure
)

// String names the exit code.
func (c ExitCode) String() string {
	switch c {
	case ExitOK:
		return "OK"
	case ExitWarning:
		return "WARNING"
	case ExitIssuesFound:
		return "ISSUES_FOUND"
	case ExitInputError:
		return "INPUT_ERROR"
	case ExitInternalError:
		return "INTERNAL_ERROR"
	default:
		return "UNKNOWN"
	}
}

// ResolveExitCode maps an audit outcome to an exit code.
//
// Empty input is always OK. Otherwise the reported issues are filtered by the
// threshold again; any blocking issue yields WARNING when failOnWarning is
// set and ISSUES_FOUND when it is not.
func ResolveExitCode(summary Summary, reported []Issue, threshold Severity, failOnWarning bool) ExitCode {
	if summary.TotalRecords == 0 {
		return ExitOK
	}

	blocking := FilterBySeverity(reported, threshold)
	switch {
	case len(blocking) > 0 && failOnWarning:
		return ExitWarning
	case len(blocking) > 0:
		return ExitIssuesFound
	default:
		return ExitOK
	}
}

// ExitCodeForError classifies a failure.
func ExitCodeForError(err error) ExitCode {
	if err == nil {
		return ExitOK
	}
	if IsInputError(err) {
		return ExitInputError
	}
	return ExitInternalError
}

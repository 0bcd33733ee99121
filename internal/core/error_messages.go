package core

// # Error Codes Reference
//
// Failures are mapped to user-facing messages with a short code that can be
// quoted in bug reports. Matching is by case-insensitive substring of the
// technical error text; the first pattern wins.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File not found          Patterns: "no such file", "cannot find the file", "file does not exist"
//	FILE002 - Permission denied       Patterns: "permission denied", "access is denied"
//	FILE003 - Path is a directory     Patterns: "is a directory"
//	FILE004 - Invalid CSV             Patterns: "parse error on line", "invalid csv"
//	FILE005 - Invalid JSON            Patterns: "invalid character", "unexpected end of json", "invalid json"
//	FILE006 - Invalid YAML            Patterns: "yaml:", "invalid yaml"
//	FILE007 - Unsupported layout      Patterns: "records must be", "unsupported value"
//
// # Export Errors (EXP001-EXP099)
//
//	EXP001 - CSV export failed        Patterns: "export csv"
//	EXP002 - JSON export failed       Patterns: "export json"
//	EXP003 - HTML export failed       Patterns: "export html"
//
// # Usage Errors (USE001-USE099)
//
//	USE001 - Invalid invocation       Patterns: "required flag", "unknown flag", "invalid severity", "invalid argument"
//
// Errors wrapping fs.ErrNotExist or fs.ErrPermission map to FILE001 or
// FILE002 whatever their text, unless they are export failures. Anything
// unmatched maps to ERR000.

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// UserMessage is a user-friendly rendering of an error.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// =========================================================================
	// Export Errors (EXP001-EXP003)
	// Checked first: an export failure may wrap a file-system error.
	// =========================================================================
	{
		pattern: "export csv",
		msg: UserMessage{
			Message: "CSV report could not be written",
			Action:  "Check the --output-csv path and free disk space",
			Code:    "EXP001",
		},
	},
	{
		pattern: "export json",
		msg: UserMessage{
			Message: "JSON report could not be written",
			Action:  "Check the --output-json path and free disk space",
			Code:    "EXP002",
		},
	},
	{
		pattern: "export html",
		msg: UserMessage{
			Message: "HTML report could not be written",
			Action:  "Check the --output-html path and free disk space",
			Code:    "EXP003",
		},
	},

	// =========================================================================
	// File Errors (FILE001-FILE007)
	// =========================================================================
	{
		pattern: "no such file",
		msg: UserMessage{
			Message: "Input file not found",
			Action:  "Check the --input path",
			Code:    "FILE001",
		},
	},
	{
		pattern: "cannot find the file",
		msg: UserMessage{
			Message: "Input file not found",
			Action:  "Check the --input path",
			Code:    "FILE001",
		},
	},
	{
		pattern: "file does not exist",
		msg: UserMessage{
			Message: "Input file not found",
			Action:  "Check the --input path",
			Code:    "FILE001",
		},
	},
	{
		pattern: "permission denied",
		msg: UserMessage{
			Message: "File cannot be accessed",
			Action:  "Check file permissions",
			Code:    "FILE002",
		},
	},
	{
		pattern: "access is denied",
		msg: UserMessage{
			Message: "File cannot be accessed",
			Action:  "Check file permissions",
			Code:    "FILE002",
		},
	},
	{
		pattern: "is a directory",
		msg: UserMessage{
			Message: "Path is a directory, not a file",
			Action:  "Point --input at a CSV, JSON or YAML file",
			Code:    "FILE003",
		},
	},
	{
		pattern: "parse error on line",
		msg: UserMessage{
			Message: "File is not a valid CSV",
			Action:  "Check quoting and delimiters around the reported line",
			Code:    "FILE004",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "File is not a valid CSV",
			Action:  "Ensure the file has a header row followed by data rows",
			Code:    "FILE004",
		},
	},
	{
		pattern: "invalid character",
		msg: UserMessage{
			Message: "File is not valid JSON",
			Action:  "Validate the file with a JSON linter",
			Code:    "FILE005",
		},
	},
	{
		pattern: "unexpected end of json",
		msg: UserMessage{
			Message: "File is not valid JSON",
			Action:  "The file appears truncated",
			Code:    "FILE005",
		},
	},
	{
		pattern: "invalid json",
		msg: UserMessage{
			Message: "File is not valid JSON",
			Action:  "Validate the file with a JSON linter",
			Code:    "FILE005",
		},
	},
	{
		pattern: "yaml:",
		msg: UserMessage{
			Message: "File is not valid YAML",
			Action:  "Check indentation around the reported line",
			Code:    "FILE006",
		},
	},
	{
		pattern: "invalid yaml",
		msg: UserMessage{
			Message: "File is not valid YAML",
			Action:  "Check indentation around the reported line",
			Code:    "FILE006",
		},
	},
	{
		pattern: "records must be",
		msg: UserMessage{
			Message: "File layout is not supported",
			Action:  "Provide a list of flat objects, or an object with a \"records\" list",
			Code:    "FILE007",
		},
	},
	{
		pattern: "unsupported value",
		msg: UserMessage{
			Message: "File layout is not supported",
			Action:  "Field values must be strings, numbers, booleans or null",
			Code:    "FILE007",
		},
	},

	// =========================================================================
	// Usage Errors (USE001)
	// =========================================================================
	{
		pattern: "required flag",
		msg: UserMessage{
			Message: "Invalid command line",
			Action:  "Run with --help for usage",
			Code:    "USE001",
		},
	},
	{
		pattern: "unknown flag",
		msg: UserMessage{
			Message: "Invalid command line",
			Action:  "Run with --help for usage",
			Code:    "USE001",
		},
	},
	{
		pattern: "invalid severity",
		msg: UserMessage{
			Message: "Invalid severity threshold",
			Action:  "Use one of info, warning, error",
			Code:    "USE001",
		},
	},
	{
		pattern: "invalid argument",
		msg: UserMessage{
			Message: "Invalid command line",
			Action:  "Run with --help for usage",
			Code:    "USE001",
		},
	},
}

// inputSentinels classify input errors by cause before the text patterns.
var inputSentinels = []struct {
	target error
	code   string
}{
	{fs.ErrNotExist, "FILE001"},
	{fs.ErrPermission, "FILE002"},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Re-run with --log-level debug and report the output",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Returns the zero UserMessage for a nil error and ERR000 when nothing matches.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	// Export failures keep their EXP code even when the cause is a file error.
	var ie *InternalError
	if !errors.As(err, &ie) {
		for _, sentinel := range inputSentinels {
			if errors.Is(err, sentinel.target) {
				return messageForCode(sentinel.code)
			}
		}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// messageForCode returns the first pattern message carrying code.
func messageForCode(code string) UserMessage {
	for _, ep := range errorPatterns {
		if ep.msg.Code == code {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError formats an error as "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

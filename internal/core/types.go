package core

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Severity classifies an issue. Ordering is info < warning < error.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Severities lists every level in ascending rank order.
var Severities = []Severity{SeverityInfo, SeverityWarning, SeverityError}

// Field names read by the validators.
const (
	FieldEmail      = "email"
	FieldAge        = "age"
	FieldCountry    = "country"
	FieldSignupDate = "signup_date"
)

// ValueKind tags the payload carried by a Value.
type ValueKind int

const (
	ValueString ValueKind = iota
	ValueInt
	ValueNull
)

// Value is the offending value attached to an Issue. Most validators report
// the raw string; the age range check reports the parsed integer and the
// country check reports null when the field is absent from the record.
type Value struct {
	Kind ValueKind
	Str  string
	Int  int64
}

// StringValue wraps a raw string value.
func StringValue(s string) Value { return Value{Kind: ValueString, Str: s} }

// IntValue wraps a parsed integer value.
func IntValue(i int64) Value { return Value{Kind: ValueInt, Int: i} }

// NullValue marks a value that was absent from the record.
func NullValue() Value { return Value{Kind: ValueNull} }

// String renders the value for text outputs. Null renders as empty.
func (v Value) String() string {
	switch v.Kind {
	case ValueInt:
		return strconv.FormatInt(v.Int, 10)
	case ValueNull:
		return ""
	default:
		return v.Str
	}
}

// MarshalJSON encodes the value as a JSON string, number or null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueInt:
		return []byte(strconv.FormatInt(v.Int, 10)), nil
	case ValueNull:
		return []byte("null"), nil
	default:
		return json.Marshal(v.Str)
	}
}

// UnmarshalJSON accepts a JSON string, integer or null.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = NullValue()
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = StringValue(s)
		return nil
	}
	i, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("issue value %s: not a string, integer or null", data)
	}
	*v = IntValue(i)
	return nil
}

// Issue is one flagged defect, scoped to one field of one record.
type Issue struct {
	Row      int      `json:"row"`      // 1-based position of the source record
	Field    string   `json:"field"`    // Field that failed validation
	Value    Value    `json:"value"`    // Value that triggered the issue
	Reason   string   `json:"reason"`   // Human-readable failure description
	Severity Severity `json:"severity"` // info, warning or error
}

// NewIssue builds an issue. Severity is always explicit.
func NewIssue(row int, field string, value Value, reason string, severity Severity) Issue {
	return Issue{
		Row:      row,
		Field:    field,
		Value:    value,
		Reason:   reason,
		Severity: severity,
	}
}

// SeverityCounts tallies issues per severity level.
// Declared as a struct so the JSON key order is stable.
type SeverityCounts struct {
	Info    int `json:"info"`
	Warning int `json:"warning"`
	Error   int `json:"error"`
}

// Get returns the count for a level.
func (c SeverityCounts) Get(s Severity) int {
	switch s {
	case SeverityInfo:
		return c.Info
	case SeverityError:
		return c.Error
	default:
		return c.Warning
	}
}

// Summary describes one audit run.
type Summary struct {
	TotalRecords   int            `json:"total_records"`
	TotalIssues    int            `json:"total_issues"`    // All issues, before threshold filtering
	SeverityCounts SeverityCounts `json:"severity_counts"` // Counts over the reported issues
}

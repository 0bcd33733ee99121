package core

// rules.go implements per-field validation as an ordered chain of rules.
//
// Each rule pairs a failure predicate with the issue it produces. Rules are
// evaluated in order and the first failing rule ends the chain, so a field
// yields at most one issue per record.

import (
	"strings"
	"time"
)

// rule is one link in a field's validation chain.
type rule struct {
	reason   string
	severity Severity
	fails    func(v string) bool
	value    func(v string) Value // nil reports the input string
}

// chain is an ordered list of rules for a single field.
type chain []rule

// eval runs the chain against v and returns the first failure.
func (c chain) eval(row int, field, v string) (Issue, bool) {
	for _, r := range c {
		if !r.fails(v) {
			continue
		}
		val := StringValue(v)
		if r.value != nil {
			val = r.value(v)
		}
		return NewIssue(row, field, val, r.reason, r.severity), true
	}
	return Issue{}, false
}

func isBlank(v string) bool { return v == "" }

// splitEmail splits on the single '@'. Callers check the count first.
func splitEmail(v string) (local, domain string) {
	local, domain, _ = strings.Cut(v, "@")
	return local, domain
}

var emailChain = chain{
	{
		reason:   "email missing or empty",
		severity: SeverityWarning,
		fails:    isBlank,
	},
	{
		reason:   "missing or multiple @",
		severity: SeverityWarning,
		fails:    func(v string) bool { return strings.Count(v, "@") != 1 },
	},
	{
		reason:   "Invalid local or domain part",
		severity: SeverityWarning,
		fails: func(v string) bool {
			local, domain := splitEmail(v)
			return local == "" || domain == ""
		},
	},
	{
		reason:   "domain missing dot",
		severity: SeverityWarning,
		fails: func(v string) bool {
			_, domain := splitEmail(v)
			return !strings.Contains(domain, ".")
		},
	},
	{
		reason:   "domain starts or ends with a dot",
		severity: SeverityWarning,
		fails: func(v string) bool {
			_, domain := splitEmail(v)
			return strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".")
		},
	},
}

// Age bounds, inclusive.
const (
	MinAge = 1
	MaxAge = 120
)

var ageChain = chain{
	{
		reason:   "age missing",
		severity: SeverityWarning,
		fails:    isBlank,
	},
	{
		reason:   "age not numerical",
		severity: SeverityWarning,
		fails:    func(v string) bool { return !IsDigits(v) },
	},
	{
		reason:   "age out of range",
		severity: SeverityWarning,
		fails: func(v string) bool {
			age := ToPgInt8(v)
			return !age.Valid || age.Int64 < MinAge || age.Int64 > MaxAge
		},
		value: func(v string) Value {
			// Digit strings too long for int64 are reported verbatim.
			if age := ToPgInt8(v); age.Valid {
				return IntValue(age.Int64)
			}
			return StringValue(v)
		},
	},
}

// signupDateChain builds the chain for a run; today is fixed per run.
func signupDateChain(today time.Time) chain {
	return chain{
		{
			reason:   "signup date missing or empty",
			severity: SeverityWarning,
			fails:    isBlank,
		},
		{
			reason:   "Invalid date format",
			severity: SeverityWarning,
			fails:    func(v string) bool { return !ToPgDate(v).Valid },
		},
		{
			reason:   "signup_date is in the future",
			severity: SeverityWarning,
			fails: func(v string) bool {
				return DateAfter(ToPgDate(v).Time, today)
			},
		},
	}
}

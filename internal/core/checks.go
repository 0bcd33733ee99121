package core

// checks.go holds the field validators.
//
// Each validator scans every record and returns a fresh issue slice in row
// order. Validators never fail: malformed data always becomes an Issue, and a
// field missing from a record is read as the empty string.

import (
	"strings"
	"time"
)

// Check is one field validator in the fixed audit set.
type Check struct {
	Name  string
	Field string
	Run   func(records []Record) []Issue
}

// Checks returns the validators in the order their issues are reported.
// today anchors the signup-date future check for the whole run.
func Checks(today time.Time) []Check {
	return []Check{
		{Name: "email", Field: FieldEmail, Run: CheckEmails},
		{Name: "age", Field: FieldAge, Run: CheckAges},
		{Name: "country", Field: FieldCountry, Run: CheckCountries},
		{Name: "signup_date", Field: FieldSignupDate, Run: func(records []Record) []Issue {
			return CheckSignupDates(records, today)
		}},
	}
}

// RunAllChecks runs every validator and concatenates their issues:
// all email issues, then age, then country, then signup date.
func RunAllChecks(records []Record, today time.Time) []Issue {
	issues := []Issue{}
	for _, c := range Checks(today) {
		issues = append(issues, c.Run(records)...)
	}
	return issues
}

// CheckEmails flags missing or malformed email addresses.
func CheckEmails(records []Record) []Issue {
	return runChain(records, FieldEmail, emailChain)
}

// CheckAges flags missing, non-numeric or out-of-range ages.
func CheckAges(records []Record) []Issue {
	return runChain(records, FieldAge, ageChain)
}

// CheckSignupDates flags missing, unparseable or future signup dates.
func CheckSignupDates(records []Record, today time.Time) []Issue {
	return runChain(records, FieldSignupDate, signupDateChain(today))
}

// CheckCountries flags countries the resolver cannot map to a canonical name.
// The reported value is the raw input, untrimmed, or null if the field is absent.
func CheckCountries(records []Record) []Issue {
	issues := []Issue{}
	for i, rec := range records {
		raw, present := rec.Lookup(FieldCountry)
		if _, ok := ResolveCountry(raw); ok {
			continue
		}
		val := StringValue(raw)
		if !present {
			val = NullValue()
		}
		issues = append(issues, NewIssue(i+1, FieldCountry, val, "country missing or null", SeverityWarning))
	}
	return issues
}

// runChain evaluates a rule chain over the trimmed field of every record.
func runChain(records []Record, field string, c chain) []Issue {
	issues := []Issue{}
	for i, rec := range records {
		v := strings.TrimSpace(rec.Get(field))
		if issue, ok := c.eval(i+1, field, v); ok {
			issues = append(issues, issue)
		}
	}
	return issues
}

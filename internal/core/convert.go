package core

// convert.go turns raw cell text into typed values for the validators.
//
// The converters follow the pgtype convention: a zero value with Valid=false
// means "could not convert", so callers never deal with sentinel values or
// errors for ordinary bad input.

import (
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// signupDateLayouts are tried in order; the first successful parse wins.
// Go's two-digit year rule (69-99 → 19xx, 00-68 → 20xx) matches the
// convention users of the YY/MM/DD form expect, so no pivot is applied.
var signupDateLayouts = []string{
	"2/1/2006", // DD/MM/YYYY
	"06/1/2",   // YY/MM/DD
}

// ToPgDate parses a signup date against signupDateLayouts.
// Returns Valid=false if the value is empty or matches no layout.
func ToPgDate(s string) pgtype.Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Date{Valid: false}
	}

	for _, layout := range signupDateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return pgtype.Date{Time: t, Valid: true}
		}
	}

	return pgtype.Date{Valid: false}
}

// ToPgInt8 parses a string made only of ASCII decimal digits.
// Signs, decimal points and values that overflow int64 are invalid.
func ToPgInt8(s string) pgtype.Int8 {
	if !IsDigits(s) {
		return pgtype.Int8{Valid: false}
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return pgtype.Int8{Valid: false}
	}
	return pgtype.Int8{Int64: i, Valid: true}
}

// IsDigits reports whether s is non-empty and made only of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// CivilDate returns midnight UTC of the calendar date t falls on in its own
// location, so dates from different zones compare by calendar day.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateAfter reports whether a's calendar date is strictly after b's.
// Each date is read in its own location; time of day is ignored.
func DateAfter(a, b time.Time) bool {
	return CivilDate(a).After(CivilDate(b))
}

// CleanHeader normalizes a header cell: strips a stray byte-order mark,
// trims whitespace and lowercases.
func CleanHeader(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	return NormalizeFieldName(s)
}

// MakeHeader cleans every cell of a header row.
func MakeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = CleanHeader(h)
	}
	return out
}

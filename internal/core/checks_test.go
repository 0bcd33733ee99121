package core

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testToday = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func rec(kv ...string) Record {
	var keys, values []string
	for i := 0; i+1 < len(kv); i += 2 {
		keys = append(keys, kv[i])
		values = append(values, kv[i+1])
	}
	return NewRecord(keys, values)
}

func validRecord() Record {
	return rec(
		"email", "ada@example.com",
		"age", "36",
		"country", "FR",
		"signup_date", "10/12/2020",
	)
}

func TestCheckEmails(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		wantReason string // empty means no issue
		wantValue  string
	}{
		{name: "valid", email: "a@b.co"},
		{name: "valid trimmed", email: "  a@b.co  "},
		{name: "empty", email: "", wantReason: "email missing or empty", wantValue: ""},
		{name: "blank", email: "   ", wantReason: "email missing or empty", wantValue: ""},
		{name: "double at", email: "bob@@x.com", wantReason: "missing or multiple @", wantValue: "bob@@x.com"},
		{name: "no at", email: "bob.x.com", wantReason: "missing or multiple @", wantValue: "bob.x.com"},
		{name: "empty local", email: "@x.com", wantReason: "Invalid local or domain part", wantValue: "@x.com"},
		{name: "empty domain", email: "bob@", wantReason: "Invalid local or domain part", wantValue: "bob@"},
		{name: "no dot", email: "bob@localhost", wantReason: "domain missing dot", wantValue: "bob@localhost"},
		{name: "leading dot", email: "bob@.com", wantReason: "domain starts or ends with a dot", wantValue: "bob@.com"},
		{name: "trailing dot", email: "bob@x.com.", wantReason: "domain starts or ends with a dot", wantValue: "bob@x.com."},
		{name: "reported value is trimmed", email: " bob@localhost ", wantReason: "domain missing dot", wantValue: "bob@localhost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := CheckEmails([]Record{rec("email", tt.email)})
			if tt.wantReason == "" {
				assert.Empty(t, issues)
				return
			}
			require.Len(t, issues, 1)
			want := NewIssue(1, FieldEmail, StringValue(tt.wantValue), tt.wantReason, SeverityWarning)
			if diff := cmp.Diff(want, issues[0]); diff != "" {
				t.Errorf("issue mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheckEmails_MissingField(t *testing.T) {
	issues := CheckEmails([]Record{rec("age", "30")})
	require.Len(t, issues, 1)
	assert.Equal(t, "email missing or empty", issues[0].Reason)
	assert.Equal(t, SeverityWarning, issues[0].Severity)
}

func TestCheckAges(t *testing.T) {
	tests := []struct {
		name       string
		age        string
		wantReason string
		wantValue  Value
	}{
		{name: "valid", age: "30"},
		{name: "lower bound", age: "1"},
		{name: "upper bound", age: "120"},
		{name: "leading zeros", age: "007"},
		{name: "padded", age: " 45 "},
		{name: "empty", age: "", wantReason: "age missing", wantValue: StringValue("")},
		{name: "negative", age: "-5", wantReason: "age not numerical", wantValue: StringValue("-5")},
		{name: "decimal", age: "30.5", wantReason: "age not numerical", wantValue: StringValue("30.5")},
		{name: "words", age: "thirty", wantReason: "age not numerical", wantValue: StringValue("thirty")},
		{name: "zero", age: "0", wantReason: "age out of range", wantValue: IntValue(0)},
		{name: "too old", age: "150", wantReason: "age out of range", wantValue: IntValue(150)},
		{name: "121", age: "121", wantReason: "age out of range", wantValue: IntValue(121)},
		{name: "overflow keeps digits", age: "99999999999999999999", wantReason: "age out of range", wantValue: StringValue("99999999999999999999")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := CheckAges([]Record{rec("age", tt.age)})
			if tt.wantReason == "" {
				assert.Empty(t, issues)
				return
			}
			require.Len(t, issues, 1)
			want := NewIssue(1, FieldAge, tt.wantValue, tt.wantReason, SeverityWarning)
			if diff := cmp.Diff(want, issues[0]); diff != "" {
				t.Errorf("issue mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheckCountries(t *testing.T) {
	tests := []struct {
		name      string
		record    Record
		wantIssue bool
		wantValue Value
	}{
		{name: "UK alias", record: rec("country", "UK")},
		{name: "alpha-2", record: rec("country", "fr")},
		{name: "name", record: rec("country", "Germany")},
		{name: "unknown", record: rec("country", "Atlantis"), wantIssue: true, wantValue: StringValue("Atlantis")},
		{name: "raw value kept", record: rec("country", " Atlantis "), wantIssue: true, wantValue: StringValue(" Atlantis ")},
		{name: "empty", record: rec("country", ""), wantIssue: true, wantValue: StringValue("")},
		{name: "absent is null", record: rec("email", "a@b.co"), wantIssue: true, wantValue: NullValue()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := CheckCountries([]Record{tt.record})
			if !tt.wantIssue {
				assert.Empty(t, issues)
				return
			}
			require.Len(t, issues, 1)
			want := NewIssue(1, FieldCountry, tt.wantValue, "country missing or null", SeverityWarning)
			if diff := cmp.Diff(want, issues[0]); diff != "" {
				t.Errorf("issue mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheckSignupDates(t *testing.T) {
	tests := []struct {
		name       string
		date       string
		wantReason string
	}{
		{name: "past", date: "31/01/2020"},
		{name: "today", date: "01/06/2026"},
		{name: "two digit year", date: "20/12/31"},
		{name: "empty", date: "", wantReason: "signup date missing or empty"},
		{name: "iso rejected", date: "2020-01-31", wantReason: "Invalid date format"},
		{name: "impossible date", date: "31/02/2020", wantReason: "Invalid date format"},
		{name: "tomorrow", date: "02/06/2026", wantReason: "signup_date is in the future"},
		{name: "far future", date: "31/01/2099", wantReason: "signup_date is in the future"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := CheckSignupDates([]Record{rec("signup_date", tt.date)}, testToday)
			if tt.wantReason == "" {
				assert.Empty(t, issues)
				return
			}
			require.Len(t, issues, 1)
			assert.Equal(t, tt.wantReason, issues[0].Reason)
			assert.Equal(t, FieldSignupDate, issues[0].Field)
			assert.Equal(t, StringValue(tt.date), issues[0].Value)
		})
	}
}

func TestRunAllChecks_Ordering(t *testing.T) {
	records := []Record{
		rec("email", "bad", "age", "150", "country", "Atlantis", "signup_date", "31/01/2099"),
		validRecord(),
		rec("email", "x@y", "age", "abc", "country", "FR", "signup_date", "nope"),
	}

	issues := RunAllChecks(records, testToday)

	type key struct {
		Row   int
		Field string
	}
	var got []key
	for _, i := range issues {
		got = append(got, key{i.Row, i.Field})
	}
	want := []key{
		{1, FieldEmail}, {3, FieldEmail},
		{1, FieldAge}, {3, FieldAge},
		{1, FieldCountry},
		{1, FieldSignupDate}, {3, FieldSignupDate},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("issue order mismatch (-want +got):\n%s", diff)
	}
}

func TestRunAllChecks_Idempotent(t *testing.T) {
	records := []Record{
		rec("email", "bob@@x.com"),
		rec("age", "150"),
		validRecord(),
	}

	first := RunAllChecks(records, testToday)
	second := RunAllChecks(records, testToday)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second run differs (-first +second):\n%s", diff)
	}
}

func TestRunAllChecks_ValidRecords(t *testing.T) {
	records := make([]Record, 5)
	for i := range records {
		records[i] = validRecord()
	}
	assert.Empty(t, RunAllChecks(records, testToday))
}

func TestRunAllChecks_NoRecords(t *testing.T) {
	issues := RunAllChecks(nil, testToday)
	assert.NotNil(t, issues)
	assert.Empty(t, issues)
}

func TestScenarios(t *testing.T) {
	t.Run("double at", func(t *testing.T) {
		issues := CheckEmails([]Record{rec("email", "bob@@x.com")})
		require.Len(t, issues, 1)
		assert.Equal(t, SeverityWarning, issues[0].Severity)
		assert.Equal(t, "missing or multiple @", issues[0].Reason)
	})

	t.Run("age out of range is an integer", func(t *testing.T) {
		issues := CheckAges([]Record{rec("age", "150")})
		require.Len(t, issues, 1)
		assert.Equal(t, IntValue(150), issues[0].Value)
	})

	t.Run("UK resolves, Atlantis does not", func(t *testing.T) {
		issues := CheckCountries([]Record{rec("country", "UK"), rec("country", "Atlantis")})
		require.Len(t, issues, 1)
		assert.Equal(t, 2, issues[0].Row)
	})

	t.Run("future date", func(t *testing.T) {
		issues := CheckSignupDates([]Record{rec("signup_date", "31/01/2099")}, testToday)
		require.Len(t, issues, 1)
		assert.Equal(t, "signup_date is in the future", issues[0].Reason)
	})
}

package core

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatten turns records into comparable key/value pairs in load order.
func flatten(records []Record) [][][2]string {
	out := make([][][2]string, 0, len(records))
	for _, r := range records {
		var pairs [][2]string
		for _, k := range r.Keys() {
			pairs = append(pairs, [2]string{k, r.Get(k)})
		}
		out = append(out, pairs)
	}
	return out
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]Format{
		"users.csv":  FormatCSV,
		"users.JSON": FormatJSON,
		"users.yaml": FormatYAML,
		"users.yml":  FormatYAML,
		"users.txt":  FormatCSV,
		"users":      FormatCSV,
	}
	for path, want := range tests {
		assert.Equal(t, want, DetectFormat(path), path)
	}
}

func TestReadCSVRecords(t *testing.T) {
	input := " Email ,AGE,country\n" +
		"a@b.co,30,FR\n" +
		"\n" +
		"c@d.co,41\n" +
		"e@f.co,50,DE,extra\n"

	records, err := ReadCSVRecords(strings.NewReader(input))
	require.NoError(t, err)

	want := [][][2]string{
		{{"email", "a@b.co"}, {"age", "30"}, {"country", "FR"}},
		{{"email", "c@d.co"}, {"age", "41"}},
		{{"email", "e@f.co"}, {"age", "50"}, {"country", "DE"}},
	}
	if diff := cmp.Diff(want, flatten(records)); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}

	_, present := records[1].Lookup("country")
	assert.False(t, present, "short row leaves trailing field absent")
}

func TestReadCSVRecords_Empty(t *testing.T) {
	records, err := ReadCSVRecords(strings.NewReader(""))
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)

	records, err = ReadCSVRecords(strings.NewReader("email,age\n"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestReadCSVRecords_DuplicateHeader(t *testing.T) {
	records, err := ReadCSVRecords(strings.NewReader("email,age,Email\nfirst@x.co,30,second@x.co\n"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"email", "age"}, records[0].Keys())
	assert.Equal(t, "second@x.co", records[0].Get("email"))
}

func TestReadCSVRecords_Quoted(t *testing.T) {
	records, err := ReadCSVRecords(strings.NewReader("email,country\n\"a@b.co\",\"Korea, Republic of\"\n"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Korea, Republic of", records[0].Get("country"))
}

func TestLoadRecords_CSVWithBOMAndBadBytes(t *testing.T) {
	content := "\ufeffemail,name\n" + "a@b.co,Zo" + string([]byte{0xEB}) + "\n"
	path := writeFile(t, "users.csv", content)

	records, err := LoadRecords(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"email", "name"}, records[0].Keys())
	assert.Equal(t, "Zo?", records[0].Get("name"))
}

func TestReadJSONRecords(t *testing.T) {
	input := `[
		{"Email": "a@b.co", "age": 30, "country": null, "vip": true, "signup_date": "01/02/2020"},
		{"age": "007", "email": "c@d.co"}
	]`

	records, err := ReadJSONRecords(strings.NewReader(input))
	require.NoError(t, err)

	want := [][][2]string{
		{{"email", "a@b.co"}, {"age", "30"}, {"vip", "true"}, {"signup_date", "01/02/2020"}},
		{{"age", "007"}, {"email", "c@d.co"}},
	}
	if diff := cmp.Diff(want, flatten(records)); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}

	_, present := records[0].Lookup("country")
	assert.False(t, present, "null leaves the field absent")
}

func TestReadJSONRecords_Wrapped(t *testing.T) {
	records, err := ReadJSONRecords(strings.NewReader(`{"records": [{"email": "a@b.co"}]}`))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "a@b.co", records[0].Get("email"))
}

func TestReadJSONRecords_NumberLiteral(t *testing.T) {
	records, err := ReadJSONRecords(strings.NewReader(`[{"age": 30.0}, {"age": 1e2}]`))
	require.NoError(t, err)
	assert.Equal(t, "30.0", records[0].Get("age"))
	assert.Equal(t, "1e2", records[1].Get("age"))
}

func TestReadJSONRecords_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"syntax", `[{"email": }]`, "invalid character"},
		{"truncated", `[{`, "unexpected end of JSON input"},
		{"scalar top level", `"hello"`, "records must be a list"},
		{"object without records", `{"users": []}`, "records must be a list"},
		{"non-object item", `[1, 2]`, "records must be objects"},
		{"nested value", `[{"email": {"x": 1}}]`, "unsupported value"},
		{"nested list", `[{"tags": ["a"]}]`, "unsupported value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSONRecords(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestReadJSONRecords_Empty(t *testing.T) {
	records, err := ReadJSONRecords(strings.NewReader("  "))
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = ReadJSONRecords(strings.NewReader("[]"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestReadYAMLRecords(t *testing.T) {
	input := `
records:
  - email: a@b.co
    age: 030
    country: &home FR
  - email: c@d.co
    age: ~
    country: *home
    signup_date: 01/02/2020
`
	records, err := ReadYAMLRecords(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "030", records[0].Get("age"), "scalars keep their literal text")
	_, present := records[1].Lookup("age")
	assert.False(t, present, "null leaves the field absent")
	assert.Equal(t, "01/02/2020", records[1].Get("signup_date"))
	assert.Equal(t, "FR", records[1].Get("country"), "aliases resolve to their anchor")
}

func TestReadYAMLRecords_Sequence(t *testing.T) {
	records, err := ReadYAMLRecords(strings.NewReader("- email: a@b.co\n  vip: true\n"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "true", records[0].Get("vip"))
}

func TestReadYAMLRecords_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"syntax", "- email: [a\n", "yaml:"},
		{"scalar", "hello\n", "records must be a list"},
		{"scalar items", "- a\n- b\n", "records must be mappings"},
		{"nested value", "- tags: [a, b]\n", "unsupported value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadYAMLRecords(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadRecords_FormatsAgree(t *testing.T) {
	csvPath := writeFile(t, "u.csv", "email,age,country,signup_date\na@b.co,30,FR,01/02/2020\nbad,abc,Atlantis,\n")
	jsonPath := writeFile(t, "u.json", `[
		{"email": "a@b.co", "age": 30, "country": "FR", "signup_date": "01/02/2020"},
		{"email": "bad", "age": "abc", "country": "Atlantis", "signup_date": ""}
	]`)
	yamlPath := writeFile(t, "u.yaml", `- email: a@b.co
  age: 30
  country: FR
  signup_date: 01/02/2020
- email: bad
  age: abc
  country: Atlantis
  signup_date: ""
`)

	fromCSV, err := LoadRecords(csvPath)
	require.NoError(t, err)
	fromJSON, err := LoadRecords(jsonPath)
	require.NoError(t, err)
	fromYAML, err := LoadRecords(yamlPath)
	require.NoError(t, err)

	if diff := cmp.Diff(flatten(fromCSV), flatten(fromJSON)); diff != "" {
		t.Errorf("json differs from csv (-csv +json):\n%s", diff)
	}
	if diff := cmp.Diff(flatten(fromCSV), flatten(fromYAML)); diff != "" {
		t.Errorf("yaml differs from csv (-csv +yaml):\n%s", diff)
	}
}

func TestLoadRecords_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing.csv")
		_, err := LoadRecords(path)
		require.Error(t, err)
		assert.True(t, IsInputError(err))
		assert.True(t, errors.Is(err, fs.ErrNotExist))
		assert.Equal(t, ExitInputError, ExitCodeForError(err))
	})

	t.Run("directory", func(t *testing.T) {
		_, err := LoadRecords(t.TempDir())
		require.Error(t, err)
		assert.True(t, IsInputError(err))
	})

	t.Run("bad json", func(t *testing.T) {
		path := writeFile(t, "bad.json", "[{")
		_, err := LoadRecords(path)
		require.Error(t, err)

		var ie *InputError
		require.True(t, errors.As(err, &ie))
		assert.Equal(t, path, ie.Path)
	})
}

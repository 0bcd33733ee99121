package core

// loader.go reads an input file into records.
//
// The format follows the file extension: .json and .yaml/.yml are decoded as
// structured documents, anything else is read as a delimited file with a
// header row. Every failure is returned as an *InputError.

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies an input file layout.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat picks the input format from the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatCSV
	}
}

// LoadRecords reads path into records. The file is closed before returning.
func LoadRecords(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NewInputError(path, err)
	}
	defer f.Close()

	in := WrapInput(f)
	format := DetectFormat(path)

	var records []Record
	switch format {
	case FormatJSON:
		records, err = ReadJSONRecords(in)
	case FormatYAML:
		records, err = ReadYAMLRecords(in)
	default:
		records, err = ReadCSVRecords(in)
	}
	if err != nil {
		return nil, NewInputError(path, err)
	}

	var fields []string
	if len(records) > 0 {
		fields = records[0].Keys()
	}
	slog.Debug("input loaded",
		"path", path,
		"format", format,
		"bytes", in.BytesRead,
		"records", len(records),
		"fields", fields,
	)
	return records, nil
}

// ReadCSVRecords reads a header row followed by data rows.
//
// Blank lines are skipped. A row shorter than the header leaves its trailing
// fields absent; cells past the header are dropped. A file with no header
// yields no records.
func ReadCSVRecords(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, err
	}
	header = MakeHeader(header)

	records := []Record{}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) > len(header) {
			line, _ := cr.FieldPos(0)
			slog.Debug("dropping cells beyond header", "line", line, "extra", len(row)-len(header))
			row = row[:len(header)]
		}
		records = append(records, NewRecord(header[:len(row)], row))
	}
	return records, nil
}

// ReadJSONRecords decodes a JSON array of flat objects, or an object whose
// "records" member is such an array. Key order is preserved.
func ReadJSONRecords(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []Record{}, nil
	}

	var items []json.RawMessage
	if data[0] == '{' {
		var wrapper struct {
			Records *[]json.RawMessage `json:"records"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, err
		}
		if wrapper.Records == nil {
			return nil, errors.New(`records must be a list or an object with a "records" list`)
		}
		items = *wrapper.Records
	} else if err := json.Unmarshal(data, &items); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, errors.New(`records must be a list or an object with a "records" list`)
		}
		return nil, err
	}

	records := make([]Record, 0, len(items))
	for i, item := range items {
		rec, err := decodeJSONObject(item)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// decodeJSONObject walks one object's tokens so field order survives.
func decodeJSONObject(raw json.RawMessage) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return Record{}, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return Record{}, errors.New("records must be objects")
	}

	var keys, values []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Record{}, err
		}
		key, _ := tok.(string)

		tok, err = dec.Token()
		if err != nil {
			return Record{}, err
		}
		var val string
		switch v := tok.(type) {
		case nil:
			continue
		case string:
			val = v
		case json.Number:
			val = v.String()
		case bool:
			val = fmt.Sprintf("%t", v)
		default:
			return Record{}, fmt.Errorf("field %q: unsupported value (nested %v)", key, v)
		}
		keys = append(keys, key)
		values = append(values, val)
	}
	return NewRecord(keys, values), nil
}

// ReadYAMLRecords decodes a YAML sequence of mappings, or a mapping whose
// "records" key holds one. Scalars keep their literal text, so "007" stays
// "007"; null scalars leave the field absent.
func ReadYAMLRecords(r io.Reader) ([]Record, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return []Record{}, nil
		}
		return nil, err
	}

	root := resolveAlias(&doc)
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = resolveAlias(root.Content[0])
	}
	if root.Kind == yaml.MappingNode {
		root = yamlMapValue(root, "records")
	}
	if root == nil || root.Kind != yaml.SequenceNode {
		return nil, errors.New(`records must be a list or a mapping with a "records" list`)
	}

	records := make([]Record, 0, len(root.Content))
	for i, item := range root.Content {
		item = resolveAlias(item)
		if item.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("record %d: records must be mappings", i+1)
		}
		var keys, values []string
		for j := 0; j+1 < len(item.Content); j += 2 {
			key := item.Content[j].Value
			val := resolveAlias(item.Content[j+1])
			if val.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("record %d: field %q: unsupported value", i+1, key)
			}
			if val.Tag == "!!null" {
				continue
			}
			keys = append(keys, key)
			values = append(values, val.Value)
		}
		records = append(records, NewRecord(keys, values))
	}
	return records, nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func yamlMapValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return resolveAlias(m.Content[i+1])
		}
	}
	return nil
}

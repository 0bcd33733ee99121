package core

import "strings"

// Record is one loaded row: an ordered mapping from normalized field name to
// raw string value. Records are immutable once built.
type Record struct {
	keys   []string
	values map[string]string
}

// NewRecord builds a record from parallel key and value slices.
// Keys are normalized with NormalizeFieldName. A repeated key keeps the
// position of its first occurrence and the value of its last.
func NewRecord(keys, values []string) Record {
	r := Record{
		keys:   make([]string, 0, len(keys)),
		values: make(map[string]string, len(keys)),
	}
	for i, k := range keys {
		if i >= len(values) {
			break
		}
		r.set(NormalizeFieldName(k), values[i])
	}
	return r
}

func (r *Record) set(key, value string) {
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value for field, or "" when the field is absent.
func (r Record) Get(field string) string {
	return r.values[NormalizeFieldName(field)]
}

// Lookup returns the value for field and whether the field is present.
func (r Record) Lookup(field string) (string, bool) {
	v, ok := r.values[NormalizeFieldName(field)]
	return v, ok
}

// Keys returns the field names in load order.
func (r Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// NormalizeFieldName trims and lowercases a field name.
func NormalizeFieldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ABOUTME: Record type for rows returned by the remote record store
// ABOUTME: Provides tolerant typed accessors over schema-less field maps
package store

import (
	"fmt"
	"strconv"
)

// Record is a single row from the remote store, keyed by storage field name.
// Values are whatever the JSON decoder produced (string, float64, bool, nil).
type Record map[string]any

// String returns the field as a string, or "" when absent or non-string.
func (r Record) String(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Int returns the field coerced to an int, or 0 when absent or unparseable.
func (r Record) Int(key string) int {
	switch v := r[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// Float returns the field coerced to a float64, or 0 when absent or unparseable.
func (r Record) Float(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// ID returns the record's Id field.
func (r Record) ID() int {
	return r.Int("Id")
}

// Has reports whether the field is present with a non-nil value.
func (r Record) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

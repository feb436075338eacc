// ABOUTME: Entity schema descriptors and field normalization
// ABOUTME: Resolves caller aliases into canonical storage fields with defaults
package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/apexcrm/store"
)

// Kind describes how a resolved value is coerced before persisting.
type Kind int

const (
	// KindText passes strings through unchanged.
	KindText Kind = iota
	// KindNumber coerces to a number (monetary values, probabilities).
	KindNumber
	// KindReference coerces to an integer foreign key; nil and "" mean
	// "no reference" and persist as explicit null, never as 0 or "".
	KindReference
	// KindDate passes date strings through; absence defaults per field.
	KindDate
)

// defaultMode selects what happens when neither the canonical name nor any
// alias carries a value.
type defaultMode int

const (
	modeOmit defaultMode = iota
	modeValue
	modeNull
	modeNow
)

// Default describes the absent-value behavior for one operation.
type Default struct {
	mode  defaultMode
	value any
}

// Omit drops the field from the payload entirely.
func Omit() Default { return Default{mode: modeOmit} }

// Value substitutes a fixed default.
func Value(v any) Default { return Default{mode: modeValue, value: v} }

// Null persists an explicit null.
func Null() Default { return Default{mode: modeNull} }

// Now substitutes the call-time timestamp (RFC 3339, UTC).
func Now() Default { return Default{mode: modeNow} }

// FieldSpec declares one writable canonical field.
type FieldSpec struct {
	// Name is the canonical storage key.
	Name string
	// Aliases are accepted caller keys, resolved in order after Name.
	Aliases []string
	Kind    Kind
	// Create/Update describe defaulting when no value is supplied.
	Create Default
	Update Default
	// Fixed fields never read caller input; the Default always applies.
	// Used for creation/activity timestamps the caller must not control.
	Fixed bool
}

// Schema is everything entity-specific: the five concrete entities are pure
// configuration over this type.
type Schema struct {
	// Table is the remote table name.
	Table string
	// Projection is the exact field list requested on reads.
	Projection []string
	// Fields are the writable fields in payload order.
	Fields []FieldSpec
	// DeriveName computes the record's Name from the normalized payload and
	// the raw caller input. Empty results omit the Name field.
	DeriveName func(data, normalized store.Record) string
}

// Op distinguishes create from update normalization.
type Op int

const (
	OpCreate Op = iota
	OpUpdate
)

// Normalize maps caller-supplied data onto canonical storage fields.
// Canonical names win over aliases; absent values follow each field's
// per-operation default. The result never contains alias keys.
func (s *Schema) Normalize(data store.Record, op Op) store.Record {
	out := store.Record{}

	for _, f := range s.Fields {
		d := f.Create
		if op == OpUpdate {
			d = f.Update
		}

		if !f.Fixed {
			if v, ok := resolve(data, f); ok {
				out[f.Name] = coerce(v, f.Kind)
				continue
			}
		}

		switch d.mode {
		case modeOmit:
			// field stays out of the payload
		case modeValue:
			out[f.Name] = d.value
		case modeNull:
			out[f.Name] = nil
		case modeNow:
			out[f.Name] = time.Now().UTC().Format(time.RFC3339)
		}
	}

	if s.DeriveName != nil {
		if name := s.DeriveName(data, out); name != "" {
			out["Name"] = name
		}
	}

	return out
}

// resolve finds the first present value among the canonical name and aliases.
// A key is present when it exists with a non-nil, non-empty-string value;
// numeric zero counts as present.
func resolve(data store.Record, f FieldSpec) (any, bool) {
	keys := append([]string{f.Name}, f.Aliases...)
	for _, key := range keys {
		v, ok := data[key]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && s == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

func coerce(v any, kind Kind) any {
	switch kind {
	case KindNumber:
		return toNumber(v)
	case KindReference:
		return toInt(v)
	default:
		return toString(v)
	}
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		r := store.Record{"v": v}
		return r.String("v")
	}
}

func toNumber(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func toInt(v any) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case int:
		return t
	case int64:
		return int(t)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

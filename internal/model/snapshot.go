// Package model defines the core data structures for the backoffice
// classification engine.
package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/marune/backoffice/internal/temporal"
)

// EntityKind identifies which rule table and schema apply to a record.
type EntityKind string

// Entity kinds.
const (
	KindSeller EntityKind = "seller"
	KindBuyer  EntityKind = "buyer"
	KindTask   EntityKind = "task"
)

// ParseKind converts user input into an EntityKind.
func ParseKind(s string) (EntityKind, bool) {
	switch EntityKind(strings.ToLower(strings.TrimSpace(s))) {
	case KindSeller:
		return KindSeller, true
	case KindBuyer:
		return KindBuyer, true
	case KindTask:
		return KindTask, true
	}
	return "", false
}

// FieldType declares how a schema field is normalized at the snapshot
// boundary.
type FieldType int

// Field types.
const (
	FieldText FieldType = iota
	FieldDate
	FieldNumber
	FieldBool
)

// Schema declares the named fields of one entity kind. Rule tables are
// validated against it at load time, so a rule referencing an unknown field
// is a configuration error, never a runtime nil.
type Schema struct {
	Fields         map[string]FieldType
	Kind           EntityKind
	BlankSentinels []string
}

// Has reports whether the schema declares the named field.
func (s *Schema) Has(field string) bool {
	_, ok := s.Fields[field]
	return ok
}

// isSentinel reports whether the trimmed text is a configured blank sentinel.
func (s *Schema) isSentinel(text string) bool {
	for _, v := range s.BlankSentinels {
		if text == v {
			return true
		}
	}
	return false
}

// Snapshot is the read-only, normalized view of one entity at classification
// time. Field access is normalized once here so predicates never probe
// alternative naming conventions or re-parse dates.
type Snapshot struct {
	texts  map[string]string
	dates  map[string]time.Time
	nums   map[string]float64
	bools  map[string]bool
	schema *Schema
	ID     string
	Kind   EntityKind
}

// NewSnapshot builds a snapshot from raw field values. Values are coerced
// according to the schema; anything unparseable is stored as absent. Fields
// not declared by the schema are ignored.
func NewSnapshot(schema *Schema, id string, values map[string]any) *Snapshot {
	s := &Snapshot{
		ID:     id,
		Kind:   schema.Kind,
		schema: schema,
		texts:  make(map[string]string),
		dates:  make(map[string]time.Time),
		nums:   make(map[string]float64),
		bools:  make(map[string]bool),
	}

	for name, typ := range schema.Fields {
		raw, ok := values[name]
		if !ok || raw == nil {
			continue
		}
		switch typ {
		case FieldText:
			if v, ok := raw.(string); ok {
				s.texts[name] = strings.TrimSpace(v)
			}
		case FieldDate:
			if d, ok := temporal.Normalize(raw); ok {
				s.dates[name] = d
			}
		case FieldNumber:
			if n, ok := toNumber(raw); ok {
				s.nums[name] = n
			}
		case FieldBool:
			if b, ok := toBool(raw); ok {
				s.bools[name] = b
			}
		}
	}

	return s
}

func toNumber(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return n, err == nil
	}
	return 0, false
}

func toBool(raw any) (bool, bool) {
	switch v := raw.(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return b, err == nil
	}
	return false, false
}

// Text returns the trimmed literal text of a field, empty when absent. Blank
// sentinels are returned verbatim; use Present for the blank policy.
func (s *Snapshot) Text(field string) string {
	return s.texts[field]
}

// Date returns a normalized date field.
func (s *Snapshot) Date(field string) (time.Time, bool) {
	d, ok := s.dates[field]
	return d, ok
}

// Number returns a numeric field.
func (s *Snapshot) Number(field string) (float64, bool) {
	n, ok := s.nums[field]
	return n, ok
}

// Bool returns a boolean field.
func (s *Snapshot) Bool(field string) (bool, bool) {
	b, ok := s.bools[field]
	return b, ok
}

// Present reports whether a field holds a value. Missing values, empty and
// whitespace-only text, and configured blank sentinels (the "removed"
// assignee marker) all count as absent.
func (s *Snapshot) Present(field string) bool {
	switch s.schema.Fields[field] {
	case FieldDate:
		_, ok := s.dates[field]
		return ok
	case FieldNumber:
		_, ok := s.nums[field]
		return ok
	case FieldBool:
		_, ok := s.bools[field]
		return ok
	default:
		t := s.texts[field]
		return t != "" && !s.schema.isSentinel(t)
	}
}

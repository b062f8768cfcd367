// Package rules declares the ordered-priority rule tables that assign every
// lead and work task to exactly one operational category. Declaration order
// is the specification: the classifier evaluates top to bottom and stops at
// the first match.
package rules

import (
	"errors"
	"fmt"

	"github.com/marune/backoffice/internal/model"
	"github.com/marune/backoffice/internal/predicate"
)

var (
	errEmptyList = errors.New("list must not be empty")

	// ErrUnknownKind is returned when no table exists for an entity kind.
	ErrUnknownKind = errors.New("unknown entity kind")
)

// LabelFunc renders a dynamic label from the snapshot, for rules whose label
// incorporates a field value such as the assignee code.
type LabelFunc func(predicate.Env, *model.Snapshot) string

// KeyFunc extracts a subgroup key from the snapshot for categories that fan
// out by a secondary field.
type KeyFunc func(predicate.Env, *model.Snapshot) string

// Rule is one (priority, predicate, label, color) entry in a table.
type Rule struct {
	LabelFn   LabelFunc
	Subgroup  KeyFunc
	Name      string
	Label     string
	Color     string
	Predicate predicate.Predicate
	Priority  int
	Fallback  bool
}

// LabelFor resolves the rule's label for one snapshot.
func (r *Rule) LabelFor(env predicate.Env, snap *model.Snapshot) string {
	if r.LabelFn != nil {
		return r.LabelFn(env, snap)
	}
	return r.Label
}

// Table is the ordered rule list for one entity kind, bound to the schema
// its predicates were validated against.
type Table struct {
	Schema *model.Schema
	Kind   model.EntityKind
	Rules  []Rule
}

// validate fails fast on configuration errors: duplicate or unordered
// priorities, or a predicate referencing a field the schema does not
// declare. A table that fails validation must never serve classification.
func (t *Table) validate() error {
	last := 0
	for i := range t.Rules {
		r := &t.Rules[i]
		if r.Name == "" {
			return fmt.Errorf("%s table: rule at index %d has no name", t.Kind, i)
		}
		if i > 0 && r.Priority <= last {
			return fmt.Errorf("%s table: rule %q priority %d is not above the preceding rule's %d",
				t.Kind, r.Name, r.Priority, last)
		}
		last = r.Priority
		for _, field := range r.Predicate.Fields {
			if !t.Schema.Has(field) {
				return fmt.Errorf("%s table: rule %q references unknown field %q",
					t.Kind, r.Name, field)
			}
		}
	}
	return nil
}

// Tables bundles the three rule tables, loaded once at startup and immutable
// afterwards.
type Tables struct {
	Seller *Table
	Buyer  *Table
	Task   *Table
}

// NewTables builds and validates all three tables from configuration.
func NewTables(cfg Config) (*Tables, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("rules config: %w", err)
	}

	tables := &Tables{
		Seller: sellerTable(cfg),
		Buyer:  buyerTable(cfg),
		Task:   taskTable(cfg),
	}

	for _, t := range []*Table{tables.Seller, tables.Buyer, tables.Task} {
		if err := t.validate(); err != nil {
			return nil, err
		}
	}

	return tables, nil
}

// ForKind returns the table for an entity kind.
func (t *Tables) ForKind(kind model.EntityKind) (*Table, error) {
	switch kind {
	case model.KindSeller:
		return t.Seller, nil
	case model.KindBuyer:
		return t.Buyer, nil
	case model.KindTask:
		return t.Task, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// textOf returns a KeyFunc yielding the literal text of one field.
func textOf(field string) KeyFunc {
	return func(_ predicate.Env, s *model.Snapshot) string {
		return s.Text(field)
	}
}

// firstTextOf returns a KeyFunc yielding the first non-blank field's literal
// text, probing in the given order.
func firstTextOf(fields ...string) KeyFunc {
	return func(_ predicate.Env, s *model.Snapshot) string {
		for _, f := range fields {
			if s.Present(f) {
				return s.Text(f)
			}
		}
		return ""
	}
}

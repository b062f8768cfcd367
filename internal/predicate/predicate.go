// Package predicate provides the composable boolean checks rule tables are
// built from. Predicates are pure: they read a snapshot and the evaluation
// env, and hold no state of their own.
package predicate

import (
	"strings"
	"time"

	"github.com/marune/backoffice/internal/model"
	"github.com/marune/backoffice/internal/temporal"
)

// Env carries the per-batch evaluation context. Today is captured once per
// aggregation pass so a long batch never straddles a midnight rollover.
type Env struct {
	Today time.Time
}

// NewEnv fixes the reference day at day granularity in the business timezone.
func NewEnv(today time.Time) Env {
	return Env{Today: temporal.Truncate(today)}
}

// Predicate is one boolean check over a snapshot. Fields lists every snapshot
// field the check reads, so tables can be validated against the entity schema
// at load time.
type Predicate struct {
	Eval   func(Env, *model.Snapshot) bool
	Fields []string
}

// IsBlank reports whether the field is absent: missing, empty, whitespace
// only, unparseable, or a configured blank sentinel.
func IsBlank(field string) Predicate {
	return Predicate{
		Fields: []string{field},
		Eval: func(_ Env, s *model.Snapshot) bool {
			return !s.Present(field)
		},
	}
}

// IsPresent is the complement of IsBlank.
func IsPresent(field string) Predicate {
	return Predicate{
		Fields: []string{field},
		Eval: func(_ Env, s *model.Snapshot) bool {
			return s.Present(field)
		},
	}
}

// NonEmpty reports whether the field holds any literal text at all, blank
// sentinels included. Rules that must distinguish "removed" from "never
// assigned" use this instead of IsPresent.
func NonEmpty(field string) Predicate {
	return Predicate{
		Fields: []string{field},
		Eval: func(_ Env, s *model.Snapshot) bool {
			return s.Text(field) != ""
		},
	}
}

// ContainsText reports case-sensitive substring containment on a free-text
// field. A blank field never matches.
func ContainsText(field, substring string) Predicate {
	return Predicate{
		Fields: []string{field},
		Eval: func(_ Env, s *model.Snapshot) bool {
			t := s.Text(field)
			return t != "" && strings.Contains(t, substring)
		},
	}
}

// TextEquals reports trimmed literal equality on a text field.
func TextEquals(field, value string) Predicate {
	return Predicate{
		Fields: []string{field},
		Eval: func(_ Env, s *model.Snapshot) bool {
			return s.Text(field) == value
		},
	}
}

// OnOrBeforeToday reports whether the date field falls on or before the
// batch reference day. An absent date never matches.
func OnOrBeforeToday(field string) Predicate {
	return Predicate{
		Fields: []string{field},
		Eval: func(env Env, s *model.Snapshot) bool {
			d, ok := s.Date(field)
			return ok && temporal.OnOrBefore(d, env.Today)
		},
	}
}

// OnOrAfterToday reports whether the date field falls on or after the batch
// reference day.
func OnOrAfterToday(field string) Predicate {
	return Predicate{
		Fields: []string{field},
		Eval: func(env Env, s *model.Snapshot) bool {
			d, ok := s.Date(field)
			return ok && temporal.OnOrAfter(d, env.Today)
		},
	}
}

// BeforeToday reports whether the date field falls strictly before the batch
// reference day.
func BeforeToday(field string) Predicate {
	return Predicate{
		Fields: []string{field},
		Eval: func(env Env, s *model.Snapshot) bool {
			d, ok := s.Date(field)
			return ok && !temporal.OnOrAfter(d, env.Today)
		},
	}
}

// OnOrAfterDate reports whether the date field falls on or after a fixed
// cutoff, inclusive.
func OnOrAfterDate(field string, cutoff time.Time) Predicate {
	return Predicate{
		Fields: []string{field},
		Eval: func(_ Env, s *model.Snapshot) bool {
			d, ok := s.Date(field)
			return ok && temporal.OnOrAfter(d, cutoff)
		},
	}
}

// HasAnyOf reports whether at least one of the named fields is present.
func HasAnyOf(fields ...string) Predicate {
	return Predicate{
		Fields: fields,
		Eval: func(_ Env, s *model.Snapshot) bool {
			for _, f := range fields {
				if s.Present(f) {
					return true
				}
			}
			return false
		},
	}
}

// BusinessDayBeforeToday reports whether the batch reference day is the
// business-day-before reminder day for the date field, honoring the weekly
// closure day.
func BusinessDayBeforeToday(field string, closure time.Weekday) Predicate {
	return Predicate{
		Fields: []string{field},
		Eval: func(env Env, s *model.Snapshot) bool {
			d, ok := s.Date(field)
			return ok && temporal.SameDay(env.Today, temporal.BusinessDayBefore(d, closure))
		},
	}
}

// MatchesAssignee reports membership of the field's text in the recognized
// staff code list. Sentinel and free-form values never match.
func MatchesAssignee(field string, codes []string) Predicate {
	return Predicate{
		Fields: []string{field},
		Eval: func(_ Env, s *model.Snapshot) bool {
			t := s.Text(field)
			if t == "" {
				return false
			}
			for _, code := range codes {
				if t == code {
					return true
				}
			}
			return false
		},
	}
}

// NumberAtLeast reports whether the numeric field is present and at least min.
func NumberAtLeast(field string, min float64) Predicate {
	return Predicate{
		Fields: []string{field},
		Eval: func(_ Env, s *model.Snapshot) bool {
			n, ok := s.Number(field)
			return ok && n >= min
		},
	}
}

// All matches when every sub-predicate matches.
func All(ps ...Predicate) Predicate {
	return Predicate{
		Fields: mergeFields(ps),
		Eval: func(env Env, s *model.Snapshot) bool {
			for _, p := range ps {
				if !p.Eval(env, s) {
					return false
				}
			}
			return true
		},
	}
}

// Any matches when at least one sub-predicate matches.
func Any(ps ...Predicate) Predicate {
	return Predicate{
		Fields: mergeFields(ps),
		Eval: func(env Env, s *model.Snapshot) bool {
			for _, p := range ps {
				if p.Eval(env, s) {
					return true
				}
			}
			return false
		},
	}
}

// Not inverts a predicate.
func Not(p Predicate) Predicate {
	return Predicate{
		Fields: p.Fields,
		Eval: func(env Env, s *model.Snapshot) bool {
			return !p.Eval(env, s)
		},
	}
}

// True always matches; fallback rules use it.
func True() Predicate {
	return Predicate{
		Eval: func(Env, *model.Snapshot) bool { return true },
	}
}

func mergeFields(ps []Predicate) []string {
	seen := make(map[string]struct{})
	var fields []string
	for _, p := range ps {
		for _, f := range p.Fields {
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			fields = append(fields, f)
		}
	}
	return fields
}

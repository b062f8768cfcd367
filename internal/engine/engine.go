// Package engine evaluates rule tables against entity snapshots and
// aggregates the results into the grouped counts the sidebar renders. The
// engine is synchronous, holds no mutable state, and never reads the clock:
// the reference day arrives in the predicate env.
package engine

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/marune/backoffice/internal/model"
	"github.com/marune/backoffice/internal/predicate"
	"github.com/marune/backoffice/internal/rules"
)

// Classifier labels entities against the loaded rule tables.
type Classifier struct {
	tables *rules.Tables
	logger *slog.Logger
}

// New creates a classifier over immutable rule tables.
func New(tables *rules.Tables, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{tables: tables, logger: logger}
}

// Classify labels one entity. A snapshot no rule matches gets the explicit
// no-category result, never a default label.
func (c *Classifier) Classify(env predicate.Env, snap *model.Snapshot) (model.Classification, error) {
	table, err := c.tables.ForKind(snap.Kind)
	if err != nil {
		return model.Classification{}, err
	}
	return c.classify(env, table, snap), nil
}

func (c *Classifier) classify(env predicate.Env, table *rules.Table, snap *model.Snapshot) model.Classification {
	for i := range table.Rules {
		rule := &table.Rules[i]
		if !c.matches(env, rule, snap) {
			continue
		}
		if rule.Fallback {
			break
		}
		result := model.Classification{
			EntityID: snap.ID,
			Label:    rule.LabelFor(env, snap),
			Color:    rule.Color,
			Priority: rule.Priority,
			Matched:  true,
		}
		if rule.Subgroup != nil {
			result.SubgroupKey = rule.Subgroup(env, snap)
		}
		return result
	}
	return model.Classification{EntityID: snap.ID}
}

// matches evaluates one rule, converting a predicate panic into a non-match
// so one bad record never aborts a batch.
func (c *Classifier) matches(env predicate.Env, rule *rules.Rule, snap *model.Snapshot) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("rule predicate failed, skipping rule",
				"entity_id", snap.ID,
				"kind", snap.Kind,
				"priority", rule.Priority,
				"rule", rule.Name,
				"panic", fmt.Sprint(r))
			ok = false
		}
	}()
	return rule.Predicate.Eval(env, snap)
}

// Aggregate classifies every snapshot and groups the results by label.
// Top-level groups keep declared rule order; subgroups are sorted by
// descending count, key ascending on ties. Empty groups are omitted.
func (c *Classifier) Aggregate(env predicate.Env, kind model.EntityKind, snaps []*model.Snapshot) ([]model.CategoryGroup, error) {
	table, err := c.tables.ForKind(kind)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		subs  map[string][]string
		group model.CategoryGroup
	}
	buckets := make(map[string]*bucket)

	for _, snap := range snaps {
		res := c.classify(env, table, snap)
		if !res.Matched {
			continue
		}
		b, ok := buckets[res.Label]
		if !ok {
			b = &bucket{
				group: model.CategoryGroup{
					Label:    res.Label,
					Color:    res.Color,
					Priority: res.Priority,
				},
				subs: make(map[string][]string),
			}
			buckets[res.Label] = b
		}
		b.group.Members = append(b.group.Members, res.EntityID)
		b.group.Count++
		if res.SubgroupKey != "" {
			b.subs[res.SubgroupKey] = append(b.subs[res.SubgroupKey], res.EntityID)
		}
	}

	groups := make([]model.CategoryGroup, 0, len(buckets))
	for _, b := range buckets {
		for key, members := range b.subs {
			b.group.Subgroups = append(b.group.Subgroups, model.Subgroup{
				Key:     key,
				Members: members,
				Count:   len(members),
			})
		}
		sort.Slice(b.group.Subgroups, func(i, j int) bool {
			si, sj := b.group.Subgroups[i], b.group.Subgroups[j]
			if si.Count != sj.Count {
				return si.Count > sj.Count
			}
			return si.Key < sj.Key
		})
		groups = append(groups, b.group)
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Priority != groups[j].Priority {
			return groups[i].Priority < groups[j].Priority
		}
		// Dynamic labels share one rule; order them by label.
		return groups[i].Label < groups[j].Label
	})

	return groups, nil
}

package rules

import (
	"github.com/marune/backoffice/internal/model"
	"github.com/marune/backoffice/internal/predicate"
)

// sellerCommFields are probed in priority order when rendering the
// communication-info subgroup label: method beats preferred time beats
// contact person.
var sellerCommFields = []string{"contactMethod", "preferredTime", "contactPerson"}

func sellerSchema(cfg Config) *model.Schema {
	return &model.Schema{
		Kind:           model.KindSeller,
		BlankSentinels: []string{cfg.Staff.Removed},
		Fields: map[string]model.FieldType{
			"status":           model.FieldText,
			"nextCallDate":     model.FieldDate,
			"assignee":         model.FieldText,
			"contactMethod":    model.FieldText,
			"preferredTime":    model.FieldText,
			"contactPerson":    model.FieldText,
			"visitDate":        model.FieldDate,
			"inquiryDate":      model.FieldDate,
			"desktopValuation": model.FieldNumber,
			"visitValuation":   model.FieldNumber,
			"finalValuation":   model.FieldNumber,
			"mailingStatus":    model.FieldText,
			"unreachable":      model.FieldText,
			"pinrichUrl":       model.FieldText,
		},
	}
}

// sellerTable classifies seller leads. Visit categories come first so a lead
// with a scheduled visit never falls into a call queue.
func sellerTable(cfg Config) *Table {
	staffed := predicate.MatchesAssignee("assignee", cfg.Staff.Codes)

	// Base "call today" condition: follow-up in the free-text status and a
	// next-call date that has arrived.
	todayCall := predicate.All(
		predicate.ContainsText("status", cfg.FollowUpMarker),
		predicate.OnOrBeforeToday("nextCallDate"),
	)
	noCommInfo := predicate.Not(predicate.HasAnyOf(sellerCommFields...))

	return &Table{
		Kind:   model.KindSeller,
		Schema: sellerSchema(cfg),
		Rules: []Rule{
			{
				Priority: 10,
				Name:     "visit-scheduled",
				Label:    "visit-scheduled",
				Color:    "green",
				Predicate: predicate.All(
					staffed,
					predicate.OnOrAfterToday("visitDate"),
				),
				Subgroup: textOf("assignee"),
			},
			{
				Priority: 20,
				Name:     "visit-completed",
				Label:    "visit-completed",
				Color:    "teal",
				Predicate: predicate.All(
					staffed,
					predicate.BeforeToday("visitDate"),
				),
				Subgroup: textOf("assignee"),
			},
			{
				// Assignee column holds something, but not a recognized
				// staff initial: the removed sentinel or stray text.
				Priority: 30,
				Name:     "visit-other",
				Label:    "visit-other",
				Color:    "gray",
				Predicate: predicate.All(
					predicate.NonEmpty("assignee"),
					predicate.Not(staffed),
				),
			},
			{
				Priority:  40,
				Name:      "today-call-no-info",
				Label:     "today-call-no-info",
				Color:     "red",
				Predicate: predicate.All(todayCall, noCommInfo),
			},
			{
				Priority:  50,
				Name:      "today-call-with-info",
				Label:     "today-call-with-info",
				Color:     "orange",
				Predicate: predicate.All(todayCall, predicate.HasAnyOf(sellerCommFields...)),
				Subgroup:  firstTextOf(sellerCommFields...),
			},
			{
				Priority: 60,
				Name:     "unvalued",
				Label:    "unvalued",
				Color:    "yellow",
				Predicate: predicate.All(
					predicate.IsBlank("desktopValuation"),
					predicate.IsBlank("visitValuation"),
					predicate.IsBlank("finalValuation"),
					predicate.OnOrAfterDate("inquiryDate", cfg.ValuationCutoff),
					predicate.IsBlank("assignee"),
				),
			},
			{
				Priority:  70,
				Name:      "mailing-pending",
				Label:     "mailing-pending",
				Color:     "blue",
				Predicate: predicate.TextEquals("mailingStatus", cfg.MailingPending),
			},
			{
				Priority: 80,
				Name:     "today-call-not-started",
				Label:    "today-call-not-started",
				Color:    "purple",
				Predicate: predicate.All(
					todayCall,
					noCommInfo,
					predicate.IsBlank("assignee"),
					predicate.IsBlank("unreachable"),
					predicate.OnOrAfterDate("inquiryDate", cfg.NotStartedCutoff),
				),
			},
			{
				Priority: 90,
				Name:     "pinrich-empty",
				Label:    "pinrich-empty",
				Color:    "magenta",
				Predicate: predicate.All(
					todayCall,
					noCommInfo,
					predicate.IsBlank("assignee"),
					predicate.IsBlank("pinrichUrl"),
				),
			},
		},
	}
}

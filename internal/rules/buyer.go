package rules

import (
	"github.com/marune/backoffice/internal/model"
	"github.com/marune/backoffice/internal/predicate"
)

var buyerCommFields = []string{"contactMethod", "preferredTime", "contactPerson"}

func buyerSchema(cfg Config) *model.Schema {
	return &model.Schema{
		Kind:           model.KindBuyer,
		BlankSentinels: []string{cfg.Staff.Removed},
		Fields: map[string]model.FieldType{
			"status":                  model.FieldText,
			"nextCallDate":            model.FieldDate,
			"assignee":                model.FieldText,
			"inquiryDate":             model.FieldDate,
			"viewingDate":             model.FieldDate,
			"viewingConfirmed":        model.FieldText,
			"surveyRequestDate":       model.FieldDate,
			"surveyResponseDate":      model.FieldDate,
			"businessInquiryDate":     model.FieldDate,
			"businessInquiryHandled":  model.FieldText,
			"listingType":             model.FieldText,
			"contactMethod":           model.FieldText,
			"preferredTime":           model.FieldText,
			"contactPerson":           model.FieldText,
			"inquiryEmailDate":        model.FieldDate,
			"inquiryEmailRepliedDate": model.FieldDate,
			"callAttempts":            model.FieldNumber,
			"postViewingNote":         model.FieldText,
			"registrationStatus":      model.FieldText,
			"promotionConsent":        model.FieldText,
			"promotionSentDate":       model.FieldDate,
			"matchedProperty":         model.FieldText,
			"email":                   model.FieldText,
			"emailVerified":           model.FieldText,
		},
	}
}

// buyerTable classifies buyer leads across 35 ranked priorities plus the
// trailing no-category fallback. The per-assignee blocks are expanded from
// one template per block and the configured code lists, so adding a staff
// member is a config change.
func buyerTable(cfg Config) *Table {
	t := &Table{
		Kind:   model.KindBuyer,
		Schema: buyerSchema(cfg),
	}

	next := 0
	add := func(r Rule) {
		next++
		r.Priority = next
		t.Rules = append(t.Rules, r)
	}

	add(Rule{
		Name:  "survey-response-pending",
		Label: "survey-response-pending",
		Color: "red",
		Predicate: predicate.All(
			predicate.OnOrBeforeToday("surveyRequestDate"),
			predicate.IsBlank("surveyResponseDate"),
		),
	})
	add(Rule{
		Name:  "business-inquiry-pending",
		Label: "business-inquiry-pending",
		Color: "red",
		Predicate: predicate.All(
			predicate.IsPresent("businessInquiryDate"),
			predicate.IsBlank("businessInquiryHandled"),
		),
	})
	add(Rule{
		Name:      "viewing-tomorrow",
		Label:     "viewing-tomorrow",
		Color:     "green",
		Predicate: predicate.BusinessDayBeforeToday("viewingDate", cfg.ClosureDay),
	})
	add(Rule{
		Name:  "viewing-unconfirmed",
		Label: "viewing-unconfirmed",
		Color: "orange",
		Predicate: predicate.All(
			predicate.OnOrAfterToday("viewingDate"),
			predicate.IsBlank("viewingConfirmed"),
		),
	})
	add(Rule{
		Name:  "general-listing-no-contact",
		Label: "general-listing-no-contact",
		Color: "yellow",
		Predicate: predicate.All(
			predicate.ContainsText("listingType", "general"),
			predicate.Not(predicate.HasAnyOf(buyerCommFields...)),
		),
	})
	add(Rule{
		// One rule, dynamic label: the assignee code is substituted into
		// the category name so each caller sees their own queue.
		Name:  "today-call",
		Color: "red",
		Predicate: predicate.All(
			predicate.ContainsText("status", cfg.FollowUpMarker),
			predicate.OnOrBeforeToday("nextCallDate"),
			predicate.MatchesAssignee("assignee", cfg.Staff.Codes),
		),
		LabelFn: func(_ predicate.Env, s *model.Snapshot) string {
			return "today-call-" + s.Text("assignee")
		},
	})
	add(Rule{
		Name:  "inquiry-email-unanswered",
		Label: "inquiry-email-unanswered",
		Color: "orange",
		Predicate: predicate.All(
			predicate.IsPresent("inquiryEmailDate"),
			predicate.IsBlank("inquiryEmailRepliedDate"),
		),
	})
	add(Rule{
		Name:  "three-calls-incomplete",
		Label: "three-calls-incomplete",
		Color: "yellow",
		Predicate: predicate.All(
			predicate.NumberAtLeast("callAttempts", 3),
			predicate.IsBlank("nextCallDate"),
		),
	})

	for _, code := range cfg.Staff.Callers {
		add(Rule{
			Name:  "post-viewing-not-entered-" + code,
			Label: "post-viewing-not-entered-" + code,
			Color: "teal",
			Predicate: predicate.All(
				predicate.TextEquals("assignee", code),
				predicate.BeforeToday("viewingDate"),
				predicate.IsBlank("postViewingNote"),
			),
		})
	}

	for _, code := range cfg.Staff.Callers {
		add(Rule{
			Name:  "next-call-date-blank-" + code,
			Label: "next-call-date-blank-" + code,
			Color: "orange",
			Predicate: predicate.All(
				predicate.TextEquals("assignee", code),
				predicate.ContainsText("status", cfg.FollowUpMarker),
				predicate.IsBlank("nextCallDate"),
			),
		})
	}

	for _, code := range cfg.Staff.Codes {
		add(Rule{
			Name:      "assigned-" + code,
			Label:     "assigned-" + code,
			Color:     "blue",
			Predicate: predicate.TextEquals("assignee", code),
		})
	}

	add(Rule{
		Name:  "external-registration-pending",
		Label: "external-registration-pending",
		Color: "purple",
		Predicate: predicate.All(
			predicate.IsPresent("inquiryDate"),
			predicate.IsBlank("registrationStatus"),
		),
	})
	add(Rule{
		Name:  "promotion-email-eligible",
		Label: "promotion-email-eligible",
		Color: "blue",
		Predicate: predicate.All(
			predicate.IsPresent("promotionConsent"),
			predicate.IsBlank("promotionSentDate"),
			predicate.IsPresent("email"),
		),
	})
	add(Rule{
		Name:  "promotion-needed",
		Label: "promotion-needed",
		Color: "blue",
		Predicate: predicate.All(
			predicate.IsPresent("matchedProperty"),
			predicate.IsBlank("promotionSentDate"),
			predicate.IsPresent("email"),
		),
	})
	add(Rule{
		Name:  "promotion-needed-with-unmatched-property",
		Label: "promotion-needed-with-unmatched-property",
		Color: "blue",
		Predicate: predicate.All(
			predicate.IsBlank("matchedProperty"),
			predicate.IsBlank("promotionSentDate"),
			predicate.IsPresent("email"),
		),
	})
	add(Rule{
		Name:  "email-verification-needed",
		Label: "email-verification-needed",
		Color: "gray",
		Predicate: predicate.All(
			predicate.IsPresent("email"),
			predicate.IsBlank("emailVerified"),
		),
	})

	add(Rule{
		Name:      "no-category",
		Fallback:  true,
		Predicate: predicate.True(),
	})

	return t
}

package rules

import (
	"github.com/marune/backoffice/internal/model"
	"github.com/marune/backoffice/internal/predicate"
)

func taskSchema(cfg Config) *model.Schema {
	return &model.Schema{
		Kind:           model.KindTask,
		BlankSentinels: []string{cfg.Staff.Removed},
		Fields: map[string]model.FieldType{
			"contractDate":              model.FieldDate,
			"contractDocsDate":          model.FieldDate,
			"registrationRequestedDate": model.FieldDate,
			"registrationConfirmedDate": model.FieldDate,
			"settlementDate":            model.FieldDate,
			"ledgerCreatedDate":         model.FieldDate,
			"loanDeadline":              model.FieldDate,
			"loanApprovalDate":          model.FieldDate,
			"invoiceSentDate":           model.FieldDate,
			"paymentConfirmedDate":      model.FieldDate,
			"keysHandedDate":            model.FieldDate,
			"surveyRequired":            model.FieldText,
			"surveyOrderedDate":         model.FieldDate,
			"archiveDate":               model.FieldDate,
			"nextActionDate":            model.FieldDate,
		},
	}
}

// taskTable classifies contract/registration/settlement work tasks. Twelve
// ranked conditions, first match wins; an unmatched task carries no label.
func taskTable(cfg Config) *Table {
	return &Table{
		Kind:   model.KindTask,
		Schema: taskSchema(cfg),
		Rules: []Rule{
			{
				// Registration requested at the legal office but no
				// confirmation has come back yet.
				Priority: 10,
				Name:     "registration-unconfirmed",
				Label:    "registration-unconfirmed",
				Color:    "red",
				Predicate: predicate.All(
					predicate.OnOrBeforeToday("registrationRequestedDate"),
					predicate.IsBlank("registrationConfirmedDate"),
				),
			},
			{
				// Settlement day has passed but the ledger entry was never
				// created.
				Priority: 20,
				Name:     "settlement-ledger-missing",
				Label:    "settlement-ledger-missing",
				Color:    "red",
				Predicate: predicate.All(
					predicate.BeforeToday("settlementDate"),
					predicate.IsBlank("ledgerCreatedDate"),
				),
			},
			{
				Priority:  30,
				Name:      "settlement-tomorrow",
				Label:     "settlement-tomorrow",
				Color:     "green",
				Predicate: predicate.BusinessDayBeforeToday("settlementDate", cfg.ClosureDay),
			},
			{
				Priority: 40,
				Name:     "loan-approval-overdue",
				Label:    "loan-approval-overdue",
				Color:    "red",
				Predicate: predicate.All(
					predicate.OnOrBeforeToday("loanDeadline"),
					predicate.IsBlank("loanApprovalDate"),
				),
			},
			{
				Priority: 50,
				Name:     "contract-docs-missing",
				Label:    "contract-docs-missing",
				Color:    "orange",
				Predicate: predicate.All(
					predicate.IsPresent("contractDate"),
					predicate.IsBlank("contractDocsDate"),
				),
			},
			{
				Priority: 60,
				Name:     "survey-not-ordered",
				Label:    "survey-not-ordered",
				Color:    "orange",
				Predicate: predicate.All(
					predicate.IsPresent("surveyRequired"),
					predicate.IsBlank("surveyOrderedDate"),
				),
			},
			{
				Priority: 70,
				Name:     "registration-not-requested",
				Label:    "registration-not-requested",
				Color:    "yellow",
				Predicate: predicate.All(
					predicate.IsPresent("contractDate"),
					predicate.OnOrAfterToday("settlementDate"),
					predicate.IsBlank("registrationRequestedDate"),
				),
			},
			{
				Priority: 80,
				Name:     "invoice-not-sent",
				Label:    "invoice-not-sent",
				Color:    "yellow",
				Predicate: predicate.All(
					predicate.IsPresent("settlementDate"),
					predicate.IsBlank("invoiceSentDate"),
				),
			},
			{
				Priority: 90,
				Name:     "payment-unconfirmed",
				Label:    "payment-unconfirmed",
				Color:    "yellow",
				Predicate: predicate.All(
					predicate.BeforeToday("invoiceSentDate"),
					predicate.IsBlank("paymentConfirmedDate"),
				),
			},
			{
				Priority: 100,
				Name:     "keys-not-handed",
				Label:    "keys-not-handed",
				Color:    "teal",
				Predicate: predicate.All(
					predicate.BeforeToday("settlementDate"),
					predicate.IsBlank("keysHandedDate"),
				),
			},
			{
				Priority: 110,
				Name:     "docs-not-archived",
				Label:    "docs-not-archived",
				Color:    "gray",
				Predicate: predicate.All(
					predicate.IsPresent("paymentConfirmedDate"),
					predicate.IsBlank("archiveDate"),
				),
			},
			{
				Priority:  120,
				Name:      "action-due",
				Label:     "action-due",
				Color:     "blue",
				Predicate: predicate.OnOrBeforeToday("nextActionDate"),
			},
		},
	}
}

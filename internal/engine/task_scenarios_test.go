package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskScenarios(t *testing.T) {
	c, tables := newTestClassifier(t)
	env := testEnv("2026/02/05")

	tests := []struct {
		values      map[string]any
		name        string
		wantLabel   string
		wantMatched bool
	}{
		{
			name: "registration requested, confirmation outstanding",
			values: map[string]any{
				"registrationRequestedDate": "2026/02/01",
			},
			wantMatched: true,
			wantLabel:   "registration-unconfirmed",
		},
		{
			name: "settlement passed without a ledger entry",
			values: map[string]any{
				"settlementDate": "2026/02/03",
				"invoiceSentDate": "2026/01/30",
				"paymentConfirmedDate": "2026/02/03",
				"keysHandedDate": "2026/02/03",
				"archiveDate":    "2026/02/04",
			},
			wantMatched: true,
			wantLabel:   "settlement-ledger-missing",
		},
		{
			name: "settlement reminder the day before",
			values: map[string]any{
				"settlementDate":    "2026/02/06",
				"ledgerCreatedDate": "2026/02/01",
				"invoiceSentDate":   "2026/02/01",
				"paymentConfirmedDate": "2026/02/01",
				"archiveDate":       "2026/02/02",
			},
			wantMatched: true,
			wantLabel:   "settlement-tomorrow",
		},
		{
			name: "loan approval past its deadline",
			values: map[string]any{
				"loanDeadline": "2026/02/01",
			},
			wantMatched: true,
			wantLabel:   "loan-approval-overdue",
		},
		{
			name: "contract signed, documents not collected",
			values: map[string]any{
				"contractDate":     "2026/01/15",
				"loanDeadline":     "2026/03/01",
				"loanApprovalDate": "2026/01/20",
			},
			wantMatched: true,
			wantLabel:   "contract-docs-missing",
		},
		{
			name: "survey flagged but never ordered",
			values: map[string]any{
				"surveyRequired": "boundary",
			},
			wantMatched: true,
			wantLabel:   "survey-not-ordered",
		},
		{
			name: "settlement ahead, registration not requested",
			values: map[string]any{
				"contractDate":     "2026/01/15",
				"contractDocsDate": "2026/01/16",
				"settlementDate":   "2026/03/01",
			},
			wantMatched: true,
			wantLabel:   "registration-not-requested",
		},
		{
			name: "invoice never sent",
			values: map[string]any{
				"settlementDate":            "2026/03/01",
				"contractDate":              "2026/01/15",
				"contractDocsDate":          "2026/01/16",
				"registrationRequestedDate": "2026/03/01",
			},
			wantMatched: true,
			wantLabel:   "invoice-not-sent",
		},
		{
			name: "invoice sent, payment unconfirmed",
			values: map[string]any{
				"invoiceSentDate": "2026/01/30",
			},
			wantMatched: true,
			wantLabel:   "payment-unconfirmed",
		},
		{
			name: "keys still not handed over",
			values: map[string]any{
				"settlementDate":       "2026/02/03",
				"ledgerCreatedDate":    "2026/02/03",
				"invoiceSentDate":      "2026/01/30",
				"paymentConfirmedDate": "2026/02/03",
				"archiveDate":          "2026/02/04",
			},
			wantMatched: true,
			wantLabel:   "keys-not-handed",
		},
		{
			name: "paid but not archived",
			values: map[string]any{
				"paymentConfirmedDate": "2026/02/03",
			},
			wantMatched: true,
			wantLabel:   "docs-not-archived",
		},
		{
			name: "follow-up action due",
			values: map[string]any{
				"nextActionDate": "2026/02/05",
			},
			wantMatched: true,
			wantLabel:   "action-due",
		},
		{
			name:        "clean task carries the empty label",
			values:      map[string]any{},
			wantMatched: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := c.Classify(env, taskSnap(tables, "task-1", tt.values))
			require.NoError(t, err)
			require.Equal(t, tt.wantMatched, res.Matched, "label=%q", res.Label)
			if tt.wantMatched {
				assert.Equal(t, tt.wantLabel, res.Label)
			} else {
				assert.Empty(t, res.Label)
			}
		})
	}
}

// Adjacent ranked conditions, walked with overlapping fixtures. The
// settlement-ledger/settlement-tomorrow and invoice-not-sent/
// payment-unconfirmed pairs require the same date to be both past and
// upcoming (or the same field blank and set) and cannot overlap.
func TestTaskAdjacentPriorityPairs(t *testing.T) {
	c, tables := newTestClassifier(t)
	env := testEnv("2026/02/05")

	tests := []struct {
		values map[string]any
		name   string
		want   string
	}{
		{
			name: "registration-unconfirmed beats settlement-ledger-missing",
			values: map[string]any{
				"registrationRequestedDate": "2026/02/01",
				"settlementDate":            "2026/02/01",
			},
			want: "registration-unconfirmed",
		},
		{
			name: "settlement-tomorrow beats loan-approval-overdue",
			values: map[string]any{
				"settlementDate": "2026/02/06",
				"loanDeadline":   "2026/02/05",
			},
			want: "settlement-tomorrow",
		},
		{
			name: "loan-approval-overdue beats contract-docs-missing",
			values: map[string]any{
				"loanDeadline": "2026/02/05",
				"contractDate": "2026/01/15",
			},
			want: "loan-approval-overdue",
		},
		{
			name: "contract-docs-missing beats survey-not-ordered",
			values: map[string]any{
				"contractDate":   "2026/01/15",
				"surveyRequired": "yes",
			},
			want: "contract-docs-missing",
		},
		{
			name: "survey-not-ordered beats registration-not-requested",
			values: map[string]any{
				"surveyRequired":   "yes",
				"contractDate":     "2026/01/15",
				"contractDocsDate": "2026/01/20",
				"settlementDate":   "2026/02/10",
			},
			want: "survey-not-ordered",
		},
		{
			name: "registration-not-requested beats invoice-not-sent",
			values: map[string]any{
				"contractDate":     "2026/01/15",
				"contractDocsDate": "2026/01/20",
				"settlementDate":   "2026/02/10",
			},
			want: "registration-not-requested",
		},
		{
			name: "payment-unconfirmed beats keys-not-handed",
			values: map[string]any{
				"contractDate":              "2026/01/15",
				"contractDocsDate":          "2026/01/20",
				"registrationRequestedDate": "2026/01/20",
				"registrationConfirmedDate": "2026/01/25",
				"settlementDate":            "2026/02/01",
				"ledgerCreatedDate":         "2026/02/01",
				"invoiceSentDate":           "2026/02/01",
			},
			want: "payment-unconfirmed",
		},
		{
			name: "keys-not-handed beats docs-not-archived",
			values: map[string]any{
				"contractDate":              "2026/01/15",
				"contractDocsDate":          "2026/01/20",
				"registrationRequestedDate": "2026/01/20",
				"registrationConfirmedDate": "2026/01/25",
				"settlementDate":            "2026/02/01",
				"ledgerCreatedDate":         "2026/02/01",
				"invoiceSentDate":           "2026/02/01",
				"paymentConfirmedDate":      "2026/02/02",
			},
			want: "keys-not-handed",
		},
		{
			name: "docs-not-archived beats action-due",
			values: map[string]any{
				"contractDate":              "2026/01/15",
				"contractDocsDate":          "2026/01/20",
				"registrationRequestedDate": "2026/01/20",
				"registrationConfirmedDate": "2026/01/25",
				"settlementDate":            "2026/02/01",
				"ledgerCreatedDate":         "2026/02/01",
				"invoiceSentDate":           "2026/02/01",
				"paymentConfirmedDate":      "2026/02/02",
				"keysHandedDate":            "2026/02/02",
				"nextActionDate":            "2026/02/05",
			},
			want: "docs-not-archived",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := c.Classify(env, taskSnap(tables, "task-x", tt.values))
			require.NoError(t, err)
			require.True(t, res.Matched, "label=%q", res.Label)
			assert.Equal(t, tt.want, res.Label)
		})
	}
}

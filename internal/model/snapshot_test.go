package model

import (
	"testing"
	"time"

	"github.com/marune/backoffice/internal/temporal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() *Schema {
	return &Schema{
		Kind:           KindSeller,
		BlankSentinels: []string{"removed"},
		Fields: map[string]FieldType{
			"status":           FieldText,
			"assignee":         FieldText,
			"nextCallDate":     FieldDate,
			"desktopValuation": FieldNumber,
			"autoReply":        FieldBool,
		},
	}
}

func TestNewSnapshotNormalization(t *testing.T) {
	schema := testSchema()

	snap := NewSnapshot(schema, "lead-1", map[string]any{
		"status":           "  follow-up-in-progress  ",
		"assignee":         "U",
		"nextCallDate":     "2026/02/02",
		"desktopValuation": "3200",
		"autoReply":        "true",
		"unknownField":     "ignored",
	})

	assert.Equal(t, "lead-1", snap.ID)
	assert.Equal(t, KindSeller, snap.Kind)
	assert.Equal(t, "follow-up-in-progress", snap.Text("status"))

	d, ok := snap.Date("nextCallDate")
	require.True(t, ok)
	assert.True(t, d.Equal(time.Date(2026, time.February, 2, 0, 0, 0, 0, temporal.BusinessZone)))

	n, ok := snap.Number("desktopValuation")
	require.True(t, ok)
	assert.InDelta(t, 3200.0, n, 0.001)

	b, ok := snap.Bool("autoReply")
	require.True(t, ok)
	assert.True(t, b)
}

func TestSnapshotAbsentValues(t *testing.T) {
	schema := testSchema()

	snap := NewSnapshot(schema, "lead-2", map[string]any{
		"status":           nil,
		"nextCallDate":     "call back later", // unparseable degrades to absent
		"desktopValuation": "n/a",
	})

	assert.Equal(t, "", snap.Text("status"))
	_, ok := snap.Date("nextCallDate")
	assert.False(t, ok)
	_, ok = snap.Number("desktopValuation")
	assert.False(t, ok)
	_, ok = snap.Bool("autoReply")
	assert.False(t, ok)
}

func TestSnapshotPresent(t *testing.T) {
	schema := testSchema()

	tests := []struct {
		values map[string]any
		name   string
		field  string
		want   bool
	}{
		{name: "text value", values: map[string]any{"status": "active"}, field: "status", want: true},
		{name: "missing text", values: map[string]any{}, field: "status", want: false},
		{name: "empty text", values: map[string]any{"status": ""}, field: "status", want: false},
		{name: "whitespace only", values: map[string]any{"status": "   "}, field: "status", want: false},
		{name: "removed sentinel is blank", values: map[string]any{"assignee": "removed"}, field: "assignee", want: false},
		{name: "real assignee", values: map[string]any{"assignee": "U"}, field: "assignee", want: true},
		{name: "date value", values: map[string]any{"nextCallDate": "2026/02/02"}, field: "nextCallDate", want: true},
		{name: "bad date", values: map[string]any{"nextCallDate": "soon"}, field: "nextCallDate", want: false},
		{name: "number value", values: map[string]any{"desktopValuation": 0.0}, field: "desktopValuation", want: true},
		{name: "bool false still present", values: map[string]any{"autoReply": false}, field: "autoReply", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := NewSnapshot(schema, "x", tt.values)
			assert.Equal(t, tt.want, snap.Present(tt.field))
		})
	}
}

func TestSnapshotSentinelVisibleAsText(t *testing.T) {
	schema := testSchema()
	snap := NewSnapshot(schema, "x", map[string]any{"assignee": " removed "})

	// Blank for the blank policy, but rules that must see the sentinel
	// itself still can.
	assert.False(t, snap.Present("assignee"))
	assert.Equal(t, "removed", snap.Text("assignee"))
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind(" Seller ")
	require.True(t, ok)
	assert.Equal(t, KindSeller, k)

	_, ok = ParseKind("tenant")
	assert.False(t, ok)
}

func TestRecordSnapshot(t *testing.T) {
	schema := testSchema()
	rec := Record{
		ID:     "lead-9",
		Kind:   KindSeller,
		Fields: map[string]any{"assignee": "TA"},
	}

	snap := rec.Snapshot(schema)
	assert.Equal(t, "lead-9", snap.ID)
	assert.Equal(t, "TA", snap.Text("assignee"))
}

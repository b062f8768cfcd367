package model

import "time"

// Record is one entity row as stored and synced: the raw field values before
// snapshot normalization. Storage and the spreadsheet reader deal in Records;
// the engine deals in Snapshots built from them.
type Record struct {
	UpdatedAt time.Time
	Fields    map[string]any
	ID        string
	Kind      EntityKind
}

// Snapshot normalizes the record's fields against a schema.
func (r *Record) Snapshot(schema *Schema) *Snapshot {
	return NewSnapshot(schema, r.ID, r.Fields)
}

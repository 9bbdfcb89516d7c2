package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"recordbase/models"
)

// RecordRows is a lazy cursor over a record query. Rows are decoded one
// at a time as Next advances; the cursor cannot be rewound.
type RecordRows struct {
	rows *sql.Rows
	cur  *models.Record
	err  error
}

func (rr *RecordRows) Next() bool {
	if rr.err != nil {
		return false
	}
	if !rr.rows.Next() {
		rr.err = rr.rows.Err()
		return false
	}

	var rec models.Record
	var fieldsJSON string
	if err := rr.rows.Scan(&rec.Collection, &rec.Key, &fieldsJSON, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		rr.err = err
		return false
	}
	if err := json.Unmarshal([]byte(fieldsJSON), &rec.Fields); err != nil {
		rr.err = fmt.Errorf("failed to decode record fields: %w", err)
		return false
	}

	rr.cur = &rec
	return true
}

// Record returns the row the last successful Next call produced.
func (rr *RecordRows) Record() *models.Record {
	return rr.cur
}

func (rr *RecordRows) Err() error {
	return rr.err
}

func (rr *RecordRows) Close() error {
	return rr.rows.Close()
}

package memstore

import "recordbase/models"

// Rows iterates over a snapshot taken at scan time. One-shot, like the
// database cursor it mirrors.
type Rows struct {
	records []*models.Record
	i       int
	cur     *models.Record
	closed  bool
}

func (r *Rows) Next() bool {
	if r.closed || r.i >= len(r.records) {
		return false
	}
	r.cur = r.records[r.i]
	r.i++
	return true
}

func (r *Rows) Record() *models.Record {
	return r.cur
}

func (r *Rows) Err() error {
	return nil
}

func (r *Rows) Close() error {
	r.closed = true
	r.records = nil
	return nil
}

package query

import (
	"recordbase/models"
	"recordbase/storage"
)

// Rows filters a store scan lazily: each Next call advances the source
// cursor until a record matches or the source (or limit) runs out.
// One-shot, like the cursor it wraps.
type Rows struct {
	src   storage.Rows
	q     *Query
	limit int
	count int
	cur   *models.Record
	err   error
}

// Run wraps the source rows with this query's filter. A limit of zero
// means unlimited.
func (q *Query) Run(src storage.Rows, limit int) *Rows {
	return &Rows{src: src, q: q, limit: limit}
}

func (r *Rows) Next() bool {
	if r.err != nil {
		return false
	}
	if r.limit > 0 && r.count >= r.limit {
		return false
	}

	for r.src.Next() {
		rec := r.src.Record()
		ok, err := r.q.Match(rec)
		if err != nil {
			r.err = err
			return false
		}
		if ok {
			r.cur = rec
			r.count++
			return true
		}
	}

	r.err = r.src.Err()
	return false
}

func (r *Rows) Record() *models.Record {
	return r.cur
}

func (r *Rows) Err() error {
	return r.err
}

func (r *Rows) Close() error {
	return r.src.Close()
}

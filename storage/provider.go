package storage

import (
	"fmt"
	"strings"

	"recordbase/models"
)

// Rows is a lazy, finite, one-shot sequence of records produced by a
// scan or query. Callers must Close it and check Err after the loop.
type Rows interface {
	Next() bool
	Record() *models.Record
	Err() error
	Close() error
}

// Store is the contract every backing-store driver implements. Absent
// records and collections come back as (nil, nil); mapping absence to an
// error is the service layer's job.
type Store interface {
	// ==================== COLLECTION OPERATIONS ====================

	CreateCollection(col *models.Collection) error
	GetCollection(name string) (*models.Collection, error)
	ListCollections() ([]models.Collection, error)

	// DeleteCollection removes the collection and its records, reporting
	// whether anything existed to remove.
	DeleteCollection(name string) (bool, error)

	// ==================== RECORD OPERATIONS ====================

	// SaveRecord writes the record atomically: fully written or not at all.
	SaveRecord(rec *models.Record) error
	GetRecord(collection, key string) (*models.Record, error)
	ListRecords(collection string, limit, offset int) ([]models.Record, error)
	DeleteRecord(collection, key string) (bool, error)
	CountRecords(collection string) (int, error)

	// ScanRecords streams every record in the collection for query
	// evaluation.
	ScanRecords(collection string) (Rows, error)

	Close() error
}

// Open selects a driver from the datasource URL: "sqlite://<path>" or
// "memory://". The caller owns the returned handle and its lifetime.
func Open(dsn, schemaMode string) (Store, error) {
	switch {
	case strings.HasPrefix(dsn, "sqlite://"):
		return newSQLiteStore(strings.TrimPrefix(dsn, "sqlite://"), schemaMode)
	case strings.HasPrefix(dsn, "memory://"):
		return newMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported datasource URL %q (want sqlite://<path> or memory://)", dsn)
	}
}

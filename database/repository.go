package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"recordbase/models"
)

// Repository executes record and collection operations against a single
// database handle. The handle is supplied by the caller and owned by the
// process entry point; the repository never opens or closes it on its own.
type Repository struct {
	db *DB
}

func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// ==================== COLLECTIONS ====================

func (r *Repository) CreateCollection(col *models.Collection) error {
	fieldsJSON, err := json.Marshal(col.Fields)
	if err != nil {
		return fmt.Errorf("failed to encode field definitions: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO collections (name, fields_json, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, col.Name, string(fieldsJSON), col.CreatedAt, time.Now())
	return err
}

func (r *Repository) GetCollection(name string) (*models.Collection, error) {
	var col models.Collection
	var fieldsJSON sql.NullString

	err := r.db.QueryRow(`
		SELECT name, fields_json, created_at, updated_at
		FROM collections WHERE name = ?
	`, name).Scan(&col.Name, &fieldsJSON, &col.CreatedAt, &col.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if fieldsJSON.Valid && fieldsJSON.String != "" {
		if err := json.Unmarshal([]byte(fieldsJSON.String), &col.Fields); err != nil {
			return nil, fmt.Errorf("failed to decode field definitions for %q: %w", name, err)
		}
	}

	return &col, nil
}

func (r *Repository) ListCollections() ([]models.Collection, error) {
	rows, err := r.db.Query(`
		SELECT name, fields_json, created_at, updated_at
		FROM collections
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Initialize with empty slice to avoid returning nil
	collections := make([]models.Collection, 0)
	for rows.Next() {
		var col models.Collection
		var fieldsJSON sql.NullString
		if err := rows.Scan(&col.Name, &fieldsJSON, &col.CreatedAt, &col.UpdatedAt); err != nil {
			return nil, err
		}
		if fieldsJSON.Valid && fieldsJSON.String != "" {
			if err := json.Unmarshal([]byte(fieldsJSON.String), &col.Fields); err != nil {
				return nil, fmt.Errorf("failed to decode field definitions for %q: %w", col.Name, err)
			}
		}
		collections = append(collections, col)
	}

	return collections, rows.Err()
}

// DeleteCollection removes the collection and all of its records in one
// transaction. Returns false when no such collection exists.
func (r *Repository) DeleteCollection(name string) (bool, error) {
	var found bool
	err := r.WithTx(func(tx *sql.Tx) error {
		res, err := tx.Exec("DELETE FROM collections WHERE name = ?", name)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		found = n > 0
		if !found {
			return nil
		}
		// Cascade covers this when foreign keys are on, but the schema
		// may be operator-managed without the constraint.
		_, err = tx.Exec("DELETE FROM records WHERE collection = ?", name)
		return err
	})
	return found, err
}

// ==================== RECORDS ====================

// SaveRecord inserts or replaces the record in a single upsert statement,
// so a record is either fully written or not written at all.
func (r *Repository) SaveRecord(rec *models.Record) error {
	fieldsJSON, err := json.Marshal(rec.Fields)
	if err != nil {
		return fmt.Errorf("failed to encode record fields: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO records (collection, key, fields_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(collection, key) DO UPDATE SET
			fields_json = excluded.fields_json,
			updated_at = excluded.updated_at
	`, rec.Collection, rec.Key, string(fieldsJSON), rec.CreatedAt, rec.UpdatedAt)
	return err
}

func (r *Repository) GetRecord(collection, key string) (*models.Record, error) {
	var rec models.Record
	var fieldsJSON string

	err := r.db.QueryRow(`
		SELECT collection, key, fields_json, created_at, updated_at
		FROM records
		WHERE collection = ? AND key = ?
	`, collection, key).Scan(&rec.Collection, &rec.Key, &fieldsJSON, &rec.CreatedAt, &rec.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(fieldsJSON), &rec.Fields); err != nil {
		return nil, fmt.Errorf("failed to decode record fields: %w", err)
	}

	return &rec, nil
}

func (r *Repository) ListRecords(collection string, limit, offset int) ([]models.Record, error) {
	rows, err := r.db.Query(`
		SELECT collection, key, fields_json, created_at, updated_at
		FROM records
		WHERE collection = ?
		ORDER BY key ASC
		LIMIT ? OFFSET ?
	`, collection, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]models.Record, 0)
	for rows.Next() {
		var rec models.Record
		var fieldsJSON string
		if err := rows.Scan(&rec.Collection, &rec.Key, &fieldsJSON, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(fieldsJSON), &rec.Fields); err != nil {
			return nil, fmt.Errorf("failed to decode record fields: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// DeleteRecord removes the record permanently. Returns false when the key
// had no record; the policy for that case lives in the service layer.
func (r *Repository) DeleteRecord(collection, key string) (bool, error) {
	res, err := r.db.Exec(`
		DELETE FROM records
		WHERE collection = ? AND key = ?
	`, collection, key)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *Repository) CountRecords(collection string) (int, error) {
	var n int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM records WHERE collection = ?
	`, collection).Scan(&n)
	return n, err
}

// ScanRecords opens a streaming cursor over every record in the
// collection. The returned iterator is one-shot and must be closed.
func (r *Repository) ScanRecords(collection string) (*RecordRows, error) {
	rows, err := r.db.Query(`
		SELECT collection, key, fields_json, created_at, updated_at
		FROM records
		WHERE collection = ?
		ORDER BY key ASC
	`, collection)
	if err != nil {
		return nil, err
	}
	return &RecordRows{rows: rows}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

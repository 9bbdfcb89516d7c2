package storage

import (
	"recordbase/config"
	"recordbase/database"
	"recordbase/models"
)

// SQLiteStore adapts the SQLite repository to the Store interface.
type SQLiteStore struct {
	repo *database.Repository
}

func newSQLiteStore(path, schemaMode string) (*SQLiteStore, error) {
	db, err := database.New(path)
	if err != nil {
		return nil, err
	}

	if schemaMode == config.SchemaAuto {
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, err
		}
	}

	return &SQLiteStore{repo: database.NewRepository(db)}, nil
}

// NewSQLiteStore wraps an already-open repository; tests use this to
// share one handle between the store and direct assertions.
func NewSQLiteStore(repo *database.Repository) *SQLiteStore {
	return &SQLiteStore{repo: repo}
}

// ==================== COLLECTION OPERATIONS ====================

func (s *SQLiteStore) CreateCollection(col *models.Collection) error {
	return s.repo.CreateCollection(col)
}

func (s *SQLiteStore) GetCollection(name string) (*models.Collection, error) {
	return s.repo.GetCollection(name)
}

func (s *SQLiteStore) ListCollections() ([]models.Collection, error) {
	return s.repo.ListCollections()
}

func (s *SQLiteStore) DeleteCollection(name string) (bool, error) {
	return s.repo.DeleteCollection(name)
}

// ==================== RECORD OPERATIONS ====================

func (s *SQLiteStore) SaveRecord(rec *models.Record) error {
	return s.repo.SaveRecord(rec)
}

func (s *SQLiteStore) GetRecord(collection, key string) (*models.Record, error) {
	return s.repo.GetRecord(collection, key)
}

func (s *SQLiteStore) ListRecords(collection string, limit, offset int) ([]models.Record, error) {
	return s.repo.ListRecords(collection, limit, offset)
}

func (s *SQLiteStore) DeleteRecord(collection, key string) (bool, error) {
	return s.repo.DeleteRecord(collection, key)
}

func (s *SQLiteStore) CountRecords(collection string) (int, error) {
	return s.repo.CountRecords(collection)
}

func (s *SQLiteStore) ScanRecords(collection string) (Rows, error) {
	return s.repo.ScanRecords(collection)
}

func (s *SQLiteStore) Close() error {
	return s.repo.Close()
}

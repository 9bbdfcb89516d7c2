package storage

import (
	"recordbase/memstore"
	"recordbase/models"
)

// MemoryStore adapts the in-memory driver to the Store interface.
// Schema mode does not apply: there is nothing to create up front.
type MemoryStore struct {
	store *memstore.Store
}

func newMemoryStore() *MemoryStore {
	return &MemoryStore{store: memstore.New()}
}

// NewMemoryStore is exported for tests that want an isolated store
// without going through a DSN.
func NewMemoryStore() *MemoryStore {
	return newMemoryStore()
}

// ==================== COLLECTION OPERATIONS ====================

func (m *MemoryStore) CreateCollection(col *models.Collection) error {
	return m.store.CreateCollection(col)
}

func (m *MemoryStore) GetCollection(name string) (*models.Collection, error) {
	return m.store.GetCollection(name)
}

func (m *MemoryStore) ListCollections() ([]models.Collection, error) {
	return m.store.ListCollections()
}

func (m *MemoryStore) DeleteCollection(name string) (bool, error) {
	return m.store.DeleteCollection(name)
}

// ==================== RECORD OPERATIONS ====================

func (m *MemoryStore) SaveRecord(rec *models.Record) error {
	return m.store.SaveRecord(rec)
}

func (m *MemoryStore) GetRecord(collection, key string) (*models.Record, error) {
	return m.store.GetRecord(collection, key)
}

func (m *MemoryStore) ListRecords(collection string, limit, offset int) ([]models.Record, error) {
	return m.store.ListRecords(collection, limit, offset)
}

func (m *MemoryStore) DeleteRecord(collection, key string) (bool, error) {
	return m.store.DeleteRecord(collection, key)
}

func (m *MemoryStore) CountRecords(collection string) (int, error) {
	return m.store.CountRecords(collection)
}

func (m *MemoryStore) ScanRecords(collection string) (Rows, error) {
	return m.store.ScanRecords(collection)
}

func (m *MemoryStore) Close() error {
	return m.store.Close()
}

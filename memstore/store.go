package memstore

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"recordbase/models"

	"github.com/tidwall/btree"
)

type entry struct {
	collection string
	key        string
	rec        *models.Record
}

func byKey(a, b interface{}) bool {
	ea, eb := a.(*entry), b.(*entry)
	if ea.collection != eb.collection {
		return ea.collection < eb.collection
	}
	return ea.key < eb.key
}

// Store is the in-memory store driver. Records live in a btree ordered
// by (collection, key) so listing and scanning walk keys in a stable
// order; a mutex guards all access. Contents do not survive a restart.
type Store struct {
	mu          sync.RWMutex
	collections map[string]*models.Collection
	records     *btree.BTree
}

func New() *Store {
	return &Store{
		collections: make(map[string]*models.Collection),
		records:     btree.NewNonConcurrent(byKey),
	}
}

// ==================== COLLECTIONS ====================

func (s *Store) CreateCollection(col *models.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.collections[col.Name]; exists {
		return fmt.Errorf("collection %q already exists", col.Name)
	}

	cp := *col
	cp.UpdatedAt = time.Now()
	s.collections[col.Name] = &cp
	return nil
}

func (s *Store) GetCollection(name string) (*models.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	col, exists := s.collections[name]
	if !exists {
		return nil, nil
	}

	cp := *col
	return &cp, nil
}

func (s *Store) ListCollections() ([]models.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	sort.Strings(names)

	collections := make([]models.Collection, 0, len(names))
	for _, name := range names {
		collections = append(collections, *s.collections[name])
	}
	return collections, nil
}

func (s *Store) DeleteCollection(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.collections[name]; !exists {
		return false, nil
	}
	delete(s.collections, name)

	// Collect first: deleting while ascending invalidates the walk.
	var doomed []*entry
	s.records.Ascend(&entry{collection: name}, func(i interface{}) bool {
		ent := i.(*entry)
		if ent.collection != name {
			return false
		}
		doomed = append(doomed, ent)
		return true
	})
	for _, ent := range doomed {
		s.records.Delete(ent)
	}

	return true, nil
}

// ==================== RECORDS ====================

func (s *Store) SaveRecord(rec *models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records.Set(&entry{
		collection: rec.Collection,
		key:        rec.Key,
		rec:        cloneRecord(rec),
	})
	return nil
}

func (s *Store) GetRecord(collection, key string) (*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item := s.records.Get(&entry{collection: collection, key: key})
	if item == nil {
		return nil, nil
	}
	return cloneRecord(item.(*entry).rec), nil
}

func (s *Store) ListRecords(collection string, limit, offset int) ([]models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]models.Record, 0)
	skipped := 0
	s.records.Ascend(&entry{collection: collection}, func(i interface{}) bool {
		ent := i.(*entry)
		if ent.collection != collection {
			return false
		}
		if skipped < offset {
			skipped++
			return true
		}
		if len(records) >= limit {
			return false
		}
		records = append(records, *cloneRecord(ent.rec))
		return true
	})

	return records, nil
}

func (s *Store) DeleteRecord(collection, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.records.Delete(&entry{collection: collection, key: key})
	return item != nil, nil
}

func (s *Store) CountRecords(collection string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	s.records.Ascend(&entry{collection: collection}, func(i interface{}) bool {
		if i.(*entry).collection != collection {
			return false
		}
		n++
		return true
	})
	return n, nil
}

// ScanRecords snapshots the collection under the read lock and returns a
// one-shot iterator over the snapshot, so a scan never observes a
// half-applied write.
func (s *Store) ScanRecords(collection string) (*Rows, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []*models.Record
	s.records.Ascend(&entry{collection: collection}, func(i interface{}) bool {
		ent := i.(*entry)
		if ent.collection != collection {
			return false
		}
		records = append(records, cloneRecord(ent.rec))
		return true
	})

	return &Rows{records: records}, nil
}

func (s *Store) Close() error {
	return nil
}

func cloneRecord(rec *models.Record) *models.Record {
	cp := *rec
	cp.Fields = make(map[string]interface{}, len(rec.Fields))
	for k, v := range rec.Fields {
		cp.Fields[k] = v
	}
	return &cp
}

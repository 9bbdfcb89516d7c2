package memstore

import (
	"testing"
	"time"

	"recordbase/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s := New()
	require.NoError(t, s.CreateCollection(&models.Collection{Name: "users", CreatedAt: time.Now()}))
	return s
}

func record(key string, fields map[string]interface{}) *models.Record {
	return &models.Record{
		Key:        key,
		Collection: "users",
		Fields:     fields,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

func TestStore_SaveAndGet(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SaveRecord(record("u1", map[string]interface{}{"name": "Ada"})))

	rec, err := s.GetRecord("users", "u1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Ada", rec.Fields["name"])

	// The store holds its own copy: mutating the returned record does
	// not leak back in
	rec.Fields["name"] = "changed"
	again, err := s.GetRecord("users", "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", again.Fields["name"])
}

func TestStore_GetMissing(t *testing.T) {
	s := newTestStore(t)

	rec, err := s.GetRecord("users", "missing")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestStore_SaveOverwrites(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SaveRecord(record("u1", map[string]interface{}{"v": 1.0})))
	require.NoError(t, s.SaveRecord(record("u1", map[string]interface{}{"v": 2.0})))

	rec, err := s.GetRecord("users", "u1")
	require.NoError(t, err)
	assert.Equal(t, 2.0, rec.Fields["v"])

	n, err := s.CountRecords("users")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStore_ListRecords(t *testing.T) {
	s := newTestStore(t)
	for _, key := range []string{"c", "a", "b"} {
		require.NoError(t, s.SaveRecord(record(key, nil)))
	}

	records, err := s.ListRecords("users", 10, 0)
	require.NoError(t, err)
	require.Len(t, records, 3)
	// Keys come back in order
	assert.Equal(t, "a", records[0].Key)
	assert.Equal(t, "c", records[2].Key)

	// Pagination
	page, err := s.ListRecords("users", 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "b", page[0].Key)
}

func TestStore_DeleteRecord(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SaveRecord(record("u1", nil)))

	found, err := s.DeleteRecord("users", "u1")
	require.NoError(t, err)
	assert.True(t, found)

	rec, err := s.GetRecord("users", "u1")
	require.NoError(t, err)
	assert.Nil(t, rec)

	found, err = s.DeleteRecord("users", "u1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_Collections(t *testing.T) {
	s := New()

	require.NoError(t, s.CreateCollection(&models.Collection{Name: "b"}))
	require.NoError(t, s.CreateCollection(&models.Collection{Name: "a"}))
	assert.Error(t, s.CreateCollection(&models.Collection{Name: "a"}))

	cols, err := s.ListCollections()
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.Equal(t, "a", cols[0].Name)
}

func TestStore_DeleteCollectionRemovesRecords(t *testing.T) {
	s := New()
	require.NoError(t, s.CreateCollection(&models.Collection{Name: "users"}))
	require.NoError(t, s.CreateCollection(&models.Collection{Name: "orders"}))

	require.NoError(t, s.SaveRecord(record("u1", nil)))
	require.NoError(t, s.SaveRecord(&models.Record{Key: "o1", Collection: "orders"}))

	found, err := s.DeleteCollection("users")
	require.NoError(t, err)
	assert.True(t, found)

	n, err := s.CountRecords("users")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// Sibling collection untouched
	n, err = s.CountRecords("orders")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	found, err = s.DeleteCollection("users")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_ScanRecords(t *testing.T) {
	s := newTestStore(t)
	for _, key := range []string{"a", "b"} {
		require.NoError(t, s.SaveRecord(record(key, nil)))
	}

	rows, err := s.ScanRecords("users")
	require.NoError(t, err)

	var keys []string
	for rows.Next() {
		keys = append(keys, rows.Record().Key)
	}
	require.NoError(t, rows.Err())
	require.NoError(t, rows.Close())

	assert.Equal(t, []string{"a", "b"}, keys)

	// One-shot: closed rows yield nothing
	assert.False(t, rows.Next())
}

package database

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"recordbase/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) *Repository {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "recordbase-db-test-*")
	require.NoError(t, err, "Failed to create temp directory")

	db, err := New(filepath.Join(tmpDir, "test.db"))
	require.NoError(t, err, "Failed to initialize test database")
	require.NoError(t, db.Migrate(), "Failed to run migrations")

	t.Cleanup(func() {
		db.Close()
		os.RemoveAll(tmpDir)
	})

	return NewRepository(db)
}

func seedCollection(t *testing.T, repo *Repository, name string) {
	t.Helper()

	require.NoError(t, repo.CreateCollection(&models.Collection{
		Name:      name,
		Fields:    []models.FieldDef{{Name: "name", Type: models.FieldString, Required: true}},
		CreatedAt: time.Now(),
	}))
}

func TestRepository_Collections(t *testing.T) {
	repo := setupRepo(t)
	seedCollection(t, repo, "users")

	col, err := repo.GetCollection("users")
	require.NoError(t, err)
	require.NotNil(t, col)
	assert.Equal(t, "users", col.Name)
	require.Len(t, col.Fields, 1)
	assert.True(t, col.Fields[0].Required)

	missing, err := repo.GetCollection("missing")
	require.NoError(t, err)
	assert.Nil(t, missing)

	cols, err := repo.ListCollections()
	require.NoError(t, err)
	assert.Len(t, cols, 1)
}

func TestRepository_RecordRoundtrip(t *testing.T) {
	repo := setupRepo(t)
	seedCollection(t, repo, "users")

	now := time.Now()
	rec := &models.Record{
		Key:        "u1",
		Collection: "users",
		Fields:     map[string]interface{}{"name": "Ada", "age": 36.0},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, repo.SaveRecord(rec))

	got, err := repo.GetRecord("users", "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ada", got.Fields["name"])
	assert.Equal(t, 36.0, got.Fields["age"])

	// Upsert replaces in place
	rec.Fields["name"] = "Ada L."
	require.NoError(t, repo.SaveRecord(rec))

	got, err = repo.GetRecord("users", "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", got.Fields["name"])

	n, err := repo.CountRecords("users")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRepository_ListRecords(t *testing.T) {
	repo := setupRepo(t)
	seedCollection(t, repo, "users")

	for _, key := range []string{"b", "a", "c"} {
		require.NoError(t, repo.SaveRecord(&models.Record{
			Key:        key,
			Collection: "users",
			Fields:     map[string]interface{}{"name": key},
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}))
	}

	records, err := repo.ListRecords("users", 10, 0)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "a", records[0].Key)

	page, err := repo.ListRecords("users", 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "c", page[0].Key)
}

func TestRepository_DeleteRecord(t *testing.T) {
	repo := setupRepo(t)
	seedCollection(t, repo, "users")

	require.NoError(t, repo.SaveRecord(&models.Record{
		Key: "u1", Collection: "users",
		Fields:    map[string]interface{}{"name": "Ada"},
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))

	found, err := repo.DeleteRecord("users", "u1")
	require.NoError(t, err)
	assert.True(t, found)

	got, err := repo.GetRecord("users", "u1")
	require.NoError(t, err)
	assert.Nil(t, got)

	found, err = repo.DeleteRecord("users", "u1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRepository_DeleteCollectionCascades(t *testing.T) {
	repo := setupRepo(t)
	seedCollection(t, repo, "users")

	require.NoError(t, repo.SaveRecord(&models.Record{
		Key: "u1", Collection: "users",
		Fields:    map[string]interface{}{"name": "Ada"},
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))

	found, err := repo.DeleteCollection("users")
	require.NoError(t, err)
	assert.True(t, found)

	got, err := repo.GetRecord("users", "u1")
	require.NoError(t, err)
	assert.Nil(t, got)

	found, err = repo.DeleteCollection("users")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRepository_ScanRecords(t *testing.T) {
	repo := setupRepo(t)
	seedCollection(t, repo, "users")

	for _, key := range []string{"a", "b"} {
		require.NoError(t, repo.SaveRecord(&models.Record{
			Key: key, Collection: "users",
			Fields:    map[string]interface{}{"name": key},
			CreatedAt: time.Now(), UpdatedAt: time.Now(),
		}))
	}

	rows, err := repo.ScanRecords("users")
	require.NoError(t, err)
	defer rows.Close()

	var keys []string
	for rows.Next() {
		keys = append(keys, rows.Record().Key)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestRepository_WithTx(t *testing.T) {
	repo := setupRepo(t)
	seedCollection(t, repo, "users")

	boom := errors.New("boom")
	err := repo.WithTx(func(tx *sql.Tx) error {
		_, execErr := tx.Exec(`
			INSERT INTO records (collection, key, fields_json, created_at, updated_at)
			VALUES ('users', 'u1', '{}', ?, ?)
		`, time.Now(), time.Now())
		require.NoError(t, execErr)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	// The write rolled back with the failing unit of work
	got, getErr := repo.GetRecord("users", "u1")
	require.NoError(t, getErr)
	assert.Nil(t, got)
}

package services

import (
	"time"

	"recordbase/config"
	"recordbase/models"
	"recordbase/query"
	"recordbase/schema"

	"github.com/google/uuid"
)

// RecordService handles business logic for records
type RecordService struct {
	repo          RecordRepository
	deleteMissing string
}

// NewRecordService creates a new record service. deleteMissing is the
// configured policy for deleting a key that has no record ("error" or
// "ignore").
func NewRecordService(repo RecordRepository, deleteMissing string) *RecordService {
	return &RecordService{
		repo:          repo,
		deleteMissing: deleteMissing,
	}
}

// Save validates the fields against the collection's schema and writes
// the record. An empty key means the store assigns one. Validation runs
// before the write, so the store never observes an invalid record.
func (rs *RecordService) Save(collectionName, key string, fields map[string]interface{}) (*models.Record, error) {
	col, err := rs.repo.GetCollection(collectionName)
	if err != nil {
		return nil, err
	}
	if col == nil {
		return nil, ErrCollectionNotFound
	}

	validated, err := schema.ValidateFields(fields, col.Fields)
	if err != nil {
		return nil, err
	}

	if key == "" {
		key = uuid.New().String()
	}

	now := time.Now()
	rec := &models.Record{
		Key:        key,
		Collection: collectionName,
		Fields:     validated,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	// Updates keep the original creation time
	existing, err := rs.repo.GetRecord(collectionName, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		rec.CreatedAt = existing.CreatedAt
	}

	if err := rs.repo.SaveRecord(rec); err != nil {
		return nil, err
	}

	return rec, nil
}

// Get retrieves a record by key
func (rs *RecordService) Get(collectionName, key string) (*models.Record, error) {
	rec, err := rs.repo.GetRecord(collectionName, key)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrRecordNotFound
	}
	return rec, nil
}

// List retrieves records in a collection with pagination
func (rs *RecordService) List(collectionName string, limit, offset int) ([]models.Record, error) {
	col, err := rs.repo.GetCollection(collectionName)
	if err != nil {
		return nil, err
	}
	if col == nil {
		return nil, ErrCollectionNotFound
	}

	// Validate and normalize pagination params
	if limit < 1 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	return rs.repo.ListRecords(collectionName, limit, offset)
}

// Delete removes a record permanently. When the key has no record the
// configured policy decides between an error and a no-op.
func (rs *RecordService) Delete(collectionName, key string) error {
	found, err := rs.repo.DeleteRecord(collectionName, key)
	if err != nil {
		return err
	}
	if !found && rs.deleteMissing == config.DeleteMissingError {
		return ErrRecordNotFound
	}
	return nil
}

// Query compiles the expression, streams the collection through it and
// collects the matches. The underlying iterator is lazy and one-shot;
// it is always closed here.
func (rs *RecordService) Query(req models.QueryRequest) ([]models.Record, error) {
	col, err := rs.repo.GetCollection(req.Collection)
	if err != nil {
		return nil, err
	}
	if col == nil {
		return nil, ErrCollectionNotFound
	}

	q, err := query.Compile(req.Expression, req.Params)
	if err != nil {
		return nil, err
	}

	src, err := rs.repo.ScanRecords(req.Collection)
	if err != nil {
		return nil, err
	}

	rows := q.Run(src, req.Limit)
	defer rows.Close()

	records := make([]models.Record, 0)
	for rows.Next() {
		records = append(records, *rows.Record())
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

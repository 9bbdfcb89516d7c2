package services

import (
	"time"

	"recordbase/models"
)

// CollectionInfo is a collection together with its record count.
type CollectionInfo struct {
	models.Collection
	RecordCount int `json:"record_count"`
}

// CollectionService handles business logic for collections
type CollectionService struct {
	repo CollectionRepository
}

// NewCollectionService creates a new collection service
func NewCollectionService(repo CollectionRepository) *CollectionService {
	return &CollectionService{repo: repo}
}

// Create declares a new collection with optional field constraints
func (cs *CollectionService) Create(name string, fields []models.FieldDef) (*models.Collection, error) {
	existing, err := cs.repo.GetCollection(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCollectionExists
	}

	col := &models.Collection{
		Name:      name,
		Fields:    fields,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := cs.repo.CreateCollection(col); err != nil {
		return nil, err
	}

	return col, nil
}

// Get retrieves one collection with its record count
func (cs *CollectionService) Get(name string) (*CollectionInfo, error) {
	col, err := cs.repo.GetCollection(name)
	if err != nil {
		return nil, err
	}
	if col == nil {
		return nil, ErrCollectionNotFound
	}

	count, err := cs.repo.CountRecords(name)
	if err != nil {
		return nil, err
	}

	return &CollectionInfo{Collection: *col, RecordCount: count}, nil
}

// List retrieves all collections with their record counts
func (cs *CollectionService) List() ([]CollectionInfo, error) {
	cols, err := cs.repo.ListCollections()
	if err != nil {
		return nil, err
	}

	infos := make([]CollectionInfo, 0, len(cols))
	for _, col := range cols {
		count, err := cs.repo.CountRecords(col.Name)
		if err != nil {
			return nil, err
		}
		infos = append(infos, CollectionInfo{Collection: col, RecordCount: count})
	}

	return infos, nil
}

// Delete removes a collection and every record in it
func (cs *CollectionService) Delete(name string) error {
	found, err := cs.repo.DeleteCollection(name)
	if err != nil {
		return err
	}
	if !found {
		return ErrCollectionNotFound
	}
	return nil
}

package services

import (
	"recordbase/models"
	"recordbase/storage"
)

// RecordRepository defines the interface for record data access
type RecordRepository interface {
	SaveRecord(rec *models.Record) error
	GetRecord(collection, key string) (*models.Record, error)
	ListRecords(collection string, limit, offset int) ([]models.Record, error)
	DeleteRecord(collection, key string) (bool, error)
	GetCollection(name string) (*models.Collection, error)
	ScanRecords(collection string) (storage.Rows, error)
}

// CollectionRepository defines the interface for collection data access
type CollectionRepository interface {
	CreateCollection(col *models.Collection) error
	GetCollection(name string) (*models.Collection, error)
	ListCollections() ([]models.Collection, error)
	DeleteCollection(name string) (bool, error)
	CountRecords(collection string) (int, error)
}

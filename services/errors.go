package services

import "errors"

// Common service-level errors
var (
	// Record errors
	ErrRecordNotFound = errors.New("record not found")

	// Collection errors
	ErrCollectionNotFound = errors.New("collection not found")
	ErrCollectionExists   = errors.New("collection already exists")
)

package ingestion

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreRequired is returned when no store is provided.
	ErrStoreRequired = errors.New("store required")

	// ErrEmbedderRequired is returned when no embedder is provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrInvalidBatchSize is returned for a batch size <= 0.
	ErrInvalidBatchSize = errors.New("batch size must be greater than 0")

	// ErrInvalidDimension is returned for a vector dimension <= 0.
	ErrInvalidDimension = errors.New("dimension must be greater than 0")

	// ErrCollectionRequired is returned for an empty collection name.
	ErrCollectionRequired = errors.New("collection name required")
)

// StoreError reports a store failure during a write. Batch is the 1-based
// batch being submitted, or 0 when the failure happened while preparing
// the collection.
type StoreError struct {
	Op    string
	Batch int
	Err   error
}

func (e *StoreError) Error() string {
	if e.Batch > 0 {
		return fmt.Sprintf("store %s failed at batch %d: %v", e.Op, e.Batch, e.Err)
	}
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

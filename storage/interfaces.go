package storage

import (
	"context"

	"github.com/poiesic/pageindex/core"
)

// CollectionStore is a vector-database handle exposing named collections
// of documents.
type CollectionStore interface {
	// ListCollections returns the names of all existing collections.
	ListCollections(ctx context.Context) ([]string, error)

	// CreateCollection creates a collection whose vectors have the given
	// dimension. Creating a collection that already exists with the same
	// dimension is not an error.
	CreateCollection(ctx context.Context, name string, dimension int) error

	// InsertMany inserts docs into the collection as one request.
	// Returns ErrCollectionNotFound if the collection doesn't exist,
	// ErrDuplicateKey if any id is already present and
	// ErrDimensionMismatch if any vector has the wrong length.
	InsertMany(ctx context.Context, collection string, docs []*core.StoredDocument) error

	// Close releases resources held by the store.
	Close() error
}

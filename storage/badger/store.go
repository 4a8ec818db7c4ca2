// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/pageindex/core"
	"github.com/poiesic/pageindex/storage"
)

// Store implements storage.CollectionStore on a BadgerDB backend.
// Each collection records its vector dimension; documents are keyed by
// collection and id.
type Store struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.CollectionStore = (*Store)(nil)

// NewStore opens (or creates) a BadgerDB store at path.
// Returns storage.CollectionStore interface to enforce abstraction.
func NewStore(path string) (storage.CollectionStore, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	return newStore(backend), nil
}

func newStore(backend *Backend) *Store {
	return &Store{
		backend: backend,
		logger:  slog.Default().With("component", "badger-store"),
	}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.backend.IsClosed() {
		return nil
	}
	return s.backend.Close()
}

func (s *Store) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	return nil
}

// ListCollections returns all collection names in key order.
func (s *Store) ListCollections(ctx context.Context) ([]string, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}

	names := []string{}
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(collectionPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			names = append(names, collectionNameFromKey(iter.Item().Key()))
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return names, nil
}

// CreateCollection records a collection with the given vector dimension.
// An existing collection with the same dimension is left alone; a
// different dimension yields storage.ErrDimensionMismatch.
func (s *Store) CreateCollection(ctx context.Context, name string, dimension int) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	if dimension <= 0 {
		return storage.ErrInvalidDimension
	}

	return s.backend.WithTx(func(tx *badger.Txn) error {
		existing, err := readDimension(tx, name)
		switch {
		case err == nil:
			if existing != dimension {
				return fmt.Errorf("%w: collection %q has dimension %d, requested %d",
					storage.ErrDimensionMismatch, name, existing, dimension)
			}
			return nil
		case !errors.Is(err, storage.ErrCollectionNotFound):
			return err
		}

		buf := make([]byte, varint.Int.Size(dimension))
		varint.Int.Marshal(dimension, buf)
		if err := tx.Set(makeCollectionKey(name), buf); err != nil {
			return err
		}
		s.logger.Debug("created collection", "name", name, "dimension", dimension)
		return tx.Commit()
	}, true)
}

// InsertMany stores docs in a single transaction. Nothing is written if
// any document fails validation.
func (s *Store) InsertMany(ctx context.Context, collection string, docs []*core.StoredDocument) error {
	if err := s.check(ctx); err != nil {
		return err
	}

	return s.backend.WithTx(func(tx *badger.Txn) error {
		dimension, err := readDimension(tx, collection)
		if err != nil {
			return err
		}

		for _, doc := range docs {
			if len(doc.Vector) != dimension {
				return fmt.Errorf("%w: document %s has %d elements, collection %q expects %d",
					storage.ErrDimensionMismatch, doc.ID, len(doc.Vector), collection, dimension)
			}

			key := makeDocumentKey(collection, doc.ID)
			_, err := tx.Get(key)
			if err == nil {
				return fmt.Errorf("%w: %s", storage.ErrDuplicateKey, doc.ID)
			}
			if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}

			if err := tx.Set(key, storage.MarshalStoredDocument(doc)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetDocument returns a stored document by id.
// Returns storage.ErrNotFound if no document with that id exists.
func (s *Store) GetDocument(ctx context.Context, collection, id string) (*core.StoredDocument, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}

	var doc *core.StoredDocument
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeDocumentKey(collection, id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s in %q", storage.ErrNotFound, id, collection)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			doc, err = storage.UnmarshalStoredDocument(val)
			return err
		})
	}, false)
	return doc, err
}

// CountDocuments returns the number of documents in a collection.
func (s *Store) CountDocuments(ctx context.Context, collection string) (int, error) {
	if err := s.check(ctx); err != nil {
		return 0, err
	}

	count := 0
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		if _, err := readDimension(tx, collection); err != nil {
			return err
		}

		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = makeDocumentPrefix(collection)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// readDimension loads a collection's vector dimension.
func readDimension(tx *badger.Txn, collection string) (int, error) {
	item, err := tx.Get(makeCollectionKey(collection))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, fmt.Errorf("%w: %q", storage.ErrCollectionNotFound, collection)
	}
	if err != nil {
		return 0, err
	}

	var dimension int
	err = item.Value(func(val []byte) error {
		var err error
		dimension, _, err = varint.Int.Unmarshal(val)
		if err != nil {
			return fmt.Errorf("%w: collection %q metadata: %w", storage.ErrSerializationFailed, collection, err)
		}
		return nil
	})
	return dimension, err
}

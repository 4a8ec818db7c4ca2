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


package ingestion

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/poiesic/pageindex/core"
	"github.com/poiesic/pageindex/storage"
)

const (
	// DefaultCollection is the collection documents are written to.
	DefaultCollection = "textbook"

	// DefaultDimension is the vector width of text-embedding-004.
	DefaultDimension = 768

	// DefaultBatchSize is the number of documents per insert request.
	DefaultBatchSize = 10
)

// WriteResult summarizes a completed write.
type WriteResult struct {
	// Created reports whether the collection had to be created.
	Created bool

	// Stored is the number of documents acknowledged by the store.
	Stored int

	// Batches is the number of insert requests made.
	Batches int

	// IDs holds the assigned document ids in input order.
	IDs []string
}

// WriterOption configures a Writer.
type WriterOption func(*Writer) error

// WithCollection sets the target collection name.
func WithCollection(name string) WriterOption {
	return func(w *Writer) error {
		if name == "" {
			return ErrCollectionRequired
		}
		w.collection = name
		return nil
	}
}

// WithDimension sets the vector dimension used when creating the collection.
func WithDimension(dim int) WriterOption {
	return func(w *Writer) error {
		if dim <= 0 {
			return ErrInvalidDimension
		}
		w.dimension = dim
		return nil
	}
}

// WithBatchSize sets the number of documents per insert request.
func WithBatchSize(size int) WriterOption {
	return func(w *Writer) error {
		if size <= 0 {
			return ErrInvalidBatchSize
		}
		w.batchSize = size
		return nil
	}
}

// WithWriterLogger sets a custom logger.
// Default is slog.Default().
func WithWriterLogger(logger *slog.Logger) WriterOption {
	return func(w *Writer) error {
		if logger == nil {
			logger = slog.Default()
		}
		w.logger = logger
		return nil
	}
}

// WithWriterProgress sets where "Stored batch i/n" lines are written.
func WithWriterProgress(out io.Writer) WriterOption {
	return func(w *Writer) error {
		w.progress = out
		return nil
	}
}

// Writer persists embedded chunks into a store collection in batches.
type Writer struct {
	store      storage.CollectionStore
	collection string
	dimension  int
	batchSize  int
	logger     *slog.Logger
	progress   io.Writer
	newID      func() string
}

// NewWriter creates a Writer over store.
func NewWriter(store storage.CollectionStore, opts ...WriterOption) (*Writer, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	w := &Writer{
		store:      store,
		collection: DefaultCollection,
		dimension:  DefaultDimension,
		batchSize:  DefaultBatchSize,
		logger:     slog.Default(),
		progress:   io.Discard,
		newID:      core.NewDocumentID,
	}
	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}
	if w.progress == nil {
		w.progress = io.Discard
	}
	w.logger = w.logger.With("component", "writer", "collection", w.collection)

	return w, nil
}

// Collection returns the target collection name.
func (w *Writer) Collection() string {
	return w.collection
}

// EnsureCollection creates the collection if it is not listed.
// Reports whether it was created. Listing and creating are separate
// requests; a concurrent creator can race this check.
func (w *Writer) EnsureCollection(ctx context.Context) (bool, error) {
	names, err := w.store.ListCollections(ctx)
	if err != nil {
		return false, &StoreError{Op: "list collections", Err: err}
	}
	if slices.Contains(names, w.collection) {
		w.logger.Debug("collection exists")
		return false, nil
	}

	if err := w.store.CreateCollection(ctx, w.collection, w.dimension); err != nil {
		return false, &StoreError{Op: "create collection", Err: err}
	}
	w.logger.Info("created collection", "dimension", w.dimension)
	return true, nil
}

// Write ensures the collection exists, assigns each chunk a fresh id and
// inserts the documents batch by batch, in order. The first failure stops
// the write; earlier batches remain stored and are counted in the
// returned partial result.
func (w *Writer) Write(ctx context.Context, chunks []core.EmbeddedChunk) (*WriteResult, error) {
	result := &WriteResult{IDs: []string{}}

	created, err := w.EnsureCollection(ctx)
	if err != nil {
		return result, err
	}
	result.Created = created

	docs := make([]*core.StoredDocument, len(chunks))
	for i, chunk := range chunks {
		docs[i] = &core.StoredDocument{
			ID:     w.newID(),
			Label:  chunk.Label,
			Text:   chunk.Text,
			Vector: chunk.Vector,
		}
	}

	batches := Batches(docs, w.batchSize)
	for i, batch := range batches {
		if err := ctx.Err(); err != nil {
			return result, &StoreError{Op: "insert", Batch: i + 1, Err: err}
		}

		if err := w.store.InsertMany(ctx, w.collection, batch); err != nil {
			w.logger.Error("batch insert failed", "batch", i+1, "batches", len(batches), "err", err)
			return result, &StoreError{Op: "insert", Batch: i + 1, Err: err}
		}

		result.Batches++
		result.Stored += len(batch)
		for _, doc := range batch {
			result.IDs = append(result.IDs, doc.ID)
		}
		fmt.Fprintf(w.progress, "Stored batch %d/%d\n", i+1, len(batches))
		w.logger.Debug("stored batch", "batch", i+1, "batches", len(batches), "size", len(batch))
	}

	return result, nil
}

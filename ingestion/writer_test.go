package ingestion

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/poiesic/pageindex/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func embeddedChunks(n int) []core.EmbeddedChunk {
	out := make([]core.EmbeddedChunk, n)
	for i := range out {
		label := fmt.Sprint(i + 1)
		out[i] = core.EmbeddedChunk{
			Label:  label,
			Text:   "Page Number - " + label + "\n\ncontent",
			Vector: []float32{0.1, 0.2, 0.3},
		}
	}
	return out
}

func TestNewWriter(t *testing.T) {
	t.Run("nil store", func(t *testing.T) {
		_, err := NewWriter(nil)
		assert.ErrorIs(t, err, ErrStoreRequired)
	})

	t.Run("defaults", func(t *testing.T) {
		w, err := NewWriter(newRecordingStore())
		require.NoError(t, err)
		assert.Equal(t, DefaultCollection, w.collection)
		assert.Equal(t, DefaultDimension, w.dimension)
		assert.Equal(t, DefaultBatchSize, w.batchSize)
	})

	t.Run("invalid options", func(t *testing.T) {
		_, err := NewWriter(newRecordingStore(), WithBatchSize(0))
		assert.ErrorIs(t, err, ErrInvalidBatchSize)
		_, err = NewWriter(newRecordingStore(), WithDimension(-1))
		assert.ErrorIs(t, err, ErrInvalidDimension)
		_, err = NewWriter(newRecordingStore(), WithCollection(""))
		assert.ErrorIs(t, err, ErrCollectionRequired)
	})
}

func TestEnsureCollection(t *testing.T) {
	ctx := context.Background()

	t.Run("creates missing collection", func(t *testing.T) {
		store := newRecordingStore("other")
		w, err := NewWriter(store, WithDimension(3))
		require.NoError(t, err)

		created, err := w.EnsureCollection(ctx)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, 3, store.collections[DefaultCollection])
	})

	t.Run("existing collection is reused", func(t *testing.T) {
		store := newRecordingStore(DefaultCollection)
		w, err := NewWriter(store)
		require.NoError(t, err)

		created, err := w.EnsureCollection(ctx)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Zero(t, store.createCalls)
	})

	t.Run("list failure", func(t *testing.T) {
		store := newRecordingStore()
		store.listErr = errors.New("unauthorized")
		w, err := NewWriter(store)
		require.NoError(t, err)

		_, err = w.EnsureCollection(ctx)
		var storeErr *StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "list collections", storeErr.Op)
		assert.ErrorIs(t, err, store.listErr)
	})

	t.Run("create failure", func(t *testing.T) {
		store := newRecordingStore()
		store.createErr = errors.New("quota")
		w, err := NewWriter(store)
		require.NoError(t, err)

		_, err = w.EnsureCollection(ctx)
		var storeErr *StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "create collection", storeErr.Op)
	})
}

func TestWrite_BatchCount(t *testing.T) {
	for _, tt := range []struct{ n, size, calls int }{
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{7, 3, 3},
	} {
		t.Run(fmt.Sprintf("%d docs batch %d", tt.n, tt.size), func(t *testing.T) {
			store := newRecordingStore()
			var out bytes.Buffer
			w, err := NewWriter(store, WithBatchSize(tt.size), WithDimension(3), WithWriterProgress(&out))
			require.NoError(t, err)

			res, err := w.Write(context.Background(), embeddedChunks(tt.n))
			require.NoError(t, err)

			assert.Len(t, store.inserts, tt.calls)
			for _, batch := range store.inserts {
				assert.LessOrEqual(t, len(batch), tt.size)
			}
			assert.Equal(t, tt.n, res.Stored)
			assert.Equal(t, tt.calls, res.Batches)
			assert.Contains(t, out.String(), fmt.Sprintf("Stored batch %d/%d\n", tt.calls, tt.calls))
		})
	}
}

func TestWrite_DocumentsCarryChunkData(t *testing.T) {
	store := newRecordingStore()
	w, err := NewWriter(store, WithBatchSize(2))
	require.NoError(t, err)

	chunks := embeddedChunks(5)
	res, err := w.Write(context.Background(), chunks)
	require.NoError(t, err)

	docs := store.stored()
	require.Len(t, docs, 5)
	seen := map[string]bool{}
	for i, doc := range docs {
		assert.Equal(t, chunks[i].Label, doc.Label)
		assert.Equal(t, chunks[i].Text, doc.Text)
		assert.Equal(t, chunks[i].Vector, doc.Vector)
		assert.NotEmpty(t, doc.ID)
		assert.False(t, seen[doc.ID], "ids are unique")
		seen[doc.ID] = true
		assert.Equal(t, doc.ID, res.IDs[i])
	}
}

func TestWrite_FreshIDsPerRun(t *testing.T) {
	store := newRecordingStore()
	w, err := NewWriter(store)
	require.NoError(t, err)

	chunks := embeddedChunks(2)
	first, err := w.Write(context.Background(), chunks)
	require.NoError(t, err)
	second, err := w.Write(context.Background(), chunks)
	require.NoError(t, err)

	assert.Len(t, store.stored(), 4, "no deduplication across runs")
	assert.NotEqual(t, first.IDs, second.IDs)
}

func TestWrite_AbortsOnInsertFailure(t *testing.T) {
	store := newRecordingStore()
	store.failInsertAt = 2
	store.insertErr = errors.New("connection reset")
	var out bytes.Buffer
	w, err := NewWriter(store, WithBatchSize(10), WithWriterProgress(&out))
	require.NoError(t, err)

	res, err := w.Write(context.Background(), embeddedChunks(25))

	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, 2, storeErr.Batch)
	assert.Equal(t, "insert", storeErr.Op)
	assert.ErrorIs(t, err, store.insertErr)
	assert.Contains(t, err.Error(), "batch 2")

	assert.Len(t, store.inserts, 1, "batch 3 is never attempted")
	assert.Equal(t, 10, res.Stored)
	assert.Equal(t, 1, res.Batches)
	assert.Contains(t, out.String(), "Stored batch 1/3")
	assert.NotContains(t, out.String(), "Stored batch 2/3")
}

func TestWrite_EmptyInputStillEnsuresCollection(t *testing.T) {
	store := newRecordingStore()
	w, err := NewWriter(store)
	require.NoError(t, err)

	res, err := w.Write(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Zero(t, res.Batches)
	assert.Empty(t, store.inserts)
}

func TestWrite_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := newRecordingStore(DefaultCollection)
	w, err := NewWriter(store)
	require.NoError(t, err)

	_, err = w.Write(ctx, embeddedChunks(3))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, store.inserts)
}

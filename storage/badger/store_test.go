package badger

import (
	"context"
	"testing"

	"github.com/poiesic/pageindex/core"
	"github.com/poiesic/pageindex/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func doc(id, label string, vector ...float32) *core.StoredDocument {
	return &core.StoredDocument{ID: id, Label: label, Text: "Page Number - " + label, Vector: vector}
}

func TestCollections(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	names, err := store.ListCollections(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, store.CreateCollection(ctx, "textbook", 3))
	require.NoError(t, store.CreateCollection(ctx, "appendix", 3))

	names, err = store.ListCollections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"appendix", "textbook"}, names)
}

func TestCreateCollection(t *testing.T) {
	ctx := context.Background()

	t.Run("idempotent with same dimension", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, store.CreateCollection(ctx, "textbook", 768))
		assert.NoError(t, store.CreateCollection(ctx, "textbook", 768))
	})

	t.Run("conflicting dimension", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, store.CreateCollection(ctx, "textbook", 768))
		err := store.CreateCollection(ctx, "textbook", 3)
		assert.ErrorIs(t, err, storage.ErrDimensionMismatch)
	})

	t.Run("invalid dimension", func(t *testing.T) {
		store := newTestStore(t)
		assert.ErrorIs(t, store.CreateCollection(ctx, "textbook", 0), storage.ErrInvalidDimension)
	})
}

func TestInsertMany(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.CreateCollection(ctx, "textbook", 3))

	docs := []*core.StoredDocument{
		doc("a", "1", 0.5, 0.5, 0.5),
		doc("b", "2", 0.5, 0.5, 0.5),
	}
	require.NoError(t, store.InsertMany(ctx, "textbook", docs))

	count, err := store.CountDocuments(ctx, "textbook")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	got, err := store.GetDocument(ctx, "textbook", "b")
	require.NoError(t, err)
	assert.Equal(t, docs[1], got)

	_, err = store.GetDocument(ctx, "textbook", "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestInsertMany_Rejections(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		existing []*core.StoredDocument
		batch    []*core.StoredDocument
		target   error
	}{
		{
			name:     "duplicate of stored id",
			existing: []*core.StoredDocument{doc("a", "1", 1, 2, 3)},
			batch:    []*core.StoredDocument{doc("c", "3", 1, 2, 3), doc("a", "1", 1, 2, 3)},
			target:   storage.ErrDuplicateKey,
		},
		{
			name:   "duplicate within batch",
			batch:  []*core.StoredDocument{doc("x", "1", 1, 2, 3), doc("x", "2", 1, 2, 3)},
			target: storage.ErrDuplicateKey,
		},
		{
			name:   "wrong dimension",
			batch:  []*core.StoredDocument{doc("y", "1", 1, 2, 3), doc("z", "2", 1, 2)},
			target: storage.ErrDimensionMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			require.NoError(t, store.CreateCollection(ctx, "textbook", 3))
			if len(tt.existing) > 0 {
				require.NoError(t, store.InsertMany(ctx, "textbook", tt.existing))
			}

			err := store.InsertMany(ctx, "textbook", tt.batch)
			require.ErrorIs(t, err, tt.target)

			count, err := store.CountDocuments(ctx, "textbook")
			require.NoError(t, err)
			assert.Equal(t, len(tt.existing), count, "rejected batch writes nothing")
		})
	}
}

func TestInsertMany_UnknownCollection(t *testing.T) {
	store := newTestStore(t)
	err := store.InsertMany(context.Background(), "nope", []*core.StoredDocument{doc("a", "1", 1)})
	assert.ErrorIs(t, err, storage.ErrCollectionNotFound)
}

func TestStoreClosed(t *testing.T) {
	ctx := context.Background()
	store, err := NewMemoryStore()
	require.NoError(t, err)
	require.NoError(t, store.Close())
	require.NoError(t, store.Close(), "second close is a no-op")

	_, err = store.ListCollections(ctx)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	assert.ErrorIs(t, store.CreateCollection(ctx, "textbook", 3), storage.ErrStorageClosed)
	assert.ErrorIs(t, store.InsertMany(ctx, "textbook", nil), storage.ErrStorageClosed)
}

func TestNewStore_Persists(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.CreateCollection(ctx, "textbook", 2))
	require.NoError(t, store.InsertMany(ctx, "textbook", []*core.StoredDocument{doc("a", "1", 1, 2)}))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	names, err := reopened.ListCollections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"textbook"}, names)

	count, err := reopened.(*Store).CountDocuments(ctx, "textbook")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

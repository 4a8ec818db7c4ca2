package ingestion

import (
	"context"
	"slices"

	"github.com/poiesic/pageindex/core"
)

// recordingStore is a storage.CollectionStore that records every call.
type recordingStore struct {
	collections map[string]int
	inserts     [][]*core.StoredDocument
	listCalls   int
	createCalls int

	listErr   error
	createErr error
	// failInsertAt fails the nth InsertMany call (1-based) with insertErr.
	failInsertAt int
	insertErr    error
}

func newRecordingStore(existing ...string) *recordingStore {
	s := &recordingStore{collections: map[string]int{}}
	for _, name := range existing {
		s.collections[name] = 3
	}
	return s
}

func (s *recordingStore) ListCollections(ctx context.Context) ([]string, error) {
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

func (s *recordingStore) CreateCollection(ctx context.Context, name string, dimension int) error {
	s.createCalls++
	if s.createErr != nil {
		return s.createErr
	}
	s.collections[name] = dimension
	return nil
}

func (s *recordingStore) InsertMany(ctx context.Context, collection string, docs []*core.StoredDocument) error {
	if s.failInsertAt > 0 && len(s.inserts)+1 == s.failInsertAt {
		return s.insertErr
	}
	s.inserts = append(s.inserts, slices.Clone(docs))
	return nil
}

func (s *recordingStore) Close() error {
	return nil
}

func (s *recordingStore) stored() []*core.StoredDocument {
	var all []*core.StoredDocument
	for _, batch := range s.inserts {
		all = append(all, batch...)
	}
	return all
}

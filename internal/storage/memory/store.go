package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/DevLabStudio/goldquest-ledger/internal/storage"
)

// Store is an in-memory record store. It is the default driver and the one
// used by tests; contents are lost on shutdown.
type Store struct {
	mu      sync.RWMutex
	records map[string]*storage.Record
}

var _ storage.IRecordStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{records: make(map[string]*storage.Record)}
}

func key(entityType, id string) string {
	return entityType + "/" + id
}

// clone copies a record so callers never share backing memory with the store.
func clone(record *storage.Record) *storage.Record {
	copied := *record
	copied.Value = append([]byte(nil), record.Value...)
	return &copied
}

func (s *Store) Get(ctx context.Context, entityType, id string) (*storage.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[key(entityType, id)]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return clone(record), nil
}

func (s *Store) Put(ctx context.Context, record *storage.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := clone(record)
	stored.UpdatedAt = time.Now().UTC()
	s.records[key(record.EntityType, record.ID)] = stored
	return nil
}

func (s *Store) Delete(ctx context.Context, entityType, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(entityType, id)
	if _, ok := s.records[k]; !ok {
		return storage.ErrNotFound
	}
	delete(s.records, k)
	return nil
}

func (s *Store) List(ctx context.Context, entityType string) ([]*storage.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*storage.Record
	for _, record := range s.records {
		if record.EntityType == entityType {
			result = append(result, clone(record))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *Store) Close() error {
	return nil
}

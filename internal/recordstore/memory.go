package recordstore

import (
	"context"
	"encoding/json"
	"sync"

	"unicube-hr/internal/shared/apperror"
)

// MemoryStore holds collections as marshaled JSON in memory. Used by tests
// so the engines run against the real read-modify-write contract without a
// filesystem or database.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) ReadAll(ctx context.Context, collection string, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.data[collection]
	if !ok {
		data = []byte("[]")
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperror.StoreIO(err)
	}
	return nil
}

func (s *MemoryStore) WriteAll(ctx context.Context, collection string, records any) error {
	data, err := json.Marshal(records)
	if err != nil {
		return apperror.StoreIO(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[collection] = data
	return nil
}

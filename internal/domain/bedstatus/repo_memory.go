package bedstatus

import (
	"context"
	"sync"

	"github.com/geims/bedboard/internal/domain/ward"
)

// MemoryStore is a process-local Store for development and tests. Records are
// lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[ward.BedID]BedRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[ward.BedID]BedRecord)}
}

func (s *MemoryStore) GetAll(_ context.Context) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := make(Snapshot, len(s.records))
	for k, v := range s.records {
		snap[k] = v
	}
	return snap, nil
}

func (s *MemoryStore) SetOne(_ context.Context, id ward.BedID, rec BedRecord) error {
	s.mu.Lock()
	s.records[id] = rec
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}

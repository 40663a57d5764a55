package bedstatus

import (
	"context"
	"sync"

	"github.com/geims/bedboard/internal/domain/ward"
)

// flakyStore wraps a MemoryStore and fails on demand.
type flakyStore struct {
	*MemoryStore
	mu      sync.Mutex
	getErr  error
	setErr  error
	pingErr error
	sets    int
}

func newFlakyStore() *flakyStore {
	return &flakyStore{MemoryStore: NewMemoryStore()}
}

func (s *flakyStore) GetAll(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	err := s.getErr
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return s.MemoryStore.GetAll(ctx)
}

func (s *flakyStore) SetOne(ctx context.Context, id ward.BedID, rec BedRecord) error {
	s.mu.Lock()
	s.sets++
	err := s.setErr
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.MemoryStore.SetOne(ctx, id, rec)
}

func (s *flakyStore) Ping(_ context.Context) error {
	return s.pingErr
}

func testCatalog() *ward.Catalog {
	return ward.MustCatalog([]ward.Ward{
		{Name: "MICU", Beds: []ward.BedID{"MICU-1", "MICU-2", "SHARED-1"}},
		{Name: "SICU", Beds: []ward.BedID{"SICU-1", "SHARED-1"}},
	})
}

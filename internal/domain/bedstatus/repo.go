package bedstatus

import (
	"context"

	"github.com/geims/bedboard/internal/domain/ward"
)

// Store persists one BedRecord per bed id. Implementations must make SetOne
// atomic per key and must not block GetAll on concurrent writers. Same-key
// writes are last-write-wins.
type Store interface {
	// GetAll returns every existing record.
	GetAll(ctx context.Context) (Snapshot, error)
	// SetOne upserts the record for id, replacing any previous value whole.
	SetOne(ctx context.Context, id ward.BedID, rec BedRecord) error
}

// Pinger is implemented by stores that can report backend health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Closer is implemented by stores holding a connection.
type Closer interface {
	Close() error
}

package bedstatus

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/geims/bedboard/internal/domain/ward"
	"github.com/geims/bedboard/internal/platform/metrics"
)

// unknownStatusLabel groups statuses outside the closed set in the bed gauge.
const unknownStatusLabel = "UNKNOWN"

type Service struct {
	store   Store
	catalog *ward.Catalog
	gateway *Gateway
	logger  zerolog.Logger
	metrics *metrics.Metrics
	timeout time.Duration
	now     func() time.Time
}

// NewService wires the board around an already opened store. A zero timeout
// leaves store calls bounded only by the caller's context.
func NewService(store Store, catalog *ward.Catalog, logger zerolog.Logger, m *metrics.Metrics, timeout time.Duration) *Service {
	return &Service{
		store:   store,
		catalog: catalog,
		gateway: NewGateway(store, catalog, logger, m),
		logger:  logger,
		metrics: m,
		timeout: timeout,
		now:     time.Now,
	}
}

func (s *Service) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// snapshot always reads through to the store.
func (s *Service) snapshot(ctx context.Context) (Snapshot, error) {
	ctx, cancel := s.storeCtx(ctx)
	defer cancel()
	snap, err := s.store.GetAll(ctx)
	s.metrics.ObserveRead(err)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return snap, nil
}

// Beds resolves every catalog bed. When the store cannot be read every bed
// is returned at the VACANT default and degraded is true.
func (s *Service) Beds(ctx context.Context) (views map[ward.BedID]*ResolvedBedView, degraded bool) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("bed snapshot unavailable, serving defaults")
		degraded = true
	}
	return Resolve(s.catalog, snap), degraded
}

// Board builds the full presentation payload from a fresh snapshot.
func (s *Service) Board(ctx context.Context) *Board {
	views, degraded := s.Beds(ctx)
	summary := Summarize(views)
	if !degraded {
		s.metrics.SetBedCounts(gaugeCounts(summary))
	}
	return &Board{
		Wards:       Group(s.catalog, views),
		Summary:     summary,
		Degraded:    degraded,
		GeneratedAt: s.now().UTC(),
	}
}

// Bed resolves a single bed. Ids outside the catalog resolve only when the
// store holds a record for them.
func (s *Service) Bed(ctx context.Context, id ward.BedID) (*ResolvedBedView, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if _, stored := snap[id]; !stored && !s.catalog.Contains(id) {
		return nil, fmt.Errorf("%w: %s", ErrBedNotFound, id)
	}
	return resolveOne(id, snap), nil
}

// Apply writes through the gateway and returns the record as persisted.
func (s *Service) Apply(ctx context.Context, id ward.BedID, status, patient string) (BedRecord, error) {
	ctx, cancel := s.storeCtx(ctx)
	defer cancel()
	if err := s.gateway.Apply(ctx, id, status, patient); err != nil {
		return BedRecord{}, err
	}
	canonical, _ := ParseStatus(status)
	return BedRecord{Status: string(canonical), Patient: patient}, nil
}

// BedWards names the wards that list id; empty for out-of-catalog beds.
func (s *Service) BedWards(id ward.BedID) []string {
	wards := s.catalog.WardsFor(id)
	if wards == nil {
		return []string{}
	}
	return wards
}

func (s *Service) Wards() []ward.Ward {
	return s.catalog.ListWards()
}

// AdminBedIDs lists the distinct bed ids offered for selection, sorted.
func (s *Service) AdminBedIDs() []ward.BedID {
	return s.catalog.SortedBedIDs()
}

// Ping checks the store backend. Stores without a health check always pass.
func (s *Service) Ping(ctx context.Context) error {
	p, ok := s.store.(Pinger)
	if !ok {
		return nil
	}
	ctx, cancel := s.storeCtx(ctx)
	defer cancel()
	return p.Ping(ctx)
}

func gaugeCounts(summary map[string]int) map[string]int {
	out := make(map[string]int, len(allStatuses)+1)
	for status, n := range summary {
		if _, ok := ParseStatus(status); ok {
			out[status] += n
			continue
		}
		out[unknownStatusLabel] += n
	}
	return out
}

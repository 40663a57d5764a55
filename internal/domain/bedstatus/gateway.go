package bedstatus

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/geims/bedboard/internal/domain/ward"
	"github.com/geims/bedboard/internal/platform/auth"
	"github.com/geims/bedboard/internal/platform/metrics"
)

// Gateway validates admin writes and passes them through to the store. It
// does not check authorization; callers gate it with an auth.Guard.
type Gateway struct {
	store   Store
	catalog *ward.Catalog
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

func NewGateway(store Store, catalog *ward.Catalog, logger zerolog.Logger, m *metrics.Metrics) *Gateway {
	return &Gateway{store: store, catalog: catalog, logger: logger, metrics: m}
}

// Apply replaces the record for bedID with {status, patient}. The previous
// record is never read, so the patient is not carried over. Failed writes
// leave the stored record untouched and are not retried.
func (g *Gateway) Apply(ctx context.Context, bedID ward.BedID, status, patient string) error {
	bedID = ward.BedID(strings.TrimSpace(string(bedID)))
	if bedID == "" {
		g.metrics.ObserveWrite(metrics.WriteInvalidBed)
		return &WriteError{BedID: bedID, Kind: ErrInvalidBed}
	}

	canonical, ok := ParseStatus(status)
	if !ok {
		g.metrics.ObserveWrite(metrics.WriteInvalidStatus)
		return &WriteError{BedID: bedID, Kind: ErrInvalidStatus, Err: fmt.Errorf("unknown status %q", status)}
	}

	inCatalog := g.catalog.Contains(bedID)
	if !inCatalog {
		g.logger.Warn().
			Str("bed_id", string(bedID)).
			Msg("writing status for bed not in catalog")
	}

	rec := BedRecord{Status: string(canonical), Patient: patient}
	method := auth.AdminMethodFromContext(ctx)
	if err := g.store.SetOne(ctx, bedID, rec); err != nil {
		g.metrics.ObserveWrite(metrics.WriteStoreFailure)
		g.logger.Error().Err(err).
			Str("bed_id", string(bedID)).
			Str("admin_method", method).
			Str("status", rec.Status).
			Msg("bed status write failed")
		return &WriteError{BedID: bedID, Kind: ErrStoreUnavailable, Err: err}
	}

	g.metrics.ObserveWrite(metrics.WriteOK)
	g.logger.Info().
		Str("bed_id", string(bedID)).
		Str("status", rec.Status).
		Bool("in_catalog", inCatalog).
		Str("admin_method", method).
		Msg("bed status updated")
	return nil
}

package bedstatus

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/geims/bedboard/internal/domain/ward"
)

// pgConn is the part of *pgxpool.Pool the store uses.
type pgConn interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
}

type pgBedRow struct {
	BedID   string
	Status  string
	Patient string
}

// PGStore keeps bed records in the icu_beds table (see migrations). The
// upsert is a single statement, so each write is atomic per bed.
type PGStore struct {
	pool *pgxpool.Pool
	db   pgConn
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool, db: pool}
}

func (s *PGStore) GetAll(ctx context.Context) (Snapshot, error) {
	rows, err := s.db.Query(ctx, `SELECT bed_id, status, patient FROM icu_beds`)
	if err != nil {
		return nil, fmt.Errorf("query icu_beds: %w", err)
	}
	beds, err := pgx.CollectRows(rows, pgx.RowToStructByPos[pgBedRow])
	if err != nil {
		return nil, fmt.Errorf("read icu_beds: %w", err)
	}

	snap := make(Snapshot, len(beds))
	for _, b := range beds {
		snap[ward.BedID(b.BedID)] = BedRecord{Status: b.Status, Patient: b.Patient}
	}
	return snap, nil
}

func (s *PGStore) SetOne(ctx context.Context, id ward.BedID, rec BedRecord) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO icu_beds (bed_id, status, patient, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (bed_id) DO UPDATE
		SET status = EXCLUDED.status, patient = EXCLUDED.patient, updated_at = NOW()`,
		string(id), rec.Status, rec.Patient)
	if err != nil {
		return fmt.Errorf("upsert icu_beds %s: %w", id, err)
	}
	return nil
}

func (s *PGStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *PGStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

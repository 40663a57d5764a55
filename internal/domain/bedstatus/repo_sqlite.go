package bedstatus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/geims/bedboard/internal/domain/ward"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS icu_beds (
	bed_id     TEXT PRIMARY KEY,
	status     TEXT NOT NULL,
	patient    TEXT NOT NULL DEFAULT '',
	updated_at TEXT NOT NULL
)`

// SQLiteStore keeps bed records in a single-file database, for deployments
// that run one board instance without a shared server.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore opens (creating if needed) the database at path.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		path = "bedboard.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create icu_beds table: %w", err)
	}
	return newSQLiteStore(db), nil
}

// sqliteDSN applies the pragmas on every pooled connection, not just the
// first one. WAL lets readers proceed while a writer holds the lock, and the
// busy timeout makes concurrent writers wait instead of failing.
func sqliteDSN(path string) string {
	return "file:" + path + "?_pragma=busy_timeout(" + sqliteBusyTimeoutMS + ")&_pragma=journal_mode(WAL)"
}

const sqliteBusyTimeoutMS = "5000"

func newSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

func (s *SQLiteStore) GetAll(ctx context.Context) (Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT bed_id, status, patient FROM icu_beds`)
	if err != nil {
		return nil, fmt.Errorf("select icu_beds: %w", err)
	}
	defer func() { _ = rows.Close() }()

	snap := make(Snapshot)
	for rows.Next() {
		var id, status, patient string
		if err := rows.Scan(&id, &status, &patient); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		snap[ward.BedID(id)] = BedRecord{Status: status, Patient: patient}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate icu_beds: %w", err)
	}
	return snap, nil
}

func (s *SQLiteStore) SetOne(ctx context.Context, id ward.BedID, rec BedRecord) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO icu_beds (bed_id, status, patient, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(bed_id) DO UPDATE SET
			status = excluded.status,
			patient = excluded.patient,
			updated_at = excluded.updated_at`,
		string(id), rec.Status, rec.Patient, s.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("upsert icu_beds %s: %w", id, err)
	}
	return nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

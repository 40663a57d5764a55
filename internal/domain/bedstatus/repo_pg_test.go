package bedstatus

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// Runs against a real database when BEDBOARD_TEST_DATABASE_URL is set. The
// icu_beds table is created if missing and emptied before the run.
func TestPGStore_Contract(t *testing.T) {
	dsn := os.Getenv("BEDBOARD_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("BEDBOARD_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)

	_, err = pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS icu_beds (
		bed_id TEXT PRIMARY KEY,
		status TEXT NOT NULL,
		patient TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `TRUNCATE icu_beds`)
	require.NoError(t, err)

	store := NewPGStore(pool)
	t.Cleanup(func() { _ = store.Close() })

	storeContract(t, store)
	require.NoError(t, store.Ping(ctx))
}

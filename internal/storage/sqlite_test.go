package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rpgo/nestegg/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T, key string) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "db", "inputs.db"), key)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore(t *testing.T) {
	testStoreContract(t, openTestSQLite(t, ""))
}

func TestSQLiteStore_UpdatedAt(t *testing.T) {
	ctx := context.Background()
	store := openTestSQLite(t, DefaultKey)
	store.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }

	require.NoError(t, store.Save(ctx, sampleInputs()))

	var updated string
	require.NoError(t, store.db.QueryRowContext(ctx,
		`SELECT updated_at FROM input_slots WHERE key = ?`, DefaultKey).Scan(&updated))
	assert.Equal(t, "2025-01-02T03:04:05Z", updated)
}

func TestSQLiteStore_Corrupt(t *testing.T) {
	ctx := context.Background()
	store := openTestSQLite(t, DefaultKey)

	_, err := store.db.ExecContext(ctx,
		`INSERT INTO input_slots (key, value, updated_at) VALUES (?, ?, ?)`,
		DefaultKey, `[1, 2, 3]`, "2025-01-01T00:00:00Z")
	require.NoError(t, err)

	_, err = store.Load(ctx)
	assertCorrupt(t, err)
}

func TestSQLiteStore_ClosedDatabase(t *testing.T) {
	store, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "inputs.db"), DefaultKey)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	err = store.Save(context.Background(), sampleInputs())
	assert.ErrorIs(t, err, domain.ErrStorage)
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rpgo/nestegg/internal/domain"

	_ "modernc.org/sqlite" // register sqlite driver
)

const sqliteSchemaSQL = `
CREATE TABLE IF NOT EXISTS input_slots (
    key          TEXT PRIMARY KEY,
    value        TEXT NOT NULL,
    updated_at   TEXT NOT NULL
);
`

// SQLiteStore keeps slots in a key/value table of an embedded database.
type SQLiteStore struct {
	db  *sql.DB
	key string
	now func() time.Time
}

var _ InputStore = (*SQLiteStore)(nil)

// OpenSQLite opens or creates the database at dbPath.
func OpenSQLite(ctx context.Context, dbPath, key string) (*SQLiteStore, error) {
	if key == "" {
		key = DefaultKey
	}

	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, storageErr(OpOpen, key, fmt.Errorf("creating db dir: %w", err))
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, storageErr(OpOpen, key, fmt.Errorf("opening db: %w", err))
	}
	if dbPath == ":memory:" {
		// Each connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	if _, err := db.ExecContext(ctx, sqliteSchemaSQL); err != nil {
		_ = db.Close()
		return nil, storageErr(OpOpen, key, fmt.Errorf("creating schema: %w", err))
	}

	return &SQLiteStore{db: db, key: key, now: time.Now}, nil
}

// Save upserts the slot.
func (s *SQLiteStore) Save(ctx context.Context, in domain.Inputs) error {
	data, err := encodeInputs(in)
	if err != nil {
		return storageErr(OpSave, s.key, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO input_slots (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE
		SET value = excluded.value,
		    updated_at = excluded.updated_at
	`, s.key, string(data), s.now().UTC().Format(time.RFC3339))
	if err != nil {
		return storageErr(OpSave, s.key, err)
	}
	return nil
}

// Load reads the slot.
func (s *SQLiteStore) Load(ctx context.Context) (domain.Inputs, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM input_slots WHERE key = ?`, s.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DefaultInputs(), nil
	}
	if err != nil {
		return domain.Inputs{}, storageErr(OpLoad, s.key, err)
	}

	if isEmptySlot([]byte(value)) {
		return domain.DefaultInputs(), nil
	}
	in, err := decodeInputs([]byte(value))
	if err != nil {
		return domain.Inputs{}, storageErr(OpLoad, s.key, err)
	}
	return in, nil
}

// Reset deletes the slot.
func (s *SQLiteStore) Reset(ctx context.Context) (domain.Inputs, error) {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM input_slots WHERE key = ?`, s.key); err != nil {
		return domain.Inputs{}, storageErr(OpReset, s.key, err)
	}
	return domain.DefaultInputs(), nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}


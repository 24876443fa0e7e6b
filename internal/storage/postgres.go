package storage

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rpgo/nestegg/internal/domain"
)

//go:embed schema/postgres.sql
var postgresSchemaSQL string

// Pool wraps pgxpool.Pool for dependency injection.
type Pool struct {
	*pgxpool.Pool
}

// NewPool creates a new Postgres connection pool.
func NewPool(ctx context.Context, dsn string) (*Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// Migrate applies the embedded schema. It is idempotent.
func (p *Pool) Migrate(ctx context.Context) error {
	if _, err := p.Exec(ctx, postgresSchemaSQL); err != nil {
		return fmt.Errorf("apply postgres schema: %w", err)
	}
	return nil
}

// PostgresStore keeps slots in a jsonb table.
type PostgresStore struct {
	pool *Pool
	key  string
	own  bool
}

var _ InputStore = (*PostgresStore)(nil)

// OpenPostgres connects, applies the schema and returns a store that owns the pool.
func OpenPostgres(ctx context.Context, dsn, key string) (*PostgresStore, error) {
	if key == "" {
		key = DefaultKey
	}

	pool, err := NewPool(ctx, dsn)
	if err != nil {
		return nil, storageErr(OpOpen, key, err)
	}
	if err := pool.Migrate(ctx); err != nil {
		pool.Close()
		return nil, storageErr(OpOpen, key, err)
	}

	store := NewPostgresStore(pool, key)
	store.own = true
	return store, nil
}

// NewPostgresStore creates a store on an existing, migrated pool. Close does
// not close a pool passed in this way.
func NewPostgresStore(pool *Pool, key string) *PostgresStore {
	if key == "" {
		key = DefaultKey
	}
	return &PostgresStore{pool: pool, key: key}
}

// Save upserts the slot.
func (s *PostgresStore) Save(ctx context.Context, in domain.Inputs) error {
	data, err := encodeInputs(in)
	if err != nil {
		return storageErr(OpSave, s.key, err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO input_slots (key, value, updated_at)
		VALUES ($1, $2::jsonb, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value,
		    updated_at = NOW()
	`, s.key, string(data))
	if err != nil {
		return storageErr(OpSave, s.key, err)
	}
	return nil
}

// Load reads the slot.
func (s *PostgresStore) Load(ctx context.Context) (domain.Inputs, error) {
	var value string
	err := s.pool.QueryRow(ctx, `SELECT value::text FROM input_slots WHERE key = $1`, s.key).Scan(&value)
	if err != nil {
		if isNotFoundError(err) {
			return domain.DefaultInputs(), nil
		}
		return domain.Inputs{}, storageErr(OpLoad, s.key, err)
	}

	if isEmptySlot([]byte(value)) || value == "null" {
		return domain.DefaultInputs(), nil
	}
	in, err := decodeInputs([]byte(value))
	if err != nil {
		return domain.Inputs{}, storageErr(OpLoad, s.key, err)
	}
	return in, nil
}

// Reset deletes the slot.
func (s *PostgresStore) Reset(ctx context.Context) (domain.Inputs, error) {
	if _, err := s.pool.Exec(ctx, `DELETE FROM input_slots WHERE key = $1`, s.key); err != nil {
		return domain.Inputs{}, storageErr(OpReset, s.key, err)
	}
	return domain.DefaultInputs(), nil
}

// Close closes the pool when the store opened it.
func (s *PostgresStore) Close() error {
	if s.own {
		s.pool.Close()
	}
	return nil
}

// isNotFoundError checks if error indicates no rows found.
func isNotFoundError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

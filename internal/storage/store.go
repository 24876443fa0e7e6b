// Package storage persists the last-used calculator inputs in a single
// key/value slot. Every backend serializes the record as JSON and returns
// the default record when the slot is empty.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rpgo/nestegg/internal/domain"
)

// DefaultKey is the slot the inputs are stored under.
const DefaultKey = "retirementInputs"

// Storage operation names reported in StorageError.Op.
const (
	OpOpen  = "open"
	OpSave  = "save"
	OpLoad  = "load"
	OpReset = "reset"
)

var (
	// ErrCorrupt is wrapped when the slot holds data that does not decode.
	ErrCorrupt = errors.New("corrupt stored inputs")

	// ErrUnknownDriver is returned by Open for an unsupported backend name.
	ErrUnknownDriver = errors.New("unknown storage driver")
)

// InputStore persists, retrieves and clears the last-used input record.
type InputStore interface {
	// Save replaces the slot with in.
	Save(ctx context.Context, in domain.Inputs) error
	// Load returns the stored record, or domain.DefaultInputs() when the slot is empty.
	Load(ctx context.Context) (domain.Inputs, error)
	// Reset clears the slot and returns domain.DefaultInputs().
	Reset(ctx context.Context) (domain.Inputs, error)
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Driver string // memory, file, sqlite or postgres
	Path   string
	DSN    string
	Key    string
}

func (o Options) key() string {
	if strings.TrimSpace(o.Key) == "" {
		return DefaultKey
	}
	return o.Key
}

// Open creates the backend named by opts.Driver.
func Open(ctx context.Context, opts Options) (InputStore, error) {
	key := opts.key()

	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case "memory", "mem":
		return NewMemoryStore(key), nil
	case "", "file", "json":
		if opts.Path == "" {
			return nil, storageErr(OpOpen, key, errors.New("file store requires a path"))
		}
		return NewFileStore(opts.Path, key), nil
	case "sqlite", "sqlite3":
		if opts.Path == "" {
			return nil, storageErr(OpOpen, key, errors.New("sqlite store requires a path"))
		}
		return OpenSQLite(ctx, opts.Path, key)
	case "postgres", "postgresql", "pg":
		if opts.DSN == "" {
			return nil, storageErr(OpOpen, key, errors.New("postgres store requires a dsn"))
		}
		return OpenPostgres(ctx, opts.DSN, key)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
}

func storageErr(op, key string, err error) error {
	return &domain.StorageError{Op: op, Key: key, Err: err}
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/rpgo/nestegg/internal/domain"
)

// FileStore keeps slots in a single JSON document, {"<key>": {...}}, so
// several keys can share one file.
type FileStore struct {
	mu   sync.Mutex
	path string
	key  string
}

// NewFileStore creates a store backed by the JSON file at path. The file and
// its directory are created on first save.
func NewFileStore(path, key string) *FileStore {
	if key == "" {
		key = DefaultKey
	}
	return &FileStore{path: path, key: key}
}

var _ InputStore = (*FileStore)(nil)

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

// Save writes the record into the slot, keeping any other slots in the file.
func (s *FileStore) Save(_ context.Context, in domain.Inputs) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := encodeInputs(in)
	if err != nil {
		return storageErr(OpSave, s.key, err)
	}

	slots, err := s.readSlots()
	if err != nil {
		return storageErr(OpSave, s.key, err)
	}
	slots[s.key] = data

	if err := s.writeSlots(slots); err != nil {
		return storageErr(OpSave, s.key, err)
	}
	return nil
}

// Load reads the slot, returning defaults when the file or slot is missing.
func (s *FileStore) Load(_ context.Context) (domain.Inputs, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.readSlots()
	if err != nil {
		return domain.Inputs{}, storageErr(OpLoad, s.key, err)
	}

	data, ok := slots[s.key]
	if !ok || isEmptySlot(data) || string(data) == "null" {
		return domain.DefaultInputs(), nil
	}
	in, err := decodeInputs(data)
	if err != nil {
		return domain.Inputs{}, storageErr(OpLoad, s.key, err)
	}
	return in, nil
}

// Reset removes the slot; the file is deleted once no slots remain.
func (s *FileStore) Reset(_ context.Context) (domain.Inputs, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.readSlots()
	if err != nil && !errors.Is(err, ErrCorrupt) {
		return domain.Inputs{}, storageErr(OpReset, s.key, err)
	}
	if err == nil {
		delete(slots, s.key)
	}
	// A corrupt file cannot be edited slot by slot; reset discards it.
	if err != nil || len(slots) == 0 {
		if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
			return domain.Inputs{}, storageErr(OpReset, s.key, err)
		}
		return domain.DefaultInputs(), nil
	}

	if err := s.writeSlots(slots); err != nil {
		return domain.Inputs{}, storageErr(OpReset, s.key, err)
	}
	return domain.DefaultInputs(), nil
}

// Close is a no-op.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) readSlots() (map[string]json.RawMessage, error) {
	slots := make(map[string]json.RawMessage)

	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return slots, nil
		}
		return nil, err
	}
	if isEmptySlot(b) {
		return slots, nil
	}
	if err := json.Unmarshal(b, &slots); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	return slots, nil
}

func (s *FileStore) writeSlots(slots map[string]json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	b, err := json.MarshalIndent(slots, "", "  ")
	if err != nil {
		return err
	}

	// Atomic-ish write: tmp then rename.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

package storage

import (
	"context"
	"sync"

	"github.com/rpgo/nestegg/internal/domain"
)

// MemoryStore keeps the encoded slot in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	key  string
	data []byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(key string) *MemoryStore {
	if key == "" {
		key = DefaultKey
	}
	return &MemoryStore{key: key}
}

var _ InputStore = (*MemoryStore)(nil)

// Save encodes and stores the record.
func (s *MemoryStore) Save(_ context.Context, in domain.Inputs) error {
	data, err := encodeInputs(in)
	if err != nil {
		return storageErr(OpSave, s.key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	return nil
}

// Load decodes the stored record.
func (s *MemoryStore) Load(_ context.Context) (domain.Inputs, error) {
	s.mu.RLock()
	data := s.data
	s.mu.RUnlock()

	if isEmptySlot(data) {
		return domain.DefaultInputs(), nil
	}
	in, err := decodeInputs(data)
	if err != nil {
		return domain.Inputs{}, storageErr(OpLoad, s.key, err)
	}
	return in, nil
}

// Reset clears the slot.
func (s *MemoryStore) Reset(_ context.Context) (domain.Inputs, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	return domain.DefaultInputs(), nil
}

// Put stores raw bytes in the slot, bypassing the encoder.
func (s *MemoryStore) Put(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }

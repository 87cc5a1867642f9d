// Package memory is an in-process storage backend.
package memory

import (
	"context"
	"sync"

	"crm/internal/storage"
)

// Store keeps slot payloads in a map.
type Store struct {
	mu       sync.Mutex
	slots    map[string][]byte
	readErr  error
	writeErr error
	writes   int
}

// New returns an empty store.
func New() *Store {
	return &Store{slots: map[string][]byte{}}
}

// Get returns a copy of the payload stored under slot.
func (s *Store) Get(_ context.Context, slot string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	data, ok := s.slots[slot]
	if !ok {
		return nil, storage.ErrSlotNotFound
	}
	return append([]byte(nil), data...), nil
}

// Put stores a copy of payload under slot.
func (s *Store) Put(_ context.Context, slot string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	s.slots[slot] = append([]byte(nil), payload...)
	s.writes++
	return nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

// Fail makes subsequent reads and writes return the given errors. Nil
// clears the failure.
func (s *Store) Fail(readErr, writeErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readErr = readErr
	s.writeErr = writeErr
}

// Writes returns the number of successful Put calls.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

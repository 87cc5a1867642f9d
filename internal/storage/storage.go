// Package storage persists whole-collection snapshots. Each collection kind
// lives in one named slot of a key-value Backend; the slot payload is a
// versioned JSON envelope around the record array.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bytedance/sonic"

	"crm/internal/record"
)

// Slot names for the persisted collections.
const (
	SlotCustomers = "customers"
	SlotDeals     = "deals"
	SlotTasks     = "tasks"
)

// SchemaVersion tags every envelope written by this build.
const SchemaVersion = 1

// ErrSlotNotFound is returned by a Backend when nothing was ever saved under a slot.
var ErrSlotNotFound = errors.New("slot not found")

// Backend is a key-value blob store.
type Backend interface {
	Get(ctx context.Context, slot string) ([]byte, error)
	Put(ctx context.Context, slot string, payload []byte) error
	Close() error
}

type envelope[T any] struct {
	Version int       `json:"version"`
	SavedAt time.Time `json:"saved_at"`
	Items   []T       `json:"items"`
}

// Slot reads and writes one collection kind.
type Slot[T any] struct {
	name    string
	backend Backend
	seed    func() []T
	timeout time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

// SlotOption customises a Slot.
type SlotOption[T any] func(*Slot[T])

// WithSeed sets the collection returned, and written, when the slot is empty.
func WithSeed[T any](seed func() []T) SlotOption[T] {
	return func(s *Slot[T]) { s.seed = seed }
}

// WithTimeout bounds every backend call.
func WithTimeout[T any](d time.Duration) SlotOption[T] {
	return func(s *Slot[T]) { s.timeout = d }
}

// WithLogger sets the logger used for best-effort seed writes.
func WithLogger[T any](logger *slog.Logger) SlotOption[T] {
	return func(s *Slot[T]) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSlot binds a slot name to a backend.
func NewSlot[T any](name string, backend Backend, opts ...SlotOption[T]) *Slot[T] {
	s := &Slot[T]{
		name:    name,
		backend: backend,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the slot name.
func (s *Slot[T]) Name() string {
	return s.name
}

// Load returns the latest persisted snapshot. An empty slot yields the seed
// collection, which is also written back so later loads see it.
func (s *Slot[T]) Load(ctx context.Context) ([]T, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	data, err := s.backend.Get(ctx, s.name)
	if errors.Is(err, ErrSlotNotFound) {
		var items []T
		if s.seed != nil {
			items = s.seed()
		}
		if err := s.save(ctx, items); err != nil {
			s.logger.Warn("seed snapshot not persisted", slog.String("slot", s.name), slog.String("error", err.Error()))
		}
		return items, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load %s: %w", record.ErrStorageUnavailable, s.name, err)
	}

	items, err := decode[T](data)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", record.ErrStorageUnavailable, s.name, err)
	}
	return items, nil
}

// Save overwrites the slot with items.
func (s *Slot[T]) Save(ctx context.Context, items []T) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.save(ctx, items)
}

func (s *Slot[T]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := sonic.ConfigStd.Marshal(envelope[T]{
		Version: SchemaVersion,
		SavedAt: s.now().UTC(),
		Items:   items,
	})
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", record.ErrStorageWriteFailed, s.name, err)
	}
	if err := s.backend.Put(ctx, s.name, data); err != nil {
		return fmt.Errorf("%w: save %s: %w", record.ErrStorageWriteFailed, s.name, err)
	}
	return nil
}

func (s *Slot[T]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// decode accepts the versioned envelope and the bare array written before
// envelopes existed.
func decode[T any](data []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := sonic.ConfigStd.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var env envelope[T]
	if err := sonic.ConfigStd.Unmarshal(trimmed, &env); err != nil {
		return nil, err
	}
	if env.Version > SchemaVersion {
		return nil, fmt.Errorf("snapshot version %d is newer than supported %d", env.Version, SchemaVersion)
	}
	return env.Items, nil
}

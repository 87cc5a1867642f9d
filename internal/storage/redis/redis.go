// Package redis stores collection snapshots as plain Redis strings.
package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"crm/internal/storage"
)

// DefaultPrefix namespaces snapshot keys.
const DefaultPrefix = "crm:snapshot:"

// Store is a storage.Backend over a Redis client.
type Store struct {
	client *goredis.Client
	prefix string
}

// New wraps an existing client. An empty prefix falls back to DefaultPrefix.
func New(client *goredis.Client, prefix string) *Store {
	if client == nil {
		panic("redis.New: client is nil")
	}
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

// Dial connects to addr and verifies the connection with PING.
func Dial(ctx context.Context, addr, password string, db int, prefix string) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return New(client, prefix), nil
}

// Get returns the payload stored under slot.
func (s *Store) Get(ctx context.Context, slot string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(slot)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, storage.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", slot, err)
	}
	return data, nil
}

// Put overwrites the payload stored under slot. Snapshots never expire.
func (s *Store) Put(ctx context.Context, slot string, payload []byte) error {
	if err := s.client.Set(ctx, s.key(slot), payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", slot, err)
	}
	return nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) key(slot string) string {
	return s.prefix + slot
}

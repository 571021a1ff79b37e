package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/animgraph/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.SlotStore using Redis.
//
// Each slot is a JSON string under <prefix><container>:slot:<key>; the keys
// of a container are indexed in a sorted set under <prefix><container>:index
// with a constant score, so ZRANGE returns them in lexical order.
type Store struct {
	client *backend.Client
	prefix string
}

type Option func(*Store)

// WithPrefix sets the key prefix for slots.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "animgraph:",
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// Client exposes the underlying client, e.g. to share it with a Locker.
func (s *Store) Client() *backend.Client {
	return s.client
}

func (s *Store) key(container, key string) string {
	return s.prefix + container + ":slot:" + key
}

func (s *Store) indexKey(container string) string {
	return s.prefix + container + ":index"
}

// Put persists the slot and indexes its key in one transaction.
func (s *Store) Put(ctx context.Context, container string, slot *domain.Slot) error {
	data, err := json.Marshal(slot)
	if err != nil {
		return fmt.Errorf("failed to marshal slot: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(container, slot.Key), data, 0)
	pipe.ZAdd(ctx, s.indexKey(container), backend.Z{Score: 0, Member: slot.Key})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Get retrieves the slot from Redis.
func (s *Store) Get(ctx context.Context, container, key string) (*domain.Slot, error) {
	val, err := s.client.Get(ctx, s.key(container, key)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var slot domain.Slot
	if err := json.Unmarshal(val, &slot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal slot: %w", err)
	}
	return &slot, nil
}

// Delete removes the slot and its index entry.
func (s *Store) Delete(ctx context.Context, container, key string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(container, key))
	pipe.ZRem(ctx, s.indexKey(container), key)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

// List returns the slot keys of a container.
func (s *Store) List(ctx context.Context, container string) ([]string, error) {
	keys, err := s.client.ZRange(ctx, s.indexKey(container), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	return keys, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}

package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aretw0/animgraph/pkg/domain"
	bolt "go.etcd.io/bbolt"
)

// Store implements ports.SlotStore on a bbolt file.
// Every container is a bucket keyed by slot key.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the database at filename.
func Open(filename string) (*Store, error) {
	db, err := bolt.Open(filename, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put writes the slot into its container's bucket.
func (s *Store) Put(ctx context.Context, container string, slot *domain.Slot) error {
	data, err := json.Marshal(slot)
	if err != nil {
		return fmt.Errorf("failed to marshal slot: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(container))
		if err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", container, err)
		}
		return b.Put([]byte(slot.Key), data)
	})
}

// Get reads a slot.
func (s *Store) Get(ctx context.Context, container, key string) (*domain.Slot, error) {
	var slot domain.Slot
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(container))
		if b == nil {
			return domain.ErrSlotNotFound
		}
		// The value is only valid inside the transaction; Unmarshal copies it.
		bs := b.Get([]byte(key))
		if bs == nil {
			return domain.ErrSlotNotFound
		}
		return json.Unmarshal(bs, &slot)
	})
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// Delete removes a slot. Missing containers and keys are ignored.
func (s *Store) Delete(ctx context.Context, container, key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(container))
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
}

// List returns the slot keys of a container in byte order.
func (s *Store) List(ctx context.Context, container string) ([]string, error) {
	keys := []string{}
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(container))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			keys = append(keys, string(k))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// Containers lists every container that has a bucket.
func (s *Store) Containers(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
			names = append(names, string(name))
			return nil
		})
	})
	return names, err
}

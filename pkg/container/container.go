package container

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/animgraph/pkg/domain"
	"github.com/aretw0/animgraph/pkg/ports"
	"github.com/google/uuid"
)

// ErrReservedKey is returned when publishing under the root marker key.
var ErrReservedKey = errors.New("slot key is reserved")

// Container is a view of one container. It does no locking of its own;
// obtain it through Manager.WithLock.
type Container struct {
	name   string
	store  ports.SlotStore
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	now    func() time.Time
}

// Name returns the container name.
func (c *Container) Name() string {
	return c.name
}

// Key composes the slot key <container>_<logical>_<kind>, e.g. "Avatar_Main_Animator".
func (c *Container) Key(logical, kind string) string {
	return SlotKey(c.name, logical, kind)
}

// SlotKey composes <container>_<logical>_<kind>.
func SlotKey(container, logical, kind string) string {
	return container + "_" + logical + "_" + kind
}

type rootContent struct {
	Container string    `json:"container"`
	CreatedAt time.Time `json:"created_at"`
}

// Root returns the root marker, creating it on first use.
func (c *Container) Root(ctx context.Context) (*domain.Slot, error) {
	slot, err := c.store.Get(ctx, c.name, domain.RootKey)
	if err == nil {
		return slot, nil
	}
	if !errors.Is(err, domain.ErrSlotNotFound) {
		return nil, fmt.Errorf("failed to read root marker: %w", err)
	}

	now := c.now()
	content, err := json.Marshal(rootContent{Container: c.name, CreatedAt: now})
	if err != nil {
		return nil, fmt.Errorf("failed to encode root marker: %w", err)
	}
	slot = &domain.Slot{
		Key:       domain.RootKey,
		ID:        uuid.NewString(),
		Content:   content,
		Revision:  1,
		UpdatedAt: now,
	}
	if err := c.store.Put(ctx, c.name, slot); err != nil {
		return nil, fmt.Errorf("failed to create root marker: %w", err)
	}
	c.logger.Debug("root marker created", "slot_id", slot.ID)
	return slot, nil
}

// Publish stores content under key and returns the slot.
//
// An existing slot keeps its ID and has its content overwritten; a missing
// one is created with a fresh ID. Identical content is left untouched.
// A nil content deletes the slot and returns (nil, nil).
func (c *Container) Publish(ctx context.Context, key string, content []byte) (*domain.Slot, error) {
	if key == "" {
		return nil, fmt.Errorf("slot key cannot be empty")
	}
	if key == domain.RootKey {
		return nil, fmt.Errorf("%w: %s", ErrReservedKey, key)
	}
	if content == nil {
		return nil, c.remove(ctx, key)
	}
	if _, err := c.Root(ctx); err != nil {
		return nil, err
	}

	slot, err := c.store.Get(ctx, c.name, key)
	created := false
	switch {
	case errors.Is(err, domain.ErrSlotNotFound):
		created = true
		slot = &domain.Slot{Key: key, ID: uuid.NewString()}
	case err != nil:
		return nil, fmt.Errorf("failed to look up slot %s: %w", key, err)
	case bytes.Equal(slot.Content, content):
		c.logger.Debug("slot unchanged", "key", key, "slot_id", slot.ID)
		return slot, nil
	}

	slot.Content = append([]byte(nil), content...)
	slot.Revision++
	slot.UpdatedAt = c.now()
	if err := c.store.Put(ctx, c.name, slot); err != nil {
		return nil, fmt.Errorf("failed to publish slot %s: %w", key, err)
	}

	c.logger.Debug("slot published", "key", key, "slot_id", slot.ID, "created", created, "revision", slot.Revision)
	if c.hooks.OnPublish != nil {
		c.hooks.OnPublish(ctx, &domain.SlotEvent{
			EventBase: domain.EventBase{Timestamp: slot.UpdatedAt, Type: domain.EventPublish, Container: c.name},
			Key:       key,
			SlotID:    slot.ID,
			Created:   created,
			Bytes:     len(content),
		})
	}
	return slot, nil
}

func (c *Container) remove(ctx context.Context, key string) error {
	slot, err := c.store.Get(ctx, c.name, key)
	if errors.Is(err, domain.ErrSlotNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up slot %s: %w", key, err)
	}
	if err := c.store.Delete(ctx, c.name, key); err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", key, err)
	}

	c.logger.Debug("slot removed", "key", key, "slot_id", slot.ID)
	if c.hooks.OnSlotRemoved != nil {
		c.hooks.OnSlotRemoved(ctx, &domain.SlotEvent{
			EventBase: domain.EventBase{Timestamp: c.now(), Type: domain.EventSlotRemoved, Container: c.name},
			Key:       key,
			SlotID:    slot.ID,
		})
	}
	return nil
}

// Lookup returns the slot under key, or domain.ErrSlotNotFound.
func (c *Container) Lookup(ctx context.Context, key string) (*domain.Slot, error) {
	return c.store.Get(ctx, c.name, key)
}

// Keys lists every slot key, root marker included.
func (c *Container) Keys(ctx context.Context) ([]string, error) {
	return c.store.List(ctx, c.name)
}

// Reset removes every slot except the root marker and returns how many were removed.
func (c *Container) Reset(ctx context.Context) (int, error) {
	return c.Prune(ctx)
}

// Prune removes every slot whose key is not in keep, sparing the root
// marker, and returns how many were removed.
func (c *Container) Prune(ctx context.Context, keep ...string) (int, error) {
	keys, err := c.store.List(ctx, c.name)
	if err != nil {
		return 0, fmt.Errorf("failed to list container %s: %w", c.name, err)
	}

	kept := make(map[string]bool, len(keep)+1)
	kept[domain.RootKey] = true
	for _, k := range keep {
		kept[k] = true
	}

	removed := 0
	for _, key := range keys {
		if kept[key] {
			continue
		}
		if err := c.remove(ctx, key); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

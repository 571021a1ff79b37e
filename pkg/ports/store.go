package ports

import (
	"context"

	"github.com/aretw0/animgraph/pkg/domain"
)

// SlotStore persists slots grouped by container.
//
// Implementations store the slot as given; minting IDs and bumping
// revisions is the container's job.
type SlotStore interface {
	// Get retrieves the slot stored under key.
	// Returns domain.ErrSlotNotFound if there is none.
	Get(ctx context.Context, container, key string) (*domain.Slot, error)

	// Put creates or replaces the slot stored under slot.Key.
	Put(ctx context.Context, container string, slot *domain.Slot) error

	// Delete removes the slot under key. Deleting a missing slot is not an error.
	Delete(ctx context.Context, container, key string) error

	// List returns the keys of every slot in the container, sorted.
	List(ctx context.Context, container string) ([]string, error)
}

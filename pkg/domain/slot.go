package domain

import "time"

// RootKey is the key of the container's own root marker.
// Reset never removes it.
const RootKey = "__root__"

// Slot is a persistent, identity-stable storage location inside a container.
// ID is assigned once, when the slot is created, and never changes;
// Content is replaced on every publish.
type Slot struct {
	Key       string    `json:"key"`
	ID        string    `json:"id"`
	Content   []byte    `json:"content"`
	Revision  int       `json:"revision"`
	UpdatedAt time.Time `json:"updated_at"`
}

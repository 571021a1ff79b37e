package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventPassStart   EventType = "pass_start"
	EventPassEnd     EventType = "pass_end"
	EventPublish     EventType = "publish"
	EventSlotRemoved EventType = "slot_removed"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Container string    `json:"container"`
}

// PassEvent marks the start or end of a regeneration pass.
type PassEvent struct {
	EventBase
	Outputs  int           `json:"outputs,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
	Err      error         `json:"-"`
}

// SlotEvent reports a publish or a removal.
type SlotEvent struct {
	EventBase
	Key     string `json:"key"`
	SlotID  string `json:"slot_id,omitempty"`
	Created bool   `json:"created,omitempty"`
	Bytes   int    `json:"bytes,omitempty"`
}

// LifecycleHooks defines callbacks for regeneration observability.
type LifecycleHooks struct {
	OnPassStart   func(context.Context, *PassEvent)
	OnPassEnd     func(context.Context, *PassEvent)
	OnPublish     func(context.Context, *SlotEvent)
	OnSlotRemoved func(context.Context, *SlotEvent)
}

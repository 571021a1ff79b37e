package domain

import (
	"errors"
	"fmt"
)

// ErrSlotNotFound is returned when a key has no slot in the store.
var ErrSlotNotFound = errors.New("slot not found")

// ErrKindMismatch is returned when a parameter name is requested with a kind
// different from the one it was created with.
var ErrKindMismatch = errors.New("parameter kind mismatch")

// ErrUnsupportedKind is returned when a builder receives a parameter kind it cannot drive.
var ErrUnsupportedKind = errors.New("unsupported parameter kind")

// ErrThresholdOrder is returned when two children of an axis share a threshold.
var ErrThresholdOrder = errors.New("axis thresholds must be strictly ascending")

// ErrClipCount is returned when the number of clips does not fit the builder's shape.
var ErrClipCount = errors.New("unexpected clip count")

// ErrReservedIndex is returned when a preset would occupy the randomize sentinel.
var ErrReservedIndex = errors.New("preset index collides with reserved selector value")

// ErrCoordinate is returned when two states of a layer collide.
var ErrCoordinate = errors.New("state coordinate collision")

// ErrNoPresets is returned when a preset layer is requested without presets.
var ErrNoPresets = errors.New("no presets")

// ErrLookup is returned when a referenced target or property cannot be resolved.
var ErrLookup = errors.New("lookup miss")

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

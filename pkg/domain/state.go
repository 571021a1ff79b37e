package domain

import (
	"fmt"
	"math/rand/v2"
)

// Transition moves the machine to Target when Guard holds.
// Exit transitions return to the layer's entry state instead.
type Transition struct {
	Target string    `json:"target,omitempty"`
	Exit   bool      `json:"exit,omitempty"`
	Guard  Condition `json:"guard"`
}

// State is one node of a layer.
// Rank and Index place the state on the layer grid; no two states of a
// layer share the same coordinate.
type State struct {
	Name        string        `json:"name"`
	Rank        int           `json:"rank"`
	Index       int           `json:"index"`
	Transitions []Transition  `json:"transitions,omitempty"`
	Drivers     []DriverBatch `json:"drivers,omitempty"`
	Motion      *BlendNode    `json:"motion,omitempty"`
	// WriteDefaults restores unanimated properties while the state is active.
	WriteDefaults bool `json:"write_defaults,omitempty"`
}

// TransitionsTo adds a state-specific transition to target.
func (s *State) TransitionsTo(target *State, guard Condition) *State {
	s.Transitions = append(s.Transitions, Transition{Target: target.Name, Guard: guard})
	return s
}

// Exits adds a transition back to the entry state.
func (s *State) Exits(guard Condition) *State {
	s.Transitions = append(s.Transitions, Transition{Exit: true, Guard: guard})
	return s
}

// Driving appends a driver batch built by fn.
func (s *State) Driving(local bool, fn func(b *DriverBatch)) *State {
	b := DriverBatch{Local: local}
	fn(&b)
	s.Drivers = append(s.Drivers, b)
	return s
}

// Enter applies every driver batch in declaration order.
func (s *State) Enter(values Values, rng *rand.Rand) {
	for _, b := range s.Drivers {
		b.Apply(values, rng)
	}
}

// Layer is a state machine with exactly one entry state.
// Any-state transitions are evaluated after the current state's own transitions.
type Layer struct {
	Name   string       `json:"name"`
	Entry  string       `json:"entry"`
	States []*State     `json:"states"`
	Any    []Transition `json:"any,omitempty"`
}

// NewLayer creates an empty layer.
func NewLayer(name string) *Layer {
	return &Layer{Name: name}
}

// NewState adds a state at the given grid coordinate.
// The first state added becomes the entry state.
func (l *Layer) NewState(name string, rank, index int) *State {
	s := &State{Name: name, Rank: rank, Index: index}
	l.States = append(l.States, s)
	if l.Entry == "" {
		l.Entry = name
	}
	return s
}

// FromEntry marks s as the entry state.
func (l *Layer) FromEntry(s *State) {
	l.Entry = s.Name
}

// FromAny adds an any-state transition into s.
func (l *Layer) FromAny(s *State, guard Condition) {
	l.Any = append(l.Any, Transition{Target: s.Name, Guard: guard})
}

// State looks up a state by name.
func (l *Layer) State(name string) *State {
	for _, s := range l.States {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Next returns the state the layer moves to from current for the given
// values, and whether a transition fired. The current state's transitions
// are tried first in declaration order, then the any-state transitions.
// Any-state transitions never re-enter the current state.
func (l *Layer) Next(current string, values Values) (string, bool) {
	if s := l.State(current); s != nil {
		for _, t := range s.Transitions {
			if t.Guard.Holds(values) {
				if t.Exit {
					return l.Entry, true
				}
				return t.Target, true
			}
		}
	}
	for _, t := range l.Any {
		if t.Target == current {
			continue
		}
		if t.Guard.Holds(values) {
			return t.Target, true
		}
	}
	return current, false
}

// Step performs one evaluation tick: it picks the next state and, when a
// transition fired, applies the new state's drivers. Driver writes become
// visible to guards on the following tick.
func (l *Layer) Step(current string, values Values, rng *rand.Rand) string {
	next, moved := l.Next(current, values)
	if !moved {
		return current
	}
	if s := l.State(next); s != nil {
		s.Enter(values, rng)
	}
	return next
}

// CheckCoordinates reports states sharing a rank+index coordinate or a name.
func (l *Layer) CheckCoordinates() error {
	type coord struct{ rank, index int }
	seen := make(map[coord]string, len(l.States))
	names := make(map[string]bool, len(l.States))
	var errs []error
	for _, s := range l.States {
		c := coord{s.Rank, s.Index}
		if other, ok := seen[c]; ok {
			errs = append(errs, fmt.Errorf("%w: layer %s states %q and %q both at (%d, %d)",
				ErrCoordinate, l.Name, other, s.Name, s.Rank, s.Index))
		}
		seen[c] = s.Name
		if names[s.Name] {
			errs = append(errs, fmt.Errorf("%w: layer %s has two states named %q", ErrCoordinate, l.Name, s.Name))
		}
		names[s.Name] = true
	}
	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

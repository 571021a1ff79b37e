package project

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/animgraph/pkg/compile"
	"github.com/aretw0/animgraph/pkg/domain"
)

// Assembly collects what the components of one output contribute.
type Assembly struct {
	// Dir resolves relative file references (preset files).
	Dir    string
	Trees  []*domain.BlendNode
	Layers []*domain.Layer
}

// ComponentFunc compiles one component declaration into the assembly.
type ComponentFunc func(s *compile.Session, spec map[string]any, a *Assembly) error

// Registry manages the available component kinds.
type Registry struct {
	mu    sync.RWMutex
	kinds map[string]ComponentFunc
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		kinds: make(map[string]ComponentFunc),
	}
}

// DefaultRegistry returns a registry holding every built-in component kind.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for kind, fn := range builtins {
		r.Register(kind, fn)
	}
	return r
}

// Register adds a component kind.
// If a kind with the same name exists, it is overwritten.
func (r *Registry) Register(kind string, fn ComponentFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds[kind] = fn
}

// Build looks up the component kind and compiles it into a.
// Returns an error if the kind is not registered.
func (r *Registry) Build(s *compile.Session, spec map[string]any, a *Assembly) error {
	kind, _ := spec["kind"].(string)
	if kind == "" {
		return fmt.Errorf("component has no kind")
	}

	r.mu.RLock()
	fn, ok := r.kinds[kind]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown component kind: %s", kind)
	}
	return fn(s, spec, a)
}

// Kinds lists the registered kinds in lexical order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.kinds))
	for k := range r.kinds {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

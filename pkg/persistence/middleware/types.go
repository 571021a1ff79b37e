// Package middleware wraps slot stores with cross-cutting behavior.
package middleware

import "github.com/aretw0/animgraph/pkg/ports"

// Middleware allows wrapping a SlotStore to add behavior.
type Middleware func(ports.SlotStore) ports.SlotStore

// Chain applies mws to store; the first middleware ends up outermost.
func Chain(store ports.SlotStore, mws ...Middleware) ports.SlotStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}

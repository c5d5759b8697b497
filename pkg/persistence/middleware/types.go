// Package middleware decorates component stores with cross-cutting behavior
// such as redaction and encryption at rest.
package middleware

import "github.com/aretw0/calinea/pkg/ports"

// Middleware allows wrapping a ComponentStore to add behavior.
type Middleware func(ports.ComponentStore) ports.ComponentStore

// Chain applies middlewares so that the first one listed is outermost.
func Chain(store ports.ComponentStore, mws ...Middleware) ports.ComponentStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}

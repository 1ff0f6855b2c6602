package middleware

import "github.com/aretw0/bankocr/pkg/ports"

// Middleware allows wrapping a BatchStore to add behavior.
type Middleware func(ports.BatchStore) ports.BatchStore

// Chain applies middlewares so the first one is the outermost.
func Chain(store ports.BatchStore, mws ...Middleware) ports.BatchStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}

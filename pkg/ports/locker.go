package ports

import (
	"context"
	"time"
)

// UnlockFunc is a function that releases a lock.
type UnlockFunc func(ctx context.Context) error

// Locker defines the interface for concurrency control over a source.
// It allows several watchers (replicas) sharing an inbox to decode each file only once.
type Locker interface {
	// Lock attempts to acquire a lock for the given key (e.g., a file name).
	// It blocks until the lock is acquired or the context is canceled.
	// Returns an UnlockFunc that MUST be called to release the lock.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}

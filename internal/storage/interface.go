package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a key has never been written.
var ErrNotFound = errors.New("key not found")

// Provider is a string key-value backend. Implementations must be safe for
// concurrent use: settings are hydrated in parallel and the debounced flush
// writes from its own goroutine. The Gateway serializes nothing itself.
type Provider interface {
	// Lifecycle
	Init(ctx context.Context) error
	Close() error
	Name() string

	// Values
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

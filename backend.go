package cachex

import (
	"context"
	"time"
)

// Backend is the capability every cache store exposes to the Manager.
// Implementations must be safe for concurrent use.
type Backend interface {
	// Read returns (nil, nil) on miss.
	Read(ctx context.Context, key string) (any, error)

	// ReadMany returns the hits only; absent keys are omitted from the map.
	ReadMany(ctx context.Context, keys []string) (map[string]any, error)

	// Write stores value under key. ttl <= 0 is interpreted by the backend.
	Write(ctx context.Context, key string, value any, ttl time.Duration) error

	// WriteMany stores all items with one shared ttl.
	WriteMany(ctx context.Context, items map[string]any, ttl time.Duration) error

	// Remove deletes keys (best-effort).
	Remove(ctx context.Context, keys ...string) error
}

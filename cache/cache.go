// Package cache provides the two cache layers used by the query façades:
// a process-local TTL cache and a distributed cache backed by Redis.
//
// The layers are independent. Neither is invalidated when the backing
// store is written, so a cached value stays visible until its TTL runs out
// (local) or until whoever owns the member set changes it (distributed).
package cache

import (
	"context"
	"time"
)

// Local is the process-local layer. Values are stored as-is and shared
// between readers.
type Local interface {
	// Get returns a live entry, if available.
	Get(ctx context.Context, key string) (any, bool)

	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value any, ttl time.Duration)

	// Delete removes key.
	Delete(ctx context.Context, key string)
}

// Distributed is the minimal shared key-value interface the façades rely on.
type Distributed interface {
	// Get returns the value stored under key. A missing key is reported
	// as ok=false with a nil error.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key with a server-side ttl (0 keeps it forever).
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete removes the given keys.
	Delete(ctx context.Context, keys ...string) error

	// AddToSet adds members to the set stored under key.
	AddToSet(ctx context.Context, key string, members ...string) error

	// Members returns every member of the set stored under key.
	Members(ctx context.Context, key string) ([]string, error)
}

// Policy controls whether and for how long a façade uses the local layer.
type Policy struct {
	Enabled bool
	TTL     time.Duration
}

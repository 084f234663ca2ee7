package ports

import (
	"context"
	"time"
)

// KeyValueCache is the uniform contract over the session cache backends.
// Implementations absorb their own transport errors: Get reports a miss for
// any failure, Set and Delete return an error the caller may ignore or use
// to fall through to another backend. Nothing here ever panics on a dead
// connection.
type KeyValueCache interface {
	// Get returns the stored bytes and true on a hit. A miss, an expired
	// entry, and a backend failure are all reported as (nil, false).
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores val under key with the given TTL, applied at write time.
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

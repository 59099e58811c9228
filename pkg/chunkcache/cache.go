package chunkcache

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// Cache stores raw chunk payloads keyed by locale identifier. Chunks are
// immutable build artifacts, so there is no update path: a key is written
// once and read many times.
type Cache interface {
	// Get retrieves a chunk by key. Returns ErrNotFound for unknown keys.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a chunk under the key.
	Set(ctx context.Context, key string, data []byte) error

	// Delete removes a key.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Filler fills one cache from one producer, collapsing concurrent misses
// for a key into a single call. The flight group is scoped to the Filler,
// so two caches backed by different origins never share a flight for the
// same key.
type Filler struct {
	cache Cache
	group singleflight.Group
}

// NewFiller creates a Filler in front of the cache.
func NewFiller(c Cache) *Filler {
	return &Filler{cache: c}
}

// GetOrFetch retrieves a chunk from the cache, calling fn to produce it on a
// miss. Concurrent misses for the same key are collapsed into a single fn
// call. Errors from fn are returned to every waiting caller and nothing is
// cached, so a later call may retry the fetch.
func (f *Filler) GetOrFetch(ctx context.Context, key string, fn func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	if data, err := f.cache.Get(ctx, key); err == nil {
		return data, nil
	}

	v, err, _ := f.group.Do(key, func() (any, error) {
		data, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		// Best-effort store; a write failure must not fail the read path.
		_ = f.cache.Set(ctx, key, data)
		return data, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]byte), nil
}

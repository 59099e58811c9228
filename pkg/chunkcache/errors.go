package chunkcache

import "errors"

// Sentinel errors for chunk cache operations.
var (
	// ErrNotFound is returned when a key does not exist in the cache.
	ErrNotFound = errors.New("chunkcache: chunk not found")

	// ErrClosed is returned when an operation is attempted on a closed cache.
	ErrClosed = errors.New("chunkcache: closed")
)

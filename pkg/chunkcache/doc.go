// Package chunkcache stores fetched locale chunks so each one is retrieved
// at most once.
//
// Two backends are provided: Memory for single-process deployments and Redis
// for fleets where many server processes would otherwise fetch the same
// chunk. A Filler collapses concurrent misses for a key into one producer
// call, with a flight group scoped to its cache:
//
//	fill := chunkcache.NewFiller(cache)
//	data, err := fill.GetOrFetch(ctx, "fr", func(ctx context.Context) ([]byte, error) {
//		return source.Messages(ctx, "fr")
//	})
//
// Chunks are immutable build artifacts; there is no expiry in the Memory
// backend and the Redis backend defaults to no expiry as well.
package chunkcache

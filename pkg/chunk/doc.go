// Package chunk loads per-locale data and message chunks on demand.
//
// A Loader wraps a Source (where chunk bytes come from) and a Registry
// (where locale data goes). Sources implement the two build-target
// strategies: Resident reads chunks already shipped with a server build,
// Remote fetches lazily-built browser chunks over HTTP, optionally through a
// shared chunkcache.
//
//	loader := chunk.New(
//		chunk.NewResident(os.DirFS(dataDir), os.DirFS(messagesDir)),
//		chunk.WithRegistry(registry),
//	)
//
//	catalog, err := loader.LoadAll(ctx, "fr")
//
// Loads are memoized per key: repeated and concurrent calls trigger exactly
// one fetch. Failures are not memoized, so a transient fetch error does not
// poison the key for the rest of the process.
package chunk

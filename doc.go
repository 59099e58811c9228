// Package localekit configures a module bundler for internationalized
// applications.
//
// One Configure call inspects the project's message directory, derives the
// active locale set, and produces everything the bundler needs to include
// only that set: a context rule per locale-data directory, data-free aliases
// for the locale libraries, and the constants runtime code reads back.
//
//	cfg, err := localekit.ConfigureFromEnv(
//		localekit.WithLogger(log),
//	)
//	if err != nil {
//		return err
//	}
//	if err := cfg.WriteJSON(os.Stdout); err != nil {
//		return err
//	}
//
// The subpackages carry the moving parts: pkg/locales enumerates locales,
// pkg/modfilter builds the narrowing regexes, pkg/chunk loads per-locale
// chunks at run time, and pkg/chunkserver serves them to browser builds.
package localekit

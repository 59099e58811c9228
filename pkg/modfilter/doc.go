// Package modfilter builds the regular expressions that narrow a bundler's
// module-context matching to an explicit set of locale identifiers.
//
// Bundlers include "all files under a directory matching a pattern"; this
// package produces the replacement patterns so only the active locales enter
// the build:
//
//	ctx := modfilter.Path("/app/node_modules/lib/locale-data")
//	mod := modfilter.Stems([]string{"fr", "de", "pt-BR"}, "js")
//
// All inputs are escaped with regexp.QuoteMeta, so hostile or unusual
// identifiers cannot widen a pattern. Matcher adds an explicit observer
// callback for build-log visibility into what actually matched.
package modfilter

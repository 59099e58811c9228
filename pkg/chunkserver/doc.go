// Package chunkserver serves per-locale chunks over HTTP for
// browser-targeted builds.
//
// The endpoint layout mirrors what chunk.Remote fetches:
//
//	GET /locale-data/{language}
//	GET /polyfill-data/{locale}
//	GET /messages/{locale}
//	GET /locale              (Accept-Language negotiation, needs WithLocales)
//
// Chunks are immutable per build and served with an immutable Cache-Control
// header. Malformed identifiers answer 400; unknown or inactive locales
// answer 404.
package chunkserver

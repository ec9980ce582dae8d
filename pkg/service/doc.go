// Package service resolves component identifiers to distribution documents
// and serves them over HTTP.
//
// A [Service] answers from a precomputed [registry.Registry] first. When an
// identifier is not in the registry it reads the component source directly
// from disk and derives the document on the fly, using the same dependency
// detector and display-name rules the build uses. Fallback documents always
// carry a synthesized description; the source's doc block is not consulted.
//
// # Resolution states
//
//	StateRegistry   identifier found in the registry
//	StateFallback   identifier found on disk only
//	StateNotFound   neither, or the identifier is malformed
//
// # HTTP
//
// [Service.Handler] returns a chi router with these routes:
//
//	GET /r/{slug}        component document (".json" suffix optional)
//	GET /registry.json   index of precomputed components
//	GET /healthz         liveness probe
//	GET /metrics         Prometheus metrics, when Config.Metrics is set
//
// The service holds no mutable state; concurrent requests need no locking.
package service

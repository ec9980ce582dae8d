// Package pkg provides the libraries behind the uiregistry CLI.
//
// # Overview
//
// uiregistry turns a directory of React component sources into a static
// registry artifact and serves shadcn-style registry documents from it. The
// pkg directory is organized leaf-first:
//
//  1. [naming], [escape] - identifier display names and template-literal quoting
//  2. [detect], [docmeta] - dependency inference and doc-comment metadata
//  3. [registry] - registry types, the artifact codec and the Builder
//  4. [store] - artifact persistence (file, Redis, MongoDB, memory)
//  5. [service] - resolution with live fallback and the HTTP handler
//  6. [graph] - component dependency graphs as JSON, DOT and SVG
//  7. [errors], [observability], [buildinfo] - shared infrastructure
//
// # Architecture
//
//	components/ui/*.tsx
//	         ↓
//	    [registry.Builder] (detect + docmeta + naming + escape)
//	         ↓
//	    [store] (registry.ts artifact)
//	         ↓
//	    [registry.Parse] → [service] → GET /r/{name}.json
//
// # Quick Start
//
// Build the artifact, then serve it:
//
//	st, _ := store.Open(ctx, "registry/__generated__/registry.ts")
//	b := &registry.Builder{SourceDir: "components/ui"}
//	res, err := b.Run(ctx, st)
//	if err != nil {
//	    return err
//	}
//
//	svc := service.New(res.Registry, service.Config{SourceDir: "components/ui"})
//	http.ListenAndServe(":8080", svc.Handler(nil))
package pkg

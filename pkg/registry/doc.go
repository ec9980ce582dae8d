// Package registry builds, renders and parses the static component registry.
//
// # Overview
//
// A [Registry] maps each component identifier to an [Entry] holding its
// display name, description, detected npm dependencies and escaped source.
// It is constructed once, either by a [Builder] scanning a directory of
// component sources or by [Parse] reading a previously generated artifact,
// and is never mutated afterwards. Services receive it explicitly; there is
// no package-level registry.
//
// # Building
//
//	b := &registry.Builder{
//	    SourceDir: "components/ui",
//	    Suffix:    ".tsx",
//	    Detector:  detect.New(),
//	    Logger:    logger,
//	}
//	res, err := b.Run(ctx, st) // st is a store.Writer
//
// The build is all-or-nothing: an unreadable directory, a file that vanishes
// mid-pass or an invalid metadata sidecar aborts the run with a BUILD_ABORT
// error before anything is written.
//
// # Artifact
//
// [Render] emits a TypeScript module with a do-not-edit header and a single
// object literal keyed by identifier. Scalar and structured fields are JSON
// encoded; the source is a template literal escaped with the escape package.
// [Parse] reads that format back.
//
// # Metadata Sidecars
//
// A component may ship a "<identifier>.registry.toml" file next to its
// source to declare registry dependencies, Tailwind configuration and CSS
// variables:
//
//	registryDependencies = ["button"]
//
//	[tailwind.config.theme.extend.keyframes.shimmer]
//	"0%" = { transform = "translateX(-100%)" }
//
//	[cssVars.light]
//	shimmer = "0 0% 100%"
package registry

// Package graph turns a component registry into a dependency graph.
//
// Two kinds of nodes exist: components from the registry and the npm
// packages they depend on. Edges point from a component to what it needs:
//
//	glass-button ──npm──▶ motion
//	glass-button ──registry──▶ button
//
// The graph serializes to a node-link JSON format and to Graphviz DOT,
// which [RenderSVG] turns into an SVG using the embedded Graphviz build:
//
//	g := graph.FromRegistry(reg, graph.Options{Packages: true})
//	svg, err := graph.RenderSVG(ctx, graph.ToDOT(g))
package graph

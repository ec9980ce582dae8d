package graph

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/matzehuels/uiregistry/pkg/registry"
)

// Node kinds.
const (
	KindComponent = "component"
	KindPackage   = "package"
)

// Edge kinds.
const (
	EdgeNPM      = "npm"
	EdgeRegistry = "registry"
)

// Graph is a node-link dependency graph. Nodes are ordered by kind then ID;
// edges by source then target.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is a component or an npm package.
type Node struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	Label string `json:"label,omitempty"`
	// External marks registry dependencies that are not in this registry.
	External bool `json:"external,omitempty"`
}

// Edge points from a component to something it depends on.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Kind string `json:"kind"`
}

// Options controls which edges FromRegistry emits.
type Options struct {
	// Packages adds npm package nodes and component→package edges.
	Packages bool
}

// packagePrefix keeps package IDs disjoint from component IDs, which may
// share a name (a "globe" component can depend on the "cobe" package, and a
// "cobe" component could exist too).
const packagePrefix = "npm:"

// FromRegistry builds the dependency graph of reg.
func FromRegistry(reg *registry.Registry, opts Options) *Graph {
	g := &Graph{Nodes: []Node{}, Edges: []Edge{}}
	packages := map[string]bool{}
	external := map[string]bool{}

	for _, e := range reg.Entries() {
		g.Nodes = append(g.Nodes, Node{ID: e.Name, Kind: KindComponent, Label: e.DisplayName})

		for _, dep := range e.RegistryDependencies {
			if _, ok := reg.Lookup(dep); !ok {
				external[dep] = true
			}
			g.Edges = append(g.Edges, Edge{From: e.Name, To: dep, Kind: EdgeRegistry})
		}
		if !opts.Packages {
			continue
		}
		for _, dep := range e.Dependencies {
			packages[dep] = true
			g.Edges = append(g.Edges, Edge{From: e.Name, To: packagePrefix + dep, Kind: EdgeNPM})
		}
	}

	for _, id := range slices.Sorted(maps.Keys(external)) {
		g.Nodes = append(g.Nodes, Node{ID: id, Kind: KindComponent, External: true})
	}
	for _, p := range slices.Sorted(maps.Keys(packages)) {
		g.Nodes = append(g.Nodes, Node{ID: packagePrefix + p, Kind: KindPackage, Label: p})
	}

	slices.SortStableFunc(g.Edges, func(a, b Edge) int {
		if a.From != b.From {
			return cmp.Compare(a.From, b.From)
		}
		return cmp.Compare(a.To, b.To)
	})
	return g
}

// Dependents returns the components that depend on id, directly or
// transitively, in sorted order. For npm packages pass the bare name.
func (g *Graph) Dependents(id string) []string {
	reverse := map[string][]string{}
	for _, e := range g.Edges {
		reverse[e.To] = append(reverse[e.To], e.From)
	}

	seen := map[string]bool{}
	queue := append(slices.Clone(reverse[id]), reverse[packagePrefix+id]...)
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if seen[n] {
			continue
		}
		seen[n] = true
		queue = append(queue, reverse[n]...)
	}
	return slices.Sorted(maps.Keys(seen))
}

// MarshalGraph converts g to indented JSON.
func MarshalGraph(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph writes g as JSON to w.
func WriteGraph(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}
	return nil
}

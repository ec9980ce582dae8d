package registry

import (
	"slices"
	"sort"

	"github.com/matzehuels/uiregistry/pkg/errors"
	"github.com/matzehuels/uiregistry/pkg/escape"
)

// Entry is the stored metadata and source for one component.
// Entries are values; callers must not modify the slices or maps they hold.
type Entry struct {
	Name                 string         `json:"name"`
	DisplayName          string         `json:"displayName"`
	Description          string         `json:"description"`
	Dependencies         []string       `json:"dependencies"`
	RegistryDependencies []string       `json:"registryDependencies,omitempty"`
	Tailwind             map[string]any `json:"tailwindConfig,omitempty"`
	CSSVars              map[string]any `json:"cssVarConfig,omitempty"`

	// Source is the escaped source text as embedded in the artifact.
	Source string `json:"source"`
}

// Content returns the original, unescaped source text.
func (e Entry) Content() string {
	return escape.Unescape(e.Source)
}

// Registry is an immutable mapping from identifier to [Entry].
// It is safe for concurrent reads without locking.
type Registry struct {
	entries map[string]Entry
	names   []string
}

// New builds a registry from entries. Identifiers must be unique and
// non-empty.
func New(entries []Entry) (*Registry, error) {
	r := &Registry{
		entries: make(map[string]Entry, len(entries)),
		names:   make([]string, 0, len(entries)),
	}
	for _, e := range entries {
		if e.Name == "" {
			return nil, errors.New(errors.ErrCodeInvalidArtifact, "registry entry has an empty name")
		}
		if _, dup := r.entries[e.Name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidArtifact, "duplicate registry entry %q", e.Name)
		}
		e.Dependencies = slices.Clone(e.Dependencies)
		e.RegistryDependencies = slices.Clone(e.RegistryDependencies)
		r.entries[e.Name] = e
		r.names = append(r.names, e.Name)
	}
	sort.Strings(r.names)
	return r, nil
}

// Empty returns a registry with no entries.
func Empty() *Registry {
	r, _ := New(nil)
	return r
}

// Lookup returns the entry for id.
func (r *Registry) Lookup(id string) (Entry, bool) {
	if r == nil {
		return Entry{}, false
	}
	e, ok := r.entries[id]
	return e, ok
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// Names returns all identifiers in lexicographic order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.names)
}

// Entries returns all entries ordered by identifier.
func (r *Registry) Entries() []Entry {
	if r == nil {
		return nil
	}
	out := make([]Entry, 0, len(r.names))
	for _, n := range r.names {
		out = append(out, r.entries[n])
	}
	return out
}

// DependencyCounts returns how many components use each npm dependency.
func (r *Registry) DependencyCounts() map[string]int {
	counts := make(map[string]int)
	for _, e := range r.Entries() {
		for _, d := range e.Dependencies {
			counts[d]++
		}
	}
	return counts
}

package service

import (
	"path"

	"github.com/matzehuels/uiregistry/pkg/detect"
	"github.com/matzehuels/uiregistry/pkg/docmeta"
	"github.com/matzehuels/uiregistry/pkg/naming"
	"github.com/matzehuels/uiregistry/pkg/registry"
)

// ItemType is the shadcn registry item type of every document.
const ItemType = "registry:ui"

// Document is the distribution document for one component.
type Document struct {
	Name                 string         `json:"name"`
	Type                 string         `json:"type"`
	Dependencies         []string       `json:"dependencies"`
	DevDependencies      []string       `json:"devDependencies"`
	RegistryDependencies []string       `json:"registryDependencies"`
	Files                []File         `json:"files"`
	Tailwind             map[string]any `json:"tailwind"`
	CSSVars              map[string]any `json:"cssVars"`
	Meta                 Meta           `json:"meta"`
}

// File is one source file to install.
type File struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	Type    string `json:"type"`
	Target  string `json:"target"`
}

// Meta carries human-facing details.
type Meta struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// errorDocument is the body of every non-200 component response.
type errorDocument struct {
	Error string `json:"error"`
}

// notFoundMessage is returned for every unresolvable identifier.
const notFoundMessage = "Component not found"

// layout decides where an installed component lands in a consumer project.
type layout struct {
	namespace string
	extension string
}

func (l layout) path(id string) string {
	return path.Join("components", l.namespace, id+"."+l.extension)
}

func (l layout) document(id, content string, deps, regDeps []string, tailwind, cssVars map[string]any, meta Meta) *Document {
	p := l.path(id)
	return &Document{
		Name:                 id,
		Type:                 ItemType,
		Dependencies:         orEmpty(deps),
		DevDependencies:      []string{},
		RegistryDependencies: orEmpty(regDeps),
		Files: []File{{
			Path:    p,
			Content: content,
			Type:    ItemType,
			Target:  p,
		}},
		Tailwind: orEmptyMap(tailwind),
		CSSVars:  orEmptyMap(cssVars),
		Meta:     meta,
	}
}

// fromEntry builds the document for a precomputed registry entry.
func (l layout) fromEntry(e registry.Entry) *Document {
	return l.document(e.Name, e.Content(), e.Dependencies, e.RegistryDependencies, e.Tailwind, e.CSSVars,
		Meta{Name: e.DisplayName, Description: e.Description})
}

// fromSource builds the document for a component read live from disk.
// The description is always synthesized from the identifier.
func (l layout) fromSource(det *detect.Detector, id, src string) *Document {
	return l.document(id, src, det.Detect(src), nil, nil, nil,
		Meta{Name: naming.DisplayName(id), Description: docmeta.Synthesize(id)})
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func orEmptyMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

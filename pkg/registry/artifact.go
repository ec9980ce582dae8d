package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/matzehuels/uiregistry/pkg/errors"
)

// GeneratedHeader is the first line of every rendered artifact.
const GeneratedHeader = "// This file is auto-generated by `uiregistry build`. DO NOT EDIT."

// registryDecl introduces the registry literal in the artifact.
const registryDecl = "export const registry: Record<string, RegistryEntry> = "

const entryInterface = `export interface RegistryEntry {
  name: string;
  displayName: string;
  description: string;
  dependencies: string[];
  registryDependencies?: string[];
  tailwindConfig?: Record<string, unknown>;
  cssVarConfig?: Record<string, unknown>;
  source: string;
}
`

// RenderOptions controls the artifact header.
type RenderOptions struct {
	// SourceDir is recorded in the header for humans; it has no effect on
	// the registry literal.
	SourceDir string
}

// Render produces the artifact for r. Entries appear in identifier order so
// the output is byte-for-byte reproducible for unchanged inputs.
func Render(r *Registry, opts RenderOptions) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(GeneratedHeader + "\n")
	if opts.SourceDir != "" {
		fmt.Fprintf(&buf, "// Source: %s (%d components)\n", opts.SourceDir, r.Len())
	}
	buf.WriteString("\n")
	buf.WriteString(entryInterface)
	buf.WriteString("\n")
	buf.WriteString(registryDecl + "{\n")

	for _, e := range r.Entries() {
		if err := renderEntry(&buf, e); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render entry %q", e.Name)
		}
	}

	buf.WriteString("};\n")
	return buf.Bytes(), nil
}

func renderEntry(buf *bytes.Buffer, e Entry) error {
	field := func(name string, v any) error {
		s, err := jsonLiteral(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		fmt.Fprintf(buf, "    %s: %s,\n", name, s)
		return nil
	}

	key, err := jsonLiteral(e.Name)
	if err != nil {
		return err
	}
	fmt.Fprintf(buf, "  %s: {\n", key)

	deps := e.Dependencies
	if deps == nil {
		deps = []string{}
	}
	fields := []struct {
		name string
		v    any
		skip bool
	}{
		{"name", e.Name, false},
		{"displayName", e.DisplayName, false},
		{"description", e.Description, false},
		{"dependencies", deps, false},
		{"registryDependencies", e.RegistryDependencies, e.RegistryDependencies == nil},
		{"tailwindConfig", e.Tailwind, e.Tailwind == nil},
		{"cssVarConfig", e.CSSVars, e.CSSVars == nil},
	}
	for _, f := range fields {
		if f.skip {
			continue
		}
		if err := field(f.name, f.v); err != nil {
			return err
		}
	}

	buf.WriteString("    source: `")
	buf.WriteString(e.Source)
	buf.WriteString("`,\n")
	buf.WriteString("  },\n")
	return nil
}

// jsonLiteral encodes v as compact JSON without HTML escaping. JSON is a
// subset of JavaScript expression syntax, so the result is a valid literal.
func jsonLiteral(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Package docmeta extracts human-readable metadata from the first JSDoc-style
// documentation block of a component source file.
package docmeta

import (
	"regexp"
	"strings"

	"github.com/matzehuels/uiregistry/pkg/naming"
)

// Tag names recognized inside a documentation block.
const (
	TagDescription        = "description"
	TagRegistryDependency = "registryDependency"
)

// docBlockRe matches the first /** ... */ block. The non-greedy body stops at
// the first closing delimiter.
var docBlockRe = regexp.MustCompile(`(?s)/\*\*(.*?)\*/`)

// Block is the parsed content of a documentation block.
type Block struct {
	// Lines holds the decoration-stripped, non-empty content lines.
	Lines []string

	// Tags maps a tag name (without "@") to the trailing text of each
	// occurrence, in order.
	Tags map[string][]string
}

// Parse returns the first documentation block in src, or false if there is
// none.
func Parse(src string) (Block, bool) {
	m := docBlockRe.FindStringSubmatch(src)
	if m == nil {
		return Block{}, false
	}

	b := Block{Tags: make(map[string][]string)}
	for _, raw := range strings.Split(m[1], "\n") {
		line := stripDecoration(raw)
		if line == "" {
			continue
		}
		b.Lines = append(b.Lines, line)
		if name, value, ok := parseTag(line); ok {
			b.Tags[name] = append(b.Tags[name], value)
		}
	}
	return b, true
}

// Tag returns the first value recorded for name.
func (b Block) Tag(name string) (string, bool) {
	vals := b.Tags[name]
	if len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// Summary returns the first content line of the block unless that line is
// itself a tag line.
func (b Block) Summary() (string, bool) {
	if len(b.Lines) == 0 || strings.HasPrefix(b.Lines[0], "@") {
		return "", false
	}
	return b.Lines[0], true
}

// RegistryDependencies returns the identifiers listed by every
// @registryDependency tag. A single tag may list several identifiers
// separated by commas or whitespace.
func (b Block) RegistryDependencies() []string {
	var out []string
	seen := make(map[string]bool)
	for _, v := range b.Tags[TagRegistryDependency] {
		for _, id := range strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' }) {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}

// Description returns a one-line description for the component in src.
//
// An explicit "@description" line in the first documentation block wins,
// then the block's first content line unless it is a tag line. When neither exists the
// description is synthesized from the identifier as "<Display Name> component".
// The result is never empty.
func Description(src, id string) string {
	if b, ok := Parse(src); ok {
		if d, ok := b.Tag(TagDescription); ok && d != "" {
			return d
		}
		if s, ok := b.Summary(); ok {
			return s
		}
	}
	return Synthesize(id)
}

// Synthesize returns the description used when a source has no usable
// documentation.
func Synthesize(id string) string {
	return naming.DisplayName(id) + " component"
}

// stripDecoration removes leading whitespace and comment asterisks.
func stripDecoration(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "*")
	return strings.TrimSpace(line)
}

func parseTag(line string) (name, value string, ok bool) {
	if !strings.HasPrefix(line, "@") {
		return "", "", false
	}
	rest := line[1:]
	name, value, _ = strings.Cut(rest, " ")
	if i := strings.IndexAny(name, "\t"); i >= 0 {
		name, value = name[:i], name[i+1:]+" "+value
	}
	if name == "" {
		return "", "", false
	}
	return name, strings.TrimSpace(value), true
}

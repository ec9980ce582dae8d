package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/matzehuels/uiregistry/pkg/errors"
	"github.com/matzehuels/uiregistry/pkg/escape"
)

// templateLiteral is the raw (still escaped) body of a backtick string.
type templateLiteral string

// Parse reads an artifact produced by [Render] and returns the registry it
// describes. Errors carry the INVALID_ARTIFACT code and the byte offset.
func Parse(data []byte) (*Registry, error) {
	if !bytes.HasPrefix(data, []byte(GeneratedHeader)) {
		return nil, errors.New(errors.ErrCodeInvalidArtifact, "missing generated-file header")
	}
	start := bytes.Index(data, []byte(registryDecl))
	if start < 0 {
		return nil, errors.New(errors.ErrCodeInvalidArtifact, "registry declaration not found")
	}

	p := &parser{src: string(data), pos: start + len(registryDecl)}
	v, err := p.value()
	if err != nil {
		return nil, err
	}
	obj, ok := v.(orderedObject)
	if !ok {
		return nil, p.errorf("registry literal is not an object")
	}
	p.skip()
	if p.peek() == ';' {
		p.pos++
	}
	p.skip()
	if p.pos != len(p.src) {
		return nil, p.errorf("unexpected content after registry literal")
	}

	entries := make([]Entry, 0, len(obj.keys))
	for _, key := range obj.keys {
		e, err := decodeEntry(key, obj.values[key])
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return New(entries)
}

func decodeEntry(key string, v any) (Entry, error) {
	fail := func(format string, args ...any) (Entry, error) {
		return Entry{}, errors.New(errors.ErrCodeInvalidArtifact, "entry %q: %s", key, fmt.Sprintf(format, args...))
	}

	obj, ok := v.(orderedObject)
	if !ok {
		return fail("not an object")
	}

	var e Entry
	for _, field := range obj.keys {
		fv := obj.values[field]
		var err error
		switch field {
		case "name":
			e.Name, err = asString(fv)
		case "displayName":
			e.DisplayName, err = asString(fv)
		case "description":
			e.Description, err = asString(fv)
		case "dependencies":
			e.Dependencies, err = asStrings(fv)
		case "registryDependencies":
			e.RegistryDependencies, err = asStrings(fv)
		case "tailwindConfig":
			e.Tailwind, err = asMap(fv)
		case "cssVarConfig":
			e.CSSVars, err = asMap(fv)
		case "source":
			switch s := fv.(type) {
			case templateLiteral:
				e.Source = string(s)
			case string:
				e.Source = escape.Escape(s)
			default:
				err = fmt.Errorf("expected string, got %T", fv)
			}
		default:
			// Unknown fields are ignored so older services can read newer artifacts.
		}
		if err != nil {
			return fail("%s: %v", field, err)
		}
	}

	if e.Name != key {
		return fail("name %q does not match key", e.Name)
	}
	if e.Dependencies == nil {
		e.Dependencies = []string{}
	}
	return e, nil
}

func asString(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case templateLiteral:
		return escape.Unescape(string(s)), nil
	}
	return "", fmt.Errorf("expected string, got %T", v)
}

func asStrings(v any) ([]string, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected array, got %T", v)
	}
	out := make([]string, 0, len(arr))
	for i, it := range arr {
		s, err := asString(it)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func asMap(v any) (map[string]any, error) {
	obj, ok := v.(orderedObject)
	if !ok {
		return nil, fmt.Errorf("expected object, got %T", v)
	}
	return obj.plain(), nil
}

// orderedObject preserves key order so entries come back in artifact order
// and duplicate keys can be rejected.
type orderedObject struct {
	keys   []string
	values map[string]any
}

func (o orderedObject) plain() map[string]any {
	m := make(map[string]any, len(o.keys))
	for _, k := range o.keys {
		m[k] = toPlain(o.values[k])
	}
	return m
}

func toPlain(v any) any {
	switch x := v.(type) {
	case orderedObject:
		return x.plain()
	case []any:
		out := make([]any, len(x))
		for i, it := range x {
			out[i] = toPlain(it)
		}
		return out
	case templateLiteral:
		return escape.Unescape(string(x))
	}
	return v
}

// parser is a small recursive-descent reader for the JavaScript literal
// subset Render emits: objects with identifier or string keys, arrays,
// JSON scalars and template literals without substitutions.
type parser struct {
	src string
	pos int
}

func (p *parser) errorf(format string, args ...any) error {
	line := 1 + strings.Count(p.src[:min(p.pos, len(p.src))], "\n")
	return errors.New(errors.ErrCodeInvalidArtifact, "line %d: %s", line, fmt.Sprintf(format, args...))
}

func (p *parser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

// skip advances past whitespace and comments.
func (p *parser) skip() {
	for p.pos < len(p.src) {
		switch c := p.src[p.pos]; {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			p.pos++
		case strings.HasPrefix(p.src[p.pos:], "//"):
			if i := strings.IndexByte(p.src[p.pos:], '\n'); i >= 0 {
				p.pos += i + 1
			} else {
				p.pos = len(p.src)
			}
		case strings.HasPrefix(p.src[p.pos:], "/*"):
			if i := strings.Index(p.src[p.pos+2:], "*/"); i >= 0 {
				p.pos += i + 4
			} else {
				p.pos = len(p.src)
			}
		default:
			return
		}
	}
}

func (p *parser) value() (any, error) {
	p.skip()
	switch c := p.peek(); {
	case c == '{':
		return p.object()
	case c == '[':
		return p.array()
	case c == '"':
		return p.jsonString()
	case c == '`':
		return p.template()
	case c == 0:
		return nil, p.errorf("unexpected end of input")
	default:
		return p.scalar()
	}
}

func (p *parser) object() (any, error) {
	p.pos++ // {
	obj := orderedObject{values: make(map[string]any)}
	for {
		p.skip()
		if p.peek() == '}' {
			p.pos++
			return obj, nil
		}

		key, err := p.key()
		if err != nil {
			return nil, err
		}
		if _, dup := obj.values[key]; dup {
			return nil, p.errorf("duplicate key %q", key)
		}
		p.skip()
		if p.peek() != ':' {
			return nil, p.errorf("expected ':' after key %q", key)
		}
		p.pos++

		v, err := p.value()
		if err != nil {
			return nil, err
		}
		obj.keys = append(obj.keys, key)
		obj.values[key] = v

		p.skip()
		switch p.peek() {
		case ',':
			p.pos++
		case '}':
		default:
			return nil, p.errorf("expected ',' or '}' in object")
		}
	}
}

func (p *parser) key() (string, error) {
	if p.peek() == '"' {
		return p.jsonString()
	}
	start := p.pos
	for p.pos < len(p.src) && isIdentByte(p.src[p.pos]) {
		p.pos++
	}
	if start == p.pos {
		return "", p.errorf("expected object key")
	}
	return p.src[start:p.pos], nil
}

func (p *parser) array() (any, error) {
	p.pos++ // [
	out := []any{}
	for {
		p.skip()
		if p.peek() == ']' {
			p.pos++
			return out, nil
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		out = append(out, v)

		p.skip()
		switch p.peek() {
		case ',':
			p.pos++
		case ']':
		default:
			return nil, p.errorf("expected ',' or ']' in array")
		}
	}
}

func (p *parser) jsonString() (string, error) {
	start := p.pos
	p.pos++ // opening quote
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '\\':
			p.pos += 2
			continue
		case '"':
			p.pos++
			var s string
			if err := json.Unmarshal([]byte(p.src[start:p.pos]), &s); err != nil {
				return "", p.errorf("invalid string literal: %v", err)
			}
			return s, nil
		case '\n':
			return "", p.errorf("unterminated string literal")
		}
		p.pos++
	}
	return "", p.errorf("unterminated string literal")
}

func (p *parser) template() (any, error) {
	p.pos++ // opening backtick
	start := p.pos
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '\\':
			p.pos += 2
			continue
		case '$':
			if p.pos+1 < len(p.src) && p.src[p.pos+1] == '{' {
				return nil, p.errorf("template substitutions are not supported")
			}
		case '`':
			body := p.src[start:p.pos]
			p.pos++
			return templateLiteral(body), nil
		}
		p.pos++
	}
	return nil, p.errorf("unterminated template literal")
}

func (p *parser) scalar() (any, error) {
	start := p.pos
	for p.pos < len(p.src) && isScalarByte(p.src[p.pos]) {
		p.pos++
	}
	if start == p.pos {
		return nil, p.errorf("unexpected character %q", p.src[p.pos])
	}
	var v any
	if err := json.Unmarshal([]byte(p.src[start:p.pos]), &v); err != nil {
		return nil, p.errorf("invalid literal %q", p.src[start:p.pos])
	}
	return v, nil
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func isScalarByte(c byte) bool {
	return c == '-' || c == '+' || c == '.' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

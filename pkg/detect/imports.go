package detect

import (
	"regexp"
	"strings"
)

var (
	fromImportRe    = regexp.MustCompile(`\b(?:import|export)\s[^;]*?\bfrom\s*["']([^"'\n]+)["']`)
	sideEffectRe    = regexp.MustCompile(`\bimport\s*["']([^"'\n]+)["']`)
	callImportRe    = regexp.MustCompile(`\b(?:require|import)\s*\(\s*["']([^"'\n]+)["']\s*\)`)
	importPatterns  = []*regexp.Regexp{fromImportRe, sideEffectRe, callImportRe}
	hostPackages    = map[string]bool{"react": true, "react-dom": true, "next": true}
	localSpecifiers = []string{".", "/", "@/", "~/", "#", "node:"}
)

// ImportedPackages returns the bare npm packages imported by src, in order of
// first appearance. Relative and alias imports, node built-ins and the host
// framework packages are skipped.
func ImportedPackages(src string) []string {
	type hit struct {
		pos  int
		name string
	}
	var hits []hit
	for _, re := range importPatterns {
		for _, m := range re.FindAllStringSubmatchIndex(src, -1) {
			spec := src[m[2]:m[3]]
			if name := packageName(spec); name != "" {
				hits = append(hits, hit{pos: m[2], name: name})
			}
		}
	}

	// Stable insertion sort by position; import lists are short.
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j].pos < hits[j-1].pos; j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}

	names := make([]string, 0, len(hits))
	for _, h := range hits {
		names = append(names, h.name)
	}
	return dedupe(names)
}

// packageName reduces an import specifier to its package name:
// "@scope/pkg/sub" -> "@scope/pkg", "pkg/sub" -> "pkg".
func packageName(spec string) string {
	spec = strings.TrimSpace(spec)
	for _, p := range localSpecifiers {
		if strings.HasPrefix(spec, p) {
			return ""
		}
	}
	parts := strings.Split(spec, "/")
	name := parts[0]
	if strings.HasPrefix(spec, "@") {
		if len(parts) < 2 || parts[1] == "" {
			return ""
		}
		name = parts[0] + "/" + parts[1]
	}
	if name == "" || hostPackages[name] {
		return ""
	}
	return name
}

// StripComments removes // and /* */ comments from JavaScript/TypeScript
// source while leaving string and template literal contents intact.
// Regular expression literals are not recognized; a "//" inside one is
// treated as a comment start.
func StripComments(src string) string {
	var b strings.Builder
	b.Grow(len(src))

	const (
		code = iota
		lineComment
		blockComment
		quoted
	)
	state := code
	var quote byte

	for i := 0; i < len(src); i++ {
		c := src[i]
		switch state {
		case code:
			switch {
			case c == '/' && i+1 < len(src) && src[i+1] == '/':
				state = lineComment
				i++
			case c == '/' && i+1 < len(src) && src[i+1] == '*':
				state = blockComment
				i++
			case c == '"' || c == '\'' || c == '`':
				state, quote = quoted, c
				b.WriteByte(c)
			default:
				b.WriteByte(c)
			}
		case lineComment:
			if c == '\n' {
				state = code
				b.WriteByte(c)
			}
		case blockComment:
			if c == '*' && i+1 < len(src) && src[i+1] == '/' {
				state = code
				b.WriteByte(' ')
				i++
			} else if c == '\n' {
				b.WriteByte(c)
			}
		case quoted:
			b.WriteByte(c)
			switch {
			case c == '\\' && i+1 < len(src):
				b.WriteByte(src[i+1])
				i++
			case c == quote:
				state = code
			case c == '\n' && quote != '`':
				state = code
			}
		}
	}
	return b.String()
}

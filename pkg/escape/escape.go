// Package escape serializes component source text for embedding inside a
// backtick-quoted template literal in the generated registry artifact.
//
// [Escape] and [Unescape] are exact inverses for every byte string:
//
//	Unescape(Escape(s)) == s
package escape

import "strings"

// escaper applies the three substitutions in a single left-to-right pass.
// Escaping the escape character first matters for sequential replacement;
// a single pass with non-overlapping patterns is equivalent.
var escaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"${", `\${`,
)

// Escape returns s with backslashes, backticks and "${" escaped so the result
// can be placed verbatim between backticks.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Unescape reverses [Escape]. A backslash followed by a backslash, backtick or
// dollar sign yields that character; any other backslash is kept as-is.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			switch next := s[i+1]; next {
			case '\\', '`', '$':
				b.WriteByte(next)
				i++
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

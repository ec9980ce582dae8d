package escape

import (
	"testing"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "const a = 1;", "const a = 1;"},
		{"backslash", `a\b`, `a\\b`},
		{"backtick", "a`b", "a\\`b"},
		{"substitution", "x ${y}", `x \${y}`},
		{"dollar alone", "$5 and $", "$5 and $"},
		{"brace alone", "{}", "{}"},
		{"escaped backtick in source", "\\`", "\\\\\\`"},
		{"backslash before substitution", `\${a}`, `\\\${a}`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Escape(tt.in); got != tt.want {
				t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEscapedHasNoBareDelimiters(t *testing.T) {
	src := "const s = `hello ${name}` + '\\n';"
	out := Escape(src)
	for i := 0; i < len(out); i++ {
		if out[i] == '`' && (i == 0 || out[i-1] != '\\') {
			t.Fatalf("unescaped backtick at %d in %q", i, out)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		`\`,
		`\\`,
		"`",
		"${",
		"$",
		`\$`,
		"\\`",
		`\${x}`,
		"$${x}",
		"`${`${`}`}`",
		"line one\nline two\r\n\ttabbed",
		"export function Button() {\n  return <button className={`a ${b}`}>\\</button>\n}\n",
		"trailing backslash \\",
		"\xff\xfe invalid utf-8 \x00",
		"emoji 🎉 and ünïcödé",
	}

	for _, in := range inputs {
		if got := Unescape(Escape(in)); got != in {
			t.Errorf("Unescape(Escape(%q)) = %q", in, got)
		}
	}
}

func TestRoundTripAllBytePairs(t *testing.T) {
	special := []byte{'\\', '`', '$', '{', 'a', '\n', 0}
	for _, a := range special {
		for _, b := range special {
			for _, c := range special {
				in := string([]byte{a, b, c})
				if got := Unescape(Escape(in)); got != in {
					t.Fatalf("round trip failed for %q: got %q", in, got)
				}
			}
		}
	}
}

func TestUnescapeKeepsUnknownEscapes(t *testing.T) {
	if got := Unescape(`\n\t`); got != `\n\t` {
		t.Errorf("Unescape kept escapes = %q, want %q", got, `\n\t`)
	}
}

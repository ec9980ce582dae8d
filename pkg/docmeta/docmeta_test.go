package docmeta

import (
	"reflect"
	"testing"
)

func TestDescription(t *testing.T) {
	tests := []struct {
		name string
		src  string
		id   string
		want string
	}{
		{
			name: "explicit description tag",
			src:  "/**\n * Some summary\n * @description Foo bar\n */\nexport function X() {}",
			id:   "x",
			want: "Foo bar",
		},
		{
			name: "description tag trimmed",
			src:  "/** @description    Foo bar   */",
			id:   "x",
			want: "Foo bar",
		},
		{
			name: "first content line",
			src:  "/**\n * A nice button\n * with a second line\n */\nexport function Button() {}",
			id:   "button",
			want: "A nice button",
		},
		{
			name: "leading tag line is not a summary",
			src:  "/**\n * @see https://example.com\n * Shimmering border\n */",
			id:   "border",
			want: "Border component",
		},
		{
			name: "param tag before prose",
			src:  "/**\n * @param props the props\n * Internal helper\n */",
			id:   "glow-card",
			want: "Glow Card component",
		},
		{
			name: "only tags falls back",
			src:  "/**\n * @author someone\n */",
			id:   "ripple-effect",
			want: "Ripple Effect component",
		},
		{
			name: "empty description tag falls back to summary",
			src:  "/**\n * Soft glow\n * @description\n */",
			id:   "glow",
			want: "Soft glow",
		},
		{
			name: "no doc block",
			src:  "export function GlassShimmerButton() {}",
			id:   "glass-shimmer-button",
			want: "Glass Shimmer Button component",
		},
		{
			name: "plain block comment is not a doc block",
			src:  "/* A plain comment */\nexport const A = 1;",
			id:   "plain-card",
			want: "Plain Card component",
		},
		{
			name: "only first block considered",
			src:  "/**\n */\n/** Second block */",
			id:   "first",
			want: "First component",
		},
		{
			name: "empty source",
			src:  "",
			id:   "modal",
			want: "Modal component",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Description(tt.src, tt.id); got != tt.want {
				t.Errorf("Description() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	src := `"use client";

/**
 * Animated shiny text.
 *
 * @description Text with a moving highlight
 * @registryDependency button, badge
 * @registryDependency	card
 * @registryDependency button
 */
export function ShinyText() {}
`
	b, ok := Parse(src)
	if !ok {
		t.Fatal("Parse() found no block")
	}

	if s, _ := b.Summary(); s != "Animated shiny text." {
		t.Errorf("Summary() = %q", s)
	}
	if d, _ := b.Tag(TagDescription); d != "Text with a moving highlight" {
		t.Errorf("Tag(description) = %q", d)
	}

	got := b.RegistryDependencies()
	want := []string{"button", "badge", "card"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RegistryDependencies() = %v, want %v", got, want)
	}
}

func TestParseNoBlock(t *testing.T) {
	if _, ok := Parse("const a = 1;"); ok {
		t.Error("Parse() should report no block")
	}
}

func TestSynthesize(t *testing.T) {
	if got := Synthesize("glass-shimmer-button"); got != "Glass Shimmer Button component" {
		t.Errorf("Synthesize() = %q", got)
	}
}

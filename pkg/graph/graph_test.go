package graph

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/uiregistry/pkg/registry"
)

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.New([]registry.Entry{
		{Name: "button", DisplayName: "Button", Dependencies: []string{"clsx", "tailwind-merge"}},
		{Name: "glass-button", DisplayName: "Glass Button", Dependencies: []string{"motion", "clsx"}, RegistryDependencies: []string{"button"}},
		{Name: "dialog", DisplayName: "Dialog", Dependencies: []string{"motion"}, RegistryDependencies: []string{"glass-button", "portal"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return reg
}

func TestFromRegistry(t *testing.T) {
	g := FromRegistry(testRegistry(t), Options{})

	var ids []string
	for _, n := range g.Nodes {
		ids = append(ids, n.ID)
	}
	if want := []string{"button", "dialog", "glass-button", "portal"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("nodes = %v, want %v", ids, want)
	}
	if !g.Nodes[3].External {
		t.Error("portal should be external")
	}

	want := []Edge{
		{From: "dialog", To: "glass-button", Kind: EdgeRegistry},
		{From: "dialog", To: "portal", Kind: EdgeRegistry},
		{From: "glass-button", To: "button", Kind: EdgeRegistry},
	}
	if !reflect.DeepEqual(g.Edges, want) {
		t.Errorf("edges = %v, want %v", g.Edges, want)
	}
}

func TestFromRegistryPackages(t *testing.T) {
	g := FromRegistry(testRegistry(t), Options{Packages: true})

	var pkgs []string
	for _, n := range g.Nodes {
		if n.Kind == KindPackage {
			pkgs = append(pkgs, n.Label)
		}
	}
	if want := []string{"clsx", "motion", "tailwind-merge"}; !reflect.DeepEqual(pkgs, want) {
		t.Errorf("packages = %v, want %v", pkgs, want)
	}

	npm := 0
	for _, e := range g.Edges {
		if e.Kind == EdgeNPM {
			npm++
			if !strings.HasPrefix(e.To, packagePrefix) {
				t.Errorf("npm edge target %q lacks prefix", e.To)
			}
		}
	}
	if npm != 5 {
		t.Errorf("npm edges = %d, want 5", npm)
	}
}

func TestFromEmptyRegistry(t *testing.T) {
	g := FromRegistry(registry.Empty(), Options{Packages: true})
	if len(g.Nodes) != 0 || len(g.Edges) != 0 {
		t.Errorf("graph = %+v, want empty", g)
	}
	data, err := MarshalGraph(g)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"nodes": []`) {
		t.Errorf("empty graph JSON = %s", data)
	}
}

func TestDependents(t *testing.T) {
	g := FromRegistry(testRegistry(t), Options{Packages: true})

	tests := []struct {
		id   string
		want []string
	}{
		{"button", []string{"dialog", "glass-button"}},
		{"glass-button", []string{"dialog"}},
		{"dialog", nil},
		{"clsx", []string{"button", "dialog", "glass-button"}},
		{"motion", []string{"dialog", "glass-button"}},
	}
	for _, tt := range tests {
		if got := g.Dependents(tt.id); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Dependents(%s) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(FromRegistry(testRegistry(t), Options{Packages: true}))
	for _, want := range []string{
		"digraph G {",
		`"glass-button" [label="Glass Button"];`,
		`"portal" [label="portal", style="rounded,filled,dashed", fontcolor=grey30];`,
		`"npm:motion" [label="motion", shape=ellipse, fillcolor=lightgrey];`,
		`"glass-button" -> "button";`,
		`"glass-button" -> "npm:motion" [color=grey50];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	dot := ToDOT(FromRegistry(testRegistry(t), Options{}))
	svg, err := RenderSVG(context.Background(), dot)
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("output is not SVG")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if out != want {
		t.Errorf("got %s\nwant %s", out, want)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Errorf("no viewBox should be unchanged, got %s", got)
	}
}

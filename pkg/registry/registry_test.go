package registry

import (
	"strings"
	"testing"

	"github.com/matzehuels/uiregistry/pkg/errors"
	"github.com/matzehuels/uiregistry/pkg/escape"
)

func sampleEntries() []Entry {
	return []Entry{
		{
			Name:                 "glass-button",
			DisplayName:          "Glass Button",
			Description:          "A glassy button",
			Dependencies:         []string{"motion", "clsx", "tailwind-merge"},
			RegistryDependencies: []string{"button"},
			Tailwind: map[string]any{
				"theme": map[string]any{"extend": map[string]any{"colors": map[string]any{"glass": "#fff"}}},
			},
			Source: escape.Escape("export const a = `x ${y}`\n// C:\\path\n"),
		},
		{
			Name:         "aurora",
			DisplayName:  "Aurora",
			Description:  `Says "hi" <b>&</b>`,
			Dependencies: []string{"motion"},
			CSSVars:      map[string]any{"light": map[string]any{"aurora": "0 0% 100%"}},
			Source:       escape.Escape("line1\nline2\t`tick`\n\\`\\${}"),
		},
	}
}

func TestNew(t *testing.T) {
	r, err := New(sampleEntries())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if r.Len() != 2 {
		t.Errorf("Len = %d, want 2", r.Len())
	}
	if got := strings.Join(r.Names(), ","); got != "aurora,glass-button" {
		t.Errorf("Names = %s", got)
	}
	if _, ok := r.Lookup("missing"); ok {
		t.Error("Lookup(missing) succeeded")
	}
	e, ok := r.Lookup("aurora")
	if !ok || e.DisplayName != "Aurora" {
		t.Errorf("Lookup(aurora) = %+v, %v", e, ok)
	}
}

func TestNewRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
	}{
		{"empty name", []Entry{{Name: ""}}},
		{"duplicate", []Entry{{Name: "a"}, {Name: "a"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.entries)
			if !errors.Is(err, errors.ErrCodeInvalidArtifact) {
				t.Errorf("err = %v, want INVALID_ARTIFACT", err)
			}
		})
	}
}

func TestNewCopiesSlices(t *testing.T) {
	deps := []string{"motion"}
	r, err := New([]Entry{{Name: "a", Dependencies: deps}})
	if err != nil {
		t.Fatal(err)
	}
	deps[0] = "changed"
	e, _ := r.Lookup("a")
	if e.Dependencies[0] != "motion" {
		t.Errorf("registry shares caller slice: %v", e.Dependencies)
	}
}

func TestNilRegistry(t *testing.T) {
	var r *Registry
	if r.Len() != 0 || r.Names() != nil || r.Entries() != nil {
		t.Error("nil registry should be empty")
	}
	if _, ok := r.Lookup("x"); ok {
		t.Error("nil registry Lookup succeeded")
	}
	if Empty().Len() != 0 {
		t.Error("Empty() not empty")
	}
}

func TestDependencyCounts(t *testing.T) {
	r, _ := New(sampleEntries())
	counts := r.DependencyCounts()
	if counts["motion"] != 2 || counts["clsx"] != 1 {
		t.Errorf("DependencyCounts = %v", counts)
	}
}

func TestEntryContent(t *testing.T) {
	src := "a `b` ${c} \\d"
	e := Entry{Source: escape.Escape(src)}
	if e.Content() != src {
		t.Errorf("Content = %q, want %q", e.Content(), src)
	}
}

package detect

import (
	"slices"
	"strings"

	"github.com/matzehuels/uiregistry/pkg/errors"
)

// Mode selects how source text is scanned.
type Mode string

const (
	// ModeSubstring matches rule signatures against the raw text.
	ModeSubstring Mode = "substring"

	// ModeImports matches rules against comment-free text and also
	// attributes bare package imports.
	ModeImports Mode = "imports"
)

// Modes lists the supported modes in display order.
var Modes = []Mode{ModeSubstring, ModeImports}

// ParseMode validates a mode name against [Modes]. The empty string selects
// [ModeSubstring].
func ParseMode(s string) (Mode, error) {
	name := Mode(strings.ToLower(strings.TrimSpace(s)))
	if name == "" {
		return ModeSubstring, nil
	}
	if slices.Contains(Modes, name) {
		return name, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown detection mode %q (available: %s)", s, ModeNames())
}

// ModeNames returns [Modes] as a comma-separated list.
func ModeNames() string {
	names := make([]string, len(Modes))
	for i, m := range Modes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

// Detector evaluates a rule table against component sources.
// A Detector is immutable after construction and safe for concurrent use.
type Detector struct {
	rules    []Rule
	mode     Mode
	fallback string
}

// Option configures a [Detector].
type Option func(*Detector)

// WithMode sets the scan mode.
func WithMode(m Mode) Option {
	return func(d *Detector) { d.mode = m }
}

// WithRules replaces the rule table. The slice is copied.
func WithRules(rules []Rule) Option {
	return func(d *Detector) { d.rules = append([]Rule(nil), rules...) }
}

// New creates a detector using [DefaultRules] in [ModeSubstring] unless
// overridden by opts.
func New(opts ...Option) *Detector {
	d := &Detector{
		rules:    DefaultRules,
		mode:     ModeSubstring,
		fallback: DefaultDependency,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.mode == "" {
		d.mode = ModeSubstring
	}
	return d
}

// Mode returns the detector's scan mode.
func (d *Detector) Mode() Mode { return d.mode }

// Rules returns the detector's rule table.
func (d *Detector) Rules() []Rule { return d.rules }

var defaultDetector = New()

// Dependencies detects dependencies with the default substring detector.
func Dependencies(src string) []string {
	return defaultDetector.Detect(src)
}

// Detect returns the ordered, de-duplicated dependency set for src.
// The result is never empty.
func (d *Detector) Detect(src string) []string {
	text := src
	if d.mode == ModeImports {
		text = StripComments(src)
	}

	var found []string
	for _, r := range d.rules {
		if r.matches(text) {
			found = append(found, r.Dependencies...)
		}
	}
	if d.mode == ModeImports {
		found = append(found, ImportedPackages(text)...)
	}

	found = dedupe(found)
	if len(found) == 0 {
		return []string{d.fallback}
	}
	return found
}

// Matches returns the names of the rules that match src, in table order.
// It is intended for debugging detection results.
func (d *Detector) Matches(src string) []string {
	text := src
	if d.mode == ModeImports {
		text = StripComments(src)
	}
	var names []string
	for _, r := range d.rules {
		if r.matches(text) {
			names = append(names, r.Name)
		}
	}
	return names
}

func (r Rule) matches(text string) bool {
	for _, sig := range r.Signatures {
		if strings.Contains(text, sig) {
			return true
		}
	}
	return false
}

func dedupe(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(items))
	out := items[:0:0]
	for _, it := range items {
		if it == "" || seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return out
}

// Package detect infers the npm dependencies of a component from its source text.
//
// # Rules
//
// Detection evaluates a fixed, ordered table of [Rule] values against the
// raw source. A rule matches when any of its signatures occurs in the text and
// then contributes all of its dependencies at once (the class-merge rule, for
// example, contributes both "clsx" and "tailwind-merge"). Every rule is
// evaluated regardless of earlier matches. The result is de-duplicated in
// first-match order, and when no rule matched the baseline
// [DefaultDependency] is returned on its own.
//
// # Modes
//
// [ModeSubstring] is the literal substring heuristic. It can miss
// dependencies that are referenced through dynamically built strings and can
// over-attribute when a comment mentions a trigger; both are accepted
// limitations of the heuristic, and the mode is kept bit-for-bit stable for
// existing registry consumers.
//
// [ModeImports] strips comments first, runs the same rules, and additionally
// attributes every bare package imported via import/export/require/dynamic
// import. It reduces false negatives for packages the rule table does not
// know about.
//
// # Usage
//
//	deps := detect.Dependencies(src)
//
//	d := detect.New(detect.WithMode(detect.ModeImports))
//	deps = d.Detect(src)
package detect

package detect

// DefaultDependency is attributed to components no rule matched: every
// component is assumed to render with the animation runtime.
const DefaultDependency = "motion"

// Rule maps textual signatures to the dependencies they imply.
type Rule struct {
	// Name identifies the rule in logs and debug output.
	Name string

	// Signatures are substrings; any one of them triggers the rule.
	Signatures []string

	// Dependencies are contributed together, in order, when the rule matches.
	Dependencies []string
}

// DefaultRules is the ordered rule table used by [Dependencies] and by
// detectors created without [WithRules].
var DefaultRules = []Rule{
	{
		Name:         "motion",
		Signatures:   []string{"motion/react", "framer-motion"},
		Dependencies: []string{"motion"},
	},
	{
		Name:         "class-merge",
		Signatures:   []string{"@/lib/utils", "cn("},
		Dependencies: []string{"clsx", "tailwind-merge"},
	},
	{
		Name:         "icons",
		Signatures:   []string{"lucide-react"},
		Dependencies: []string{"lucide-react"},
	},
	{
		Name:         "slot",
		Signatures:   []string{"@radix-ui/react-slot"},
		Dependencies: []string{"@radix-ui/react-slot"},
	},
	{
		Name:         "variants",
		Signatures:   []string{"class-variance-authority"},
		Dependencies: []string{"class-variance-authority"},
	},
	{
		Name:         "three",
		Signatures:   []string{"@react-three/fiber", `from "three"`, `from 'three'`},
		Dependencies: []string{"three", "@react-three/fiber"},
	},
	{
		Name:         "gsap",
		Signatures:   []string{"gsap"},
		Dependencies: []string{"gsap"},
	},
	{
		Name:         "confetti",
		Signatures:   []string{"canvas-confetti"},
		Dependencies: []string{"canvas-confetti"},
	},
	{
		Name:         "globe",
		Signatures:   []string{"cobe"},
		Dependencies: []string{"cobe"},
	},
	{
		Name:         "themes",
		Signatures:   []string{"next-themes"},
		Dependencies: []string{"next-themes"},
	},
	{
		Name:         "measure",
		Signatures:   []string{"react-use-measure"},
		Dependencies: []string{"react-use-measure"},
	},
}

package escape_test

import (
	"fmt"

	"github.com/matzehuels/uiregistry/pkg/escape"
)

func ExampleEscape() {
	src := "className={`p-2 ${size}`}"
	escaped := escape.Escape(src)
	fmt.Println(escaped)
	fmt.Println(escape.Unescape(escaped) == src)
	// Output:
	// className={\`p-2 \${size}\`}
	// true
}

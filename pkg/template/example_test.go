package template_test

import (
	"fmt"

	"github.com/matzehuels/waterflow/pkg/template"
)

func ExampleParse() {
	t := template.Parse("1fr 2fr", 300, 0)
	fmt.Println(t.Count, t.Sizes)
	// Output: 2 [100 200]
}

func ExampleParse_malformed() {
	t := template.Parse("1fr oops", 300, 0)
	fmt.Println(t.Count, t.Sizes)
	// Output: 1 [300]
}

func ExampleOffsets() {
	t := template.Parse("repeat(3, 1fr)", 320, 10)
	fmt.Println(t.Sizes, template.Offsets(t.Sizes, 10))
	// Output: [100 100 100] [0 110 220]
}

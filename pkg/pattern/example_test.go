package pattern_test

import (
	"fmt"

	"github.com/matzehuels/backdrop/pkg/pattern"
)

func ExampleGenerateDash() {
	// A fixed source pins the output: three cuts at 25/50/75, then
	// visible, hidden, visible, hidden.
	src := pattern.NewSequence(0.0, 0.25, 0.75, 0.5, 0.9, 0.1, 0.8, 0.3)
	fmt.Println(pattern.GenerateDash(src))
	// Output: 25 25 25 25
}

func ExampleNewScene() {
	scene := pattern.NewScene(42)
	fmt.Println(len(scene.Vertical), len(scene.Horizontal))
	// Output: 12 8
}

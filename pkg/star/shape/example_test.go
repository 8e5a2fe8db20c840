package shape_test

import (
	"fmt"

	"github.com/matzehuels/starbar/pkg/star/shape"
)

func ExampleBuildClosedPath() {
	pts := shape.Scale([]shape.Point{{0, 0}, {100, 0}, {50, 80}}, 0.1)
	fmt.Println(shape.BuildClosedPath(pts).SVG())
	// Output: M0,0 L10,0 L5,8 Z
}

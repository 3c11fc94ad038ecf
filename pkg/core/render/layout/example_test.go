package layout_test

import (
	"fmt"

	"github.com/matzehuels/flowdraw/pkg/core/flow"
	"github.com/matzehuels/flowdraw/pkg/core/render/layout"
)

func ExampleAssignCoordinates() {
	g, _ := flow.New([]flow.Task{
		{ID: "A", Size: flow.Size{W: 100, H: 50}},
		{ID: "B", Size: flow.Size{W: 100, H: 50}},
		{ID: "C", Size: flow.Size{W: 100, H: 50}},
	}, nil)

	geo := layout.DefaultGeometry()
	geo.Width, geo.Padding = 300, 0

	pos := layout.AssignCoordinates(g, flow.Layers{{"A"}, {"B", "C"}}, geo)
	for _, id := range g.TaskIDs() {
		fmt.Printf("%s (%.0f, %.0f)\n", id, pos[id].X, pos[id].Y)
	}
	// Output:
	// A (0, 0)
	// B (300, -50)
	// C (300, 50)
}

package sink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/flowdraw/pkg/core/engine"
	"github.com/matzehuels/flowdraw/pkg/core/flow"
	"github.com/matzehuels/flowdraw/pkg/core/render/sink"
	"github.com/matzehuels/flowdraw/pkg/core/render/styles"
)

func ExampleRenderSVG() {
	g, _ := flow.New([]flow.Task{
		{ID: "fetch", Outputs: []string{"body"}, OutputPositions: []float64{0.5}},
		{ID: "parse", Inputs: []string{"body"}, InputPositions: []float64{0.5}},
	}, []flow.Link{{
		Source: flow.Source{TaskID: "fetch", OutputName: "body"},
		Target: flow.Target{TaskID: "parse", InputName: "body"},
	}})
	res, _ := engine.Run(g, engine.Options{})

	svg := string(sink.RenderSVG(g, res, sink.WithStyle(styles.Outline{})))
	fmt.Println(strings.HasPrefix(svg, "<svg"))
	fmt.Println(strings.Count(svg, `class="task_box"`))
	fmt.Println(strings.Count(svg, `class="link"`))
	// Output:
	// true
	// 2
	// 1
}

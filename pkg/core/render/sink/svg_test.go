package sink

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/flowdraw/pkg/core/engine"
	"github.com/matzehuels/flowdraw/pkg/core/flow"
	"github.com/matzehuels/flowdraw/pkg/core/render/shape"
	"github.com/matzehuels/flowdraw/pkg/core/render/styles"
)

func cycleResult(t *testing.T) (*flow.Graph, *engine.Result) {
	t.Helper()
	task := func(id, name string) flow.Task {
		return flow.Task{
			ID: id, Name: name,
			Size:            flow.Size{W: 100, H: 50},
			Inputs:          []string{"in"},
			Outputs:         []string{"out"},
			InputPositions:  []float64{0.5},
			OutputPositions: []float64{0.25},
		}
	}
	link := func(from, to string) flow.Link {
		return flow.Link{Source: flow.Source{TaskID: from, OutputName: "out"}, Target: flow.Target{TaskID: to, InputName: "in"}}
	}
	g, err := flow.New(
		[]flow.Task{task("A", "Load & Parse"), task("B", ""), task("C", "")},
		[]flow.Link{link("A", "B"), link("B", "C"), link("C", "A")},
	)
	if err != nil {
		t.Fatalf("flow.New() error = %v", err)
	}
	res, err := engine.Run(g, engine.Options{})
	if err != nil {
		t.Fatalf("engine.Run() error = %v", err)
	}
	return g, res
}

func TestRenderSVGWellFormed(t *testing.T) {
	g, res := cycleResult(t)
	for _, style := range []styles.Style{styles.Simple{}, styles.Outline{}} {
		out := RenderSVG(g, res, WithStyle(style))
		dec := xml.NewDecoder(strings.NewReader(string(out)))
		for {
			_, err := dec.Token()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					t.Errorf("%s: invalid XML: %v", style.Name(), err)
				}
				break
			}
		}
	}
}

func TestRenderSVGContent(t *testing.T) {
	g, res := cycleResult(t)
	out := string(RenderSVG(g, res))

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		`class="background"`,
		`id="task-A"`, `id="task-B"`, `id="task-C"`,
		`Load &amp; Parse`,
		`class="task_anchor_link"`,
		`class="link_back"`,
		`stroke-dasharray`,
		`</svg>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderSVG() missing %q", want)
		}
	}
	if n := strings.Count(out, `marker-end="url(#arrow)"`); n != 3 {
		t.Errorf("RenderSVG() has %d links, want 3", n)
	}
}

func TestRenderSVGWithoutPortLabels(t *testing.T) {
	g, res := cycleResult(t)
	with := string(RenderSVG(g, res))
	without := string(RenderSVG(g, res, WithoutPortLabels()))
	if !strings.Contains(with, `class="task_text_io"`) {
		t.Error("default output has no port labels")
	}
	if strings.Contains(without, `class="task_text_io"`) {
		t.Error("WithoutPortLabels() output still has port labels")
	}
}

func TestBuildSceneFlipsY(t *testing.T) {
	g, res := cycleResult(t)
	scene := BuildScene(g, res, 10, true)

	var boxes []shape.Box
	var back shape.Curve
	for _, s := range scene.Shapes {
		switch v := s.(type) {
		case shape.Box:
			if v.Class == shape.ClassTaskBox {
				boxes = append(boxes, v)
			}
		case shape.Curve:
			if v.Back {
				back = v
			}
		}
	}
	if len(boxes) != 3 {
		t.Fatalf("task boxes = %d, want 3", len(boxes))
	}
	for _, b := range boxes {
		if back.C1.Y >= b.Y {
			t.Errorf("back arc control y = %v, want above box top %v", back.C1.Y, b.Y)
		}
	}
	if scene.ViewBox.MinY > back.C1.Y {
		t.Errorf("view box top %v cuts off arc at %v", scene.ViewBox.MinY, back.C1.Y)
	}
}

func TestBuildSceneAnchorsMatchPaths(t *testing.T) {
	g, res := cycleResult(t)
	scene := BuildScene(g, res, 0, false)

	anchors := map[shape.Point]bool{}
	for _, s := range scene.Shapes {
		if a, ok := s.(shape.Anchor); ok {
			anchors[shape.Point{X: a.CX, Y: a.CY}] = true
		}
	}
	for _, s := range scene.Shapes {
		c, ok := s.(shape.Curve)
		if !ok || c.Back {
			continue
		}
		if !anchors[c.Start] {
			t.Errorf("curve %s start %v has no anchor", c.ID, c.Start)
		}
		if !anchors[c.End] {
			t.Errorf("curve %s end %v has no anchor", c.ID, c.End)
		}
	}
}

func TestRenderSVGEmpty(t *testing.T) {
	g, err := flow.New(nil, nil)
	if err != nil {
		t.Fatalf("flow.New() error = %v", err)
	}
	res, err := engine.Run(g, engine.Options{AllowEmpty: true})
	if err != nil {
		t.Fatalf("engine.Run() error = %v", err)
	}
	out := string(RenderSVG(g, res))
	if !strings.Contains(out, `viewBox="-20.0 -20.0 40.0 40.0"`) {
		t.Errorf("RenderSVG(empty) = %s", out)
	}
}

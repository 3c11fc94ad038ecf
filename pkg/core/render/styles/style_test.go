package styles

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/flowdraw/pkg/core/render/shape"
)

func render(s Style, sh shape.Shape) string {
	var buf bytes.Buffer
	switch v := sh.(type) {
	case shape.Box:
		s.RenderBox(&buf, v)
	case shape.Label:
		s.RenderLabel(&buf, v)
	case shape.Curve:
		s.RenderCurve(&buf, v)
	case shape.Anchor:
		s.RenderAnchor(&buf, v)
	case shape.Rule:
		s.RenderRule(&buf, v)
	}
	return buf.String()
}

func TestStylesRenderShapes(t *testing.T) {
	curve := shape.Curve{
		ID: "a-b", Class: shape.ClassLinkBack, Back: true,
		Start: shape.Point{X: 1, Y: 2}, C1: shape.Point{X: 3, Y: 4},
		C2: shape.Point{X: 5, Y: 6}, End: shape.Point{X: 7, Y: 8},
	}
	tests := []struct {
		name     string
		style    Style
		shape    shape.Shape
		contains []string
	}{
		{
			name:     "simple box",
			style:    Simple{},
			shape:    shape.Box{ID: "ingest", Class: shape.ClassTaskBox, X: 10, Y: 20, W: 150, H: 60},
			contains: []string{`<rect`, `id="task-ingest"`, `class="task_box"`, `x="10.00"`, `width="150.00"`, `fill="#d6f2d6"`},
		},
		{
			name:     "simple background",
			style:    Simple{},
			shape:    shape.Box{Class: shape.ClassBackground, W: 10, H: 10},
			contains: []string{`class="background"`, `fill="#ffffff"`},
		},
		{
			name:     "simple back curve dashed",
			style:    Simple{},
			shape:    curve,
			contains: []string{`id="link-a-b"`, `d="M 1.00 2.00 C 3.00 4.00, 5.00 6.00, 7.00 8.00"`, `stroke-dasharray`, `marker-end="url(#arrow)"`},
		},
		{
			name:     "simple label escaped",
			style:    Simple{},
			shape:    shape.Label{Class: shape.ClassTaskTitle, Text: "a<b & c", FontSize: 10, Anchor: shape.AnchorMiddle},
			contains: []string{`a&lt;b &amp; c`, `text-anchor="middle"`, `font-weight="bold"`},
		},
		{
			name:     "outline anchor",
			style:    Outline{},
			shape:    shape.Anchor{Class: shape.ClassAnchor, CX: 1, CY: 2, R: 2},
			contains: []string{`<circle class="task_anchor_link"`, `cx="1.00"`, `r="2.0"`},
		},
		{
			name:     "outline rule",
			style:    Outline{},
			shape:    shape.Rule{Class: shape.ClassTaskLine, X1: 0, Y1: 5, X2: 10, Y2: 5},
			contains: []string{`<line class="task_line"`, `x2="10.00"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := render(tt.style, tt.shape)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q\ngot: %s", want, got)
				}
			}
		})
	}
}

func TestOutlineKeepsPresentationInCSS(t *testing.T) {
	var defs bytes.Buffer
	Outline{}.RenderDefs(&defs)
	for _, class := range []string{".task_box", ".task_anchor_link", ".link_back", "stroke-dasharray"} {
		if !strings.Contains(defs.String(), class) {
			t.Errorf("RenderDefs() missing %q", class)
		}
	}

	box := render(Outline{}, shape.Box{Class: shape.ClassTaskBox, W: 1, H: 1})
	if strings.Contains(box, "fill=") {
		t.Errorf("RenderBox() = %s, want no inline fill", box)
	}
}

func TestRenderDefsMarker(t *testing.T) {
	for _, s := range []Style{Simple{}, Outline{}} {
		var buf bytes.Buffer
		s.RenderDefs(&buf)
		if !strings.Contains(buf.String(), `<marker id="arrow"`) {
			t.Errorf("%s RenderDefs() missing arrow marker", s.Name())
		}
	}
}

func TestByName(t *testing.T) {
	for _, name := range Names {
		s, ok := ByName(name)
		if !ok || s.Name() != name {
			t.Errorf("ByName(%q) = %v, %v", name, s, ok)
		}
	}
	if s, ok := ByName(""); !ok || s.Name() != "simple" {
		t.Errorf("ByName(\"\") = %v, %v, want simple", s, ok)
	}
	if _, ok := ByName("handdrawn"); ok {
		t.Error("ByName(handdrawn) ok = true, want false")
	}
}

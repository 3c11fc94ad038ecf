package sink

import (
	"fmt"

	"github.com/matzehuels/flowdraw/pkg/core/engine"
	"github.com/matzehuels/flowdraw/pkg/core/flow"
	"github.com/matzehuels/flowdraw/pkg/core/render/layout"
	"github.com/matzehuels/flowdraw/pkg/core/render/shape"
)

const (
	titleFontSize  = 10.0
	ioFontSize     = 7.0
	titleBandMax   = 18.0
	titleBandRatio = 0.3
	textInset      = 5.0
	anchorRadius   = 2.0
	defaultMargin  = 20.0
)

// Scene is a flat, ordered list of shapes plus the visible area, both in
// canvas coordinates with y growing downward.
type Scene struct {
	ViewBox layout.Rect
	Shapes  []shape.Shape
}

type sceneConfig struct {
	margin     float64
	portLabels bool
}

// BuildScene converts a layout result into shapes.
//
// Layout coordinates are y-up; the scene negates every y so that back-links,
// which arc above the highest box, are drawn above the tasks. Shapes are
// emitted in paint order: background, tasks in ID order, then links in
// link order.
func BuildScene(g *flow.Graph, res *engine.Result, margin float64, portLabels bool) Scene {
	cfg := sceneConfig{margin: margin, portLabels: portLabels}

	vb := layout.Rect{
		MinX: res.Bounds.MinX - cfg.margin,
		MinY: -res.Bounds.MaxY - cfg.margin,
		MaxX: res.Bounds.MaxX + cfg.margin,
		MaxY: -res.Bounds.MinY + cfg.margin,
	}

	shapes := []shape.Shape{
		shape.Box{Class: shape.ClassBackground, X: vb.MinX, Y: vb.MinY, W: vb.Width(), H: vb.Height()},
	}
	for _, id := range g.TaskIDs() {
		t, _ := g.Task(id)
		p, ok := res.Positions[id]
		if !ok {
			continue
		}
		shapes = append(shapes, taskShapes(t, p, res.Geometry, cfg)...)
	}
	for i, p := range res.Paths {
		shapes = append(shapes, curveShape(i, p))
	}

	return Scene{ViewBox: vb, Shapes: shapes}
}

func flip(p flow.Point) shape.Point { return shape.Point{X: p.X, Y: -p.Y} }

// portY returns the canvas y of a port anchor. It mirrors the routing
// formula so anchors sit exactly on curve endpoints.
func portY(center flow.Point, h, frac float64) float64 {
	return -(center.Y - h/2 + frac*h)
}

func taskShapes(t *flow.Task, p flow.Point, geo layout.Geometry, cfg sceneConfig) []shape.Shape {
	size := geo.SizeOf(t)
	left := p.X - size.W/2
	top := -(p.Y + size.H/2)
	band := min(titleBandMax, size.H*titleBandRatio)

	title, titleSize := shape.FitLabel(t.Label(), size.W-2*textInset, titleFontSize)
	out := []shape.Shape{
		shape.Box{ID: t.ID, Class: shape.ClassTaskBox, X: left, Y: top, W: size.W, H: size.H},
		shape.Label{Class: shape.ClassTaskTitle, X: p.X, Y: top + band/2, Text: title, FontSize: titleSize, Anchor: shape.AnchorMiddle},
		shape.Rule{Class: shape.ClassTaskLine, X1: left, Y1: top + band, X2: left + size.W, Y2: top + band},
	}

	half := size.W/2 - 2*textInset
	for i, name := range t.Inputs {
		y := portY(p, size.H, t.InputPositions[i])
		out = append(out, shape.Anchor{Class: shape.ClassAnchor, CX: left, CY: y, R: anchorRadius})
		if cfg.portLabels {
			text, fs := shape.FitLabel(name, half, ioFontSize)
			out = append(out, shape.Label{Class: shape.ClassTaskIO, X: left + textInset, Y: y, Text: text, FontSize: fs, Anchor: shape.AnchorStart})
		}
	}
	for i, name := range t.Outputs {
		y := portY(p, size.H, t.OutputPositions[i])
		out = append(out, shape.Anchor{Class: shape.ClassAnchor, CX: left + size.W, CY: y, R: anchorRadius})
		if cfg.portLabels {
			text, fs := shape.FitLabel(name, half, ioFontSize)
			out = append(out, shape.Label{Class: shape.ClassTaskIO, X: left + size.W - textInset, Y: y, Text: text, FontSize: fs, Anchor: shape.AnchorEnd})
		}
	}
	return out
}

func curveShape(i int, p flow.RoutedPath) shape.Curve {
	c := shape.Curve{
		ID:    fmt.Sprintf("%d-%s-%s", i, p.SourceID, p.TargetID),
		Class: shape.ClassLink,
		Start: flip(p.Start),
		C1:    flip(p.Control1),
		C2:    flip(p.Control2),
		End:   flip(p.End),
	}
	if p.Strategy == flow.StrategyBack {
		c.Class = shape.ClassLinkBack
		c.Back = true
	}
	return c
}

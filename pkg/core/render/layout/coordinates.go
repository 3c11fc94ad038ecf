package layout

import (
	"math"

	"github.com/matzehuels/flowdraw/pkg/core/flow"
)

// AssignCoordinates places every task of layers on the canvas.
//
// Layer i becomes the column at x = Padding + i·spacing. Tasks within a
// column keep the layer's order (ascending ID) and are stacked from the
// bottom of a block of height Σh + NodeGap·(k−1) centred on y = 0.
//
// Tasks listed in layers but missing from g are skipped. The returned map
// is freshly allocated.
func AssignCoordinates(g *flow.Graph, layers flow.Layers, geo Geometry) flow.PositionMap {
	pos := make(flow.PositionMap, g.TaskCount())
	spacing := ColumnSpacing(len(layers), geo)

	for i, layer := range layers {
		x := geo.Padding + float64(i)*spacing

		heights := make([]float64, 0, len(layer))
		total := 0.0
		for _, id := range layer {
			t, ok := g.Task(id)
			if !ok {
				continue
			}
			h := geo.SizeOf(t).H
			heights = append(heights, h)
			total += h
		}
		if len(heights) == 0 {
			continue
		}
		total += geo.NodeGap * float64(len(heights)-1)

		cursor := -total / 2
		j := 0
		for _, id := range layer {
			if _, ok := g.Task(id); !ok {
				continue
			}
			h := heights[j]
			pos[id] = flow.Point{X: x, Y: cursor + h/2}
			cursor += h + geo.NodeGap
			j++
		}
	}
	return pos
}

// ColumnSpacing returns the horizontal distance between neighbouring
// columns for n layers. It is 0 when there are fewer than two layers.
func ColumnSpacing(n int, geo Geometry) float64 {
	if n < 2 {
		return 0
	}
	return (geo.Width - 2*geo.Padding) / float64(max(1, n-1))
}

// Rect is an axis-aligned rectangle in layout coordinates.
type Rect struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Width returns MaxX − MinX.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns MaxY − MinY.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		MinX: math.Min(r.MinX, o.MinX),
		MinY: math.Min(r.MinY, o.MinY),
		MaxX: math.Max(r.MaxX, o.MaxX),
		MaxY: math.Max(r.MaxY, o.MaxY),
	}
}

// Include grows r to contain p.
func (r Rect) Include(p flow.Point) Rect {
	return r.Union(Rect{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y})
}

// Bounds returns the rectangle covering every positioned task box.
// It returns the zero Rect when pos is empty.
func Bounds(g *flow.Graph, pos flow.PositionMap, geo Geometry) Rect {
	var r Rect
	first := true
	for _, id := range g.TaskIDs() {
		p, ok := pos[id]
		if !ok {
			continue
		}
		t, _ := g.Task(id)
		s := geo.SizeOf(t)
		box := Rect{MinX: p.X - s.W/2, MinY: p.Y - s.H/2, MaxX: p.X + s.W/2, MaxY: p.Y + s.H/2}
		if first {
			r, first = box, false
			continue
		}
		r = r.Union(box)
	}
	return r
}

// TopEdge returns the largest y + h/2 over all positioned tasks, or 0 when
// no task is positioned.
func TopEdge(g *flow.Graph, pos flow.PositionMap, geo Geometry) float64 {
	top := math.Inf(-1)
	for _, id := range g.TaskIDs() {
		p, ok := pos[id]
		if !ok {
			continue
		}
		t, _ := g.Task(id)
		top = math.Max(top, p.Y+geo.SizeOf(t).H/2)
	}
	if math.IsInf(top, -1) {
		return 0
	}
	return top
}

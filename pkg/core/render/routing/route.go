package routing

import (
	"errors"
	"fmt"
	"math"

	"github.com/matzehuels/flowdraw/pkg/core/flow"
	"github.com/matzehuels/flowdraw/pkg/core/render/layout"
)

// ErrMissingPosition is returned when a link endpoint has no position.
var ErrMissingPosition = errors.New("task has no position")

// Route produces one path per link, in link order. Cut links are routed
// like any other.
//
// Route returns *[flow.ReferentialError] when a link names a task or port
// the graph does not declare, and wraps [ErrMissingPosition] when an
// endpoint is absent from pos. No paths are returned on error.
func Route(g *flow.Graph, links []flow.AnnotatedLink, pos flow.PositionMap, geo layout.Geometry) ([]flow.RoutedPath, error) {
	arcY := layout.TopEdge(g, pos, geo) + geo.ArcClearance

	paths := make([]flow.RoutedPath, 0, len(links))
	for i, l := range links {
		p, err := routeOne(g, i, l.Link, pos, geo, arcY)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func routeOne(g *flow.Graph, i int, l flow.Link, pos flow.PositionMap, geo layout.Geometry, arcY float64) (flow.RoutedPath, error) {
	src, ok := g.Task(l.From())
	if !ok {
		return flow.RoutedPath{}, &flow.ReferentialError{Kind: flow.RefUnknownSource, LinkIndex: i, TaskID: l.From()}
	}
	dst, ok := g.Task(l.To())
	if !ok {
		return flow.RoutedPath{}, &flow.ReferentialError{Kind: flow.RefUnknownTarget, LinkIndex: i, TaskID: l.To()}
	}
	fOut, ok := src.OutputFraction(l.Source.OutputName)
	if !ok {
		return flow.RoutedPath{}, &flow.ReferentialError{Kind: flow.RefUnknownOutput, LinkIndex: i, TaskID: src.ID, Port: l.Source.OutputName}
	}
	fIn, ok := dst.InputFraction(l.Target.InputName)
	if !ok {
		return flow.RoutedPath{}, &flow.ReferentialError{Kind: flow.RefUnknownInput, LinkIndex: i, TaskID: dst.ID, Port: l.Target.InputName}
	}
	sp, ok := pos[src.ID]
	if !ok {
		return flow.RoutedPath{}, fmt.Errorf("link %d: %w: %q", i, ErrMissingPosition, src.ID)
	}
	tp, ok := pos[dst.ID]
	if !ok {
		return flow.RoutedPath{}, fmt.Errorf("link %d: %w: %q", i, ErrMissingPosition, dst.ID)
	}

	ss, ts := geo.SizeOf(src), geo.SizeOf(dst)
	path := flow.RoutedPath{
		SourceID:   src.ID,
		SourcePort: l.Source.OutputName,
		TargetID:   dst.ID,
		TargetPort: l.Target.InputName,
	}

	if sp.X > tp.X {
		path.Strategy = flow.StrategyBack
		path.Start = flow.Point{X: sp.X, Y: sp.Y + ss.H/2}
		path.End = flow.Point{X: tp.X, Y: tp.Y + ts.H/2}
		path.Control1 = flow.Point{X: sp.X, Y: arcY}
		path.Control2 = flow.Point{X: tp.X, Y: arcY}
		return path, nil
	}

	path.Strategy = flow.StrategyForward
	path.Start = flow.Point{X: sp.X + ss.W/2, Y: sp.Y - ss.H/2 + fOut*ss.H}
	path.End = flow.Point{X: tp.X - ts.W/2, Y: tp.Y - ts.H/2 + fIn*ts.H}
	offset := geo.CurveFactor * math.Abs(path.Start.X-path.End.X)
	path.Control1 = flow.Point{X: path.Start.X + offset, Y: path.Start.Y}
	path.Control2 = flow.Point{X: path.End.X - offset, Y: path.End.Y}
	return path, nil
}

// Extent returns the bounding rectangle of all path endpoints and control
// points. A cubic Bezier lies inside the hull of its control points, so the
// result covers every curve. The zero Rect is returned for no paths.
func Extent(paths []flow.RoutedPath) layout.Rect {
	if len(paths) == 0 {
		return layout.Rect{}
	}
	s := paths[0].Start
	r := layout.Rect{MinX: s.X, MinY: s.Y, MaxX: s.X, MaxY: s.Y}
	for _, p := range paths {
		for _, pt := range [...]flow.Point{p.Start, p.Control1, p.Control2, p.End} {
			r = r.Include(pt)
		}
	}
	return r
}

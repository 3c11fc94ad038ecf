// Package engine runs the complete layout: cycle breaking, layering,
// coordinate assignment and routing.
//
// [Run] is synchronous and all-or-nothing. On error it returns a nil
// [Result]; nothing partial escapes. Identical inputs always produce
// identical results.
package engine

import (
	"fmt"

	"github.com/matzehuels/flowdraw/pkg/core/flow"
	"github.com/matzehuels/flowdraw/pkg/core/flow/transform"
	"github.com/matzehuels/flowdraw/pkg/core/render/layout"
	"github.com/matzehuels/flowdraw/pkg/core/render/routing"
)

// Options configures [Run].
type Options struct {
	// Geometry holds canvas and routing parameters. The zero value is
	// replaced by [layout.DefaultGeometry] and a zero default task size by
	// the stock one. Every other field is used as given, so partial
	// geometries should start from DefaultGeometry.
	Geometry layout.Geometry

	// PerLinkCuts keys cycle-breaking decisions by link instead of by the
	// unordered pair of endpoints.
	PerLinkCuts bool

	// AllowEmpty returns an empty Result for a graph without tasks instead
	// of [flow.ErrDegenerateGraph].
	AllowEmpty bool
}

// Result is the output of one layout run.
type Result struct {
	Links     []flow.AnnotatedLink // every input link in order, with its cut flag
	Layers    flow.Layers
	Positions flow.PositionMap
	Paths     []flow.RoutedPath // one per link, index aligned with Links
	Geometry  layout.Geometry   // geometry actually used
	Bounds    layout.Rect       // covers every box and curve
}

// CutCount returns the number of links marked as cut.
func (r *Result) CutCount() int { return transform.CutCount(r.Links) }

// Run lays out g.
//
// Errors:
//   - [flow.ErrDegenerateGraph] when g has no tasks and AllowEmpty is unset
//   - [layout.ErrInvalidGeometry] for unusable geometry
//   - *[flow.ReferentialError] when routing meets an undeclared port
func Run(g *flow.Graph, opts Options) (*Result, error) {
	geo := opts.Geometry.WithDefaults()
	if err := geo.Validate(); err != nil {
		return nil, err
	}

	if g.TaskCount() == 0 {
		if !opts.AllowEmpty {
			return nil, flow.ErrDegenerateGraph
		}
		return &Result{
			Links:     []flow.AnnotatedLink{},
			Layers:    flow.Layers{},
			Positions: flow.PositionMap{},
			Paths:     []flow.RoutedPath{},
			Geometry:  geo,
		}, nil
	}

	var cycleOpts []transform.CycleOption
	if opts.PerLinkCuts {
		cycleOpts = append(cycleOpts, transform.WithPerLinkCuts())
	}
	links := transform.BreakCycles(g, cycleOpts...)
	layers := transform.AssignLayers(g, links)
	pos := layout.AssignCoordinates(g, layers, geo)

	paths, err := routing.Route(g, links, pos, geo)
	if err != nil {
		return nil, fmt.Errorf("route: %w", err)
	}

	bounds := layout.Bounds(g, pos, geo)
	if len(paths) > 0 {
		bounds = bounds.Union(routing.Extent(paths))
	}

	return &Result{
		Links:     links,
		Layers:    layers,
		Positions: pos,
		Paths:     paths,
		Geometry:  geo,
		Bounds:    bounds,
	}, nil
}

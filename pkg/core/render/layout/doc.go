// Package layout assigns canvas coordinates to the tasks of a layered
// workflow graph.
//
// # Overview
//
// Layers produced by [transform.AssignLayers] become evenly spaced columns.
// Within a column, tasks are stacked in ID order and the stack is centred
// on y = 0:
//
//	spacing = (Width − 2·Padding) / max(1, layers − 1)
//	x(i)    = Padding + i·spacing
//
// A single layer has spacing 0 and sits at x = Padding. Each task's y is the
// midpoint of its box. Neighbouring boxes in a column are separated by
// [Geometry.NodeGap].
//
// # Geometry
//
// All tunables live in [Geometry], passed explicitly by value. Use
// [DefaultGeometry] for an 800 wide canvas with 50 units of padding. Tasks
// without a size fall back to DefaultTaskWidth × DefaultTaskHeight; see
// [Geometry.SizeOf].
//
// # Coordinate Frame
//
// The frame is y-up: a larger y is higher on the page. Routing relies on
// this when it sends back-links over the top of the drawing, and SVG sinks
// flip the axis when they emit coordinates.
//
// [transform.AssignLayers]: github.com/matzehuels/flowdraw/pkg/core/flow/transform.AssignLayers
package layout

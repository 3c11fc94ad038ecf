// Package flow provides the workflow graph model consumed by the layout
// engine.
//
// # Overview
//
// A workflow is a set of tasks connected by links. Each task is drawn as a
// box with named input ports on its left edge and named output ports on its
// right edge. A link always runs from an output port of one task to an input
// port of another. Unlike a dependency graph, a workflow may contain cycles
// (retry loops, error handling paths), and the layout engine treats them as
// ordinary input.
//
// # Building a Graph
//
// [New] validates tasks and links in one pass and returns an immutable
// [Graph]:
//
//	g, err := flow.New(tasks, links)
//	var refErr *flow.ReferentialError
//	if errors.As(err, &refErr) {
//	    // a link names an unknown task or port
//	}
//
// Validation happens before any traversal, so a layout run either sees a
// fully consistent graph or does not start at all.
//
// # Determinism
//
// [Graph.TaskIDs] and [Graph.Tasks] are always sorted by ID, and
// [Graph.Successors] preserves link order. Downstream stages rely on this
// and never iterate over a map to decide an order.
//
// # Layout Products
//
// The package also defines the values produced by the engine stages:
// [AnnotatedLink] (cycle breaking), [Layers] (layering), [PositionMap]
// (coordinates) and [RoutedPath] (edge routing).
package flow

// Package nodelink provides node-and-edge workflow diagrams using Graphviz.
//
// This package is an alternative to the native flow renderer: tasks become
// record nodes with one cell per port, and links connect the named cells.
//
// # Architecture
//
// Unlike the flow renderer, which separates layout from drawing, nodelink
// hands both to Graphviz in a single step:
//
//	Flow:     Graph → engine.Run() → Result → sink.RenderSVG() → SVG
//	Nodelink: Graph → ToDOT() → DOT → RenderSVG() → SVG
//
// The DOT string serves as the intermediate representation, so a nodelink
// layout can be cached and rendered again without re-reading the workflow.
//
// # Cycles
//
// Pass the annotated links from cycle breaking to [ToDOT]. Cut links are
// drawn dashed and excluded from ranking, so loops read left to right the
// same way they do in the flow renderer. Passing [Options].Layers pins
// each layer to one Graphviz rank.
//
// # Usage
//
//	links := transform.BreakCycles(g)
//	dot := nodelink.ToDOT(g, links, nodelink.Options{})
//	svg, _ := nodelink.RenderSVG(ctx, dot)
package nodelink

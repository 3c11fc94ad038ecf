// Package pkg provides the core libraries for Flowdraw workflow diagrams.
//
// # Overview
//
// Flowdraw turns a workflow description (tasks with named input and output
// ports, and links between those ports) into a deterministic left-to-right
// diagram. Cycles are allowed: one link of every loop is drawn as a back
// arc above the graph while the rest flow forward in layered columns. The
// pkg directory is organized into these areas:
//
//  1. [core] - Domain logic (workflow graph, cycle breaking, layout, routing)
//  2. [pipeline] - Orchestration (parse → layout → render) with caching
//  3. [graph] - Serialization types for workflows and layouts
//  4. [io] - Workflow files in JSON and TOML
//  5. [cache], [config], [observability] - Infrastructure
//
// # Architecture
//
// The typical data flow through Flowdraw:
//
//	Workflow file (JSON/TOML)
//	         ↓
//	    [io] package (decode into [graph.Workflow])
//	         ↓
//	    [core/flow] package (validated graph)
//	         ↓
//	    [core/flow/transform] package (cycle breaking + layering)
//	         ↓
//	    [render/layout] + [render/routing] (positions + link curves)
//	         ↓
//	    SVG/PDF/PNG/JSON/DOT output
//
// [core/engine] runs the middle three steps as a single all-or-nothing call.
//
// # Quick Start
//
// Lay out a workflow file and render it to SVG:
//
//	import (
//	    "github.com/matzehuels/flowdraw/pkg/core/engine"
//	    "github.com/matzehuels/flowdraw/pkg/core/render/sink"
//	    "github.com/matzehuels/flowdraw/pkg/io"
//	)
//
//	// 1. Load and validate the workflow
//	g, _ := io.ImportFile("etl.json")
//
//	// 2. Compute layout and routes
//	res, _ := engine.Run(g, engine.Options{})
//
//	// 3. Render to SVG
//	svg := sink.RenderSVG(g, res)
//
// # Main Packages
//
// ## Core Domain Logic
//
// [core/flow] - Tasks, ports, links and the immutable [flow.Graph]. Also the
// layout value types shared by later stages: annotated links, layers,
// positions and routed paths.
//
// [core/flow/transform] - Depth-first cycle breaking (pair-keyed by default,
// per-link on request) and Kahn-style layering of the remaining forward
// links.
//
// [core/engine] - Runs cycle breaking, layering, coordinate assignment and
// routing. Identical inputs always give identical results.
//
// ## Visualization
//
//   - [render/layout]: Canvas geometry and column/row coordinate assignment
//   - [render/routing]: Cubic S-curves for forward links, arcs for cut links
//   - [render/shape]: Drawing vocabulary (boxes, labels, curves) and text fitting
//   - [render/sink]: Output formats (SVG, PDF, PNG) with a y-down scene
//   - [render/styles]: Visual styles (simple, outline)
//   - [render/nodelink]: Graphviz DOT diagrams of the workflow
//
// [render] - Format conversion (SVG to PDF/PNG) via rsvg-convert.
//
// ## Serialization
//
// [graph] - Workflow and layout documents. A layout file can be rendered
// again later without recomputing positions.
//
// ## Infrastructure
//
// [pipeline] - Complete pipeline (parse → layout → render) used by the CLI
// and the HTTP server. Layouts and artifacts are cached under keys derived
// from the workflow hash and the options that affect them.
//
// [cache] - Cache backends: file (CLI default), Redis, MongoDB and a null
// cache that never stores anything.
//
// [config] - Layered configuration from defaults, TOML file and
// FLOWDRAW_* environment variables.
//
// [observability] - Pipeline and HTTP hooks, with an OpenTelemetry tracing
// implementation.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/core/...               # Layout engine only
//	go test -run Example ./pkg/...       # Examples only
//
// [core]: https://pkg.go.dev/github.com/matzehuels/flowdraw/pkg/core
// [core/flow]: https://pkg.go.dev/github.com/matzehuels/flowdraw/pkg/core/flow
// [core/flow/transform]: https://pkg.go.dev/github.com/matzehuels/flowdraw/pkg/core/flow/transform
// [core/engine]: https://pkg.go.dev/github.com/matzehuels/flowdraw/pkg/core/engine
// [render]: https://pkg.go.dev/github.com/matzehuels/flowdraw/pkg/core/render
// [render/layout]: https://pkg.go.dev/github.com/matzehuels/flowdraw/pkg/core/render/layout
// [render/routing]: https://pkg.go.dev/github.com/matzehuels/flowdraw/pkg/core/render/routing
// [render/shape]: https://pkg.go.dev/github.com/matzehuels/flowdraw/pkg/core/render/shape
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/flowdraw/pkg/core/render/sink
// [render/styles]: https://pkg.go.dev/github.com/matzehuels/flowdraw/pkg/core/render/styles
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/flowdraw/pkg/core/render/nodelink
// [graph]: https://pkg.go.dev/github.com/matzehuels/flowdraw/pkg/graph
// [graph.Workflow]: https://pkg.go.dev/github.com/matzehuels/flowdraw/pkg/graph#Workflow
// [flow.Graph]: https://pkg.go.dev/github.com/matzehuels/flowdraw/pkg/core/flow#Graph
// [io]: https://pkg.go.dev/github.com/matzehuels/flowdraw/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/flowdraw/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/flowdraw/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/flowdraw/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/flowdraw/pkg/observability
package pkg

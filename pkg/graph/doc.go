// Package graph provides serialization types for workflows and layouts.
//
// This package defines the canonical wire format for flowdraw's data, used
// for input files, JSON output, API requests and responses, and caching.
//
// # Architecture
//
// The package sits at the serialization boundary between internal
// representations and external formats:
//
//   - [Workflow], [Layout]: Serialization types (this package)
//   - pkg/core/flow.Graph: Internal, validated task graph
//   - pkg/core/engine.Result: Internal layout (layers, positions, paths)
//
// Use [ToFlow]/[FromFlow] and [ExportResult]/[ParseResult] to convert
// between them.
//
// # Workflow Serialization
//
// Workflows use the ewoks-style JSON format:
//
//	{
//	  "workflow": {
//	    "tasks": [
//	      {"id": "load", "name": "Load", "size_box": [150, 60],
//	       "inputs": [], "outputs": ["rows"], "outputs_pos": [0.5]}
//	    ],
//	    "links": [
//	      {"source": {"task_id": "load", "output_name": "rows"},
//	       "target": {"task_id": "store", "input_name": "rows"}}
//	    ]
//	  }
//	}
//
// The "workflow" wrapper is optional when reading. Omitted "inputs_pos" or
// "outputs_pos" lists are spread evenly along the box edge; an omitted
// "size_box" falls back to the layout geometry's default size.
//
// # Layout Serialization
//
// Layouts are discriminated by VizType:
//
//	l, _ := graph.UnmarshalLayout(data)
//	if l.IsFlow() {
//	    g, res, _ := graph.ParseResult(l)
//	    svg := sink.RenderSVG(g, res)
//	}
//
// Positions are serialized as [x, y] pairs and paths as four [x, y] points
// (start, control 1, control 2, end).
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph

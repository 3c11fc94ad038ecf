// Package io reads and writes workflow files in JSON and TOML.
//
// # Overview
//
// A workflow file lists tasks with named input and output ports, and links
// that connect an output of one task to an input of another. The JSON
// form is the one produced by workflow editors:
//
//	{
//	  "workflow": {
//	    "tasks": [
//	      {"id": "load", "size_box": [150, 60], "inputs": [], "outputs": ["rows"]},
//	      {"id": "store", "inputs": ["rows"], "outputs": []}
//	    ],
//	    "links": [
//	      {"source": {"task_id": "load", "output_name": "rows"},
//	       "target": {"task_id": "store", "input_name": "rows"}}
//	    ]
//	  }
//	}
//
// The outer "workflow" wrapper is optional on input. TOML files use the
// same keys as arrays of tables, see [ReadTOML].
//
// # Task Fields
//
// Required:
//   - id: Unique string identifier
//   - inputs, outputs: Ordered port names
//
// Optional:
//   - name: Display title (defaults to id)
//   - size_box: [width, height]; omitted means the geometry default size
//   - inputs_pos, outputs_pos: Port anchors as fractions of the box height;
//     omitted means evenly spread
//
// # Import
//
// Use [ImportFile] to read a file and build a validated [flow.Graph]. The
// format follows the file extension. Use [ReadJSON] or [ReadTOML] when the
// document comes from another reader, then convert with [graph.ToFlow].
//
// # Export
//
// [WriteJSON], [WriteTOML] and [ExportFile] write the logical workflow only.
// Computed positions and paths are exported through [graph.Layout].
//
// [flow.Graph]: github.com/matzehuels/flowdraw/pkg/core/flow.Graph
// [graph.ToFlow]: github.com/matzehuels/flowdraw/pkg/graph.ToFlow
// [graph.Layout]: github.com/matzehuels/flowdraw/pkg/graph.Layout
package io

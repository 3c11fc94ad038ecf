// Package transform derives the acyclic structure that layout works on.
//
// # Overview
//
// A workflow graph may contain loops (retry paths, error handlers that feed
// back into validation). Layered drawing needs a DAG, so this package
// classifies links instead of deleting them:
//
//   - [BreakCycles]: marks back-edges found by a depth-first search as cut
//   - [AssignLayers]: groups tasks into topological generations over the
//     links that are not cut
//
// Both functions are pure. They read a validated [flow.Graph] and return new
// values; the graph is never modified.
//
// # Determinism
//
// Every traversal starts from IDs in ascending order and follows links in
// their input order. Running either function twice on the same graph gives
// identical results.
//
// [flow.Graph]: github.com/matzehuels/flowdraw/pkg/core/flow.Graph
package transform

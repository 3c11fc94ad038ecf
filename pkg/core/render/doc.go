// Package render holds the drawing side of flowdraw.
//
// Subpackages split the work by stage:
//
//   - layout: canvas coordinates for layered tasks
//   - routing: Bezier paths for every link
//   - shape: the closed set of drawable shapes
//   - styles: SVG appearance per shape kind
//   - sink: SVG, PNG and PDF output
//   - nodelink: Graphviz DOT output with port-labelled edges
//
// This package itself converts SVG into PNG or PDF through rsvg-convert.
package render

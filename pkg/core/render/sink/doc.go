// Package sink writes layout results in output formats.
//
// # Overview
//
// [RenderSVG] is the primary sink. It builds a [Scene] from an engine
// result and lets a [styles.Style] draw each shape. [RenderPNG] and
// [RenderPDF] render the SVG first and convert it with rsvg-convert.
//
// # Scene
//
// A scene contains, in paint order:
//
//   - a background rectangle covering the view box
//   - per task: box, title, title rule, port anchors and port labels
//   - per link: one curve, dashed when routed back over the top
//
// Layout coordinates are y-up and SVG is y-down, so the scene negates
// every y. Back-link arcs therefore appear above the drawing.
//
// # Options
//
//   - [WithStyle]: visual style (default [styles.Simple])
//   - [WithMargin]: space around the drawing (default 20)
//   - [WithoutPortLabels]: draw anchors but no port names
//
// [styles.Style]: github.com/matzehuels/flowdraw/pkg/core/render/styles.Style
// [styles.Simple]: github.com/matzehuels/flowdraw/pkg/core/render/styles.Simple
package sink

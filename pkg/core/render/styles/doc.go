// Package styles defines visual styles for workflow drawings.
//
// # Overview
//
// A [Style] turns the shapes of a scene into SVG markup. Each shape kind
// has its own method, and sinks dispatch on the concrete type:
//
//   - [Simple]: green filled boxes with inline colors, dashed grey back-links
//   - [Outline]: unfilled boxes, all presentation in a CSS <style> block
//
// Both styles keep the CSS classes from package shape (task_box,
// task_anchor_link, link_back and so on) on every element, so downstream
// tools can target them.
//
// Usage:
//
//	svg := sink.RenderSVG(g, res, sink.WithStyle(styles.Outline{}))
//
// Use [ByName] to resolve a style from a flag or request parameter.
package styles

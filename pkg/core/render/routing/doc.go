// Package routing turns links into cubic Bezier curves.
//
// # Strategies
//
// The strategy depends only on where the endpoints ended up, never on the
// cycle-breaking decision:
//
//   - forward (target column at or right of the source): an S-curve from
//     the source's output anchor on its right edge to the target's input
//     anchor on its left edge. Both control points are pushed horizontally
//     by CurveFactor·|Δx|.
//   - back (target column left of the source): an arc from the source's
//     top-middle to the target's top-middle. Both control points sit at
//     ArcClearance above the highest box edge in the drawing.
//
// Coordinates use the y-up frame of package layout.
package routing

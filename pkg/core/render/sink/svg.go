package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/flowdraw/pkg/core/engine"
	"github.com/matzehuels/flowdraw/pkg/core/flow"
	"github.com/matzehuels/flowdraw/pkg/core/render/shape"
	"github.com/matzehuels/flowdraw/pkg/core/render/styles"
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style      styles.Style
	margin     float64
	portLabels bool
}

func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }
func WithMargin(m float64) SVGOption     { return func(r *svgRenderer) { r.margin = m } }
func WithoutPortLabels() SVGOption       { return func(r *svgRenderer) { r.portLabels = false } }

// RenderSVG draws a layout result as a standalone SVG document.
func RenderSVG(g *flow.Graph, res *engine.Result, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	scene := BuildScene(g, res, r.margin, r.portLabels)
	vb := scene.ViewBox

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		vb.MinX, vb.MinY, vb.Width(), vb.Height(), vb.Width(), vb.Height())

	r.style.RenderDefs(&buf)
	for _, s := range scene.Shapes {
		renderShape(&buf, r.style, s)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Simple{}, margin: defaultMargin, portLabels: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func renderShape(buf *bytes.Buffer, style styles.Style, s shape.Shape) {
	switch v := s.(type) {
	case shape.Box:
		style.RenderBox(buf, v)
	case shape.Label:
		style.RenderLabel(buf, v)
	case shape.Curve:
		style.RenderCurve(buf, v)
	case shape.Anchor:
		style.RenderAnchor(buf, v)
	case shape.Rule:
		style.RenderRule(buf, v)
	}
}

package styles

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/flowdraw/pkg/core/render/shape"
)

const outlineCSS = `
    .background { fill: #fafafa; }
    .task_box { fill: none; stroke: #1f2937; stroke-width: 1.2; }
    .task_line { stroke: #1f2937; stroke-width: 0.8; }
    .task_text_title { font-family: Helvetica, Arial, sans-serif; font-weight: bold; fill: #1f2937; }
    .task_text_io { font-family: Helvetica, Arial, sans-serif; fill: #4b5563; }
    .task_anchor_link { fill: #fff; stroke: #1f2937; stroke-width: 0.8; }
    .link { fill: none; stroke: #2563eb; stroke-width: 1.2; }
    .link_back { fill: none; stroke: #dc2626; stroke-width: 1.2; stroke-dasharray: 6 4; }`

// Outline draws unfilled boxes and keeps all presentation in a CSS block,
// so the output can be restyled by editing the <style> element.
type Outline struct{}

func (Outline) Name() string { return "outline" }

func (Outline) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n")
	fmt.Fprintf(buf, arrowMarker, "#1f2937")
	buf.WriteString("  </defs>\n")
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", outlineCSS)
}

func (Outline) RenderBox(buf *bytes.Buffer, b shape.Box) {
	fmt.Fprintf(buf, `  <rect%s class="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f"/>`+"\n",
		idAttr("task", b.ID), b.Class, b.X, b.Y, b.W, b.H)
}

func (Outline) RenderLabel(buf *bytes.Buffer, l shape.Label) {
	fmt.Fprintf(buf, `  <text class="%s" x="%.2f" y="%.2f" text-anchor="%s" dominant-baseline="middle" font-size="%.1f">%s</text>`+"\n",
		l.Class, l.X, l.Y, l.Anchor, l.FontSize, EscapeXML(l.Text))
}

func (Outline) RenderCurve(buf *bytes.Buffer, c shape.Curve) {
	fmt.Fprintf(buf, `  <path%s class="%s" d="%s" marker-end="url(#arrow)"/>`+"\n", idAttr("link", c.ID), c.Class, pathData(c))
}

func (Outline) RenderAnchor(buf *bytes.Buffer, a shape.Anchor) {
	fmt.Fprintf(buf, `  <circle class="%s" cx="%.2f" cy="%.2f" r="%.1f"/>`+"\n", a.Class, a.CX, a.CY, a.R)
}

func (Outline) RenderRule(buf *bytes.Buffer, r shape.Rule) {
	fmt.Fprintf(buf, `  <line class="%s" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n", r.Class, r.X1, r.Y1, r.X2, r.Y2)
}

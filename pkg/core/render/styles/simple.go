package styles

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/flowdraw/pkg/core/render/shape"
)

// Simple draws filled task boxes with solid colors set inline.
type Simple struct{}

func (Simple) Name() string { return "simple" }

func (Simple) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n")
	fmt.Fprintf(buf, arrowMarker, "#808080")
	buf.WriteString("  </defs>\n")
}

func (Simple) RenderBox(buf *bytes.Buffer, b shape.Box) {
	fill, stroke := "#d6f2d6", "#000"
	if b.Class == shape.ClassBackground {
		fill, stroke = "#ffffff", "none"
	}
	fmt.Fprintf(buf, `  <rect%s class="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="3" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
		idAttr("task", b.ID), b.Class, b.X, b.Y, b.W, b.H, fill, stroke)
}

func (Simple) RenderLabel(buf *bytes.Buffer, l shape.Label) {
	weight := "normal"
	if l.Class == shape.ClassTaskTitle {
		weight = "bold"
	}
	fmt.Fprintf(buf, `  <text class="%s" x="%.2f" y="%.2f" text-anchor="%s" dominant-baseline="middle" font-family="Helvetica, Arial, sans-serif" font-size="%.1f" font-weight="%s" fill="#222">%s</text>`+"\n",
		l.Class, l.X, l.Y, l.Anchor, l.FontSize, weight, EscapeXML(l.Text))
}

func (Simple) RenderCurve(buf *bytes.Buffer, c shape.Curve) {
	dash := ""
	if c.Back {
		dash = ` stroke-dasharray="6 4"`
	}
	fmt.Fprintf(buf, `  <path%s class="%s" d="%s" fill="none" stroke="#808080" stroke-width="1.5"%s marker-end="url(#arrow)"/>`+"\n",
		idAttr("link", c.ID), c.Class, pathData(c), dash)
}

func (Simple) RenderAnchor(buf *bytes.Buffer, a shape.Anchor) {
	fmt.Fprintf(buf, `  <circle class="%s" cx="%.2f" cy="%.2f" r="%.1f" fill="#333"/>`+"\n", a.Class, a.CX, a.CY, a.R)
}

func (Simple) RenderRule(buf *bytes.Buffer, r shape.Rule) {
	fmt.Fprintf(buf, `  <line class="%s" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#000" stroke-width="1"/>`+"\n",
		r.Class, r.X1, r.Y1, r.X2, r.Y2)
}

package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/flowdraw/pkg/core/render/shape"
)

func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func pathData(c shape.Curve) string {
	return fmt.Sprintf("M %.2f %.2f C %.2f %.2f, %.2f %.2f, %.2f %.2f",
		c.Start.X, c.Start.Y, c.C1.X, c.C1.Y, c.C2.X, c.C2.Y, c.End.X, c.End.Y)
}

func idAttr(prefix, id string) string {
	if id == "" {
		return ""
	}
	return fmt.Sprintf(` id="%s-%s"`, prefix, EscapeXML(id))
}

const arrowMarker = `    <marker id="arrow" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="6" markerHeight="6" orient="auto-start-reverse">
      <path d="M 0 0 L 10 5 L 0 10 z" fill="%s"/>
    </marker>
`

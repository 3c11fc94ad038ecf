package styles

import (
	"bytes"

	"github.com/matzehuels/flowdraw/pkg/core/render/shape"
)

// Style defines the visual appearance of a workflow drawing.
// Sinks call exactly one method per shape, chosen by its concrete type.
type Style interface {
	// Name is the identifier used by --style and the API.
	Name() string
	// RenderDefs writes SVG <defs> content (markers, CSS).
	RenderDefs(buf *bytes.Buffer)
	// RenderBox writes a rectangle: the background or a task box.
	RenderBox(buf *bytes.Buffer, b shape.Box)
	// RenderLabel writes a text element.
	RenderLabel(buf *bytes.Buffer, l shape.Label)
	// RenderCurve writes a routed link.
	RenderCurve(buf *bytes.Buffer, c shape.Curve)
	// RenderAnchor writes a port marker.
	RenderAnchor(buf *bytes.Buffer, a shape.Anchor)
	// RenderRule writes a separator line.
	RenderRule(buf *bytes.Buffer, r shape.Rule)
}

// Names lists the built-in styles.
var Names = []string{"simple", "outline"}

// ByName returns the built-in style with the given name.
func ByName(name string) (Style, bool) {
	switch name {
	case "", "simple":
		return Simple{}, true
	case "outline":
		return Outline{}, true
	}
	return nil, false
}

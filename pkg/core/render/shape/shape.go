// Package shape is the drawing vocabulary shared by styles and sinks.
//
// A scene is a flat list of [Shape] values. The set of kinds is closed:
// [Box], [Label], [Curve], [Anchor] and [Rule]. Sinks switch on the
// concrete type and hand each one to the matching style method.
//
// All coordinates are canvas coordinates with y growing downward.
package shape

// Shape is one drawable element. Only types in this package implement it.
type Shape interface {
	isShape()
}

// TextAnchor is the horizontal alignment of a [Label].
type TextAnchor string

const (
	AnchorStart  TextAnchor = "start"
	AnchorMiddle TextAnchor = "middle"
	AnchorEnd    TextAnchor = "end"
)

// CSS classes attached to shapes.
const (
	ClassBackground = "background"
	ClassTaskBox    = "task_box"
	ClassTaskTitle  = "task_text_title"
	ClassTaskIO     = "task_text_io"
	ClassTaskLine   = "task_line"
	ClassAnchor     = "task_anchor_link"
	ClassLink       = "link"
	ClassLinkBack   = "link_back"
)

// Box is an axis-aligned rectangle. X and Y are the top-left corner.
type Box struct {
	ID    string
	Class string
	X, Y  float64
	W, H  float64
}

// Label is a single line of text vertically centred on Y.
type Label struct {
	Class    string
	X, Y     float64
	Text     string
	FontSize float64
	Anchor   TextAnchor
}

// Point is a canvas coordinate.
type Point struct {
	X, Y float64
}

// Curve is a cubic Bezier from Start to End.
type Curve struct {
	ID                 string
	Class              string
	Start, C1, C2, End Point
	Back               bool // routed over the top; styles draw it dashed
}

// Anchor is the small circle marking a port.
type Anchor struct {
	Class  string
	CX, CY float64
	R      float64
}

// Rule is a straight line segment.
type Rule struct {
	Class          string
	X1, Y1, X2, Y2 float64
}

func (Box) isShape()    {}
func (Label) isShape()  {}
func (Curve) isShape()  {}
func (Anchor) isShape() {}
func (Rule) isShape()   {}

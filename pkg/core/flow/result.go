package flow

// AnnotatedLink is an original link together with the cycle-breaking
// decision made for it. Cut links are ignored by layering but still routed.
type AnnotatedLink struct {
	Link
	Cut bool
}

// Layers holds task IDs per topological generation. Each layer is sorted
// ascending and every task appears in exactly one layer.
type Layers [][]string

// Index returns a lookup from task ID to layer index.
func (l Layers) Index() map[string]int {
	idx := make(map[string]int)
	for i, layer := range l {
		for _, id := range layer {
			idx[id] = i
		}
	}
	return idx
}

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PositionMap maps task IDs to the centre of their box.
type PositionMap map[string]Point

// Strategy names the shape rule used to route a link.
type Strategy string

const (
	// StrategyForward is a left-to-right S-curve between port anchors.
	StrategyForward Strategy = "forward"
	// StrategyBack is a high arc between the boxes' outer edges, used when
	// the target lies left of the source.
	StrategyBack Strategy = "back"
)

// RoutedPath is a cubic Bezier curve for one link.
type RoutedPath struct {
	SourceID   string
	SourcePort string
	TargetID   string
	TargetPort string
	Strategy   Strategy
	Start      Point
	Control1   Point
	Control2   Point
	End        Point
}

package graph

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/flowdraw/pkg/core/engine"
	"github.com/matzehuels/flowdraw/pkg/core/flow"
	"github.com/matzehuels/flowdraw/pkg/core/render/layout"
)

// =============================================================================
// Layout - Unified Visualization Format
// =============================================================================

// Layout is the serialization format for computed layouts.
//
// This is a discriminated union type - check VizType to determine which
// fields are populated:
//
//	Flow ("flow"):
//	  - Layers, Positions, Paths, Bounds: the engine result
//	  - Geometry: parameters the result was computed with
//
//	Nodelink ("nodelink"):
//	  - DOT: Graphviz DOT string for rendering
//
// Both types carry the source Workflow so a layout can be rendered again
// without the original input file.
type Layout struct {
	// Discriminator
	VizType  string `json:"viz_type" bson:"viz_type"`
	LayoutID string `json:"layout_id,omitempty" bson:"layout_id,omitempty"`
	Style    string `json:"style,omitempty" bson:"style,omitempty"`

	Workflow Workflow `json:"workflow" bson:"workflow"`

	// Flow-specific
	Geometry  layout.Geometry       `json:"geometry" bson:"geometry"`
	Layers    [][]string            `json:"layers,omitempty" bson:"layers,omitempty"`
	Positions map[string][2]float64 `json:"positions,omitempty" bson:"positions,omitempty"`
	Paths     []Path                `json:"paths,omitempty" bson:"paths,omitempty"`
	Bounds    layout.Rect           `json:"bounds" bson:"bounds"`

	// Nodelink-specific
	DOT string `json:"dot,omitempty" bson:"dot,omitempty"`
}

// Path is one routed link. Points holds start, both control points and end.
type Path struct {
	Source     string        `json:"source" bson:"source"`
	SourcePort string        `json:"source_port" bson:"source_port"`
	Target     string        `json:"target" bson:"target"`
	TargetPort string        `json:"target_port" bson:"target_port"`
	Strategy   string        `json:"strategy" bson:"strategy"`
	Cut        bool          `json:"cut,omitempty" bson:"cut,omitempty"`
	Points     [4][2]float64 `json:"points" bson:"points"`
}

// IsFlow returns true if this is a flow layout.
func (l *Layout) IsFlow() bool { return l.VizType == VizTypeFlow }

// IsNodelink returns true if this is a nodelink layout.
func (l *Layout) IsNodelink() bool { return l.VizType == VizTypeNodelink }

// CutCount returns the number of cut links in a flow layout.
func (l *Layout) CutCount() int {
	n := 0
	for _, p := range l.Paths {
		if p.Cut {
			n++
		}
	}
	return n
}

// =============================================================================
// Engine Result ↔ Layout Conversion
// =============================================================================

// ExportResult converts an engine result into the serialization format.
func ExportResult(g *flow.Graph, res *engine.Result) Layout {
	l := Layout{
		VizType:   VizTypeFlow,
		Workflow:  FromFlow(g),
		Geometry:  res.Geometry,
		Layers:    res.Layers,
		Positions: make(map[string][2]float64, len(res.Positions)),
		Paths:     make([]Path, len(res.Paths)),
		Bounds:    res.Bounds,
	}
	for id, p := range res.Positions {
		l.Positions[id] = [2]float64{p.X, p.Y}
	}
	for i, p := range res.Paths {
		l.Paths[i] = Path{
			Source:     p.SourceID,
			SourcePort: p.SourcePort,
			Target:     p.TargetID,
			TargetPort: p.TargetPort,
			Strategy:   string(p.Strategy),
			Cut:        res.Links[i].Cut,
			Points:     [4][2]float64{pt(p.Start), pt(p.Control1), pt(p.Control2), pt(p.End)},
		}
	}
	return l
}

// ParseResult converts a serialized flow layout back into a graph and an
// engine result, ready for rendering without recomputing the layout.
func ParseResult(l Layout) (*flow.Graph, *engine.Result, error) {
	if l.VizType != "" && l.VizType != VizTypeFlow {
		return nil, nil, fmt.Errorf("invalid viz_type for flow layout: %q", l.VizType)
	}
	g, err := ToFlow(l.Workflow)
	if err != nil {
		return nil, nil, err
	}
	if len(l.Paths) != g.LinkCount() {
		return nil, nil, fmt.Errorf("layout has %d paths for %d links", len(l.Paths), g.LinkCount())
	}

	res := &engine.Result{
		Links:     make([]flow.AnnotatedLink, g.LinkCount()),
		Layers:    flow.Layers(l.Layers),
		Positions: make(flow.PositionMap, len(l.Positions)),
		Paths:     make([]flow.RoutedPath, len(l.Paths)),
		Geometry:  l.Geometry,
		Bounds:    l.Bounds,
	}
	if res.Layers == nil {
		res.Layers = flow.Layers{}
	}
	for id, p := range l.Positions {
		res.Positions[id] = flow.Point{X: p[0], Y: p[1]}
	}
	for i, link := range g.Links() {
		p := l.Paths[i]
		res.Links[i] = flow.AnnotatedLink{Link: link, Cut: p.Cut}
		res.Paths[i] = flow.RoutedPath{
			SourceID:   p.Source,
			SourcePort: p.SourcePort,
			TargetID:   p.Target,
			TargetPort: p.TargetPort,
			Strategy:   flow.Strategy(p.Strategy),
			Start:      fromPt(p.Points[0]),
			Control1:   fromPt(p.Points[1]),
			Control2:   fromPt(p.Points[2]),
			End:        fromPt(p.Points[3]),
		}
	}
	return g, res, nil
}

func pt(p flow.Point) [2]float64     { return [2]float64{p.X, p.Y} }
func fromPt(p [2]float64) flow.Point { return flow.Point{X: p[0], Y: p[1]} }

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Validates that required fields are present for the viz type.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}

	if l.VizType == "" {
		l.VizType = VizTypeFlow
	}

	if l.IsFlow() && len(l.Workflow.Tasks) > 0 && len(l.Positions) == 0 {
		return Layout{}, fmt.Errorf("flow layout must contain positions")
	}
	if l.IsNodelink() && l.DOT == "" {
		return Layout{}, fmt.Errorf("nodelink layout must contain DOT string")
	}

	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}

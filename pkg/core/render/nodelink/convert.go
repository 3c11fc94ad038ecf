package nodelink

import (
	"fmt"

	"github.com/matzehuels/flowdraw/pkg/core/flow"
	"github.com/matzehuels/flowdraw/pkg/graph"
)

// Export creates a serializable nodelink layout from a DOT string.
//
// Unlike flow layouts, nodelink layouts don't carry positions. Graphviz
// computes them during rendering. This function packages the DOT string
// and the source workflow into the unified serialization format.
func Export(dot string, g *flow.Graph, opts Options, style string) graph.Layout {
	return graph.Layout{
		VizType:  graph.VizTypeNodelink,
		DOT:      dot,
		Style:    style,
		Workflow: graph.FromFlow(g),
		Layers:   opts.Layers,
	}
}

// Parse extracts the DOT string from a serialized nodelink layout.
//
// Returns an error if the layout is not a nodelink type or is missing the DOT string.
func Parse(layout graph.Layout) (string, error) {
	if layout.VizType != "" && layout.VizType != graph.VizTypeNodelink {
		return "", fmt.Errorf("invalid viz_type for nodelink layout: %q", layout.VizType)
	}

	if layout.DOT == "" {
		return "", fmt.Errorf("nodelink layout must contain DOT string")
	}

	return layout.DOT, nil
}

package pipeline

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/matzehuels/flowdraw/pkg/core/engine"
	"github.com/matzehuels/flowdraw/pkg/core/flow"
	"github.com/matzehuels/flowdraw/pkg/core/flow/transform"
	"github.com/matzehuels/flowdraw/pkg/core/render/nodelink"
	"github.com/matzehuels/flowdraw/pkg/graph"
)

// layoutNamespace scopes layout IDs to this project.
var layoutNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/flowdraw/layout"))

// LayoutID returns a stable identifier for the layout of the workflow with
// the given hash under opts. Equal inputs always share an ID.
func LayoutID(workflowHash string, opts Options) string {
	key, _ := json.Marshal(opts.LayoutKeyOpts())
	return uuid.NewSHA1(layoutNamespace, append([]byte(workflowHash+":"), key...)).String()
}

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout generates a complete layout for any visualization type.
// This is the unified entry point for generating serializable layout data.
//
// Flow layouts carry positions and routed paths; nodelink layouts carry a
// DOT document that Graphviz lays out at render time.
func GenerateLayout(g *flow.Graph, opts Options) (graph.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, err
	}
	if opts.IsNodelink() {
		return generateNodelinkLayout(g, opts)
	}
	return generateFlowLayout(g, opts)
}

// generateFlowLayout runs the layout engine and exports its result.
func generateFlowLayout(g *flow.Graph, opts Options) (graph.Layout, error) {
	res, err := engine.Run(g, engineOptions(opts))
	if err != nil {
		return graph.Layout{}, err
	}
	l := graph.ExportResult(g, res)
	l.Style = opts.Style
	return l, nil
}

// generateNodelinkLayout builds the DOT document. Layers pin Graphviz
// ranks so both visualizations agree on columns.
func generateNodelinkLayout(g *flow.Graph, opts Options) (graph.Layout, error) {
	if g.TaskCount() == 0 && !opts.AllowEmpty {
		return graph.Layout{}, flow.ErrDegenerateGraph
	}
	links := transform.BreakCycles(g, cycleOptions(opts)...)
	nlOpts := nodelink.Options{
		Detailed: opts.Detailed,
		Layers:   transform.AssignLayers(g, links),
	}
	dot := nodelink.ToDOT(g, links, nlOpts)
	return nodelink.Export(dot, g, nlOpts, opts.Style), nil
}

func engineOptions(opts Options) engine.Options {
	return engine.Options{
		Geometry:    opts.Geometry,
		PerLinkCuts: opts.PerLinkCuts,
		AllowEmpty:  opts.AllowEmpty,
	}
}

func cycleOptions(opts Options) []transform.CycleOption {
	if opts.PerLinkCuts {
		return []transform.CycleOption{transform.WithPerLinkCuts()}
	}
	return nil
}

package pipeline

import (
	"github.com/matzehuels/flowdraw/pkg/cache"
	"github.com/matzehuels/flowdraw/pkg/core/flow"
	"github.com/matzehuels/flowdraw/pkg/graph"
	flowio "github.com/matzehuels/flowdraw/pkg/io"
)

// Parse builds a validated graph from opts.Workflow, or from the file
// named by opts.Input when no document is given.
func Parse(opts Options) (*flow.Graph, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, err
	}
	if opts.Workflow != nil {
		return graph.ToFlow(*opts.Workflow)
	}
	return flowio.ImportFile(opts.Input)
}

// WorkflowHash returns the content hash of g's canonical workflow.
// Task order in the source document does not affect the hash.
func WorkflowHash(g *flow.Graph) (string, error) {
	data, err := graph.MarshalWorkflow(graph.FromFlow(g))
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}

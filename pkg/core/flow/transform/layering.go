package transform

import (
	"slices"

	"github.com/matzehuels/flowdraw/pkg/core/flow"
)

// AssignLayers groups the tasks of g into topological generations using
// only the links that are not cut.
//
// AssignLayers is a breadth-first variant of Kahn's algorithm:
//  1. Count incoming non-cut links per task
//  2. Seed the frontier with every task of in-degree 0, sorted by ID
//  3. Emit the frontier as one layer; for each member in order, decrement
//     the in-degree of its targets; targets reaching 0 join the next frontier
//  4. Repeat until the frontier is empty
//
// Because a task only enters a frontier once all its predecessors have been
// emitted, its layer equals the length of the longest path reaching it from
// a source. Tasks without any links end up in layer 0.
//
// # Cycles
//
// AssignLayers expects the non-cut links to be acyclic, which [BreakCycles]
// guarantees. If they are not, tasks that never reach in-degree 0 are placed
// together in one final layer so that every task still has a layer.
//
// # Performance
//
// Time complexity is O(V log V + E). Space complexity is O(V + E).
func AssignLayers(g *flow.Graph, links []flow.AnnotatedLink) flow.Layers {
	ids := g.TaskIDs()
	if len(ids) == 0 {
		return flow.Layers{}
	}

	inDegree := make(map[string]int, len(ids))
	outgoing := make(map[string][]string, len(ids))
	for _, l := range links {
		if l.Cut {
			continue
		}
		inDegree[l.To()]++
		outgoing[l.From()] = append(outgoing[l.From()], l.To())
	}

	var frontier []string
	for _, id := range ids {
		if inDegree[id] == 0 {
			frontier = append(frontier, id)
		}
	}

	placed := 0
	var layers flow.Layers
	for len(frontier) > 0 {
		layer := slices.Sorted(slices.Values(frontier))
		var next []string
		for _, id := range layer {
			for _, child := range outgoing[id] {
				inDegree[child]--
				if inDegree[child] == 0 {
					next = append(next, child)
				}
			}
		}
		layers = append(layers, layer)
		placed += len(layer)
		frontier = next
	}

	if placed < len(ids) {
		seen := layers.Index()
		var rest []string
		for _, id := range ids {
			if _, ok := seen[id]; !ok {
				rest = append(rest, id)
			}
		}
		layers = append(layers, rest)
	}
	return layers
}

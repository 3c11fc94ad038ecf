package transform

import "github.com/matzehuels/flowdraw/pkg/core/flow"

// CycleOption configures [BreakCycles].
type CycleOption func(*cycleConfig)

type cycleConfig struct {
	perLink bool
}

// WithPerLinkCuts makes every link its own cut decision. By default all
// links between the same two tasks, in either direction, share one decision.
func WithPerLinkCuts() CycleOption {
	return func(c *cycleConfig) { c.perLink = true }
}

// pairKey identifies a cut by its unordered endpoints.
type pairKey [2]string

func pairOf(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{a, b}
}

// BreakCycles classifies every link of g and marks back-edges as cut.
//
// BreakCycles runs a single depth-first search with white/gray/black
// coloring. Roots are tried in ascending ID order and outgoing links are
// followed in link order, so the result depends only on the graph and
// never on map iteration order. A link u→v is a back-edge when v is gray,
// i.e. on the active DFS path; self-loops are back-edges by this rule.
//
// # Cut Identity
//
// By default a cut is keyed by the unordered pair {u, v}. Any other link
// between the same two tasks, including the tree edge v→u, is cut as well.
// This merges the decision for parallel links and may cut more than the
// minimum; the remaining set is still acyclic. Pass [WithPerLinkCuts] to
// key cuts by the individual link instead.
//
// The returned slice holds every link of g in input order. Nothing is
// removed, because routing still needs the cut links.
//
// # Performance
//
// Time complexity is O(V + E). Space complexity is O(V + E) for the color
// map, the outgoing index and the recursion stack.
func BreakCycles(g *flow.Graph, opts ...CycleOption) []flow.AnnotatedLink {
	var cfg cycleConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	const (
		white = iota
		gray
		black
	)

	links := g.Links()
	outgoing := make(map[string][]int, g.TaskCount())
	for i, l := range links {
		outgoing[l.From()] = append(outgoing[l.From()], i)
	}

	color := make(map[string]int, g.TaskCount())
	cutPairs := make(map[pairKey]bool)
	cutLinks := make(map[int]bool)

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, i := range outgoing[id] {
			child := links[i].To()
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				cutLinks[i] = true
				cutPairs[pairOf(id, child)] = true
			}
		}
		color[id] = black
	}

	for _, id := range g.TaskIDs() {
		if color[id] == white {
			dfs(id)
		}
	}

	out := make([]flow.AnnotatedLink, len(links))
	for i, l := range links {
		cut := cutLinks[i]
		if !cfg.perLink {
			cut = cutPairs[pairOf(l.From(), l.To())]
		}
		out[i] = flow.AnnotatedLink{Link: l, Cut: cut}
	}
	return out
}

// CutCount returns the number of links marked as cut.
func CutCount(links []flow.AnnotatedLink) int {
	n := 0
	for _, l := range links {
		if l.Cut {
			n++
		}
	}
	return n
}

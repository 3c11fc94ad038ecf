package transform

import (
	"testing"

	"github.com/matzehuels/flowdraw/pkg/core/flow"
)

func task(id string) flow.Task {
	return flow.Task{
		ID:              id,
		Size:            flow.Size{W: 100, H: 50},
		Inputs:          []string{"in"},
		Outputs:         []string{"out"},
		InputPositions:  []float64{0.5},
		OutputPositions: []float64{0.5},
	}
}

func link(from, to string) flow.Link {
	return flow.Link{
		Source: flow.Source{TaskID: from, OutputName: "out"},
		Target: flow.Target{TaskID: to, InputName: "in"},
	}
}

func mustGraph(t *testing.T, ids []string, edges [][2]string) *flow.Graph {
	t.Helper()
	tasks := make([]flow.Task, len(ids))
	for i, id := range ids {
		tasks[i] = task(id)
	}
	links := make([]flow.Link, len(edges))
	for i, e := range edges {
		links[i] = link(e[0], e[1])
	}
	g, err := flow.New(tasks, links)
	if err != nil {
		t.Fatalf("flow.New() error = %v", err)
	}
	return g
}

func cutPairs(links []flow.AnnotatedLink) [][2]string {
	var out [][2]string
	for _, l := range links {
		if l.Cut {
			out = append(out, [2]string{l.From(), l.To()})
		}
	}
	return out
}

func TestBreakCycles(t *testing.T) {
	tests := []struct {
		name  string
		ids   []string
		edges [][2]string
		want  [][2]string
	}{
		{
			name:  "acyclic chain",
			ids:   []string{"A", "B", "C"},
			edges: [][2]string{{"A", "B"}, {"B", "C"}},
			want:  nil,
		},
		{
			name:  "diamond",
			ids:   []string{"A", "B", "C", "D"},
			edges: [][2]string{{"A", "B"}, {"A", "C"}, {"B", "D"}, {"C", "D"}},
			want:  nil,
		},
		{
			name:  "three cycle",
			ids:   []string{"A", "B", "C"},
			edges: [][2]string{{"A", "B"}, {"B", "C"}, {"C", "A"}},
			want:  [][2]string{{"C", "A"}},
		},
		{
			name:  "self loop",
			ids:   []string{"A", "B"},
			edges: [][2]string{{"A", "A"}, {"A", "B"}},
			want:  [][2]string{{"A", "A"}},
		},
		{
			name:  "two cycle cuts both directions",
			ids:   []string{"A", "B"},
			edges: [][2]string{{"A", "B"}, {"B", "A"}},
			want:  [][2]string{{"A", "B"}, {"B", "A"}},
		},
		{
			name:  "roots in sorted order",
			ids:   []string{"Z", "Y", "X"},
			edges: [][2]string{{"Z", "Y"}, {"Y", "X"}, {"X", "Z"}},
			want:  [][2]string{{"Y", "X"}},
		},
		{
			name:  "error loop",
			ids:   []string{"ingest", "validate", "log", "reprocess", "report"},
			edges: [][2]string{{"ingest", "validate"}, {"validate", "log"}, {"log", "reprocess"}, {"reprocess", "validate"}, {"validate", "report"}},
			want:  [][2]string{{"reprocess", "validate"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGraph(t, tt.ids, tt.edges)
			got := cutPairs(BreakCycles(g))
			if len(got) != len(tt.want) {
				t.Fatalf("BreakCycles() cut = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("BreakCycles() cut[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBreakCyclesKeepsEveryLink(t *testing.T) {
	edges := [][2]string{{"A", "B"}, {"B", "C"}, {"C", "A"}, {"C", "D"}}
	g := mustGraph(t, []string{"A", "B", "C", "D"}, edges)

	got := BreakCycles(g)
	if len(got) != len(edges) {
		t.Fatalf("len(BreakCycles()) = %d, want %d", len(got), len(edges))
	}
	for i, l := range got {
		if l.From() != edges[i][0] || l.To() != edges[i][1] {
			t.Errorf("BreakCycles()[%d] = %s->%s, want %s->%s", i, l.From(), l.To(), edges[i][0], edges[i][1])
		}
	}
	if g.LinkCount() != len(edges) {
		t.Errorf("graph LinkCount() = %d after BreakCycles, want %d", g.LinkCount(), len(edges))
	}
}

func TestBreakCyclesParallelLinks(t *testing.T) {
	tasks := []flow.Task{
		{ID: "A", Outputs: []string{"o1", "o2"}, OutputPositions: []float64{0.3, 0.6}, Inputs: []string{"in"}, InputPositions: []float64{0.5}},
		{ID: "B", Outputs: []string{"out"}, OutputPositions: []float64{0.5}, Inputs: []string{"i1", "i2"}, InputPositions: []float64{0.3, 0.6}},
	}
	links := []flow.Link{
		{Source: flow.Source{TaskID: "A", OutputName: "o1"}, Target: flow.Target{TaskID: "B", InputName: "i1"}},
		{Source: flow.Source{TaskID: "A", OutputName: "o2"}, Target: flow.Target{TaskID: "B", InputName: "i2"}},
		{Source: flow.Source{TaskID: "B", OutputName: "out"}, Target: flow.Target{TaskID: "A", InputName: "in"}},
	}
	g, err := flow.New(tasks, links)
	if err != nil {
		t.Fatalf("flow.New() error = %v", err)
	}

	t.Run("pair keyed", func(t *testing.T) {
		got := BreakCycles(g)
		if n := CutCount(got); n != 3 {
			t.Errorf("CutCount() = %d, want 3", n)
		}
	})

	t.Run("per link", func(t *testing.T) {
		got := BreakCycles(g, WithPerLinkCuts())
		if n := CutCount(got); n != 1 {
			t.Fatalf("CutCount() = %d, want 1", n)
		}
		if !got[2].Cut {
			t.Errorf("BreakCycles()[2].Cut = false, want true")
		}
	})
}

func TestBreakCyclesNonCutSetIsAcyclic(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e", "f"}
	edges := [][2]string{
		{"a", "b"}, {"b", "c"}, {"c", "a"}, {"c", "d"}, {"d", "e"},
		{"e", "c"}, {"e", "f"}, {"f", "f"}, {"f", "a"}, {"b", "e"},
	}
	for _, opts := range [][]CycleOption{nil, {WithPerLinkCuts()}} {
		g := mustGraph(t, ids, edges)
		links := BreakCycles(g, opts...)
		layers := AssignLayers(g, links)
		idx := layers.Index()
		for _, l := range links {
			if l.Cut {
				continue
			}
			if idx[l.From()] >= idx[l.To()] {
				t.Errorf("non-cut link %s->%s goes from layer %d to %d", l.From(), l.To(), idx[l.From()], idx[l.To()])
			}
		}
	}
}

func TestBreakCyclesDeterministic(t *testing.T) {
	ids := []string{"d", "c", "b", "a"}
	edges := [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "a"}, {"b", "d"}, {"d", "b"}}
	g := mustGraph(t, ids, edges)
	first := BreakCycles(g)
	for i := 0; i < 10; i++ {
		again := BreakCycles(g)
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("run %d: link %d = %+v, want %+v", i, j, again[j], first[j])
			}
		}
	}
}

func TestBreakCyclesEmpty(t *testing.T) {
	g, err := flow.New(nil, nil)
	if err != nil {
		t.Fatalf("flow.New() error = %v", err)
	}
	if got := BreakCycles(g); len(got) != 0 {
		t.Errorf("BreakCycles(empty) = %v, want empty", got)
	}
}

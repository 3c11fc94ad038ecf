package flow

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func simpleTask(id string) Task {
	return Task{
		ID:              id,
		Size:            Size{W: 100, H: 50},
		Inputs:          []string{"in"},
		Outputs:         []string{"out"},
		InputPositions:  []float64{0.5},
		OutputPositions: []float64{0.5},
	}
}

func simpleLink(from, to string) Link {
	return Link{Source: Source{TaskID: from, OutputName: "out"}, Target: Target{TaskID: to, InputName: "in"}}
}

func TestNew(t *testing.T) {
	g, err := New(
		[]Task{simpleTask("c"), simpleTask("a"), simpleTask("b")},
		[]Link{simpleLink("a", "b"), simpleLink("a", "c"), simpleLink("b", "c"), simpleLink("c", "a")},
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got, want := g.TaskIDs(), []string{"a", "b", "c"}; !slices.Equal(got, want) {
		t.Errorf("TaskIDs() = %v, want %v", got, want)
	}
	if got := g.TaskCount(); got != 3 {
		t.Errorf("TaskCount() = %d, want 3", got)
	}
	if got := g.LinkCount(); got != 4 {
		t.Errorf("LinkCount() = %d, want 4", got)
	}
	if got, want := g.Successors("a"), []string{"b", "c"}; !slices.Equal(got, want) {
		t.Errorf("Successors(a) = %v, want %v", got, want)
	}
	if got := g.Successors("missing"); len(got) != 0 {
		t.Errorf("Successors(missing) = %v, want empty", got)
	}
	if _, ok := g.Task("b"); !ok {
		t.Error("Task(b) not found")
	}
	if _, ok := g.Task("x"); ok {
		t.Error("Task(x) found, want missing")
	}
}

func TestNewCopiesInput(t *testing.T) {
	tasks := []Task{simpleTask("a"), simpleTask("b")}
	links := []Link{simpleLink("a", "b")}
	g, err := New(tasks, links)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tasks[0].Outputs[0] = "changed"
	links[0].Target.TaskID = "z"

	a, _ := g.Task("a")
	if a.Outputs[0] != "out" {
		t.Errorf("task output = %q after caller mutation, want %q", a.Outputs[0], "out")
	}
	if g.Links()[0].To() != "b" {
		t.Errorf("link target = %q after caller mutation, want %q", g.Links()[0].To(), "b")
	}

	ts := g.Tasks()
	ts[0].Inputs[0] = "changed"
	if a.Inputs[0] != "in" {
		t.Errorf("Tasks() exposed internal state")
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name    string
		tasks   []Task
		links   []Link
		wantErr error
		kind    RefKind
		index   int
	}{
		{
			name:    "empty id",
			tasks:   []Task{{ID: ""}},
			wantErr: ErrInvalidTaskID,
		},
		{
			name:    "duplicate id",
			tasks:   []Task{simpleTask("a"), simpleTask("a")},
			wantErr: ErrDuplicateTaskID,
		},
		{
			name:  "unknown source",
			tasks: []Task{simpleTask("a")},
			links: []Link{simpleLink("x", "a")},
			kind:  RefUnknownSource,
			index: 0,
		},
		{
			name:  "unknown target",
			tasks: []Task{simpleTask("a")},
			links: []Link{simpleLink("a", "a"), simpleLink("a", "x")},
			kind:  RefUnknownTarget,
			index: 1,
		},
		{
			name:  "unknown output",
			tasks: []Task{simpleTask("a"), simpleTask("b")},
			links: []Link{{Source: Source{TaskID: "a", OutputName: "nope"}, Target: Target{TaskID: "b", InputName: "in"}}},
			kind:  RefUnknownOutput,
			index: 0,
		},
		{
			name:  "unknown input",
			tasks: []Task{simpleTask("a"), simpleTask("b")},
			links: []Link{{Source: Source{TaskID: "a", OutputName: "out"}, Target: Target{TaskID: "b", InputName: "nope"}}},
			kind:  RefUnknownInput,
			index: 0,
		},
		{
			name:  "port table length",
			tasks: []Task{{ID: "a", Inputs: []string{"x", "y"}, InputPositions: []float64{0.5}}},
			kind:  RefPortTable,
			index: -1,
		},
		{
			name:  "fraction out of range",
			tasks: []Task{{ID: "a", Outputs: []string{"x"}, OutputPositions: []float64{1.5}}},
			kind:  RefPortTable,
			index: -1,
		},
		{
			name:  "nan fraction",
			tasks: []Task{{ID: "a", Inputs: []string{"x"}, InputPositions: []float64{math.NaN()}}},
			kind:  RefPortTable,
			index: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.tasks, tt.links)
			if err == nil {
				t.Fatal("New() error = nil, want error")
			}
			if g != nil {
				t.Errorf("New() graph = %v, want nil", g)
			}
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("New() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			var ref *ReferentialError
			if !errors.As(err, &ref) {
				t.Fatalf("New() error = %T, want *ReferentialError", err)
			}
			if ref.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", ref.Kind, tt.kind)
			}
			if ref.LinkIndex != tt.index {
				t.Errorf("LinkIndex = %d, want %d", ref.LinkIndex, tt.index)
			}
		})
	}
}

func TestReferentialErrorMessage(t *testing.T) {
	tests := []struct {
		err  *ReferentialError
		want string
	}{
		{&ReferentialError{Kind: RefUnknownTarget, LinkIndex: 2, TaskID: "b"}, `link 2: unknown target task "b"`},
		{&ReferentialError{Kind: RefUnknownOutput, LinkIndex: 0, TaskID: "a", Port: "x"}, `link 0: unknown output port "a" port "x"`},
		{&ReferentialError{Kind: RefPortTable, LinkIndex: -1, TaskID: "a"}, `invalid port table "a"`},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestTaskFractions(t *testing.T) {
	task := Task{
		ID:              "t",
		Inputs:          []string{"a", "b"},
		InputPositions:  []float64{0.25, 0.75},
		Outputs:         []string{"r"},
		OutputPositions: []float64{0.4},
	}
	if f, ok := task.InputFraction("b"); !ok || f != 0.75 {
		t.Errorf("InputFraction(b) = %v, %v, want 0.75, true", f, ok)
	}
	if f, ok := task.OutputFraction("r"); !ok || f != 0.4 {
		t.Errorf("OutputFraction(r) = %v, %v, want 0.4, true", f, ok)
	}
	if _, ok := task.InputFraction("r"); ok {
		t.Error("InputFraction(r) ok = true, want false")
	}
	if _, ok := task.OutputFraction("a"); ok {
		t.Error("OutputFraction(a) ok = true, want false")
	}
}

func TestTaskLabel(t *testing.T) {
	if got := (&Task{ID: "id"}).Label(); got != "id" {
		t.Errorf("Label() = %q, want %q", got, "id")
	}
	if got := (&Task{ID: "id", Name: "Pretty"}).Label(); got != "Pretty" {
		t.Errorf("Label() = %q, want %q", got, "Pretty")
	}
}

func TestLayersIndex(t *testing.T) {
	l := Layers{{"a", "d"}, {"b"}, {"c"}}
	idx := l.Index()
	want := map[string]int{"a": 0, "d": 0, "b": 1, "c": 2}
	for id, w := range want {
		if idx[id] != w {
			t.Errorf("Index()[%s] = %d, want %d", id, idx[id], w)
		}
	}
}

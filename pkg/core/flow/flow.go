package flow

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidTaskID is returned by [New] when a task has an empty ID.
	ErrInvalidTaskID = errors.New("task ID must not be empty")

	// ErrDuplicateTaskID is returned by [New] when two tasks share an ID.
	ErrDuplicateTaskID = errors.New("duplicate task ID")

	// ErrDegenerateGraph is returned by layout entry points that reject a
	// graph without tasks. Layering and coordinate assignment themselves
	// return empty results for such graphs.
	ErrDegenerateGraph = errors.New("graph has no tasks")
)

// Size is the width and height of a task box.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Task is a named node with ordered input and output ports.
//
// InputPositions and OutputPositions hold, for each port, its vertical
// anchor as a fraction of the box height. They are index aligned with
// Inputs and Outputs.
type Task struct {
	ID              string
	Name            string
	Size            Size
	Inputs          []string
	Outputs         []string
	InputPositions  []float64
	OutputPositions []float64
}

// Label returns the display name, falling back to the ID.
func (t *Task) Label() string {
	if t.Name != "" {
		return t.Name
	}
	return t.ID
}

// OutputFraction returns the anchor fraction of the named output port.
func (t *Task) OutputFraction(port string) (float64, bool) {
	i := slices.Index(t.Outputs, port)
	if i < 0 {
		return 0, false
	}
	return t.OutputPositions[i], true
}

// InputFraction returns the anchor fraction of the named input port.
func (t *Task) InputFraction(port string) (float64, bool) {
	i := slices.Index(t.Inputs, port)
	if i < 0 {
		return 0, false
	}
	return t.InputPositions[i], true
}

func (t Task) clone() Task {
	t.Inputs = slices.Clone(t.Inputs)
	t.Outputs = slices.Clone(t.Outputs)
	t.InputPositions = slices.Clone(t.InputPositions)
	t.OutputPositions = slices.Clone(t.OutputPositions)
	return t
}

// Source is the output end of a link.
type Source struct {
	TaskID     string
	OutputName string
}

// Target is the input end of a link.
type Target struct {
	TaskID    string
	InputName string
}

// Link connects an output port of one task to an input port of another.
type Link struct {
	Source Source
	Target Target
}

// From returns the source task ID.
func (l Link) From() string { return l.Source.TaskID }

// To returns the target task ID.
func (l Link) To() string { return l.Target.TaskID }

// Graph is a validated set of tasks and links. Links may form cycles.
//
// A Graph is immutable after [New] returns and safe for concurrent reads.
type Graph struct {
	tasks      map[string]*Task
	ids        []string
	links      []Link
	successors map[string][]string
}

// New validates tasks and links and builds the adjacency and task lookups.
//
// Every task ID must be non-empty and unique, and every task's port lists
// must line up with its fraction lists. Every link must reference existing
// tasks and ports. Reference problems are reported as *[ReferentialError].
//
// New copies its inputs; later changes to tasks or links do not affect
// the graph.
func New(tasks []Task, links []Link) (*Graph, error) {
	g := &Graph{
		tasks:      make(map[string]*Task, len(tasks)),
		links:      slices.Clone(links),
		successors: make(map[string][]string, len(tasks)),
	}

	for _, t := range tasks {
		if t.ID == "" {
			return nil, ErrInvalidTaskID
		}
		if _, exists := g.tasks[t.ID]; exists {
			return nil, ErrDuplicateTaskID
		}
		if err := checkPortTable(t); err != nil {
			return nil, err
		}
		c := t.clone()
		g.tasks[t.ID] = &c
	}
	g.ids = slices.Sorted(maps.Keys(g.tasks))

	for i, l := range g.links {
		if err := g.checkLink(i, l); err != nil {
			return nil, err
		}
		g.successors[l.From()] = append(g.successors[l.From()], l.To())
	}
	return g, nil
}

func checkPortTable(t Task) error {
	if len(t.Inputs) != len(t.InputPositions) || len(t.Outputs) != len(t.OutputPositions) {
		return &ReferentialError{Kind: RefPortTable, LinkIndex: -1, TaskID: t.ID}
	}
	for i, f := range t.InputPositions {
		if !validFraction(f) {
			return &ReferentialError{Kind: RefPortTable, LinkIndex: -1, TaskID: t.ID, Port: t.Inputs[i]}
		}
	}
	for i, f := range t.OutputPositions {
		if !validFraction(f) {
			return &ReferentialError{Kind: RefPortTable, LinkIndex: -1, TaskID: t.ID, Port: t.Outputs[i]}
		}
	}
	return nil
}

// validFraction rejects NaN along with values outside [0, 1].
func validFraction(f float64) bool { return f >= 0 && f <= 1 }

func (g *Graph) checkLink(i int, l Link) error {
	src, ok := g.tasks[l.From()]
	if !ok {
		return &ReferentialError{Kind: RefUnknownSource, LinkIndex: i, TaskID: l.From()}
	}
	dst, ok := g.tasks[l.To()]
	if !ok {
		return &ReferentialError{Kind: RefUnknownTarget, LinkIndex: i, TaskID: l.To()}
	}
	if !slices.Contains(src.Outputs, l.Source.OutputName) {
		return &ReferentialError{Kind: RefUnknownOutput, LinkIndex: i, TaskID: src.ID, Port: l.Source.OutputName}
	}
	if !slices.Contains(dst.Inputs, l.Target.InputName) {
		return &ReferentialError{Kind: RefUnknownInput, LinkIndex: i, TaskID: dst.ID, Port: l.Target.InputName}
	}
	return nil
}

// Task returns the task with the given ID.
// The returned pointer must be treated as read-only.
func (g *Graph) Task(id string) (*Task, bool) {
	t, ok := g.tasks[id]
	return t, ok
}

// TaskIDs returns all task IDs in ascending order.
func (g *Graph) TaskIDs() []string { return slices.Clone(g.ids) }

// Tasks returns copies of all tasks ordered by ID.
func (g *Graph) Tasks() []Task {
	out := make([]Task, len(g.ids))
	for i, id := range g.ids {
		out[i] = g.tasks[id].clone()
	}
	return out
}

// Links returns a copy of the links in input order.
func (g *Graph) Links() []Link { return slices.Clone(g.links) }

// Successors returns the target IDs of links leaving id, in link order.
// A target appears once per link. The slice must not be modified.
func (g *Graph) Successors(id string) []string { return g.successors[id] }

// TaskCount returns the number of tasks.
func (g *Graph) TaskCount() int { return len(g.ids) }

// LinkCount returns the number of links.
func (g *Graph) LinkCount() int { return len(g.links) }

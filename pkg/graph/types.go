package graph

import (
	"errors"
	"fmt"

	"github.com/matzehuels/flowdraw/pkg/core/flow"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Visualization types.
const (
	VizTypeFlow     = "flow"
	VizTypeNodelink = "nodelink"
)

// Visual styles for rendering.
const (
	StyleSimple  = "simple"
	StyleOutline = "outline"
)

// ErrInvalidWorkflow is wrapped by conversion errors caused by malformed
// workflow documents, as opposed to referential problems inside them.
var ErrInvalidWorkflow = errors.New("invalid workflow")

// =============================================================================
// Workflow - Task Graph Serialization
// =============================================================================

// Document is the top-level workflow file:
//
//	{"workflow": {"tasks": [...], "links": [...]}}
type Document struct {
	Workflow Workflow `json:"workflow" bson:"workflow" toml:"workflow"`
}

// Workflow is the canonical serialization format for task graphs.
// Used for input files, API requests, storage and caching.
type Workflow struct {
	Tasks []Task `json:"tasks" bson:"tasks" toml:"tasks"`
	Links []Link `json:"links" bson:"links" toml:"links"`
}

// Task is a serialized task. SizeBox is [width, height]; InputsPos and
// OutputsPos hold one anchor fraction per port and may be omitted.
type Task struct {
	ID         string    `json:"id" bson:"id" toml:"id"`
	Name       string    `json:"name,omitempty" bson:"name,omitempty" toml:"name,omitempty"`
	SizeBox    []float64 `json:"size_box,omitempty" bson:"size_box,omitempty" toml:"size_box,omitempty"`
	Inputs     []string  `json:"inputs" bson:"inputs" toml:"inputs"`
	Outputs    []string  `json:"outputs" bson:"outputs" toml:"outputs"`
	InputsPos  []float64 `json:"inputs_pos,omitempty" bson:"inputs_pos,omitempty" toml:"inputs_pos,omitempty"`
	OutputsPos []float64 `json:"outputs_pos,omitempty" bson:"outputs_pos,omitempty" toml:"outputs_pos,omitempty"`
}

// Link connects an output of one task to an input of another.
type Link struct {
	Source LinkSource `json:"source" bson:"source" toml:"source"`
	Target LinkTarget `json:"target" bson:"target" toml:"target"`
}

// LinkSource is the output end of a link.
type LinkSource struct {
	TaskID     string `json:"task_id" bson:"task_id" toml:"task_id"`
	OutputName string `json:"output_name" bson:"output_name" toml:"output_name"`
}

// LinkTarget is the input end of a link.
type LinkTarget struct {
	TaskID    string `json:"task_id" bson:"task_id" toml:"task_id"`
	InputName string `json:"input_name" bson:"input_name" toml:"input_name"`
}

// =============================================================================
// Workflow ↔ flow.Graph Conversion
// =============================================================================

// ToFlow converts a Workflow to a validated graph.
//
// Missing port positions are spread evenly: port i of n sits at
// (i+1)/(n+1). A missing size_box is left zero so layout geometry can
// substitute its default size.
func ToFlow(w Workflow) (*flow.Graph, error) {
	tasks := make([]flow.Task, len(w.Tasks))
	for i, t := range w.Tasks {
		ft, err := taskToFlow(t)
		if err != nil {
			return nil, err
		}
		tasks[i] = ft
	}

	links := make([]flow.Link, len(w.Links))
	for i, l := range w.Links {
		links[i] = flow.Link{
			Source: flow.Source{TaskID: l.Source.TaskID, OutputName: l.Source.OutputName},
			Target: flow.Target{TaskID: l.Target.TaskID, InputName: l.Target.InputName},
		}
	}

	return flow.New(tasks, links)
}

// FromFlow converts a graph to its serialization format.
// Tasks are sorted by ID for deterministic output; links keep their order.
func FromFlow(g *flow.Graph) Workflow {
	tasks := g.Tasks()
	out := Workflow{
		Tasks: make([]Task, len(tasks)),
		Links: make([]Link, 0, g.LinkCount()),
	}
	for i, t := range tasks {
		out.Tasks[i] = Task{
			ID:         t.ID,
			Name:       t.Name,
			Inputs:     nonNil(t.Inputs),
			Outputs:    nonNil(t.Outputs),
			InputsPos:  t.InputPositions,
			OutputsPos: t.OutputPositions,
		}
		if t.Size != (flow.Size{}) {
			out.Tasks[i].SizeBox = []float64{t.Size.W, t.Size.H}
		}
	}
	for _, l := range g.Links() {
		out.Links = append(out.Links, Link{
			Source: LinkSource{TaskID: l.Source.TaskID, OutputName: l.Source.OutputName},
			Target: LinkTarget{TaskID: l.Target.TaskID, InputName: l.Target.InputName},
		})
	}
	return out
}

// EvenPositions returns n anchor fractions spread evenly over (0, 1).
func EvenPositions(n int) []float64 {
	if n == 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i+1) / float64(n+1)
	}
	return out
}

// =============================================================================
// Internal Helpers
// =============================================================================

func taskToFlow(t Task) (flow.Task, error) {
	ft := flow.Task{
		ID:              t.ID,
		Name:            t.Name,
		Inputs:          t.Inputs,
		Outputs:         t.Outputs,
		InputPositions:  t.InputsPos,
		OutputPositions: t.OutputsPos,
	}
	switch len(t.SizeBox) {
	case 0:
	case 2:
		ft.Size = flow.Size{W: t.SizeBox[0], H: t.SizeBox[1]}
		if ft.Size.W < 0 || ft.Size.H < 0 {
			return flow.Task{}, fmt.Errorf("%w: task %q: size_box must not be negative", ErrInvalidWorkflow, t.ID)
		}
	default:
		return flow.Task{}, fmt.Errorf("%w: task %q: size_box needs 2 values, got %d", ErrInvalidWorkflow, t.ID, len(t.SizeBox))
	}
	if len(ft.InputPositions) == 0 {
		ft.InputPositions = EvenPositions(len(ft.Inputs))
	}
	if len(ft.OutputPositions) == 0 {
		ft.OutputPositions = EvenPositions(len(ft.Outputs))
	}
	return ft, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

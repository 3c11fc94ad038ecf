package flow_test

import (
	"errors"
	"fmt"

	"github.com/matzehuels/flowdraw/pkg/core/flow"
)

func ExampleNew() {
	tasks := []flow.Task{
		{ID: "load", Outputs: []string{"rows"}, OutputPositions: []float64{0.5}},
		{ID: "store", Inputs: []string{"rows"}, InputPositions: []float64{0.5}},
	}
	links := []flow.Link{{
		Source: flow.Source{TaskID: "load", OutputName: "rows"},
		Target: flow.Target{TaskID: "store", InputName: "rows"},
	}}

	g, err := flow.New(tasks, links)
	if err != nil {
		panic(err)
	}
	fmt.Println("Tasks:", g.TaskIDs())
	fmt.Println("Successors of load:", g.Successors("load"))
	// Output:
	// Tasks: [load store]
	// Successors of load: [store]
}

func ExampleReferentialError() {
	_, err := flow.New(
		[]flow.Task{{ID: "a", Outputs: []string{"out"}, OutputPositions: []float64{0.5}}},
		[]flow.Link{{
			Source: flow.Source{TaskID: "a", OutputName: "out"},
			Target: flow.Target{TaskID: "ghost", InputName: "in"},
		}},
	)

	var ref *flow.ReferentialError
	if errors.As(err, &ref) {
		fmt.Println(ref.Kind)
		fmt.Println(err)
	}
	// Output:
	// unknown target task
	// link 0: unknown target task "ghost"
}

package graph

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/flowdraw/pkg/core/engine"
	"github.com/matzehuels/flowdraw/pkg/core/flow"
)

const wrappedJSON = `{
  "workflow": {
    "tasks": [
      {"id": "ingest", "name": "Ingest Data", "size_box": [150, 60], "inputs": [], "outputs": ["raw"], "inputs_pos": [], "outputs_pos": [0.5]},
      {"id": "validate", "name": "Validate", "size_box": [150, 80], "inputs": ["in"], "outputs": ["ok", "bad"], "inputs_pos": [0.5], "outputs_pos": [0.2, 0.8]},
      {"id": "fix", "inputs": ["in"], "outputs": ["out"]}
    ],
    "links": [
      {"source": {"task_id": "ingest", "output_name": "raw"}, "target": {"task_id": "validate", "input_name": "in"}},
      {"source": {"task_id": "validate", "output_name": "bad"}, "target": {"task_id": "fix", "input_name": "in"}},
      {"source": {"task_id": "fix", "output_name": "out"}, "target": {"task_id": "validate", "input_name": "in"}}
    ]
  }
}`

func TestReadWorkflow(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTasks int
		wantLinks int
		wantErr   bool
	}{
		{name: "Wrapped", input: wrappedJSON, wantTasks: 3, wantLinks: 3},
		{name: "Bare", input: `{"tasks": [{"id": "a", "inputs": [], "outputs": []}], "links": []}`, wantTasks: 1, wantLinks: 0},
		{name: "Empty object", input: `{}`, wantErr: true},
		{name: "Both forms", input: `{"workflow": {"tasks": []}, "tasks": []}`, wantErr: true},
		{name: "Malformed", input: `{"workflow": [`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := ReadWorkflow(strings.NewReader(tt.input))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidWorkflow) {
					t.Errorf("ReadWorkflow() error = %v, want ErrInvalidWorkflow", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadWorkflow() error = %v", err)
			}
			if len(w.Tasks) != tt.wantTasks || len(w.Links) != tt.wantLinks {
				t.Errorf("ReadWorkflow() = %d tasks, %d links, want %d, %d", len(w.Tasks), len(w.Links), tt.wantTasks, tt.wantLinks)
			}
		})
	}
}

func TestToFlowDefaults(t *testing.T) {
	w, err := UnmarshalWorkflow([]byte(wrappedJSON))
	if err != nil {
		t.Fatalf("UnmarshalWorkflow() error = %v", err)
	}
	g, err := ToFlow(w)
	if err != nil {
		t.Fatalf("ToFlow() error = %v", err)
	}

	fix, _ := g.Task("fix")
	if fix.Size != (flow.Size{}) {
		t.Errorf("fix.Size = %+v, want zero", fix.Size)
	}
	if !reflect.DeepEqual(fix.InputPositions, []float64{0.5}) {
		t.Errorf("fix.InputPositions = %v, want [0.5]", fix.InputPositions)
	}
	validate, _ := g.Task("validate")
	if validate.Size != (flow.Size{W: 150, H: 80}) {
		t.Errorf("validate.Size = %+v, want 150x80", validate.Size)
	}
	if validate.Label() != "Validate" {
		t.Errorf("validate.Label() = %q, want Validate", validate.Label())
	}
}

func TestToFlowErrors(t *testing.T) {
	tests := []struct {
		name    string
		w       Workflow
		invalid bool
		ref     bool
	}{
		{
			name:    "bad size box",
			w:       Workflow{Tasks: []Task{{ID: "a", SizeBox: []float64{1}}}},
			invalid: true,
		},
		{
			name:    "negative size",
			w:       Workflow{Tasks: []Task{{ID: "a", SizeBox: []float64{-1, 5}}}},
			invalid: true,
		},
		{
			name: "unknown port",
			w: Workflow{
				Tasks: []Task{{ID: "a", Outputs: []string{"o"}}, {ID: "b", Inputs: []string{"i"}}},
				Links: []Link{{Source: LinkSource{TaskID: "a", OutputName: "x"}, Target: LinkTarget{TaskID: "b", InputName: "i"}}},
			},
			ref: true,
		},
		{
			name: "mismatched positions",
			w:    Workflow{Tasks: []Task{{ID: "a", Inputs: []string{"i", "j"}, InputsPos: []float64{0.1}}}},
			ref:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToFlow(tt.w)
			if err == nil {
				t.Fatal("ToFlow() error = nil, want error")
			}
			if tt.invalid && !errors.Is(err, ErrInvalidWorkflow) {
				t.Errorf("ToFlow() error = %v, want ErrInvalidWorkflow", err)
			}
			var refErr *flow.ReferentialError
			if tt.ref && !errors.As(err, &refErr) {
				t.Errorf("ToFlow() error = %v, want *flow.ReferentialError", err)
			}
		})
	}
}

func TestEvenPositions(t *testing.T) {
	tests := []struct {
		n    int
		want []float64
	}{
		{0, nil},
		{1, []float64{0.5}},
		{3, []float64{0.25, 0.5, 0.75}},
	}
	for _, tt := range tests {
		if got := EvenPositions(tt.n); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("EvenPositions(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestWorkflowFileRoundTrip(t *testing.T) {
	w, err := UnmarshalWorkflow([]byte(wrappedJSON))
	if err != nil {
		t.Fatalf("UnmarshalWorkflow() error = %v", err)
	}
	g, err := ToFlow(w)
	if err != nil {
		t.Fatalf("ToFlow() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "wf.json")
	if err := WriteWorkflowFile(FromFlow(g), path); err != nil {
		t.Fatalf("WriteWorkflowFile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "{\n  \"workflow\"") {
		t.Errorf("written file does not start with workflow wrapper: %s", data[:20])
	}

	back, err := ReadWorkflowFile(path)
	if err != nil {
		t.Fatalf("ReadWorkflowFile() error = %v", err)
	}
	g2, err := ToFlow(back)
	if err != nil {
		t.Fatalf("ToFlow() error = %v", err)
	}
	if !reflect.DeepEqual(g.Tasks(), g2.Tasks()) || !reflect.DeepEqual(g.Links(), g2.Links()) {
		t.Error("workflow changed after file round trip")
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	w, _ := UnmarshalWorkflow([]byte(wrappedJSON))
	g, err := ToFlow(w)
	if err != nil {
		t.Fatalf("ToFlow() error = %v", err)
	}
	res, err := engine.Run(g, engine.Options{})
	if err != nil {
		t.Fatalf("engine.Run() error = %v", err)
	}

	l := ExportResult(g, res)
	if l.CutCount() != res.CutCount() {
		t.Errorf("CutCount() = %d, want %d", l.CutCount(), res.CutCount())
	}

	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatalf("WriteLayoutFile() error = %v", err)
	}
	loaded, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile() error = %v", err)
	}

	_, parsed, err := ParseResult(loaded)
	if err != nil {
		t.Fatalf("ParseResult() error = %v", err)
	}
	if !reflect.DeepEqual(parsed, res) {
		t.Errorf("ParseResult() = %+v\nwant %+v", parsed, res)
	}
}

func TestUnmarshalLayoutValidation(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{name: "defaults to flow", data: `{"workflow": {"tasks": [], "links": []}}`},
		{name: "flow without positions", data: `{"viz_type": "flow", "workflow": {"tasks": [{"id": "a"}]}}`, wantErr: true},
		{name: "nodelink without dot", data: `{"viz_type": "nodelink"}`, wantErr: true},
		{name: "nodelink", data: `{"viz_type": "nodelink", "dot": "digraph G {}"}`},
		{name: "bad json", data: `{`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalLayout([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalLayout() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseResultRejectsNodelink(t *testing.T) {
	if _, _, err := ParseResult(Layout{VizType: VizTypeNodelink}); err == nil {
		t.Error("ParseResult(nodelink) error = nil, want error")
	}
}

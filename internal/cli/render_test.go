package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowdraw/pkg/config"
	"github.com/matzehuels/flowdraw/pkg/graph"
	"github.com/matzehuels/flowdraw/pkg/pipeline"
)

const loopWorkflowJSON = `{"workflow": {
  "tasks": [
    {"id": "load", "inputs": [], "outputs": ["rows"]},
    {"id": "check", "inputs": ["rows", "again"], "outputs": ["bad"]},
    {"id": "fix", "inputs": ["bad"], "outputs": ["rows"]}
  ],
  "links": [
    {"source": {"task_id": "load", "output_name": "rows"}, "target": {"task_id": "check", "input_name": "rows"}},
    {"source": {"task_id": "check", "output_name": "bad"}, "target": {"task_id": "fix", "input_name": "bad"}},
    {"source": {"task_id": "fix", "output_name": "rows"}, "target": {"task_id": "check", "input_name": "again"}}
  ]
}}`

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,dot", []string{"svg", "pdf", "dot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "flows/etl.json", "flows/etl"},
		{"", "flows/etl.layout.json", "flows/etl"},
		{"", "etl.toml", "etl"},
		{"out/diagram.svg", "etl.json", "out/diagram"},
		{"out/diagram", "etl.json", "out/diagram"},
		{"out/diagram.v2", "etl.json", "out/diagram.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		output, format string
		count          int
		want           string
	}{
		{"", "svg", 1, "etl.svg"},
		{"pic.svg", "svg", 1, "pic.svg"},
		{"pic.svg", "png", 2, "pic.png"},
		{"pic", "dot", 2, "pic.dot"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.output, "etl.json", tt.format, tt.count); got != tt.want {
			t.Errorf("outputPath(%q, %q, %d) = %q, want %q", tt.output, tt.format, tt.count, got, tt.want)
		}
	}
}

func TestLayoutFlagsApply(t *testing.T) {
	cmd := &cobra.Command{}
	var lf layoutFlags
	lf.register(cmd.Flags())
	if err := cmd.Flags().Set("padding", "10"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("per-link-cuts", "true"); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Geometry.Width = 1200

	var opts pipeline.Options
	lf.apply(cmd.Flags(), cfg, &opts)

	if opts.Geometry.Padding != 10 {
		t.Errorf("Padding = %v, want the flag value 10", opts.Geometry.Padding)
	}
	if opts.Geometry.Width != 1200 {
		t.Errorf("Width = %v, want the configured 1200", opts.Geometry.Width)
	}
	if !opts.PerLinkCuts {
		t.Error("PerLinkCuts should be set")
	}
	if opts.VizType != graph.VizTypeFlow {
		t.Errorf("VizType = %q, want %q", opts.VizType, graph.VizTypeFlow)
	}
}

func TestRenderFlagsApply(t *testing.T) {
	cfg := config.Default()
	cfg.Render.Style = graph.StyleOutline
	cfg.Render.PortLabels = false

	cmd := &cobra.Command{}
	var rf renderFlags
	rf.register(cmd.Flags())

	var opts pipeline.Options
	rf.apply(cmd.Flags(), cfg, &opts)
	if opts.Style != graph.StyleOutline || !opts.HidePortLabels || rf.styleSet {
		t.Errorf("unset flags: Style=%q HidePortLabels=%v styleSet=%v", opts.Style, opts.HidePortLabels, rf.styleSet)
	}

	_ = cmd.Flags().Set("style", "simple")
	_ = cmd.Flags().Set("format", "svg,json")
	rf.apply(cmd.Flags(), cfg, &opts)
	if opts.Style != graph.StyleSimple || !rf.styleSet {
		t.Errorf("--style simple: Style=%q styleSet=%v", opts.Style, rf.styleSet)
	}
	if len(opts.Formats) != 2 {
		t.Errorf("Formats = %v, want 2 formats", opts.Formats)
	}
}

// =============================================================================
// Command Tests
// =============================================================================

// testEnv writes a workflow and a config whose file cache lives in a temp dir.
func testEnv(t *testing.T) (dir, workflow, cfgPath string) {
	t.Helper()
	dir = t.TempDir()
	workflow = filepath.Join(dir, "loop.json")
	if err := os.WriteFile(workflow, []byte(loopWorkflowJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgPath = filepath.Join(dir, "flowdraw.toml")
	cfg := "[cache]\nbackend = \"file\"\ndir = " + `"` + filepath.ToSlash(filepath.Join(dir, "cache")) + `"` + "\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir, workflow, cfgPath
}

func runCLI(t *testing.T, args ...string) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("flowdraw %s: %v", strings.Join(args, " "), err)
	}
}

func TestRenderCommand(t *testing.T) {
	dir, wf, cfg := testEnv(t)

	runCLI(t, "--config", cfg, "render", wf, "-f", "svg,dot")

	svg, err := os.ReadFile(filepath.Join(dir, "loop.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(svg, []byte("<svg")) {
		t.Errorf("loop.svg starts with %.20q", svg)
	}
	dot, err := os.ReadFile(filepath.Join(dir, "loop.dot"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(dot, []byte("digraph")) {
		t.Error("loop.dot is not a digraph")
	}

	entries, _ := filepath.Glob(filepath.Join(dir, "cache", "*", "*.json"))
	if len(entries) == 0 {
		t.Error("render should populate the configured cache")
	}
}

func TestLayoutThenVisualize(t *testing.T) {
	dir, wf, cfg := testEnv(t)

	runCLI(t, "--config", cfg, "layout", wf, "--padding", "20")
	layoutPath := filepath.Join(dir, "loop.layout.json")
	l, err := graph.ReadLayoutFile(layoutPath)
	if err != nil {
		t.Fatal(err)
	}
	if l.Geometry.Padding != 20 {
		t.Errorf("Padding = %v, want 20", l.Geometry.Padding)
	}
	if l.CutCount() != 1 {
		t.Errorf("CutCount() = %d, want 1", l.CutCount())
	}

	out := filepath.Join(dir, "drawn.svg")
	runCLI(t, "--config", cfg, "visualize", layoutPath, "-o", out)
	svg, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(svg, []byte("<svg")) {
		t.Errorf("drawn.svg starts with %.20q", svg)
	}
}

func TestInspectAndCacheCommands(t *testing.T) {
	dir, wf, cfg := testEnv(t)

	runCLI(t, "--config", cfg, "inspect", wf)
	runCLI(t, "--config", cfg, "cache", "clear")

	entries, _ := filepath.Glob(filepath.Join(dir, "cache", "*", "*.json"))
	if len(entries) != 0 {
		t.Errorf("cache clear left %d entries", len(entries))
	}
}

func TestCommandErrors(t *testing.T) {
	_, wf, cfg := testEnv(t)

	tests := [][]string{
		{"--config", cfg, "render", wf, "-f", "gif"},
		{"--config", cfg, "render", wf, "--style", "neon"},
		{"--config", cfg, "layout", filepath.Join(filepath.Dir(wf), "missing.json")},
		{"--config", filepath.Join(filepath.Dir(wf), "missing.toml"), "layout", wf},
	}
	for _, args := range tests {
		c := New(io.Discard, LogInfo)
		root := c.RootCommand()
		root.SetArgs(args)
		root.SetOut(io.Discard)
		root.SetErr(io.Discard)
		if err := root.ExecuteContext(context.Background()); err == nil {
			t.Errorf("flowdraw %s: expected an error", strings.Join(args, " "))
		}
	}
}

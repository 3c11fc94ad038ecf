package cli

import (
	"github.com/spf13/pflag"

	"github.com/matzehuels/flowdraw/pkg/config"
	"github.com/matzehuels/flowdraw/pkg/core/render/layout"
	"github.com/matzehuels/flowdraw/pkg/graph"
	"github.com/matzehuels/flowdraw/pkg/pipeline"
)

// layoutFlags are the flags shared by commands that compute a layout.
// Geometry flags left unset keep the configured value.
type layoutFlags struct {
	vizType     string
	geometry    layout.Geometry
	perLinkCuts bool
	allowEmpty  bool
	detailed    bool
	refresh     bool
	noCache     bool
}

func (f *layoutFlags) register(fs *pflag.FlagSet) {
	f.geometry = layout.DefaultGeometry()

	fs.StringVarP(&f.vizType, "type", "t", graph.VizTypeFlow, "visualization type: flow (default), nodelink")
	fs.Float64Var(&f.geometry.Width, "width", f.geometry.Width, "canvas width")
	fs.Float64Var(&f.geometry.Padding, "padding", f.geometry.Padding, "outer padding")
	fs.Float64Var(&f.geometry.NodeGap, "node-gap", f.geometry.NodeGap, "vertical gap between tasks in a column")
	fs.Float64Var(&f.geometry.CurveFactor, "curve-factor", f.geometry.CurveFactor, "horizontal pull of forward curves")
	fs.Float64Var(&f.geometry.ArcClearance, "arc-clearance", f.geometry.ArcClearance, "height of back arcs above the tallest task")
	fs.Float64Var(&f.geometry.DefaultTaskWidth, "task-width", f.geometry.DefaultTaskWidth, "width of tasks without size_box")
	fs.Float64Var(&f.geometry.DefaultTaskHeight, "task-height", f.geometry.DefaultTaskHeight, "height of tasks without size_box")
	fs.BoolVar(&f.perLinkCuts, "per-link-cuts", false, "cut only the closing link of a cycle, not every link between the same tasks")
	fs.BoolVar(&f.allowEmpty, "allow-empty", false, "accept workflows without tasks")
	fs.BoolVar(&f.detailed, "detailed", false, "label edges with port names (nodelink)")
	fs.BoolVar(&f.refresh, "refresh", false, "recompute even if cached")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
}

// apply copies the flags into opts on top of cfg.
func (f *layoutFlags) apply(fs *pflag.FlagSet, cfg *config.Config, opts *pipeline.Options) {
	geo := cfg.Geometry
	override := func(name string, dst *float64, v float64) {
		if fs.Changed(name) {
			*dst = v
		}
	}
	override("width", &geo.Width, f.geometry.Width)
	override("padding", &geo.Padding, f.geometry.Padding)
	override("node-gap", &geo.NodeGap, f.geometry.NodeGap)
	override("curve-factor", &geo.CurveFactor, f.geometry.CurveFactor)
	override("arc-clearance", &geo.ArcClearance, f.geometry.ArcClearance)
	override("task-width", &geo.DefaultTaskWidth, f.geometry.DefaultTaskWidth)
	override("task-height", &geo.DefaultTaskHeight, f.geometry.DefaultTaskHeight)

	opts.VizType = f.vizType
	opts.Geometry = geo
	opts.PerLinkCuts = f.perLinkCuts
	opts.AllowEmpty = f.allowEmpty
	opts.Detailed = f.detailed
	opts.Refresh = f.refresh
}

// renderFlags are the flags shared by commands that draw a layout.
type renderFlags struct {
	formats      string
	output       string
	style        string
	scale        float64
	noPortLabels bool

	// styleSet records whether --style was given explicitly.
	styleSet bool
}

func (f *renderFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.output, "output", "o", "", "output file (single format), base path (multiple) or - for stdout")
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	fs.StringVar(&f.style, "style", graph.StyleSimple, "visual style: simple (default), outline")
	fs.Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	fs.BoolVar(&f.noPortLabels, "no-port-labels", false, "hide port names next to anchors")
}

// apply copies the flags into opts on top of cfg.
func (f *renderFlags) apply(fs *pflag.FlagSet, cfg *config.Config, opts *pipeline.Options) {
	opts.Formats = parseFormats(f.formats)
	opts.Style = cfg.Render.Style
	f.styleSet = fs.Changed("style")
	if f.styleSet {
		opts.Style = f.style
	}
	opts.Scale = cfg.Render.Scale
	if fs.Changed("scale") {
		opts.Scale = f.scale
	}
	opts.HidePortLabels = !cfg.Render.PortLabels
	if fs.Changed("no-port-labels") {
		opts.HidePortLabels = f.noPortLabels
	}
}

package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/flowdraw/pkg/core/engine"
	"github.com/matzehuels/flowdraw/pkg/core/flow"
	"github.com/matzehuels/flowdraw/pkg/core/render/nodelink"
	"github.com/matzehuels/flowdraw/pkg/core/render/sink"
	"github.com/matzehuels/flowdraw/pkg/core/render/styles"
	"github.com/matzehuels/flowdraw/pkg/graph"
)

// RenderFromLayout renders output from a graph.Layout.
// This is the preferred entry point when you have a graph.Layout, for
// example one read back from the cache or from a JSON file.
func RenderFromLayout(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	if l.IsNodelink() {
		return RenderNodelink(ctx, l, opts)
	}
	g, res, err := graph.ParseResult(l)
	if err != nil {
		return nil, fmt.Errorf("convert layout: %w", err)
	}
	return renderFlow(ctx, l, g, res, applyLayoutMetadata(opts, l))
}

// RenderFromLayoutData renders output from serialized layout data.
func RenderFromLayoutData(ctx context.Context, data []byte, opts Options) (map[string][]byte, error) {
	l, err := graph.UnmarshalLayout(data)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return RenderFromLayout(ctx, l, opts)
}

// RenderNodelink generates nodelink outputs from a layout.
// The layout must be a nodelink layout (VizType = "nodelink") with a DOT string.
func RenderNodelink(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	dot, err := nodelink.Parse(l)
	if err != nil {
		return nil, err
	}
	opts.SetRenderDefaults()

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot, opts.Scale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(ctx, dot)
		case FormatJSON:
			data, err = graph.MarshalLayout(l)
		case FormatDOT:
			data = []byte(dot)
		default:
			return nil, fmt.Errorf("unsupported nodelink format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// renderFlow generates flow outputs.
func renderFlow(ctx context.Context, l graph.Layout, g *flow.Graph, res *engine.Result, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()
	svgOpts, err := buildSVGOptions(opts)
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(g, res, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(ctx, g, res, sink.WithScale(opts.Scale), sink.WithPNGSVGOptions(svgOpts...))
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, g, res, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = graph.MarshalLayout(l)
		case FormatDOT:
			dot := nodelink.ToDOT(g, res.Links, nodelink.Options{Layers: res.Layers})
			data = []byte(dot)
		default:
			return nil, fmt.Errorf("unsupported flow format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// applyLayoutMetadata applies layout metadata to options if not already set.
// This ensures that serialized layouts preserve their original rendering settings.
func applyLayoutMetadata(opts Options, l graph.Layout) Options {
	if opts.Style == "" && l.Style != "" {
		opts.Style = l.Style
	}
	return opts
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(opts Options) ([]sink.SVGOption, error) {
	style, ok := styles.ByName(opts.Style)
	if !ok {
		return nil, fmt.Errorf("unknown style: %q", opts.Style)
	}
	svgOpts := []sink.SVGOption{sink.WithStyle(style)}
	if opts.HidePortLabels {
		svgOpts = append(svgOpts, sink.WithoutPortLabels())
	}
	return svgOpts, nil
}

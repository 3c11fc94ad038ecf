package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/flowdraw/pkg/core/flow"
	"github.com/matzehuels/flowdraw/pkg/core/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the task ID and layer index under each title.
	// When false, only the task label is shown.
	Detailed bool

	// Layers pins tasks of the same layer to the same Graphviz rank.
	// Leave nil to let Graphviz rank tasks on its own.
	Layers flow.Layers
}

// ToDOT converts a workflow graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Tasks become record nodes with input ports on the left and output ports
// on the right; every link is attached to its named ports. Cut links are
// drawn dashed with constraint=false so Graphviz ranks the remaining
// acyclic links only.
func ToDOT(g *flow.Graph, links []flow.AnnotatedLink, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=record, style=\"rounded,filled\", fillcolor=\"#d6f2d6\", fontname=\"Helvetica\", fontsize=12];\n")
	buf.WriteString("  edge [color=gray40, arrowsize=0.7];\n")
	buf.WriteString("  ranksep=0.8;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	layerOf := opts.Layers.Index()
	for _, t := range g.Tasks() {
		fmt.Fprintf(&buf, "  %q [label=\"%s\"];\n", t.ID, recordLabel(t, layerOf, opts.Detailed))
	}

	if len(opts.Layers) > 0 {
		buf.WriteString("\n")
		for _, layer := range opts.Layers {
			quoted := make([]string, len(layer))
			for i, id := range layer {
				quoted[i] = strconv.Quote(id)
			}
			fmt.Fprintf(&buf, "  { rank=same; %s; }\n", strings.Join(quoted, "; "))
		}
	}

	buf.WriteString("\n")
	for _, l := range links {
		src, _ := g.Task(l.From())
		dst, _ := g.Task(l.To())
		attrs := ""
		if l.Cut {
			attrs = " [style=dashed, constraint=false]"
		}
		fmt.Fprintf(&buf, "  %q:%s:e -> %q:%s:w%s;\n",
			l.From(), portID("o", src.Outputs, l.Source.OutputName),
			l.To(), portID("i", dst.Inputs, l.Target.InputName), attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// recordLabel builds "{ {<i0> in|...} | title | {<o0> out|...} }".
func recordLabel(t flow.Task, layerOf map[string]int, detailed bool) string {
	title := escapeRecord(t.Label())
	if detailed {
		title += `\n` + escapeRecord(t.ID)
		if layer, ok := layerOf[t.ID]; ok {
			title += fmt.Sprintf(`\nlayer: %d`, layer)
		}
	}

	parts := []string{}
	if len(t.Inputs) > 0 {
		parts = append(parts, "{"+ports("i", t.Inputs)+"}")
	}
	parts = append(parts, title)
	if len(t.Outputs) > 0 {
		parts = append(parts, "{"+ports("o", t.Outputs)+"}")
	}
	return "{" + strings.Join(parts, "|") + "}"
}

func ports(prefix string, names []string) string {
	cells := make([]string, len(names))
	for i, n := range names {
		cells[i] = fmt.Sprintf("<%s%d> %s", prefix, i, escapeRecord(n))
	}
	return strings.Join(cells, "|")
}

func portID(prefix string, names []string, name string) string {
	for i, n := range names {
		if n == name {
			return fmt.Sprintf("%s%d", prefix, i)
		}
	}
	return prefix + "0"
}

var recordEscaper = strings.NewReplacer(
	`\`, `\\`, `"`, `\"`, `{`, `\{`, `}`, `\}`, `|`, `\|`, `<`, `\<`, `>`, `\>`,
)

func escapeRecord(s string) string { return recordEscaper.Replace(s) }

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}

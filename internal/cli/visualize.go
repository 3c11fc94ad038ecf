package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowdraw/pkg/graph"
	"github.com/matzehuels/flowdraw/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		rf      renderFlags
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a computed layout",
		Long: `Render a computed layout.

The visualize command takes a layout.json file (produced by 'layout') and
renders it to SVG, PNG, PDF or DOT. The layout contains all positioning
information, so this step is purely about drawing.

Results are cached for faster subsequent runs.

Use 'render' as a shortcut to go directly from a workflow to visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts pipeline.Options
			rf.apply(cmd.Flags(), c.Config, &opts)
			return c.runVisualize(cmd.Context(), args[0], opts, rf, noCache)
		},
	}

	rf.register(cmd.Flags())
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runVisualize loads the layout and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, rf renderFlags, noCache bool) error {
	l, err := graph.ReadLayoutFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	opts.VizType = l.VizType
	if opts.VizType == "" {
		opts.VizType = graph.VizTypeFlow
	}
	opts.Geometry = l.Geometry
	if !rf.styleSet && l.Style != "" {
		opts.Style = l.Style
	}

	runner := c.newRunner(ctx, noCache)
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.VizType))
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    rf.output,
		cacheHit:  cacheHit,
		stats: &statsLine{
			tasks:  len(l.Workflow.Tasks),
			links:  len(l.Workflow.Links),
			cut:    l.CutCount(),
			layers: len(l.Layers),
		},
	})
}

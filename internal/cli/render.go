package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowdraw/pkg/pipeline"
)

// renderCommand creates the render command: layout and draw in one step.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		lf layoutFlags
		rf renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render [workflow.json|workflow.toml]",
		Short: "Lay out and draw a workflow",
		Long: `Lay out and draw a workflow.

Runs the full pipeline: read the workflow, compute the layout, and render
it to one or more formats. SVG is drawn natively; PNG and PDF need
rsvg-convert on PATH. Nodelink diagrams are drawn with Graphviz.

Use 'layout' and 'visualize' to run the two steps separately.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{Input: args[0]}
			lf.apply(cmd.Flags(), c.Config, &opts)
			rf.apply(cmd.Flags(), c.Config, &opts)
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts, rf.output, lf.noCache)
		},
	}

	lf.register(cmd.Flags())
	rf.register(cmd.Flags())

	return cmd
}

// runRender executes the pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner := c.newRunner(ctx, noCache)
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.Input))
	spinner.Start()

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %s", opts.Input))

	return writeArtifacts(artifactWriteParams{
		artifacts: res.Artifacts,
		formats:   opts.Formats,
		input:     opts.Input,
		output:    output,
		cacheHit:  res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit,
		stats: &statsLine{
			tasks:  res.Stats.TaskCount,
			links:  res.Stats.LinkCount,
			cut:    res.Stats.CutCount,
			layers: res.Stats.LayerCount,
		},
	})
}

package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowdraw/pkg/graph"
	"github.com/matzehuels/flowdraw/pkg/pipeline"
)

// layoutCommand creates the layout command for computing workflow layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		lf     layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [workflow.json|workflow.toml]",
		Short: "Compute the layout of a workflow",
		Long: `Compute the layout of a workflow.

The layout command reads a workflow (JSON or TOML) and computes task columns,
positions and link paths. The output is a layout.json file (same format as
'render -f json') that can be drawn with the 'visualize' command.

Supports both flow (-t flow) and nodelink (-t nodelink) visualization types.

Results are cached for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{Input: args[0]}
			lf.apply(cmd.Flags(), c.Config, &opts)
			return c.runLayout(cmd.Context(), opts, output, lf.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json, - for stdout)")
	lf.register(cmd.Flags())

	return cmd
}

// runLayout loads the workflow, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}
	g, err := pipeline.Parse(opts)
	if err != nil {
		return fmt.Errorf("load workflow %s: %w", opts.Input, err)
	}

	runner := c.newRunner(ctx, noCache)
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.VizType))
	spinner.Start()

	l, cacheHit, err := runner.LayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if output == stdoutPath {
		data, err := graph.MarshalLayout(l)
		if err != nil {
			return err
		}
		return writeFile(stdoutPath, data)
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(opts.Input, filepath.Ext(opts.Input))
		outputPath = base + ".layout.json"
	}

	if err := graph.WriteLayoutFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(statsLine{
		tasks:  g.TaskCount(),
		links:  g.LinkCount(),
		cut:    l.CutCount(),
		layers: len(l.Layers),
		cached: cacheHit,
	})
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}

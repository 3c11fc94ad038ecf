package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowdraw/pkg/graph"
	"github.com/matzehuels/flowdraw/pkg/pipeline"
)

// inspectCommand creates the inspect command for examining a layout.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		lf          layoutFlags
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [workflow.json|workflow.toml|layout.json]",
		Short: "Show the columns, positions and links of a layout",
		Long: `Show the columns, positions and links of a layout.

Computes the flow layout of a workflow (or reads a *.layout.json file) and
prints each task's layer and position followed by every routed link. Links
cut to break a cycle are highlighted.

With -i the layout is browsed interactively, one task at a time.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{Input: args[0]}
			lf.apply(cmd.Flags(), c.Config, &opts)
			opts.VizType = graph.VizTypeFlow

			l, err := c.loadOrComputeLayout(cmd.Context(), opts, lf.noCache)
			if err != nil {
				return err
			}
			if interactive {
				_, err := tea.NewProgram(NewInspectModel(l)).Run()
				return err
			}
			printLayout(l)
			return nil
		},
	}

	lf.register(cmd.Flags())
	_ = cmd.Flags().MarkHidden("type")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse the layout interactively")

	return cmd
}

// loadOrComputeLayout reads a layout file, or computes the layout of a
// workflow file.
func (c *CLI) loadOrComputeLayout(ctx context.Context, opts pipeline.Options, noCache bool) (graph.Layout, error) {
	if strings.HasSuffix(opts.Input, ".layout.json") {
		l, err := graph.ReadLayoutFile(opts.Input)
		if err != nil {
			return graph.Layout{}, fmt.Errorf("load layout %s: %w", opts.Input, err)
		}
		return l, nil
	}

	g, err := pipeline.Parse(opts)
	if err != nil {
		return graph.Layout{}, fmt.Errorf("load workflow %s: %w", opts.Input, err)
	}
	runner := c.newRunner(ctx, noCache)
	defer runner.Close()
	return runner.Layout(ctx, g, opts)
}

// printLayout prints the task and link tables of l.
func printLayout(l graph.Layout) {
	fmt.Fprintln(uiOut, StyleTitle.Render("Tasks"))
	fmt.Fprintln(uiOut, renderTaskTable(taskRows(l), -1))
	if len(l.Paths) > 0 {
		printNewline()
		fmt.Fprintln(uiOut, StyleTitle.Render("Links"))
		fmt.Fprintln(uiOut, renderLinkTable(l.Paths))
	}
	printStats(statsLine{
		tasks:  len(l.Workflow.Tasks),
		links:  len(l.Workflow.Links),
		cut:    l.CutCount(),
		layers: len(l.Layers),
	})
}

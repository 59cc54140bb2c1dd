package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gravitymap/pkg/errors"
	"github.com/matzehuels/gravitymap/pkg/graph"
	"github.com/matzehuels/gravitymap/pkg/pipeline"
)

// layoutFlags holds the engine flags shared by layout and preview.
type layoutFlags struct {
	cmd        *cobra.Command
	iterations int
	kAttract   float64
	kRepulse   float64
	kCenter    float64
	stepSize   float64
	maxRadius  float64
}

// addLayoutFlags registers the engine flags on cmd with engine defaults.
func addLayoutFlags(cmd *cobra.Command) *layoutFlags {
	d := pipeline.DefaultOptions()
	f := &layoutFlags{cmd: cmd}
	cmd.Flags().IntVar(&f.iterations, "iterations", d.Iterations, "number of refinement iterations")
	cmd.Flags().Float64Var(&f.kAttract, "k-attract", d.KAttract, "spring strength along edges")
	cmd.Flags().Float64Var(&f.kRepulse, "k-repulse", d.KRepulse, "pairwise repulsion strength")
	cmd.Flags().Float64Var(&f.kCenter, "k-center", d.KCenter, "pull toward the center")
	cmd.Flags().Float64Var(&f.stepSize, "step-size", d.StepSize, "movement per iteration")
	cmd.Flags().Float64Var(&f.maxRadius, "max-radius", 0, "rescale initial radii to at most this value (0 = off)")
	return f
}

// changed returns only the flags the user set, so config file values survive
// for the rest.
func (f *layoutFlags) changed() graph.LayoutConfig {
	var c graph.LayoutConfig
	fs := f.cmd.Flags()
	if fs.Changed("iterations") {
		c.Iterations = &f.iterations
	}
	if fs.Changed("k-attract") {
		c.KAttract = &f.kAttract
	}
	if fs.Changed("k-repulse") {
		c.KRepulse = &f.kRepulse
	}
	if fs.Changed("k-center") {
		c.KCenter = &f.kCenter
	}
	if fs.Changed("step-size") {
		c.StepSize = &f.stepSize
	}
	if fs.Changed("max-radius") {
		c.MaxRadius = &f.maxRadius
	}
	return c
}

// layoutCommand creates the layout command for computing gravity layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "layout [graph.json|graph.yaml]",
		Short: "Compute a gravity layout from a weighted graph",
		Long: `Compute a gravity layout from a weighted graph.

The input names a center node, an optional node list, and weighted edges:

  center: me
  edges:
    - {from: me, to: alice, weight: 10}
    - {from: me, to: bob, weight: 1}

The output is a layout.json file with one [x, y] position per node, the
center at the origin. Render it with 'gravitymap render'.

Results are cached, keyed by the graph and the engine parameters.`,
		Args: cobra.ExactArgs(1),
	}
	flags := addLayoutFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return c.runLayout(cmd.Context(), args[0], c.layoutOptions(flags), output, noCache)
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runLayout loads the graph, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	g, err := graph.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	outputPath := output
	if outputPath == "" {
		outputPath = layoutPath(input)
	}
	if err := errors.ValidateOutputPath(outputPath); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	layout, cacheHit, err := runner.ComputeLayout(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := graph.WriteLayoutFile(layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(layout.Stats.Nodes, layout.Stats.Edges, cacheHit)
	printNewline()
	printNextStep("Render", appName+" render "+outputPath)

	return nil
}

// layoutPath derives graph.layout.json from graph.json or graph.yaml.
func layoutPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
}

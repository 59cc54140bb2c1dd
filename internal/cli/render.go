package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gravitymap/pkg/errors"
	"github.com/matzehuels/gravitymap/pkg/graph"
	"github.com/matzehuels/gravitymap/pkg/pipeline"
	"github.com/matzehuels/gravitymap/pkg/render/nodelink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string  // output file path
	format    string  // svg or dot
	scale     float64 // points per layout unit
	weights   bool    // label edges with their weights
	graphFile string  // graph supplying edges when the layout has none
	noCache   bool
}

// renderCommand creates the render command for drawing saved layouts.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		format: pipeline.FormatSVG,
		scale:  nodelink.DefaultScale,
	}

	cmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Render a layout to SVG or DOT",
		Long: `Render a layout produced by 'gravitymap layout'.

Node positions are pinned, so the drawing matches the computed layout exactly.
The center is highlighted and edges are drawn thicker for higher weights.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(opts.format); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), dot")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "points per layout unit")
	cmd.Flags().BoolVar(&opts.weights, "weights", false, "label edges with their weights")
	cmd.Flags().StringVar(&opts.graphFile, "graph", "", "graph file to take edges from")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runRender loads a layout, renders it, and writes the artifact.
func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	layout, err := graph.ReadLayoutFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}
	if opts.graphFile != "" {
		g, err := graph.ReadGraphFile(opts.graphFile)
		if err != nil {
			return fmt.Errorf("load graph %s: %w", opts.graphFile, err)
		}
		layout.Edges = g.Edges
	}

	outputPath := opts.output
	if outputPath == "" {
		outputPath = artifactPath(input, opts.format)
	}
	if err := errors.ValidateOutputPath(outputPath); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	p := newProgress(c.Logger)
	data, cacheHit, err := runner.Render(ctx, layout, pipeline.RenderOptions{
		Format:      opts.format,
		Scale:       opts.scale,
		ShowWeights: opts.weights,
		NoCache:     opts.noCache,
	})
	if err != nil {
		return fmt.Errorf("render %s: %w", opts.format, err)
	}
	p.done("Rendered " + opts.format)

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Render complete")
	printFile(outputPath)
	printStats(len(layout.Positions), len(layout.Edges), cacheHit)
	return nil
}

// artifactPath derives graph.svg from graph.layout.json.
func artifactPath(input, format string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	base = strings.TrimSuffix(base, ".layout")
	return base + "." + format
}

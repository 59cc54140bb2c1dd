package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gravitymap/pkg/api"
	"github.com/matzehuels/gravitymap/pkg/metrics"
	"github.com/matzehuels/gravitymap/pkg/observability"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr           string
	maxNodes       int
	requestTimeout time.Duration
	metrics        bool
	noCache        bool
}

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout HTTP API",
		Long: `Serve the layout HTTP API.

Endpoints:
  POST /api/map-layout       match list layout (alias: /api/gravity-layout)
  POST /api/layout           full graph layout
  GET  /api/health           health and build info
  GET  /metrics              Prometheus metrics

Server defaults come from the [server] section of the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			if !fs.Changed("addr") {
				opts.addr = c.Config.Server.Addr
			}
			if !fs.Changed("max-nodes") {
				opts.maxNodes = c.Config.Server.MaxNodes
			}
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", defaultAddr, "listen address")
	cmd.Flags().IntVar(&opts.maxNodes, "max-nodes", 0, "largest graph accepted per request")
	cmd.Flags().DurationVar(&opts.requestTimeout, "request-timeout", 30*time.Second, "per-request deadline (0 = none)")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", true, "expose Prometheus metrics at /metrics")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe wires the runner, metrics, and HTTP server, and blocks until ctx
// is canceled.
func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	cfg := api.Config{
		Logger:         c.Logger,
		MaxBodyBytes:   c.Config.Server.MaxBodyBytes,
		MaxNodes:       opts.maxNodes,
		RequestTimeout: opts.requestTimeout,
		ReadTimeout:    c.Config.Server.ReadTimeout.Duration,
		WriteTimeout:   c.Config.Server.WriteTimeout.Duration,
	}
	if opts.metrics {
		reg := metrics.NewRegistry()
		observability.SetLayoutHooks(reg)
		observability.SetCacheHooks(reg)
		observability.SetHTTPHooks(reg)
		defer observability.Reset()
		cfg.Metrics = reg.Handler()
	}

	printInfo("Serving on %s", StyleHighlight.Render(opts.addr))
	if err := api.New(runner, cfg).Run(ctx, opts.addr); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	printSuccess("Server stopped")
	return nil
}

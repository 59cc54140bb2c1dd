// Package cli implements the gravitymap command-line interface.
//
// The CLI lays out weighted graphs around a pinned center, renders saved
// layouts to SVG or DOT, previews layouts in the terminal, and serves the
// layout HTTP API. It is built with cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - layout: Compute a layout from a graph file (JSON or YAML)
//   - render: Render a layout file to SVG or DOT
//   - preview: Show an interactive layout preview in the terminal
//   - serve: Run the HTTP API with Prometheus metrics
//   - cache: Manage the local layout cache
//   - completion: Generate shell completion scripts
//
// # Configuration
//
// Defaults are read from $XDG_CONFIG_HOME/gravitymap/config.toml (or the file
// named by --config). Flags override file values.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gravitymap/pkg/buildinfo"
	"github.com/matzehuels/gravitymap/pkg/cache"
	"github.com/matzehuels/gravitymap/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "gravitymap"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	configFile string
}

// New creates a new CLI instance with a default logger and default config.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: defaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Gravitymap lays out weighted graphs around a pinned center",
		Long: `Gravitymap places every node of a weighted graph on a 2D plane around a
fixed center node. Strongly connected nodes sit close to the center and to
each other; weak ties drift outward.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default: "+configPath()+")")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config named by --config, or the default location
// when it exists.
func (c *CLI) loadConfig() error {
	path, required := c.configFile, true
	if path == "" {
		path, required = configPath(), false
	}
	cfg, unknown, err := loadConfig(path, required)
	if err != nil {
		return err
	}
	for _, key := range unknown {
		c.Logger.Warn("unknown config key", "key", key, "file", path)
	}
	c.Config = cfg
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache and
// keyed by the configured prefix.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cache, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, c.Config.Keyer(), c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	opts, err := c.Config.CacheOptions()
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.Open(ctx, opts)
}

// =============================================================================
// Options Helpers
// =============================================================================

// layoutOptions resolves engine options: defaults, then the [layout] section
// of the config file, then any flags the user set.
func (c *CLI) layoutOptions(flags *layoutFlags) pipeline.Options {
	opts := pipeline.DefaultOptions().Apply(c.Config.Layout)
	opts.MaxNodes = 0
	if flags != nil {
		opts = opts.Apply(flags.changed())
	}
	opts.Logger = c.Logger
	return opts
}

// Package cli implements the cascade command-line interface.
//
// # Commands
//
//   - schedule: print the start offset of every element of a scene
//   - render: write animated SVG, JSON, DOT, tree, PNG or PDF artifacts
//   - preview: play a schedule in the terminal
//   - serve: run the HTTP API
//   - cache: inspect or clear the artifact cache
//   - config: show the active configuration
//
// Every command accepts --verbose (-v) for debug logging and --config to
// point at a configuration file other than the default.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cascade/pkg/buildinfo"
	"github.com/matzehuels/cascade/pkg/cache"
	"github.com/matzehuels/cascade/pkg/config"
	"github.com/matzehuels/cascade/pkg/observability"
	"github.com/matzehuels/cascade/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const appName = "cascade"

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

	configPath string
	cfg        *config.Config
}

// New creates a CLI writing logs to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level pipeline, cache
// and server events are logged too.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		observability.NewLogHooks(c.Logger).Register()
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Cascade computes staggered animation schedules for nested layouts",
		Long: `Cascade orders the elements of a nested layout in space (linear sweeps,
radial bursts, corner-anchored or weighted waves) and turns that order into
per-element start offsets, then renders the result as animated SVG and more.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/cascade/config.toml)")

	root.AddCommand(c.scheduleCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration & Runner Factory
// =============================================================================

// loadConfig reads the configuration once per process.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	var (
		cfg config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.Load(c.configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded config", "path", c.configPath, "cache", cfg.Cache.Backend)
	c.cfg = &cfg
	return c.cfg, nil
}

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	if noCache {
		return pipeline.NewRunner(cache.NewNullCache(), nil, c.Logger), nil
	}
	store, err := cache.Open(ctx, cfg.Cache)
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without it", "backend", cfg.Cache.Backend, "err", err)
		store = cache.NewNullCache()
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/cascade/pkg/cache"
	"github.com/matzehuels/cascade/pkg/server"
)

// serveCommand runs the HTTP API until the context is cancelled.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the schedule and render endpoints over HTTP.

Requests are overlaid on the [sort] and [animation] sections of the
configuration file; cache keys are scoped by server.key_prefix.

  cascade serve --addr :9000
  curl -s localhost:9000/v1/functions`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return err
			}
			defer runner.Close()
			runner.Keyer = cache.NewScopedKeyer(runner.Keyer, cfg.Server.KeyPrefix)

			srv := server.New(runner,
				server.WithDefaults(cfg.PipelineOptions()),
				server.WithMaxBodyBytes(cfg.Server.MaxBodyBytes),
				server.WithLogger(c.Logger),
			)
			printInfo("Listening on %s", StyleValue.Render(cfg.Server.Addr))
			printDetail("cache: %s", cfg.Cache.Backend)
			return srv.ListenAndServe(cmd.Context(), cfg.Server.Addr,
				cfg.Server.ReadTimeoutDuration(), cfg.Server.WriteTimeoutDuration())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "serve without a cache")
	return cmd
}

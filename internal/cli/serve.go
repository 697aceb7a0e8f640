package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/backdrop/pkg/buildinfo"
	"github.com/matzehuels/backdrop/pkg/cache"
	"github.com/matzehuels/backdrop/pkg/observability"
	"github.com/matzehuels/backdrop/pkg/pipeline"
	"github.com/matzehuels/backdrop/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve backdrops and simulations over HTTP",
		Long: `Run the HTTP API until interrupted.

Rendered artifacts are cached in Redis when --redis (or server.redis_addr)
is set, and in the local cache directory otherwise. Cache keys are scoped
to the build version so a new release never serves stale output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("redis") {
				cfg.Server.RedisAddr = redisAddr
			}

			ctx := cmd.Context()
			store, err := c.serverCache(ctx, cfg.Server.RedisAddr)
			if err != nil {
				return err
			}

			runner := pipeline.NewRunner(store, cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.CacheScope()), c.Logger)
			runner.ArtifactTTL = cfg.Server.CacheTTL
			defer runner.Close()

			observability.SetHTTPHooks(debugHTTPHooks{logger: c.Logger})

			printInfo("Serving on %s", StyleHighlight.Render(cfg.Server.Addr))
			return server.New(cfg, runner, c.Logger).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for the shared cache")

	return cmd
}

// serverCache picks Redis when an address is configured.
func (c *CLI) serverCache(ctx context.Context, redisAddr string) (cache.Cache, error) {
	if redisAddr == "" {
		return newCache(false)
	}
	rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: redisAddr, Prefix: appName + ":"})
	if err != nil {
		return nil, fmt.Errorf("connect redis %s: %w", redisAddr, err)
	}
	c.Logger.Info("using redis cache", "addr", redisAddr)
	return rc, nil
}

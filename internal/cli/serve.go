package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/reelkit/reelkit/internal/httpapi"
	"github.com/reelkit/reelkit/pkg/cache"
	"github.com/reelkit/reelkit/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		pluginDir string
		mongoURI  string
		mongoDB   string
		redisAddr string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API for validation and composition storage",
		Long: `Run the HTTP API for validation and composition storage.

By default compositions are stored on the local filesystem and verdicts
are cached in ~/.cache/reelkit/. Pass --mongo to store compositions in
MongoDB and --redis to cache verdicts and diagrams in Redis.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.serveStore(cmd.Context(), mongoURI, mongoDB)
			if err != nil {
				return err
			}
			backend, err := c.serveCache(cmd.Context(), redisAddr, noCache)
			if err != nil {
				return err
			}
			registries, err := c.newRegistries(pluginDir)
			if err != nil {
				return err
			}

			srv := httpapi.NewServer(httpapi.Options{
				Store:      st,
				Cache:      backend,
				Registries: registries,
				Logger:     c.Logger,
			})
			return srv.ListenAndServe(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8420", "listen address")
	cmd.Flags().StringVar(&pluginDir, "plugins", "", "plugin descriptor directory")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "MongoDB connection URI for composition storage")
	cmd.Flags().StringVar(&mongoDB, "mongo-db", appName, "MongoDB database name")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for verdict and diagram caching")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// serveStore picks the composition store backend.
func (c *CLI) serveStore(ctx context.Context, mongoURI, mongoDB string) (store.Store, error) {
	if mongoURI == "" {
		return newStore("")
	}
	c.Logger.Debug("connecting to mongodb", "database", mongoDB)
	return store.NewMongoStore(ctx, mongoURI, mongoDB)
}

// serveCache picks the cache backend. Cache failures degrade to the null
// cache rather than refusing to start.
func (c *CLI) serveCache(ctx context.Context, redisAddr string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		c.Logger.Debug("connecting to redis", "addr", redisAddr)
		return cache.NewRedisCache(ctx, redisAddr)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

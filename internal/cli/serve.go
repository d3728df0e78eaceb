package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/appgraph/internal/api"
	"github.com/matzehuels/appgraph/pkg/observability"
	"github.com/matzehuels/appgraph/pkg/pipeline"
	"github.com/matzehuels/appgraph/pkg/source"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts over HTTP",
		Long: `Serve layouts over HTTP.

Routes:
  GET  /health
  POST /layout?direction=TB|LR&ids=composite|raw   body: record array
  GET  /layout                                      lay out source.url
  POST /layouts                                     store a snapshot
  GET  /layouts, GET /layouts/{id}

The server stops gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.cfg.Server.Addr
			}
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	snapshots, err := c.cfg.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer snapshots.Close(context.Background())

	var src source.Source
	if c.cfg.Source.URL != "" {
		src, err = source.Open(c.cfg.Source.URL, source.Options{Retries: c.cfg.Source.Retries, Logger: logger})
		if err != nil {
			return err
		}
	}

	hooks := observability.NewLogHooks(logger)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	srv := api.New(api.Config{
		Runner: runner,
		Store:  snapshots,
		Source: src,
		Defaults: pipeline.Options{
			Direction:  c.cfg.Layout.Direction,
			IDStrategy: c.cfg.Layout.IDStrategy,
			CacheTTL:   c.cfg.Cache.TTL,
		},
		Logger: logger,
	})

	logger.Info("starting server", "addr", addr, "cache", c.cfg.Cache.Backend, "store", c.cfg.Store.Backend)
	return srv.ListenAndServe(ctx, addr)
}

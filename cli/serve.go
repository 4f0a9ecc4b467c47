package cli

import (
	"os/signal"
	"syscall"

	"compareaid/models"
	"compareaid/searchui"
	"compareaid/web"
	"compareaid/web/api"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the search page and the price API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if err := models.InitDB(cfg.DBPath); err != nil {
			return serr.Wrap(err, "failed to initialize database")
		}
		defer models.CloseDB()

		if _, err := models.SeedStores(); err != nil {
			return err
		}

		backend := api.NewBackend(api.NewResultCache(cfg.CacheSize, cfg.CacheTTL))
		searcher := searchui.NewClient(cfg.BackendURL, cfg.SearchTimeout)
		app, err := web.NewApp(cfg, backend, searcher)
		if err != nil {
			return err
		}
		srv := web.NewServer(cfg, app)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		g, gctx := errgroup.WithContext(ctx)
		if cfg.RefreshEnabled {
			g.Go(func() error {
				return models.RunRefreshWorker(gctx, models.NewStaticSource(), cfg.RefreshInterval,
					func(models.RefreshStats) { backend.Results().Purge() })
			})
		}

		// rweb has no graceful shutdown, so the server runs outside the group
		serverErr := make(chan error, 1)
		go func() {
			serverErr <- web.Run(srv, cfg.Address)
		}()

		select {
		case err := <-serverErr:
			stop()
			_ = g.Wait()
			return serr.Wrap(err, "server stopped")
		case <-gctx.Done():
			if ctx.Err() != nil {
				logger.Info("Shutting down")
			}
		}

		stop()
		return g.Wait()
	},
}

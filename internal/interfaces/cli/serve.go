package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/app"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/config"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/infrastructure/monitoring/logging"
	httpserver "github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/interfaces/http"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the inference API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			logger, err := opts.buildLogger(cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			application, err := app.Build(ctx, cfg, logger)
			if err != nil {
				return err
			}
			application.WarmUp(ctx)

			if opts.configPath != "" {
				config.Watch(opts.configPath, func(next *config.Config) {
					application.ApplyReloadable(next)
					logger.Info("configuration file reloaded; non-reloadable changes need a restart")
				})
			}

			server := httpserver.NewServer(cfg.Server, application.Handler, logger)
			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Start()
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-quit:
				logger.Info("shutdown signal received", logging.String("signal", sig.String()))
			}
			return server.Stop(context.Background())
		},
	}
}

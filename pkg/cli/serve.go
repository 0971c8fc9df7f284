package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/inquiry/pkg/cli/config"
	httpctrl "github.com/secmon-lab/inquiry/pkg/controller/http"
	"github.com/secmon-lab/inquiry/pkg/service/worker"
	"github.com/secmon-lab/inquiry/pkg/usecase"
	"github.com/secmon-lab/inquiry/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe(version string) *cli.Command {
	var addr string
	var cacheTTL time.Duration
	var warmupInterval time.Duration
	var searchTimeout time.Duration
	var resultRetention time.Duration
	var appCfg config.App
	var gatewayCfg config.Gateway
	var repoCfg config.Repository
	var storageCfg config.Storage
	var slackCfg config.Slack
	var sentryCfg config.Sentry

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("INQUIRY_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "filter-cache-ttl",
			Usage:       "How long resolved dropdown values are served from cache",
			Value:       usecase.DefaultFilterCacheTTL,
			Sources:     cli.EnvVars("INQUIRY_FILTER_CACHE_TTL"),
			Destination: &cacheTTL,
		},
		&cli.DurationFlag{
			Name:        "filter-warmup-interval",
			Usage:       "Interval of background dropdown refresh (0 disables)",
			Sources:     cli.EnvVars("INQUIRY_FILTER_WARMUP_INTERVAL"),
			Destination: &warmupInterval,
		},
		&cli.DurationFlag{
			Name:        "search-timeout",
			Usage:       "Upper bound of a search request (0 disables)",
			Value:       60 * time.Second,
			Sources:     cli.EnvVars("INQUIRY_SEARCH_TIMEOUT"),
			Destination: &searchTimeout,
		},
		&cli.DurationFlag{
			Name:        "result-retention",
			Usage:       "How long the latest search result of a session stays available for export",
			Value:       usecase.DefaultResultRetention,
			Sources:     cli.EnvVars("INQUIRY_RESULT_RETENTION"),
			Destination: &resultRetention,
		},
	}

	// Add shared config flags
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, gatewayCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, storageCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			flush, err := sentryCfg.Configure(version)
			if err != nil {
				return err
			}
			defer flush()

			schema, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load application config")
			}

			gw, err := gatewayCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure gateway")
			}

			// Initialize repository based on backend type
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			ucOpts := []usecase.Option{
				usecase.WithSchema(schema),
				usecase.WithCache(usecase.NewFilterCache(cacheTTL)),
				usecase.WithSearchRetention(resultRetention),
			}

			archive, err := storageCfg.Configure(ctx)
			if err != nil {
				return err
			}
			if archive != nil {
				defer archive.Close(context.Background())
				ucOpts = append(ucOpts, usecase.WithStorage(archive))
			}

			slackSvc, err := slackCfg.Configure()
			if err != nil {
				return err
			}
			if slackSvc != nil {
				ucOpts = append(ucOpts, usecase.WithSharer(slackSvc))
			}

			uc := usecase.New(gw, repo, ucOpts...)

			// Keep dropdown values warm so the screens open without a lookup
			var warmup *worker.FilterWarmupWorker
			if warmupInterval > 0 {
				warmup = worker.NewFilterWarmupWorker(uc.Filter, warmupInterval)
				if err := warmup.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start filter warmup worker")
				}
			}

			httpHandler := httpctrl.New(uc,
				httpctrl.WithSentry(sentryCfg.IsConfigured()),
				httpctrl.WithSearchTimeout(searchTimeout),
			)
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server",
					"addr", addr,
					"archive", uc.Export.ArchiveEnabled(),
					"share", uc.Export.ShareEnabled(),
				)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				// Stop the warmup worker first
				if warmup != nil {
					warmup.Stop()
				}

				// Create shutdown context with timeout
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				// Attempt graceful shutdown
				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}

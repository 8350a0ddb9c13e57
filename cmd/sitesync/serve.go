package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/brightlabs/sitesync"
	"github.com/brightlabs/sitesync/infrastructure/api"
	v1 "github.com/brightlabs/sitesync/infrastructure/api/v1"
	"github.com/brightlabs/sitesync/internal/config"
	"github.com/brightlabs/sitesync/internal/log"
)

func serveCmd() *cobra.Command {
	var (
		envFile string
		host    string
		port    int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP trigger server",
		Long: `Start the HTTP trigger server.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  HOST                     Server host to bind to (default: 0.0.0.0)
  PORT                     Server port to listen on (default: 8080)
  DATA_DIR                 Data directory (default: ~/.sitesync)
  DB_URL                   Database URL (default: sqlite:///{data_dir}/sitesync.db)
  LOG_LEVEL                Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT               Log format: pretty, json (default: pretty)

  OPENAI_API_KEY           Remote API key
  VECTOR_STORE_ID          Vector store to sync into
  ASSISTANT_ID             Assistant to link to the store (optional)
  OPENAI_BASE_URL          API base URL override

  SITE_BASE_URL            Site origin to scrape
  SITE_CONFIG_PATH         YAML site profile path
  LIVE_DOC_MARKER          Stable logical document marker (default: site-latest)
  CLEANUP_ENABLED          Delete stale live copies (default: true)

  SYNC_ENABLED             Enable periodic sync (default: false)
  SYNC_INTERVAL_SECONDS    Sync interval (default: 21600)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(envFile, host, port)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8080)")

	return cmd
}

func runServe(envFile, host string, port int) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	cfg = applyServeOverrides(cfg, host, port)

	logger := log.NewLogger(cfg)
	slogger := logger.Slog()

	slogger.Info("starting sitesync",
		slog.String("version", version),
		slog.String("addr", cfg.Addr()),
		slog.String("vector_store_id", cfg.VectorStoreID()),
		slog.Bool("periodic_sync", cfg.Scheduler().Enabled()),
	)

	client, err := sitesync.New(cfg, sitesync.WithLogger(slogger))
	if err != nil {
		return fmt.Errorf("create sitesync client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			slogger.Error("failed to close sitesync client", slog.Any("error", err))
		}
	}()

	server := api.NewServer(cfg.Addr(), slogger)
	syncRouter := v1.NewSyncRouter(client.Orchestrator(), client.Runs, slogger)
	server.Router().Mount("/api/v1", syncRouter.Routes())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		slogger.Info("shutting down server")
		cancel()
		if err := server.Shutdown(ctx); err != nil {
			slogger.Error("shutdown error", slog.Any("error", err))
		}
	}()

	if err := server.Start(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// applyServeOverrides applies command line flag overrides to the config.
func applyServeOverrides(cfg config.AppConfig, host string, port int) config.AppConfig {
	var opts []config.AppConfigOption

	if host != "" {
		opts = append(opts, config.WithHost(host))
	}
	if port != 0 {
		opts = append(opts, config.WithPort(port))
	}

	return cfg.Apply(opts...)
}

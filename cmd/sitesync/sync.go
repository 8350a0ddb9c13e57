package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/brightlabs/sitesync"
	"github.com/brightlabs/sitesync/internal/config"
)

func syncCmd() *cobra.Command {
	var (
		envFile      string
		artifactPath string
		noCleanup    bool
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run one sync pass and print the run report",
		Long: `Run one sync pass: ensure the artifact exists, retire prior live copies
from the vector store, upload the fresh copy, and wait for indexing.

Environment variables:
  OPENAI_API_KEY         Remote API key (required)
  VECTOR_STORE_ID        Vector store to sync into (required)
  ASSISTANT_ID           Assistant to link to the store (optional)
  OPENAI_BASE_URL        API base URL override
  SITE_BASE_URL          Site origin to scrape
  SITE_CONFIG_PATH       YAML site profile (overrides SITE_BASE_URL defaults)
  ARTIFACT_PATH          Explicit artifact path override
  EPHEMERAL_FS           Regenerate into a scratch dir (default: false)
  CLEANUP_ENABLED        Delete stale live copies (default: true)
  LIVE_DOC_MARKER        Stable logical document marker (default: site-latest)
  POLL_TIMEOUT_SECONDS   Indexing batch deadline (default: 150)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(envFile)
			if err != nil {
				return err
			}

			var opts []config.AppConfigOption
			if artifactPath != "" {
				opts = append(opts, config.WithArtifactPath(artifactPath))
			}
			if noCleanup {
				opts = append(opts, config.WithCleanupEnabled(false))
			}
			// One-shot runs never want the scheduler.
			opts = append(opts, config.WithSchedulerConfig(config.NewSchedulerConfig()))
			cfg = cfg.Apply(opts...)

			return runSync(cfg)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&artifactPath, "artifact", "", "Explicit artifact path override")
	cmd.Flags().BoolVar(&noCleanup, "no-cleanup", false, "Skip stale live-copy deletion")

	return cmd
}

func runSync(cfg config.AppConfig) error {
	client, err := sitesync.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, runErr := client.Sync(ctx)
	if report != nil {
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(out))
	}
	return runErr
}

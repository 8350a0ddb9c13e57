// Package main is the entry point for the sitesync CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/brightlabs/sitesync/internal/config"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sitesync",
		Short: "Keep a vector store in sync with a scraped site snapshot",
		Long: `Sitesync scrapes a site's listing pages into a single text artifact,
uploads it to a remote vector store, retires prior live copies, and waits
for the indexing batch to finish.`,
	}

	cmd.AddCommand(syncCmd())
	cmd.AddCommand(scrapeCmd())
	cmd.AddCommand(serveCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from .env file and environment variables.
func loadConfig(envFile string) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

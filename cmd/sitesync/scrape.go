package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/brightlabs/sitesync/domain/corpus"
	"github.com/brightlabs/sitesync/infrastructure/artifact"
	"github.com/brightlabs/sitesync/infrastructure/scrape"
	"github.com/brightlabs/sitesync/internal/config"
	"github.com/brightlabs/sitesync/internal/log"
)

func scrapeCmd() *cobra.Command {
	var (
		envFile   string
		baseURL   string
		outPath   string
		profile   string
		chunksDir string
	)

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape the site and write the artifact without uploading",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(envFile)
			if err != nil {
				return err
			}

			var opts []config.AppConfigOption
			if baseURL != "" {
				opts = append(opts, config.WithSiteBaseURL(baseURL))
			}
			if outPath != "" {
				opts = append(opts, config.WithArtifactPath(outPath))
			}
			if profile != "" {
				opts = append(opts, config.WithSiteConfigPath(profile))
			}
			cfg = cfg.Apply(opts...)

			return runScrape(cfg, chunksDir)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Site origin to scrape (overrides SITE_BASE_URL)")
	cmd.Flags().StringVar(&outPath, "out", "", "Artifact output path (overrides ARTIFACT_PATH)")
	cmd.Flags().StringVar(&profile, "site-config", "", "YAML site profile path")
	cmd.Flags().StringVar(&chunksDir, "chunks", "", "Also write overlapping passage chunks into this directory")

	return cmd
}

func runScrape(cfg config.AppConfig, chunksDir string) error {
	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	logger := log.NewLogger(cfg).Slog()

	var site scrape.Site
	if cfg.SiteConfigPath() != "" {
		loaded, err := scrape.LoadSite(cfg.SiteConfigPath())
		if err != nil {
			return err
		}
		site = loaded
	} else {
		site = scrape.DefaultSite(cfg.SiteBaseURL())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scraper := scrape.NewScraper(site, scrape.NewFetcher(), logger)
	result, err := scraper.Scrape(ctx)
	if err != nil {
		return err
	}

	art := scrape.RenderArtifact(result, cfg.LiveDocMarker())
	generator := artifact.GeneratorFunc(func(context.Context) (corpus.Artifact, error) {
		return art, nil
	})
	store := artifact.NewStore(
		cfg.ArtifactPath(), cfg.Ephemeral(), cfg.DataDir(), cfg.LiveDocMarker(),
		generator, logger,
	)

	path := store.ResolvePath()
	if err := store.Write(art, path); err != nil {
		return err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	fmt.Printf("wrote %s (%d bytes, %d items, %d notices)\n",
		abs, art.Len(), result.ItemTotal(), len(result.Notices))

	if chunksDir != "" {
		n, err := writeChunks(art, chunksDir, cfg.LiveDocMarker())
		if err != nil {
			return err
		}
		fmt.Printf("wrote %d chunks to %s\n", n, chunksDir)
	}
	return nil
}

// writeChunks splits the artifact into overlapping passages for the
// multi-document corpus build and writes one file per chunk.
func writeChunks(art corpus.Artifact, dir, marker string) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create chunks dir: %w", err)
	}
	chunks := corpus.ChunkText(string(art.Content()), corpus.DefaultChunkSize, corpus.DefaultChunkOverlap)
	for _, chunk := range chunks {
		name := fmt.Sprintf("%s-%03d.txt", marker, chunk.Index)
		if err := os.WriteFile(filepath.Join(dir, name), []byte(chunk.Text), 0o644); err != nil {
			return 0, fmt.Errorf("write chunk %s: %w", name, err)
		}
	}
	return len(chunks), nil
}

// Package sitesync keeps a remote vector store in sync with a scraped site
// snapshot.
//
// Each sync run scrapes the configured listing pages into a single normalized
// text artifact, retires prior live copies from the vector store, uploads the
// fresh copy, and waits for the indexing batch to finish.
//
// Basic usage:
//
//	cfg := config.NewAppConfig(
//	    config.WithAPIKey(os.Getenv("OPENAI_API_KEY")),
//	    config.WithVectorStoreID("vs_..."),
//	    config.WithSiteBaseURL("https://www.example.org"),
//	)
//	client, err := sitesync.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	report, err := client.Sync(ctx)
package sitesync

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/brightlabs/sitesync/application/service"
	"github.com/brightlabs/sitesync/domain/corpus"
	"github.com/brightlabs/sitesync/domain/run"
	"github.com/brightlabs/sitesync/infrastructure/artifact"
	"github.com/brightlabs/sitesync/infrastructure/persistence"
	"github.com/brightlabs/sitesync/infrastructure/scrape"
	"github.com/brightlabs/sitesync/infrastructure/vectorstore"
	"github.com/brightlabs/sitesync/internal/config"
	"github.com/brightlabs/sitesync/internal/database"
	"github.com/brightlabs/sitesync/internal/log"
)

// Client is the main entry point for the sitesync library. The periodic
// scheduler starts automatically when enabled in the config.
type Client struct {
	// Runs is the persisted run history.
	Runs *persistence.RunStore
	// Artifacts resolves and regenerates the on-disk artifact.
	Artifacts *artifact.Store

	orchestrator *service.Orchestrator
	scheduler    *service.Scheduler
	db           database.Database
	logger       *slog.Logger
	closed       atomic.Bool
}

// New creates a Client from the config and options.
func New(cfg config.AppConfig, opts ...Option) (*Client, error) {
	c := newClientConfig(cfg)
	for _, opt := range opts {
		opt(c)
	}

	logger := c.logger
	if logger == nil {
		logger = log.NewLogger(cfg).Slog()
	}

	if err := cfg.EnsureDataDir(); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	ctx := context.Background()
	db, err := database.New(ctx, databaseURL(cfg))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	runStore, err := persistence.NewRunStore(ctx, db)
	if err != nil {
		errClose := db.Close()
		if errClose != nil {
			return nil, fmt.Errorf("run store: %w (close: %v)", err, errClose)
		}
		return nil, fmt.Errorf("run store: %w", err)
	}

	site, err := loadSite(cfg)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	scraper := scrape.NewScraper(site, c.fetcher, logger)
	generator := artifact.GeneratorFunc(func(ctx context.Context) (corpus.Artifact, error) {
		result, err := scraper.Scrape(ctx)
		if err != nil {
			return corpus.Artifact{}, err
		}
		return scrape.RenderArtifact(result, cfg.LiveDocMarker()), nil
	})
	artifacts := artifact.NewStore(
		cfg.ArtifactPath(), cfg.Ephemeral(), cfg.DataDir(), cfg.LiveDocMarker(),
		generator, logger,
	)

	index := c.index
	if index == nil {
		index = vectorstore.New(cfg.APIKey(), cfg.APIBaseURL(), cfg.VectorStoreID(), logger)
	}

	orchestrator := service.NewOrchestrator(cfg, artifacts, index, runStore, logger)
	scheduler := service.NewScheduler(cfg.Scheduler(), orchestrator, logger)
	scheduler.Start(ctx)

	return &Client{
		Runs:         runStore,
		Artifacts:    artifacts,
		orchestrator: orchestrator,
		scheduler:    scheduler,
		db:           db,
		logger:       logger,
	}, nil
}

// Sync executes one sync run.
func (c *Client) Sync(ctx context.Context) (*run.Report, error) {
	return c.orchestrator.Run(ctx)
}

// Orchestrator returns the sync orchestrator for wiring into the HTTP API.
func (c *Client) Orchestrator() *service.Orchestrator {
	return c.orchestrator
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// Close stops the scheduler and releases the database. Safe to call twice.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	c.scheduler.Stop()
	return c.db.Close()
}

// databaseURL derives the database URL, defaulting to SQLite in the data dir.
func databaseURL(cfg config.AppConfig) string {
	if cfg.DBURL() != "" {
		return cfg.DBURL()
	}
	return "sqlite:///" + cfg.DataDir() + "/sitesync.db"
}

// loadSite loads the site profile: an explicit YAML profile when configured,
// otherwise the compiled-in default listings for the site base URL.
func loadSite(cfg config.AppConfig) (scrape.Site, error) {
	if cfg.SiteConfigPath() != "" {
		return scrape.LoadSite(cfg.SiteConfigPath())
	}
	return scrape.DefaultSite(cfg.SiteBaseURL()), nil
}

package sitesync

import (
	"log/slog"

	"github.com/brightlabs/sitesync/application/service"
	"github.com/brightlabs/sitesync/infrastructure/scrape"
	"github.com/brightlabs/sitesync/internal/config"
)

// clientConfig holds construction-time overrides for Client.
type clientConfig struct {
	cfg     config.AppConfig
	logger  *slog.Logger
	index   service.IndexClient
	fetcher *scrape.Fetcher
}

func newClientConfig(cfg config.AppConfig) *clientConfig {
	return &clientConfig{cfg: cfg}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithLogger sets the logger. Defaults to a logger built from the config's
// log level and format.
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) { c.logger = logger }
}

// WithIndexClient replaces the remote vector index client. Used by tests to
// run the pipeline against an in-memory index.
func WithIndexClient(index service.IndexClient) Option {
	return func(c *clientConfig) { c.index = index }
}

// WithFetcher replaces the page fetcher, e.g. to point scraping at a test
// server or change rate limits.
func WithFetcher(fetcher *scrape.Fetcher) Option {
	return func(c *clientConfig) { c.fetcher = fetcher }
}

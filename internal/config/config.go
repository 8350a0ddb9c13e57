// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Default configuration values.
const (
	DefaultHost          = "0.0.0.0"
	DefaultPort          = 8080
	DefaultLogLevel      = "INFO"
	DefaultListLimit     = 100
	DefaultPollInterval  = 2 * time.Second
	DefaultPollTimeout   = 150 * time.Second
	DefaultSyncInterval  = 6 * time.Hour
	DefaultLiveDocMarker = "site-latest"
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// SchedulerConfig configures the periodic sync loop.
type SchedulerConfig struct {
	enabled  bool
	interval time.Duration
}

// NewSchedulerConfig creates a SchedulerConfig with defaults (disabled).
func NewSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{interval: DefaultSyncInterval}
}

// Enabled reports whether periodic sync is enabled.
func (s SchedulerConfig) Enabled() bool { return s.enabled }

// Interval returns the periodic sync interval.
func (s SchedulerConfig) Interval() time.Duration { return s.interval }

// WithEnabled returns a copy with the enabled flag set.
func (s SchedulerConfig) WithEnabled(enabled bool) SchedulerConfig {
	s.enabled = enabled
	return s
}

// WithInterval returns a copy with the interval set.
func (s SchedulerConfig) WithInterval(d time.Duration) SchedulerConfig {
	if d > 0 {
		s.interval = d
	}
	return s
}

// AppConfig is the immutable application configuration. It is constructed
// once at process entry and passed into component constructors; components
// never read ambient environment state directly.
type AppConfig struct {
	host      string
	port      int
	dataDir   string
	dbURL     string
	logLevel  string
	logFormat LogFormat

	apiKey        string
	vectorStoreID string
	assistantID   string
	apiBaseURL    string

	artifactPath   string
	ephemeral      bool
	cleanupEnabled bool
	liveDocMarker  string
	listLimit      int
	pollInterval   time.Duration
	pollTimeout    time.Duration

	siteBaseURL    string
	siteConfigPath string

	scheduler SchedulerConfig
}

// NewAppConfig creates an AppConfig with defaults applied, then the given
// options on top.
func NewAppConfig(opts ...AppConfigOption) AppConfig {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	cfg := AppConfig{
		host:           DefaultHost,
		port:           DefaultPort,
		dataDir:        filepath.Join(home, ".sitesync"),
		logLevel:       DefaultLogLevel,
		logFormat:      LogFormatPretty,
		cleanupEnabled: true,
		liveDocMarker:  DefaultLiveDocMarker,
		listLimit:      DefaultListLimit,
		pollInterval:   DefaultPollInterval,
		pollTimeout:    DefaultPollTimeout,
		scheduler:      NewSchedulerConfig(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Apply returns a copy of the config with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Host returns the server host to bind to.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port to listen on.
func (c AppConfig) Port() int { return c.port }

// Addr returns the host:port address string.
func (c AppConfig) Addr() string { return fmt.Sprintf("%s:%d", c.host, c.port) }

// DataDir returns the persistent local data directory.
func (c AppConfig) DataDir() string { return c.dataDir }

// DBURL returns the database connection URL. Empty means sqlite in DataDir.
func (c AppConfig) DBURL() string { return c.dbURL }

// LogLevel returns the log verbosity level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log output format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// APIKey returns the vector store API credential.
func (c AppConfig) APIKey() string { return c.apiKey }

// VectorStoreID returns the remote vector store identifier.
func (c AppConfig) VectorStoreID() string { return c.vectorStoreID }

// AssistantID returns the optional downstream assistant identifier.
func (c AppConfig) AssistantID() string { return c.assistantID }

// APIBaseURL returns the alternate API base URL, if any.
func (c AppConfig) APIBaseURL() string { return c.apiBaseURL }

// ArtifactPath returns the explicit artifact path override, if any.
func (c AppConfig) ArtifactPath() string { return c.artifactPath }

// Ephemeral reports whether the process runs on an ephemeral filesystem,
// forcing the artifact into the system scratch directory.
func (c AppConfig) Ephemeral() bool { return c.ephemeral }

// CleanupEnabled reports whether stale live copies are deleted before upload.
func (c AppConfig) CleanupEnabled() bool { return c.cleanupEnabled }

// LiveDocMarker returns the stable marker token identifying the live artifact.
func (c AppConfig) LiveDocMarker() string { return c.liveDocMarker }

// ListLimit returns the bounded page size for listing indexed files.
func (c AppConfig) ListLimit() int { return c.listLimit }

// PollInterval returns the indexing batch poll interval.
func (c AppConfig) PollInterval() time.Duration { return c.pollInterval }

// PollTimeout returns the indexing batch poll deadline.
func (c AppConfig) PollTimeout() time.Duration { return c.pollTimeout }

// SiteBaseURL returns the scraped site origin.
func (c AppConfig) SiteBaseURL() string { return c.siteBaseURL }

// SiteConfigPath returns the optional YAML site profile path.
func (c AppConfig) SiteConfigPath() string { return c.siteConfigPath }

// Scheduler returns the periodic sync configuration.
func (c AppConfig) Scheduler() SchedulerConfig { return c.scheduler }

// EnsureDataDir creates the data directory if it does not exist.
func (c AppConfig) EnsureDataDir() error {
	if err := os.MkdirAll(c.dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return nil
}

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithDataDir sets the data directory.
func WithDataDir(dir string) AppConfigOption {
	return func(c *AppConfig) { c.dataDir = dir }
}

// WithDBURL sets the database connection URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithAPIKey sets the vector store API credential.
func WithAPIKey(key string) AppConfigOption {
	return func(c *AppConfig) { c.apiKey = key }
}

// WithVectorStoreID sets the vector store identifier.
func WithVectorStoreID(id string) AppConfigOption {
	return func(c *AppConfig) { c.vectorStoreID = id }
}

// WithAssistantID sets the downstream assistant identifier.
func WithAssistantID(id string) AppConfigOption {
	return func(c *AppConfig) { c.assistantID = id }
}

// WithAPIBaseURL sets the alternate API base URL.
func WithAPIBaseURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.apiBaseURL = url }
}

// WithArtifactPath sets the explicit artifact path override.
func WithArtifactPath(path string) AppConfigOption {
	return func(c *AppConfig) { c.artifactPath = path }
}

// WithEphemeral marks the filesystem as ephemeral.
func WithEphemeral(ephemeral bool) AppConfigOption {
	return func(c *AppConfig) { c.ephemeral = ephemeral }
}

// WithCleanupEnabled toggles stale copy cleanup.
func WithCleanupEnabled(enabled bool) AppConfigOption {
	return func(c *AppConfig) { c.cleanupEnabled = enabled }
}

// WithLiveDocMarker sets the live document marker token.
func WithLiveDocMarker(marker string) AppConfigOption {
	return func(c *AppConfig) {
		if marker != "" {
			c.liveDocMarker = marker
		}
	}
}

// WithListLimit sets the indexed file listing page size.
func WithListLimit(limit int) AppConfigOption {
	return func(c *AppConfig) {
		if limit > 0 {
			c.listLimit = limit
		}
	}
}

// WithPollInterval sets the batch poll interval.
func WithPollInterval(d time.Duration) AppConfigOption {
	return func(c *AppConfig) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// WithPollTimeout sets the batch poll deadline.
func WithPollTimeout(d time.Duration) AppConfigOption {
	return func(c *AppConfig) {
		if d > 0 {
			c.pollTimeout = d
		}
	}
}

// WithSiteBaseURL sets the scraped site origin.
func WithSiteBaseURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.siteBaseURL = url }
}

// WithSiteConfigPath sets the YAML site profile path.
func WithSiteConfigPath(path string) AppConfigOption {
	return func(c *AppConfig) { c.siteConfigPath = path }
}

// WithSchedulerConfig sets the periodic sync configuration.
func WithSchedulerConfig(sc SchedulerConfig) AppConfigOption {
	return func(c *AppConfig) { c.scheduler = sc }
}

package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration. Field names map to
// environment variables without a prefix so deployments can reuse the
// conventional OPENAI_API_KEY naming.
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the server port to listen on.
	// Env: PORT (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// DataDir is the persistent data directory.
	// Env: DATA_DIR
	// Default: ~/.sitesync
	DataDir string `envconfig:"DATA_DIR"`

	// DBURL is the run-history database URL.
	// Env: DB_URL
	// Default: sqlite:///{data_dir}/sitesync.db
	DBURL string `envconfig:"DB_URL"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// OpenAIAPIKey is the vector store API credential. Required for sync.
	// Env: OPENAI_API_KEY
	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY"`

	// VectorStoreID is the remote vector store identifier. Required for sync.
	// Env: VECTOR_STORE_ID
	VectorStoreID string `envconfig:"VECTOR_STORE_ID"`

	// AssistantID optionally links the vector store to an assistant.
	// Env: ASSISTANT_ID
	AssistantID string `envconfig:"ASSISTANT_ID"`

	// OpenAIBaseURL overrides the API base URL (used against mock servers).
	// Env: OPENAI_BASE_URL
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL"`

	// ArtifactPath overrides the resolved artifact location.
	// Env: ARTIFACT_PATH
	ArtifactPath string `envconfig:"ARTIFACT_PATH"`

	// EphemeralFS marks the filesystem as ephemeral; the artifact is then
	// regenerated into the scratch directory on every run.
	// Env: EPHEMERAL_FS (default: false)
	EphemeralFS bool `envconfig:"EPHEMERAL_FS" default:"false"`

	// CleanupEnabled controls stale live copy deletion before upload.
	// Env: CLEANUP_ENABLED (default: true)
	CleanupEnabled bool `envconfig:"CLEANUP_ENABLED" default:"true"`

	// LiveDocMarker is the stable token identifying the live artifact.
	// Env: LIVE_DOC_MARKER (default: site-latest)
	LiveDocMarker string `envconfig:"LIVE_DOC_MARKER"`

	// ListLimit bounds the indexed file listing page.
	// Env: LIST_LIMIT (default: 100)
	ListLimit int `envconfig:"LIST_LIMIT" default:"100"`

	// PollIntervalSeconds is the batch poll interval in seconds.
	// Env: POLL_INTERVAL_SECONDS (default: 2)
	PollIntervalSeconds float64 `envconfig:"POLL_INTERVAL_SECONDS" default:"2"`

	// PollTimeoutSeconds is the batch poll deadline in seconds.
	// Env: POLL_TIMEOUT_SECONDS (default: 150)
	PollTimeoutSeconds float64 `envconfig:"POLL_TIMEOUT_SECONDS" default:"150"`

	// SiteBaseURL is the scraped site origin.
	// Env: SITE_BASE_URL
	SiteBaseURL string `envconfig:"SITE_BASE_URL"`

	// SiteConfigPath points at a YAML site profile.
	// Env: SITE_CONFIG_PATH
	SiteConfigPath string `envconfig:"SITE_CONFIG_PATH"`

	// Scheduler configures the periodic sync loop.
	Scheduler SchedulerEnv `envconfig:"SYNC"`
}

// SchedulerEnv holds environment configuration for the periodic sync loop.
type SchedulerEnv struct {
	// Enabled controls whether periodic sync runs.
	// Env: SYNC_ENABLED (default: false)
	Enabled bool `envconfig:"ENABLED" default:"false"`

	// IntervalSeconds is the sync interval in seconds.
	// Env: SYNC_INTERVAL_SECONDS (default: 21600)
	IntervalSeconds float64 `envconfig:"INTERVAL_SECONDS" default:"21600"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	cfg := NewAppConfig()

	if e.Host != "" {
		cfg = applyOption(cfg, WithHost(e.Host))
	}
	if e.Port != 0 {
		cfg = applyOption(cfg, WithPort(e.Port))
	}
	if e.DataDir != "" {
		cfg = applyOption(cfg, WithDataDir(e.DataDir))
	}
	if e.DBURL != "" {
		cfg = applyOption(cfg, WithDBURL(e.DBURL))
	}
	if e.LogLevel != "" {
		cfg = applyOption(cfg, WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		cfg = applyOption(cfg, WithLogFormat(parseLogFormat(e.LogFormat)))
	}

	cfg = applyOption(cfg, WithAPIKey(e.OpenAIAPIKey))
	cfg = applyOption(cfg, WithVectorStoreID(e.VectorStoreID))
	cfg = applyOption(cfg, WithAssistantID(e.AssistantID))
	cfg = applyOption(cfg, WithAPIBaseURL(e.OpenAIBaseURL))
	cfg = applyOption(cfg, WithArtifactPath(e.ArtifactPath))
	cfg = applyOption(cfg, WithEphemeral(e.EphemeralFS))
	cfg = applyOption(cfg, WithCleanupEnabled(e.CleanupEnabled))
	cfg = applyOption(cfg, WithLiveDocMarker(e.LiveDocMarker))
	cfg = applyOption(cfg, WithListLimit(e.ListLimit))
	cfg = applyOption(cfg, WithPollInterval(secondsToDuration(e.PollIntervalSeconds)))
	cfg = applyOption(cfg, WithPollTimeout(secondsToDuration(e.PollTimeoutSeconds)))
	cfg = applyOption(cfg, WithSiteBaseURL(e.SiteBaseURL))
	cfg = applyOption(cfg, WithSiteConfigPath(e.SiteConfigPath))
	cfg = applyOption(cfg, WithSchedulerConfig(e.Scheduler.ToSchedulerConfig()))

	return cfg
}

// ToSchedulerConfig converts SchedulerEnv to SchedulerConfig.
func (s SchedulerEnv) ToSchedulerConfig() SchedulerConfig {
	return NewSchedulerConfig().
		WithEnabled(s.Enabled).
		WithInterval(secondsToDuration(s.IntervalSeconds))
}

// applyOption applies an option to the config.
func applyOption(cfg AppConfig, opt AppConfigOption) AppConfig {
	opt(&cfg)
	return cfg
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// parseLogFormat parses a log format string.
func parseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}

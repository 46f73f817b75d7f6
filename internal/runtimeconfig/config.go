package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUploadLimitInvalid indicates a non-positive upload size limit.
var ErrUploadLimitInvalid = errors.New("microsite config: builder max upload bytes must be positive")

// ErrProgressStepInvalid keeps the simulated progress within 1..90.
var ErrProgressStepInvalid = errors.New("microsite config: builder progress step must be between 1 and 90")
var ErrPublishBaseURLRequired = errors.New("microsite config: publish base url is required")
var ErrSlugLengthInvalid = errors.New("microsite config: publish max slug length must be positive")
var ErrStorageProviderUnknown = errors.New("microsite config: storage provider is invalid")
var ErrStorageDriverUnknown = errors.New("microsite config: storage driver is invalid")
var ErrStorageDSNRequired = errors.New("microsite config: storage dsn is required for the bun provider")
var ErrMediaProviderUnknown = errors.New("microsite config: media provider is invalid")
var ErrMediaBucketRequired = errors.New("microsite config: media bucket is required for the gcs provider")
var ErrLoggingProviderRequired = errors.New("microsite config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("microsite config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("microsite config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("microsite config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the microsite module.
// Fields use simple types so host applications can load them from any source.
type Config struct {
	Builder  BuilderConfig
	Publish  PublishConfig
	Storage  StorageConfig
	Cache    CacheConfig
	Media    MediaConfig
	Markdown MarkdownConfig
	Workflow WorkflowConfig
	Commands CommandsConfig
	Features Features
	Logging  LoggingConfig
}

// BuilderConfig tunes the builder shell and its image panel.
type BuilderConfig struct {
	MaxUploadBytes     int64
	ProgressInterval   time.Duration
	ProgressStep       int
	ProgressResetDelay time.Duration
}

// PublishConfig captures slug and URL rules for the publish workflow.
// Endpoint is the publishing API; when empty pages are published into process
// memory under BaseURL.
type PublishConfig struct {
	BaseURL       string
	Endpoint      string
	Token         string
	MaxSlugLength int
	ReservedSlugs []string
	Timeout       time.Duration
}

// StorageConfig selects the document persistence backend.
type StorageConfig struct {
	Provider string
	Driver   string
	DSN      string
}

// CacheConfig captures cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// MediaConfig selects where uploaded images are stored.
type MediaConfig struct {
	Provider  string
	Bucket    string
	Prefix    string
	CDNDomain string
}

// MarkdownConfig mirrors interfaces.MarkdownOptions.
type MarkdownConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// WorkflowConfig lets hosts replace the website lifecycle.
type WorkflowConfig struct {
	Definitions []WorkflowDefinitionConfig
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled bool
	Timeout time.Duration
}

// Features toggles module functionality.
type Features struct {
	Markdown     bool
	SchemaChecks bool
	Logger       bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the defaults used when the host supplies nothing.
func DefaultConfig() Config {
	return Config{
		Builder: BuilderConfig{
			MaxUploadBytes:     5 * 1024 * 1024,
			ProgressInterval:   200 * time.Millisecond,
			ProgressStep:       10,
			ProgressResetDelay: time.Second,
		},
		Publish: PublishConfig{
			BaseURL:       "https://example.com",
			MaxSlugLength: 50,
			ReservedSlugs: []string{"www", "api", "mg", "mail", "cdn", "static", "assets", "admin"},
		},
		Storage: StorageConfig{
			Provider: "memory",
			Driver:   "sqlite",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Media: MediaConfig{
			Provider: "memory",
			Prefix:   "uploads",
		},
		Markdown: MarkdownConfig{
			Sanitize: true,
		},
		Features: Features{
			Markdown: true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Builder.MaxUploadBytes <= 0 {
		return ErrUploadLimitInvalid
	}
	if cfg.Builder.ProgressStep < 1 || cfg.Builder.ProgressStep > 90 {
		return fmt.Errorf("%w: %d", ErrProgressStepInvalid, cfg.Builder.ProgressStep)
	}
	if strings.TrimSpace(cfg.Publish.BaseURL) == "" {
		return ErrPublishBaseURLRequired
	}
	if cfg.Publish.MaxSlugLength <= 0 {
		return ErrSlugLengthInvalid
	}
	switch normalizeProvider(cfg.Storage.Provider) {
	case "", "memory":
	case "bun":
		switch normalizeProvider(cfg.Storage.Driver) {
		case "sqlite", "postgres":
		default:
			return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, cfg.Storage.Driver)
		}
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}
	switch normalizeProvider(cfg.Media.Provider) {
	case "", "memory":
	case "gcs":
		if strings.TrimSpace(cfg.Media.Bucket) == "" {
			return ErrMediaBucketRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrMediaProviderUnknown, cfg.Media.Provider)
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(provider, format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(provider, format string) bool {
	format = strings.ToLower(format)
	if provider == "console" {
		return format == "plain" || format == "color"
	}
	switch format {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}

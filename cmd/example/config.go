package main

import (
	"os"
	"time"

	"github.com/goliatone/go-microsite"
	"gopkg.in/yaml.v3"
)

type fileConfig struct {
	Builder struct {
		MaxUploadBytes     int64         `yaml:"max_upload_bytes"`
		ProgressInterval   time.Duration `yaml:"progress_interval"`
		ProgressStep       int           `yaml:"progress_step"`
		ProgressResetDelay time.Duration `yaml:"progress_reset_delay"`
	} `yaml:"builder"`
	Publish struct {
		BaseURL       string   `yaml:"base_url"`
		Endpoint      string   `yaml:"endpoint"`
		Token         string   `yaml:"token"`
		MaxSlugLength int      `yaml:"max_slug_length"`
		ReservedSlugs []string `yaml:"reserved_slugs"`
	} `yaml:"publish"`
	Storage struct {
		Provider string `yaml:"provider"`
		Driver   string `yaml:"driver"`
		DSN      string `yaml:"dsn"`
	} `yaml:"storage"`
	Cache *struct {
		Enabled    bool          `yaml:"enabled"`
		DefaultTTL time.Duration `yaml:"default_ttl"`
	} `yaml:"cache"`
	Media struct {
		Provider  string `yaml:"provider"`
		Bucket    string `yaml:"bucket"`
		Prefix    string `yaml:"prefix"`
		CDNDomain string `yaml:"cdn_domain"`
	} `yaml:"media"`
	Logging struct {
		Enabled   bool     `yaml:"enabled"`
		Provider  string   `yaml:"provider"`
		Level     string   `yaml:"level"`
		Format    string   `yaml:"format"`
		AddSource bool     `yaml:"add_source"`
		Focus     []string `yaml:"focus"`
	} `yaml:"logging"`
	Commands struct {
		Enabled bool          `yaml:"enabled"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"commands"`
}

// loadConfig overlays the optional YAML file onto the defaults. Zero values
// keep the default.
func loadConfig(path string) (microsite.Config, error) {
	cfg := microsite.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	var file fileConfig
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return cfg, err
	}

	if file.Builder.MaxUploadBytes > 0 {
		cfg.Builder.MaxUploadBytes = file.Builder.MaxUploadBytes
	}
	if file.Builder.ProgressInterval > 0 {
		cfg.Builder.ProgressInterval = file.Builder.ProgressInterval
	}
	if file.Builder.ProgressStep > 0 {
		cfg.Builder.ProgressStep = file.Builder.ProgressStep
	}
	if file.Builder.ProgressResetDelay > 0 {
		cfg.Builder.ProgressResetDelay = file.Builder.ProgressResetDelay
	}

	setString(&cfg.Publish.BaseURL, file.Publish.BaseURL)
	setString(&cfg.Publish.Endpoint, file.Publish.Endpoint)
	setString(&cfg.Publish.Token, file.Publish.Token)
	if file.Publish.MaxSlugLength > 0 {
		cfg.Publish.MaxSlugLength = file.Publish.MaxSlugLength
	}
	if len(file.Publish.ReservedSlugs) > 0 {
		cfg.Publish.ReservedSlugs = file.Publish.ReservedSlugs
	}

	setString(&cfg.Storage.Provider, file.Storage.Provider)
	setString(&cfg.Storage.Driver, file.Storage.Driver)
	setString(&cfg.Storage.DSN, file.Storage.DSN)
	if file.Cache != nil {
		cfg.Cache.Enabled = file.Cache.Enabled
		if file.Cache.DefaultTTL > 0 {
			cfg.Cache.DefaultTTL = file.Cache.DefaultTTL
		}
	}

	setString(&cfg.Media.Provider, file.Media.Provider)
	setString(&cfg.Media.Bucket, file.Media.Bucket)
	setString(&cfg.Media.Prefix, file.Media.Prefix)
	setString(&cfg.Media.CDNDomain, file.Media.CDNDomain)

	if file.Logging.Enabled {
		cfg.Features.Logger = true
	}
	setString(&cfg.Logging.Provider, file.Logging.Provider)
	setString(&cfg.Logging.Level, file.Logging.Level)
	setString(&cfg.Logging.Format, file.Logging.Format)
	cfg.Logging.AddSource = cfg.Logging.AddSource || file.Logging.AddSource
	if len(file.Logging.Focus) > 0 {
		cfg.Logging.Focus = file.Logging.Focus
	}

	cfg.Commands.Enabled = cfg.Commands.Enabled || file.Commands.Enabled
	if file.Commands.Timeout > 0 {
		cfg.Commands.Timeout = file.Commands.Timeout
	}
	return cfg, cfg.Validate()
}

func setString(target *string, value string) {
	if value != "" {
		*target = value
	}
}

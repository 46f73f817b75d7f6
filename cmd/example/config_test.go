package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigOverlaysYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "microsite.yaml")
	body := `
publish:
  base_url: https://sites.example.com
  reserved_slugs: [admin, www]
storage:
  provider: bun
  driver: sqlite
  dsn: "file:example?mode=memory&cache=shared"
cache:
  enabled: false
logging:
  enabled: true
  provider: gologger
  level: debug
builder:
  progress_interval: 50ms
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Publish.BaseURL != "https://sites.example.com" || len(cfg.Publish.ReservedSlugs) != 2 {
		t.Fatalf("unexpected publish config %+v", cfg.Publish)
	}
	if cfg.Storage.Provider != "bun" || cfg.Cache.Enabled {
		t.Fatalf("unexpected storage config %+v / %+v", cfg.Storage, cfg.Cache)
	}
	if !cfg.Features.Logger || cfg.Logging.Provider != "gologger" {
		t.Fatalf("unexpected logging config %+v", cfg.Logging)
	}
	if cfg.Builder.ProgressInterval != 50*time.Millisecond || cfg.Builder.ProgressStep != 10 {
		t.Fatalf("unexpected builder config %+v", cfg.Builder)
	}
}

func TestLoadConfigWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Storage.Provider != "memory" {
		t.Fatalf("expected memory storage, got %s", cfg.Storage.Provider)
	}
}

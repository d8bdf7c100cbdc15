package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Feed.Count != 10 || cfg.Feed.Backend != BackendProxy {
		t.Errorf("expected defaults, got %+v", cfg.Feed)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
feed:
  backend: direct
  timeout: 5s
pipeline:
  concurrency: 1
ui:
  regions: [GB, IN]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Feed.Backend != BackendDirect {
		t.Errorf("expected direct backend, got %q", cfg.Feed.Backend)
	}
	if cfg.Feed.Timeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %s", cfg.Feed.Timeout)
	}
	if cfg.Feed.Count != 10 {
		t.Errorf("count should keep default, got %d", cfg.Feed.Count)
	}
	if cfg.Pipeline.Concurrency != 1 {
		t.Errorf("expected concurrency 1, got %d", cfg.Pipeline.Concurrency)
	}
	if len(cfg.UI.Regions) != 2 || cfg.UI.Regions[1] != "IN" {
		t.Errorf("unexpected regions %v", cfg.UI.Regions)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("feed: [unterminated"), 0644)

	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := DefaultConfig()
	cfg.UI.Layout = LayoutCompact
	cfg.Feed.Timeout = 42 * time.Second

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.UI.Layout != LayoutCompact || loaded.Feed.Timeout != 42*time.Second {
		t.Errorf("round trip lost settings: %+v", loaded)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("HEADLINES_BACKEND", "DIRECT")
	t.Setenv("HEADLINES_NEWS_URL", "http://localhost:9999/")
	t.Setenv("HEADLINES_CONCURRENCY", "8")
	t.Setenv("HEADLINES_DB_DRIVER", "postgres")
	t.Setenv("HEADLINES_DB_DSN", "postgres://u@localhost/headlines")
	t.Setenv("HEADLINES_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	if cfg.Feed.Backend != BackendDirect {
		t.Errorf("expected direct, got %q", cfg.Feed.Backend)
	}
	if cfg.Feed.NewsURL != "http://localhost:9999" {
		t.Errorf("trailing slash should be trimmed, got %q", cfg.Feed.NewsURL)
	}
	if cfg.Pipeline.Concurrency != 8 {
		t.Errorf("expected concurrency 8, got %d", cfg.Pipeline.Concurrency)
	}
	if cfg.Storage.Driver != "postgres" || cfg.DatabaseDSN() != "postgres://u@localhost/headlines" {
		t.Errorf("unexpected storage %+v", cfg.Storage)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected debug, got %q", cfg.Log.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("env config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"backend", func(c *Config) { c.Feed.Backend = "carrier-pigeon" }, "feed.backend"},
		{"count", func(c *Config) { c.Feed.Count = 0 }, "feed.count"},
		{"timeout", func(c *Config) { c.Feed.Timeout = 0 }, "feed.timeout"},
		{"concurrency", func(c *Config) { c.Pipeline.Concurrency = 0 }, "pipeline.concurrency"},
		{"driver", func(c *Config) { c.Storage.Driver = "mysql" }, "storage.driver"},
		{"postgres dsn", func(c *Config) { c.Storage.Driver = "postgres" }, "storage.dsn"},
		{"layout", func(c *Config) { c.UI.Layout = "masonry" }, "ui.layout"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestDefaultPaths(t *testing.T) {
	cfg := DefaultConfig()
	if !strings.HasSuffix(cfg.DatabaseDSN(), filepath.Join(".headlines", "headlines.db")) {
		t.Errorf("unexpected default DSN %q", cfg.DatabaseDSN())
	}
	if !strings.HasSuffix(cfg.LogDir(), filepath.Join(".headlines", "logs")) {
		t.Errorf("unexpected default log dir %q", cfg.LogDir())
	}
}

// Package config loads Headlines settings from ~/.headlines/config.yaml,
// with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Backends for the news fetcher.
const (
	BackendProxy  = "proxy"  // RSS-to-JSON proxy
	BackendDirect = "direct" // news source RSS parsed locally
)

// Layouts for the news views.
const (
	LayoutGrid    = "grid"
	LayoutList    = "list"
	LayoutCompact = "compact"
)

// Config is the persistent application configuration
type Config struct {
	Feed     FeedConfig     `yaml:"feed"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Storage  StorageConfig  `yaml:"storage"`
	UI       UIConfig       `yaml:"ui"`
	Log      LogConfig      `yaml:"log"`
}

// FeedConfig describes where articles come from.
type FeedConfig struct {
	Backend   string        `yaml:"backend"`    // "proxy" or "direct"
	ProxyURL  string        `yaml:"proxy_url"`  // RSS-to-JSON endpoint
	NewsURL   string        `yaml:"news_url"`   // news source base, without trailing slash
	Count     int           `yaml:"count"`      // items requested per pair
	Timeout   time.Duration `yaml:"timeout"`    // per-request timeout
	RateLimit float64       `yaml:"rate_limit"` // requests per second; 0 disables pacing
	UserAgent string        `yaml:"user_agent"`
}

// PipelineConfig controls the fan-out across topic/region pairs.
type PipelineConfig struct {
	Concurrency int `yaml:"concurrency"` // 1 fetches pairs one at a time
}

// StorageConfig selects the bookmark storage backend.
type StorageConfig struct {
	Driver string `yaml:"driver"` // "sqlite" or "postgres"
	DSN    string `yaml:"dsn"`    // empty means ~/.headlines/headlines.db
}

// UIConfig holds UI preferences
type UIConfig struct {
	Layout  string   `yaml:"layout"`  // "grid", "list" or "compact"
	Regions []string `yaml:"regions"` // region codes selected at startup
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"` // empty means ~/.headlines/logs
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Feed: FeedConfig{
			Backend:   BackendProxy,
			ProxyURL:  "https://api.rss2json.com/v1/api.json",
			NewsURL:   "https://news.google.com",
			Count:     10,
			Timeout:   15 * time.Second,
			RateLimit: 2,
			UserAgent: "Headlines/1.0",
		},
		Pipeline: PipelineConfig{
			Concurrency: 4,
		},
		Storage: StorageConfig{
			Driver: "sqlite",
		},
		UI: UIConfig{
			Layout:  LayoutGrid,
			Regions: []string{"US"},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DataDir returns ~/.headlines.
func DataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".headlines")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(DataDir(), "config.yaml")
}

// Load reads config from path, or returns defaults if the file doesn't exist.
// Fields missing from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes config to path
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	return os.WriteFile(path, data, 0600) // DSN may hold credentials
}

// ApplyEnv overrides settings from HEADLINES_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("HEADLINES_BACKEND"); v != "" {
		c.Feed.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("HEADLINES_PROXY_URL"); v != "" {
		c.Feed.ProxyURL = v
	}
	if v := os.Getenv("HEADLINES_NEWS_URL"); v != "" {
		c.Feed.NewsURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("HEADLINES_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Pipeline.Concurrency = n
		}
	}
	if v := os.Getenv("HEADLINES_DB_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv("HEADLINES_DB_DSN"); v != "" {
		c.Storage.DSN = v
	}
	if v := os.Getenv("HEADLINES_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Feed.Backend {
	case BackendProxy, BackendDirect:
	default:
		return fmt.Errorf("feed.backend: unknown backend %q", c.Feed.Backend)
	}
	if c.Feed.Backend == BackendProxy && c.Feed.ProxyURL == "" {
		return errors.New("feed.proxy_url is required for the proxy backend")
	}
	if c.Feed.NewsURL == "" {
		return errors.New("feed.news_url is required")
	}
	if c.Feed.Count < 1 {
		return fmt.Errorf("feed.count must be positive, got %d", c.Feed.Count)
	}
	if c.Feed.Timeout <= 0 {
		return fmt.Errorf("feed.timeout must be positive, got %s", c.Feed.Timeout)
	}
	if c.Feed.RateLimit < 0 {
		return fmt.Errorf("feed.rate_limit must not be negative, got %v", c.Feed.RateLimit)
	}
	if c.Pipeline.Concurrency < 1 {
		return fmt.Errorf("pipeline.concurrency must be at least 1, got %d", c.Pipeline.Concurrency)
	}
	switch c.Storage.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("storage.driver: unknown driver %q", c.Storage.Driver)
	}
	if c.Storage.Driver == "postgres" && c.Storage.DSN == "" {
		return errors.New("storage.dsn is required for postgres")
	}
	switch c.UI.Layout {
	case LayoutGrid, LayoutList, LayoutCompact:
	default:
		return fmt.Errorf("ui.layout: unknown layout %q", c.UI.Layout)
	}
	return nil
}

// DatabaseDSN returns the configured DSN, defaulting to the SQLite file in DataDir.
func (c *Config) DatabaseDSN() string {
	if c.Storage.DSN != "" {
		return c.Storage.DSN
	}
	return filepath.Join(DataDir(), "headlines.db")
}

// LogDir returns the configured log directory, defaulting to DataDir/logs.
func (c *Config) LogDir() string {
	if c.Log.Dir != "" {
		return c.Log.Dir
	}
	return filepath.Join(DataDir(), "logs")
}

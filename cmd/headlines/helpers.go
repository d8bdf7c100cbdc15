package main

import (
	"fmt"
	"os"
	"time"

	"github.com/abelbrown/headlines/internal/aggregate"
	"github.com/abelbrown/headlines/internal/config"
	"github.com/abelbrown/headlines/internal/fetch"
	"github.com/abelbrown/headlines/internal/store"
)

// loadConfig reads the config file, applies env overrides and validates.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openStore opens the bookmark store, creating the data directory for the
// default SQLite file.
func openStore(cfg *config.Config) (*store.Store, error) {
	if cfg.Storage.DSN == "" {
		if err := os.MkdirAll(config.DataDir(), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	st, err := store.Open(cfg.Storage.Driver, cfg.DatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open bookmark store: %w", err)
	}
	return st, nil
}

// newPipeline builds the fetcher for the configured backend and wraps it.
func newPipeline(cfg *config.Config) (*aggregate.Pipeline, error) {
	f, err := fetch.New(cfg.Feed)
	if err != nil {
		return nil, err
	}
	// Each pair may wait on the rate limiter before its request starts.
	pairTimeout := 2 * cfg.Feed.Timeout
	if pairTimeout <= 0 {
		pairTimeout = 30 * time.Second
	}
	return aggregate.New(f, cfg.Pipeline.Concurrency, pairTimeout), nil
}

// fail prints err to stderr and returns exit code 1.
func fail(err error) int {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	return 1
}

// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/dwkim-lab/homepick/internal/api"
	"github.com/dwkim-lab/homepick/internal/config"
	"github.com/dwkim-lab/homepick/internal/database"
	"github.com/dwkim-lab/homepick/internal/engine"
	"github.com/dwkim-lab/homepick/internal/filter"
	"github.com/dwkim-lab/homepick/internal/logging"
	"github.com/dwkim-lab/homepick/internal/metrics"
	"github.com/dwkim-lab/homepick/internal/policy"
	"github.com/dwkim-lab/homepick/internal/scoring"
	"github.com/dwkim-lab/homepick/internal/supervisor"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Timestamp: true,
	})

	logging.Info().
		Str("version", version).
		Str("commit", commit).
		Str("addr", cfg.Server.Addr()).
		Str("catalog_provider", cfg.Catalog.Provider).
		Msg("Starting HomePick")
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
	logging.Info().Msg("Shutdown complete")
}

func run(ctx context.Context, cfg *config.Config) error {
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})

	catalog, closeCatalog, err := buildCatalog(ctx, cfg, tree)
	if err != nil {
		return err
	}
	defer closeCatalog()

	registry, cleanup, err := buildRegistry(cfg, tree)
	if err != nil {
		return err
	}
	defer cleanup()

	eng, err := buildEngine(cfg, catalog, registry)
	if err != nil {
		return err
	}

	router := api.NewRouter(api.NewHandler(eng, registry), api.RouterConfig{
		JWTSecret:      cfg.Security.JWTSecret,
		RateLimitRPS:   cfg.Security.RateLimitRPS,
		RateLimitBurst: cfg.Security.RateLimitBurst,
	})
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	tree.AddAPIService(supervisor.NewHTTPService(server, cfg.Server.ShutdownTimeout))
	tree.AddBackgroundService(&uptimeService{start: time.Now()})

	err = tree.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// buildCatalog selects the product source and registers its refresher
// with the supervisor when snapshot reloading is enabled.
func buildCatalog(ctx context.Context, cfg *config.Config, tree *supervisor.Tree) (engine.Catalog, func(), error) {
	noop := func() {}

	switch cfg.Catalog.Provider {
	case "memory":
		provider, err := database.LoadSeed(cfg.Catalog.SeedPath)
		if err != nil {
			return nil, nil, fmt.Errorf("loading seed catalog: %w", err)
		}
		logging.Info().Int("products", provider.Len()).Msg("Seed catalog loaded")
		return provider, noop, nil

	case "duckdb":
		provider, err := database.OpenDuckDB(ctx, database.DuckDBConfig{
			Path:         cfg.Catalog.DuckDBPath,
			Table:        cfg.Catalog.DuckDBTable,
			Threads:      cfg.Catalog.Threads,
			MaxMemory:    cfg.Catalog.MaxMemory,
			QueryTimeout: cfg.Catalog.QueryTimeout,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("opening duckdb catalog: %w", err)
		}
		if cfg.Catalog.RefreshInterval > 0 {
			tree.AddBackgroundService(database.NewRefresher(provider, cfg.Catalog.RefreshInterval))
		}
		closer := func() {
			if err := provider.Close(); err != nil {
				logging.Warn().Err(err).Msg("Closing duckdb catalog")
			}
		}
		return database.NewBreaker("duckdb", provider), closer, nil

	default:
		return nil, nil, fmt.Errorf("unknown catalog provider %q", cfg.Catalog.Provider)
	}
}

// buildRegistry assembles the policy resolution stack: files first,
// BadgerDB for persisted overrides, and the invalidation bus.
func buildRegistry(cfg *config.Config, tree *supervisor.Tree) (*policy.Registry, func(), error) {
	files := policy.NewFileStore(cfg.Policy.Dir)

	var store *policy.BadgerStore
	var db *badger.DB
	if cfg.Policy.BadgerPath != "" {
		var err error
		db, err = badger.Open(badger.DefaultOptions(cfg.Policy.BadgerPath).WithLogger(nil))
		if err != nil {
			return nil, nil, fmt.Errorf("opening badger store: %w", err)
		}
		store = policy.NewBadgerStore(db)
	}

	bus := policy.NewBus()
	registry := policy.NewRegistry(files, store, bus)
	tree.AddBackgroundService(policy.NewInvalidationSubscriber(bus, registry))

	cleanup := func() {
		if err := bus.Close(); err != nil {
			logging.Warn().Err(err).Msg("Closing policy bus")
		}
		if db != nil {
			if err := db.Close(); err != nil {
				logging.Warn().Err(err).Msg("Closing badger store")
			}
		}
	}
	return registry, cleanup, nil
}

// buildEngine loads the optional rule-table overrides and wires the
// recommendation pipeline.
func buildEngine(cfg *config.Config, catalog engine.Catalog, registry *policy.Registry) (*engine.Engine, error) {
	var table *filter.Table
	if cfg.Policy.FilterPath != "" {
		var err error
		table, err = filter.LoadTable(cfg.Policy.FilterPath)
		if err != nil {
			return nil, fmt.Errorf("loading hard-filter table: %w", err)
		}
	}

	var rules *scoring.Rules
	if cfg.Policy.RulesPath != "" {
		var err error
		rules, err = scoring.LoadRules(cfg.Policy.RulesPath)
		if err != nil {
			return nil, fmt.Errorf("loading playbook rules: %w", err)
		}
	}

	return engine.New(catalog, registry, filter.New(table), scoring.NewPlaybookScorer(rules)), nil
}

// uptimeService keeps the uptime gauge current.
type uptimeService struct {
	start time.Time
}

func (u *uptimeService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			metrics.AppUptime.Set(time.Since(u.start).Seconds())
		}
	}
}

func (u *uptimeService) String() string {
	return "uptime-reporter"
}

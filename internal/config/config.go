// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

// Package config loads the service configuration with layered sources:
// built-in defaults, an optional YAML file, then environment variables.
package config

import (
	"fmt"
	"time"
)

// Config is the root service configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Logging  LoggingConfig  `koanf:"logging"`
	Catalog  CatalogConfig  `koanf:"catalog"`
	Policy   PolicyConfig   `koanf:"policy"`
	Security SecurityConfig `koanf:"security"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LoggingConfig mirrors internal/logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// CatalogConfig selects and tunes the catalog provider.
type CatalogConfig struct {
	// Provider is "memory" or "duckdb".
	Provider string `koanf:"provider"`

	// SeedPath is the JSON product file backing the memory provider.
	SeedPath string `koanf:"seed_path"`

	// DuckDB settings, used when Provider is "duckdb".
	DuckDBPath   string        `koanf:"duckdb_path"`
	DuckDBTable  string        `koanf:"duckdb_table"`
	MaxMemory    string        `koanf:"max_memory"`
	Threads      int           `koanf:"threads"`
	QueryTimeout time.Duration `koanf:"query_timeout"`

	// RefreshInterval is the snapshot reload cadence. Zero disables the
	// background refresher.
	RefreshInterval time.Duration `koanf:"refresh_interval"`
}

// PolicyConfig locates the scoring policy stores.
type PolicyConfig struct {
	// Dir holds taste_{id:03d}.json and taste_scoring_logics.json.
	Dir string `koanf:"dir"`

	// BadgerPath is the persisted-override store. Empty disables
	// persistence; saved overrides then live in files only.
	BadgerPath string `koanf:"badger_path"`

	// RulesPath optionally overrides the built-in playbook rule tables.
	RulesPath string `koanf:"rules_path"`

	// FilterPath optionally overrides the built-in hard-filter table.
	FilterPath string `koanf:"filter_path"`
}

// SecurityConfig holds API protection settings.
type SecurityConfig struct {
	// JWTSecret signs policy-admin bearer tokens. Empty leaves the
	// policy PUT endpoint unauthenticated (development mode).
	JWTSecret string `koanf:"jwt_secret"`

	// RateLimitRPS is the per-client request rate. Zero disables
	// rate limiting.
	RateLimitRPS float64 `koanf:"rate_limit_rps"`

	// RateLimitBurst is the per-client burst allowance.
	RateLimitBurst int `koanf:"rate_limit_burst"`
}

// Addr returns the listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate checks cross-field consistency.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}

	switch c.Catalog.Provider {
	case "memory":
		if c.Catalog.SeedPath == "" {
			return fmt.Errorf("catalog.seed_path required for the memory provider")
		}
	case "duckdb":
		if c.Catalog.DuckDBPath == "" {
			return fmt.Errorf("catalog.duckdb_path required for the duckdb provider")
		}
	default:
		return fmt.Errorf("catalog.provider %q unknown (memory, duckdb)", c.Catalog.Provider)
	}

	if c.Policy.Dir == "" {
		return fmt.Errorf("policy.dir required")
	}

	if c.Security.RateLimitRPS < 0 {
		return fmt.Errorf("security.rate_limit_rps must not be negative")
	}
	if c.Security.RateLimitRPS > 0 && c.Security.RateLimitBurst < 1 {
		return fmt.Errorf("security.rate_limit_burst must be at least 1 when rate limiting is on")
	}

	return nil
}

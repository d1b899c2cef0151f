// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config file search order. The first file
// found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/homepick/config.yaml",
	"/etc/homepick/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "HOMEPICK_CONFIG"

// envPrefix scopes the environment variable layer.
const envPrefix = "HOMEPICK_"

// Default returns the built-in defaults. They are applied first, then
// overridden by the config file and environment variables.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Catalog: CatalogConfig{
			Provider:        "memory",
			SeedPath:        "/data/products.json",
			DuckDBTable:     "products",
			MaxMemory:       "512MB",
			Threads:         0, // 0 = runtime.NumCPU()
			QueryTimeout:    10 * time.Second,
			RefreshInterval: 15 * time.Minute,
		},
		Policy: PolicyConfig{
			Dir:        "/data/policies",
			BadgerPath: "/data/policy-overrides",
		},
		Security: SecurityConfig{
			JWTSecret:      "",
			RateLimitRPS:   20,
			RateLimitBurst: 40,
		},
	}
}

// Load builds the configuration with layered sources:
//  1. Defaults: built-in values from Default()
//  2. Config file: optional YAML (HOMEPICK_CONFIG or the search paths)
//  3. Environment variables: HOMEPICK_SERVER_PORT → server.port
//
// Precedence: ENV > file > defaults.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", envTransform)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration invalid: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first config file that exists, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransform maps HOMEPICK_SECTION_SUB_KEY to section.sub_key. The first
// underscore separates the section; the rest stay joined, so
// HOMEPICK_CATALOG_DUCKDB_PATH becomes catalog.duckdb_path.
func envTransform(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	section, rest, found := strings.Cut(key, "_")
	if !found {
		return section
	}
	return section + "." + rest
}

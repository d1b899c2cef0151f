// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

package database

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/dwkim-lab/homepick/internal/logging"
	"github.com/dwkim-lab/homepick/internal/metrics"
	"github.com/dwkim-lab/homepick/internal/models"
)

// DuckDBConfig configures the DuckDB catalog provider.
type DuckDBConfig struct {
	// Path is the DuckDB database file.
	Path string
	// Table is the product snapshot table. Defaults to "products".
	Table string
	// Threads caps DuckDB worker threads. Defaults to the CPU count.
	Threads int
	// MaxMemory is the DuckDB memory limit, e.g. "512MB".
	MaxMemory string
	// QueryTimeout bounds a single snapshot query. Defaults to 10s.
	QueryTimeout time.Duration
}

func (c *DuckDBConfig) withDefaults() DuckDBConfig {
	out := *c
	if out.Table == "" {
		out.Table = "products"
	}
	if out.Threads <= 0 {
		out.Threads = runtime.NumCPU()
	}
	if out.MaxMemory == "" {
		out.MaxMemory = "512MB"
	}
	if out.QueryTimeout <= 0 {
		out.QueryTimeout = 10 * time.Second
	}
	return out
}

// DuckDBProvider serves catalog snapshots from a read-only DuckDB file.
// The decoded snapshot is cached; Refresh reloads it.
type DuckDBProvider struct {
	conn   *sql.DB
	cfg    DuckDBConfig
	logger zerolog.Logger

	mu       sync.RWMutex
	snapshot []*models.Product
	loadedAt time.Time
}

// OpenDuckDB opens the catalog database and loads the initial snapshot.
func OpenDuckDB(ctx context.Context, cfg DuckDBConfig) (*DuckDBProvider, error) {
	cfg = cfg.withDefaults()

	connStr := fmt.Sprintf("%s?access_mode=read_only&threads=%d&max_memory=%s",
		cfg.Path, cfg.Threads, cfg.MaxMemory)
	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("open catalog database: %w", err)
	}

	conn.SetMaxOpenConns(cfg.Threads)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(time.Hour)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("ping catalog database: %w", err)
	}

	p := &DuckDBProvider{
		conn:   conn,
		cfg:    cfg,
		logger: logging.WithComponent("catalog-duckdb"),
	}
	if err := p.Refresh(ctx); err != nil {
		closeQuietly(conn)
		return nil, err
	}
	return p, nil
}

// Products returns the cached snapshot, narrowed to the requested
// categories when categories is non-empty.
func (p *DuckDBProvider) Products(ctx context.Context, categories []string) ([]*models.Product, error) {
	p.mu.RLock()
	snapshot := p.snapshot
	p.mu.RUnlock()

	if snapshot == nil {
		if err := p.Refresh(ctx); err != nil {
			return nil, err
		}
		p.mu.RLock()
		snapshot = p.snapshot
		p.mu.RUnlock()
	}

	return filterByCategory(snapshot, categories), nil
}

// Refresh reloads the snapshot from the products table.
func (p *DuckDBProvider) Refresh(ctx context.Context) error {
	start := time.Now()

	queryCtx, cancel := context.WithTimeout(ctx, p.cfg.QueryTimeout)
	defer cancel()

	// #nosec G201 -- table name comes from operator config, not request input
	query := fmt.Sprintf(`
		SELECT id, name, description, model_number, image_url,
		       main_category, category, price, discount_price,
		       review_rating, review_count, specs, is_active
		FROM %s
		WHERE is_active
		ORDER BY id`, p.cfg.Table)

	rows, err := p.conn.QueryContext(queryCtx, query)
	if err != nil {
		metrics.RecordCatalogQuery("duckdb", 0, time.Since(start), err)
		return fmt.Errorf("query catalog snapshot: %w", err)
	}
	defer closeQuietly(rows)

	var snapshot []*models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			metrics.RecordCatalogQuery("duckdb", 0, time.Since(start), err)
			return fmt.Errorf("scan catalog row: %w", err)
		}
		snapshot = append(snapshot, product)
	}
	if err := rows.Err(); err != nil {
		metrics.RecordCatalogQuery("duckdb", 0, time.Since(start), err)
		return fmt.Errorf("read catalog rows: %w", err)
	}

	p.mu.Lock()
	p.snapshot = snapshot
	p.loadedAt = time.Now()
	p.mu.Unlock()

	metrics.RecordCatalogQuery("duckdb", len(snapshot), time.Since(start), nil)
	p.logger.Debug().Int("products", len(snapshot)).
		Dur("elapsed", time.Since(start)).Msg("Catalog snapshot refreshed")
	return nil
}

// LoadedAt reports when the snapshot was last refreshed.
func (p *DuckDBProvider) LoadedAt() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loadedAt
}

// Close releases the database handle.
func (p *DuckDBProvider) Close() error {
	return p.conn.Close()
}

func scanProduct(rows *sql.Rows) (*models.Product, error) {
	var (
		p           models.Product
		description sql.NullString
		modelNumber sql.NullString
		imageURL    sql.NullString
		specsJSON   sql.NullString
	)
	if err := rows.Scan(
		&p.ID, &p.Name, &description, &modelNumber, &imageURL,
		&p.MainCategory, &p.Category, &p.Price, &p.DiscountPrice,
		&p.ReviewRating, &p.ReviewCount, &specsJSON, &p.IsActive,
	); err != nil {
		return nil, err
	}

	p.Description = description.String
	p.ModelNumber = modelNumber.String
	p.ImageURL = imageURL.String

	if specsJSON.Valid && specsJSON.String != "" {
		if err := json.Unmarshal([]byte(specsJSON.String), &p.Specs); err != nil {
			// a malformed spec blob degrades the product, not the snapshot
			logger := logging.WithComponent("catalog-duckdb")
			logger.Warn().
				Int64("product_id", p.ID).Err(err).Msg("Malformed specs JSON, product kept without specs")
			p.Specs = nil
		}
	}
	return &p, nil
}

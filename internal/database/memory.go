// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

package database

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"github.com/dwkim-lab/homepick/internal/catalog"
	"github.com/dwkim-lab/homepick/internal/metrics"
	"github.com/dwkim-lab/homepick/internal/models"
)

// MemoryProvider serves a catalog snapshot held in memory. It backs tests
// and the seed-file deployment mode.
type MemoryProvider struct {
	mu       sync.RWMutex
	products []*models.Product
}

// NewMemoryProvider creates a provider over the given products.
func NewMemoryProvider(products []*models.Product) *MemoryProvider {
	return &MemoryProvider{products: products}
}

// LoadSeed creates a provider from a JSON seed file holding an array of
// products.
func LoadSeed(path string) (*MemoryProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var products []*models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return NewMemoryProvider(products), nil
}

// Products returns the snapshot, narrowed to the requested categories when
// categories is non-empty.
func (m *MemoryProvider) Products(_ context.Context, categories []string) ([]*models.Product, error) {
	start := time.Now()

	m.mu.RLock()
	snapshot := m.products
	m.mu.RUnlock()

	out := filterByCategory(snapshot, categories)
	metrics.RecordCatalogQuery("memory", len(out), time.Since(start), nil)
	return out, nil
}

// Replace swaps the snapshot.
func (m *MemoryProvider) Replace(products []*models.Product) {
	m.mu.Lock()
	m.products = products
	m.mu.Unlock()
}

// Len reports the snapshot size.
func (m *MemoryProvider) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.products)
}

// filterByCategory keeps products whose bucket or raw MAIN_CATEGORY is in
// the requested set. An empty set keeps everything.
func filterByCategory(products []*models.Product, categories []string) []*models.Product {
	if len(categories) == 0 {
		out := make([]*models.Product, len(products))
		copy(out, products)
		return out
	}

	requested := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		requested[c] = struct{}{}
	}

	out := make([]*models.Product, 0, len(products))
	for _, p := range products {
		if _, ok := requested[p.MainCategory]; ok {
			out = append(out, p)
			continue
		}
		if _, ok := requested[catalog.Bucket(p.MainCategory)]; ok {
			out = append(out, p)
		}
	}
	return out
}

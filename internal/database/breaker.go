// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/dwkim-lab/homepick/internal/logging"
	"github.com/dwkim-lab/homepick/internal/metrics"
	"github.com/dwkim-lab/homepick/internal/models"
)

// Provider is the catalog snapshot source the breaker wraps.
type Provider interface {
	Products(ctx context.Context, categories []string) ([]*models.Product, error)
}

// Breaker wraps a catalog provider with a circuit breaker. While the
// circuit is open it serves the last good snapshot instead of failing the
// recommendation request.
//
// The breaker uses real time for its interval and timeout calculations.
// Tests should exercise the wrapped provider directly.
type Breaker struct {
	provider Provider
	cb       *gobreaker.CircuitBreaker[[]*models.Product]
	name     string
	logger   zerolog.Logger

	mu       sync.RWMutex
	lastGood []*models.Product
}

// NewBreaker wraps a provider. The breaker opens after a 60% failure rate
// over at least 10 requests, waits 2 minutes before half-open, and allows
// 3 probe requests in half-open state.
func NewBreaker(name string, provider Provider) *Breaker {
	logger := logging.WithComponent("catalog-breaker")

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[[]*models.Product](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			if failureRatio >= 0.6 {
				logger.Warn().Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("Opening catalog circuit")
				return true
			}
			return false
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info().Str("from", from.String()).Str("to", to.String()).
				Msg("Catalog circuit state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &Breaker{
		provider: provider,
		cb:       cb,
		name:     name,
		logger:   logger,
	}
}

// Products fetches through the breaker, falling back to the last good
// snapshot when the provider fails or the circuit is open. The breaker
// always fetches the full snapshot so the stale copy can serve any
// category set.
func (b *Breaker) Products(ctx context.Context, categories []string) ([]*models.Product, error) {
	products, err := b.cb.Execute(func() ([]*models.Product, error) {
		return b.provider.Products(ctx, nil)
	})
	if err == nil {
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
		b.mu.Lock()
		b.lastGood = products
		b.mu.Unlock()
		return filterByCategory(products, categories), nil
	}

	result := "failure"
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		result = "rejected"
	}
	metrics.CircuitBreakerRequests.WithLabelValues(b.name, result).Inc()

	b.mu.RLock()
	stale := b.lastGood
	b.mu.RUnlock()
	if stale != nil {
		b.logger.Warn().Err(err).Int("products", len(stale)).
			Msg("Catalog provider failed, serving stale snapshot")
		return filterByCategory(stale, categories), nil
	}

	return nil, fmt.Errorf("catalog provider %s: %w", b.name, err)
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

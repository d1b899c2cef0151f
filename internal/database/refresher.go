// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

package database

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/dwkim-lab/homepick/internal/logging"
)

// Refreshable reloads its snapshot from the backing store.
// Satisfied by *DuckDBProvider.
type Refreshable interface {
	Refresh(ctx context.Context) error
}

// Refresher periodically reloads a provider's snapshot. It implements
// suture.Service; the supervisor restarts it if it crashes.
type Refresher struct {
	provider Refreshable
	interval time.Duration
	logger   zerolog.Logger
}

// NewRefresher creates a refresher. interval defaults to 15 minutes.
func NewRefresher(provider Refreshable, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &Refresher{
		provider: provider,
		interval: interval,
		logger:   logging.WithComponent("catalog-refresher"),
	}
}

// Serve implements suture.Service. A failed refresh is logged and retried
// on the next tick; the stale snapshot keeps serving in the meantime.
func (r *Refresher) Serve(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.provider.Refresh(ctx); err != nil {
				r.logger.Warn().Err(err).Msg("Catalog refresh failed, keeping previous snapshot")
			}
		}
	}
}

// String implements fmt.Stringer for supervisor logging.
func (r *Refresher) String() string {
	return "catalog-refresher"
}

// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

/*
Package database provides the catalog providers behind the recommendation
engine: an in-memory provider for tests and seed files, and a DuckDB-backed
provider for production catalogs.

Both providers implement the engine's Catalog interface:

	Products(ctx context.Context, categories []string) ([]*models.Product, error)

The DuckDB provider reads a read-only product snapshot table and caches
the decoded snapshot; a Refresher service reloads it on an interval. Wrap
the provider in a Breaker to stop hammering a failing database file and
serve the last good snapshot while the circuit is open.
*/
package database
